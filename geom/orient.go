package geom

import "fmt"

// Orientation is one of the eight elements of the square's symmetry
// group: an optional vertical mirror followed by 0 to 3 quarter turns
// clockwise. The zero value is the identity.
type Orientation struct {
	rotate uint8 // quarter turns clockwise, 0..3
	mirror bool
}

// NewOrientation returns the identity orientation.
func NewOrientation() Orientation {
	return Orientation{}
}

// IsMirrored reports whether the orientation includes a flip.
func (o Orientation) IsMirrored() bool {
	return o.mirror
}

// RotateCW adds a quarter turn clockwise.
func (o Orientation) RotateCW() Orientation {
	return Orientation{rotate: (o.rotate + 1) % 4, mirror: o.mirror}
}

// RotateCCW adds a quarter turn counterclockwise.
func (o Orientation) RotateCCW() Orientation {
	return Orientation{rotate: (o.rotate + 3) % 4, mirror: o.mirror}
}

// FlipVert mirrors across the horizontal axis.
func (o Orientation) FlipVert() Orientation {
	rotate := o.rotate
	if rotate%2 != 0 {
		rotate = (rotate + 2) % 4
	}
	return Orientation{rotate: rotate, mirror: !o.mirror}
}

// FlipHorz mirrors across the vertical axis.
func (o Orientation) FlipHorz() Orientation {
	rotate := o.rotate
	if rotate%2 == 0 {
		rotate = (rotate + 2) % 4
	}
	return Orientation{rotate: rotate, mirror: !o.mirror}
}

// Compose returns the orientation equivalent to applying other first and
// then o.
func (o Orientation) Compose(other Orientation) Orientation {
	if o.mirror {
		other = other.FlipVert()
	}
	other.rotate = (other.rotate + o.rotate) % 4
	return other
}

// Apply transforms a direction by the orientation.
func (o Orientation) Apply(dir Direction) Direction {
	if o.mirror {
		dir = dir.FlipVert()
	}
	switch o.rotate {
	case 1:
		return dir.RotateCW()
	case 2:
		return dir.Opposite()
	case 3:
		return dir.RotateCCW()
	default:
		return dir
	}
}

// TransformInSize transforms a cell delta within a rectangle of the
// given unoriented size, so that the rectangle's cells map onto the
// cells of the oriented rectangle.
func (o Orientation) TransformInSize(delta CoordsDelta, size CoordsSize) CoordsDelta {
	x := delta.X
	y := delta.Y
	if o.mirror {
		y = size.Height - y - 1
	}
	switch o.rotate {
	case 1:
		x, y = size.Height-y-1, x
	case 2:
		x, y = size.Width-x-1, size.Height-y-1
	case 3:
		x, y = y, size.Width-x-1
	}
	return CoordsDelta{x, y}
}

// TransformSize transposes the size for odd rotations.
func (o Orientation) TransformSize(size CoordsSize) CoordsSize {
	if o.rotate%2 != 0 {
		return CoordsSize{Width: size.Height, Height: size.Width}
	}
	return size
}

func (o Orientation) String() string {
	mirror := 'f'
	if o.mirror {
		mirror = 't'
	}
	return fmt.Sprintf("%c%d", mirror, o.rotate)
}

// ParseOrientation parses the two-character form produced by String,
// "f0" through "t3".
func ParseOrientation(s string) (Orientation, error) {
	if len(s) == 2 && (s[0] == 'f' || s[0] == 't') && s[1] >= '0' && s[1] <= '3' {
		return Orientation{rotate: s[1] - '0', mirror: s[0] == 't'}, nil
	}
	return Orientation{}, fmt.Errorf("invalid orientation %q", s)
}
