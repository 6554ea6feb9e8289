package geom

// Direction is one of the four compass directions on the grid. East is
// +X and South is +Y.
type Direction int

const (
	East Direction = iota
	South
	West
	North
)

// AllDirections lists the directions in a fixed order (East, South,
// West, North). Iteration order matters for determinism.
func AllDirections() [4]Direction {
	return [4]Direction{East, South, West, North}
}

// Delta returns the unit cell offset for the direction.
func (d Direction) Delta() CoordsDelta {
	switch d {
	case East:
		return CoordsDelta{1, 0}
	case South:
		return CoordsDelta{0, 1}
	case West:
		return CoordsDelta{-1, 0}
	default:
		return CoordsDelta{0, -1}
	}
}

// IsVertical reports whether the direction is North or South.
func (d Direction) IsVertical() bool {
	return d == North || d == South
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// RotateCW returns the direction a quarter turn clockwise.
func (d Direction) RotateCW() Direction {
	return (d + 1) % 4
}

// RotateCCW returns the direction a quarter turn counterclockwise.
func (d Direction) RotateCCW() Direction {
	return (d + 3) % 4
}

// FlipVert mirrors the direction across the horizontal axis.
func (d Direction) FlipVert() Direction {
	if d.IsVertical() {
		return d.Opposite()
	}
	return d
}

func (d Direction) String() string {
	switch d {
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "North"
	}
}
