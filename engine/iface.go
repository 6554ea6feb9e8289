package engine

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// InterfacePosition places an interface along its side of the board:
// offset from the side's left end, centered, or offset from the right
// end.  Left and right are relative to facing the board from outside
// that side.
type InterfacePosition struct {
	fromRight bool
	center    bool
	offset    int
}

// InterfaceLeft positions an interface n cells from the left end.
func InterfaceLeft(n int) InterfacePosition {
	return InterfacePosition{offset: n}
}

// InterfaceRight positions an interface n cells from the right end.
func InterfaceRight(n int) InterfacePosition {
	return InterfacePosition{fromRight: true, offset: n}
}

// InterfaceCenter positions an interface at the middle of its side.
func InterfaceCenter() InterfacePosition {
	return InterfacePosition{center: true}
}

// InterfacePort is one port of a puzzle interface.
type InterfacePort struct {
	Name        string
	Description string
	Flow        PortFlow
	Color       PortColor
	Size        circuit.WireSize
}

// Interface is a group of adjacent ports on one side of the board,
// supplied by the puzzle rather than by a chip.
type Interface struct {
	Name        string
	Description string
	Side        geom.Direction
	Pos         InterfacePosition
	Ports       []InterfacePort
}

// Size returns the number of cells the interface spans along its side.
func (f *Interface) Size() int { return len(f.Ports) }

// MinBoundsSize returns the smallest board size that can fit all the
// given interfaces along their sides.
func MinBoundsSize(interfaces []*Interface) geom.CoordsSize {
	type sideSpan struct{ left, center, right int }
	spans := make(map[geom.Direction]*sideSpan)
	for _, dir := range geom.AllDirections() {
		spans[dir] = &sideSpan{}
	}
	for _, iface := range interfaces {
		span := spans[iface.Side]
		size := iface.Size()
		switch {
		case iface.Pos.center:
			if size > span.center {
				span.center = size
			}
		case iface.Pos.fromRight:
			if n := size + iface.Pos.offset; n > span.right {
				span.right = n
			}
		default:
			if n := size + iface.Pos.offset; n > span.left {
				span.left = n
			}
		}
	}
	minSpan := func(span *sideSpan) int {
		if span.center > 0 {
			side := span.left
			if span.right > side {
				side = span.right
			}
			return 2*side + span.center
		}
		return span.left + span.right
	}
	width := minSpan(spans[geom.North])
	if s := minSpan(spans[geom.South]); s > width {
		width = s
	}
	height := minSpan(spans[geom.East])
	if s := minSpan(spans[geom.West]); s > height {
		height = s
	}
	return geom.CoordsSize{Width: width, Height: height}
}

// TopLeft returns the cell occupied by the interface's first port,
// given the board bounds.
func (f *Interface) TopLeft(bounds geom.CoordsRect) geom.Coords {
	span := bounds.Width
	if !f.Side.IsVertical() {
		span = bounds.Height
	}
	length := f.Size()
	var dist int
	switch {
	case f.Pos.center:
		dist = (span - length) / 2
	case f.Pos.fromRight:
		dist = span - length - f.Pos.offset
	default:
		dist = f.Pos.offset
	}
	var delta geom.CoordsDelta
	switch f.Side {
	case geom.East:
		delta = geom.CoordsDelta{X: bounds.Width, Y: span - length - dist}
	case geom.South:
		delta = geom.CoordsDelta{X: dist, Y: bounds.Height}
	case geom.West:
		delta = geom.CoordsDelta{X: -1, Y: dist}
	default:
		delta = geom.CoordsDelta{X: span - length - dist, Y: -1}
	}
	return bounds.TopLeft().AddDelta(delta)
}

// step returns the direction from each interface cell to the next.
func (f *Interface) step() geom.Direction {
	switch f.Side {
	case geom.South, geom.West:
		return f.Side.RotateCCW()
	default:
		return f.Side.RotateCW()
	}
}

// PortSpecs resolves the interface's ports against the board bounds.
// Interface ports face into the board, opposite their side.
func (f *Interface) PortSpecs(bounds geom.CoordsRect) []PortSpec {
	coords := f.TopLeft(bounds)
	step := f.step()
	dir := f.Side.Opposite()
	specs := make([]PortSpec, len(f.Ports))
	for i, port := range f.Ports {
		specs[i] = PortSpec{
			Flow:    port.Flow,
			Color:   port.Color,
			Coords:  coords,
			Dir:     dir,
			MaxSize: port.Size,
		}
		coords = coords.Add(step)
	}
	return specs
}

// Constraints pins each interface port's wire to the port's size.
func (f *Interface) Constraints(bounds geom.CoordsRect) []PortConstraint {
	coords := f.TopLeft(bounds)
	step := f.step()
	dir := f.Side.Opposite()
	constraints := make([]PortConstraint, len(f.Ports))
	for i, port := range f.Ports {
		constraints[i] = ExactConstraint(Loc{Coords: coords, Dir: dir}, port.Size)
		coords = coords.Add(step)
	}
	return constraints
}
