package circuit

import "github.com/fab-xyz/go-fab/geom"

// Builder provides a fluent API for constructing CircuitData.
// It simplifies circuit assembly in tests and tools by chaining method
// calls.
//
// Example:
//
//	data := circuit.Build(3, 3).
//	    Chip(1, 1, "f0", circuit.NewChip(circuit.KindXor)).
//	    Stub(1, 1, geom.West).
//	    Straight(0, 1, geom.East).
//	    Done()
type Builder struct {
	data *CircuitData
}

// Build creates a new Builder for a circuit with the given bounds size.
func Build(width, height int) *Builder {
	return &Builder{data: NewCircuitData(width, height)}
}

// Chip places a chip at the given cell with the given orientation
// ("f0" through "t3"). Invalid orientation strings fall back to the
// identity.
func (b *Builder) Chip(x, y int, orient string, ctype ChipType) *Builder {
	o, err := geom.ParseOrientation(orient)
	if err != nil {
		o = geom.NewOrientation()
	}
	b.data.InsertChip(geom.CoordsDelta{X: x, Y: y}, ctype, o)
	return b
}

// Wire places a single wire fragment.
func (b *Builder) Wire(x, y int, dir geom.Direction, shape WireShape) *Builder {
	b.data.InsertWire(geom.CoordsDelta{X: x, Y: y}, dir, shape)
	return b
}

// Stub places a stub fragment.
func (b *Builder) Stub(x, y int, dir geom.Direction) *Builder {
	return b.Wire(x, y, dir, ShapeStub)
}

// Straight places a straight pass-through fragment.
func (b *Builder) Straight(x, y int, dir geom.Direction) *Builder {
	return b.Wire(x, y, dir, ShapeStraight)
}

// Span lays a complete straight wire from cell (x, y) to the cell n
// steps toward dir: stubs at both ends, straight pass-throughs in
// between.
func (b *Builder) Span(x, y int, dir geom.Direction, n int) *Builder {
	if n < 1 {
		return b
	}
	c := geom.Coords{X: x, Y: y}
	b.Stub(c.X, c.Y, dir)
	for i := 1; i < n; i++ {
		c = c.Add(dir)
		b.Straight(c.X, c.Y, dir.Opposite())
		b.Straight(c.X, c.Y, dir)
	}
	c = c.Add(dir)
	b.Stub(c.X, c.Y, dir.Opposite())
	return b
}

// Done returns the constructed CircuitData.
func (b *Builder) Done() *CircuitData {
	return b.data
}
