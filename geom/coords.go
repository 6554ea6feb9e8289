// Package geom provides the integer grid geometry used by the circuit
// model: cell coordinates, deltas, sizes, rectangles, the four compass
// directions, the eight rotate/flip orientations, and fixed-point analog
// values.
package geom

// Coords identifies a single grid cell.
type Coords struct {
	X, Y int
}

// AddDelta returns the cell offset from c by d.
func (c Coords) AddDelta(d CoordsDelta) Coords {
	return Coords{c.X + d.X, c.Y + d.Y}
}

// SubDelta returns the cell offset from c by the negation of d.
func (c Coords) SubDelta(d CoordsDelta) Coords {
	return Coords{c.X - d.X, c.Y - d.Y}
}

// DeltaTo returns the delta that moves c to other.
func (c Coords) DeltaTo(other Coords) CoordsDelta {
	return CoordsDelta{other.X - c.X, other.Y - c.Y}
}

// Add steps one cell in the given direction.
func (c Coords) Add(dir Direction) Coords {
	return c.AddDelta(dir.Delta())
}

// Sub steps one cell opposite to the given direction.
func (c Coords) Sub(dir Direction) Coords {
	return c.SubDelta(dir.Delta())
}

// CoordsDelta is a signed offset between grid cells.
type CoordsDelta struct {
	X, Y int
}

// Scale multiplies both components by n.
func (d CoordsDelta) Scale(n int) CoordsDelta {
	return CoordsDelta{d.X * n, d.Y * n}
}

// Neg returns the opposite delta.
func (d CoordsDelta) Neg() CoordsDelta {
	return CoordsDelta{-d.X, -d.Y}
}

// Add combines two deltas.
func (d CoordsDelta) Add(other CoordsDelta) CoordsDelta {
	return CoordsDelta{d.X + other.X, d.Y + other.Y}
}

// CoordsSize is the width and height of a rectangular cell region.
type CoordsSize struct {
	Width, Height int
}

// Area returns the number of cells covered by the size.
func (s CoordsSize) Area() int {
	return s.Width * s.Height
}

// IsEmpty reports whether the size covers no cells.
func (s CoordsSize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}
