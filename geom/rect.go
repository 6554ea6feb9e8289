package geom

// CoordsRect is an axis-aligned rectangle of grid cells.
type CoordsRect struct {
	X, Y          int
	Width, Height int
}

// RectWithSize builds a rectangle from its top-left cell and size.
func RectWithSize(topLeft Coords, size CoordsSize) CoordsRect {
	return CoordsRect{X: topLeft.X, Y: topLeft.Y, Width: size.Width, Height: size.Height}
}

// TopLeft returns the rectangle's top-left cell.
func (r CoordsRect) TopLeft() Coords {
	return Coords{r.X, r.Y}
}

// Size returns the rectangle's size.
func (r CoordsRect) Size() CoordsSize {
	return CoordsSize{Width: r.Width, Height: r.Height}
}

// Right returns the exclusive right edge.
func (r CoordsRect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r CoordsRect) Bottom() int {
	return r.Y + r.Height
}

// Area returns the number of cells covered.
func (r CoordsRect) Area() int {
	return r.Width * r.Height
}

// IsEmpty reports whether the rectangle covers no cells.
func (r CoordsRect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the cell lies inside the rectangle.
func (r CoordsRect) Contains(c Coords) bool {
	return c.X >= r.X && c.X < r.Right() && c.Y >= r.Y && c.Y < r.Bottom()
}

// ContainsRect reports whether other lies entirely inside r. An empty
// rectangle is contained anywhere.
func (r CoordsRect) ContainsRect(other CoordsRect) bool {
	if other.IsEmpty() {
		return true
	}
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rectangles share any cell.
func (r CoordsRect) Intersects(other CoordsRect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Intersection returns the overlapping region of the two rectangles, or
// a zero rectangle if they are disjoint.
func (r CoordsRect) Intersection(other CoordsRect) CoordsRect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right <= x || bottom <= y {
		return CoordsRect{}
	}
	return CoordsRect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Expand grows the rectangle by n cells on every side.
func (r CoordsRect) Expand(n int) CoordsRect {
	return CoordsRect{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}
