package circuit

import "github.com/fab-xyz/go-fab/geom"

// WireShape describes the wire fragment occupying one (cell, direction)
// half-edge.
type WireShape int

const (
	// ShapeStub is a short stub toward the direction, terminating
	// inside the cell (at a port or a dead end).
	ShapeStub WireShape = iota
	// ShapeStraight passes through the cell to the opposite side.
	ShapeStraight
	// ShapeTurnLeft turns between the direction and its
	// counterclockwise neighbor.
	ShapeTurnLeft
	// ShapeTurnRight turns between the direction and its clockwise
	// neighbor.
	ShapeTurnRight
	// ShapeSplitTee joins the direction with both perpendiculars.
	ShapeSplitTee
	// ShapeSplitLeft joins the direction, its opposite, and its
	// counterclockwise neighbor.
	ShapeSplitLeft
	// ShapeSplitRight joins the direction, its opposite, and its
	// clockwise neighbor.
	ShapeSplitRight
	// ShapeCross joins all four directions.
	ShapeCross
)

// Connections returns the other half-edges within the same cell that a
// fragment of this shape at the given direction chains to. The implicit
// link to the neighboring cell's opposing half-edge is not included.
func (s WireShape) Connections(dir geom.Direction) []geom.Direction {
	switch s {
	case ShapeStraight:
		return []geom.Direction{dir.Opposite()}
	case ShapeTurnLeft:
		return []geom.Direction{dir.RotateCCW()}
	case ShapeTurnRight:
		return []geom.Direction{dir.RotateCW()}
	case ShapeSplitTee:
		return []geom.Direction{dir.RotateCCW(), dir.RotateCW()}
	case ShapeSplitLeft:
		return []geom.Direction{dir.Opposite(), dir.RotateCCW()}
	case ShapeSplitRight:
		return []geom.Direction{dir.Opposite(), dir.RotateCW()}
	case ShapeCross:
		return []geom.Direction{dir.Opposite(), dir.RotateCCW(), dir.RotateCW()}
	default:
		return nil
	}
}

// shapeForConnections maps a half-edge's set of within-cell links back
// to its shape. The keys are, relative to the half-edge's direction:
// opposite, counterclockwise, clockwise.
func shapeForConnections(opposite, ccw, cw bool) (WireShape, bool) {
	switch {
	case !opposite && !ccw && !cw:
		return ShapeStub, true
	case opposite && !ccw && !cw:
		return ShapeStraight, true
	case !opposite && ccw && !cw:
		return ShapeTurnLeft, true
	case !opposite && !ccw && cw:
		return ShapeTurnRight, true
	case !opposite && ccw && cw:
		return ShapeSplitTee, true
	case opposite && ccw && !cw:
		return ShapeSplitLeft, true
	case opposite && !ccw && cw:
		return ShapeSplitRight, true
	default:
		return ShapeCross, true
	}
}

// ShapeForConnections returns the shape whose within-cell links, for a
// half-edge at dir, are exactly the given set of directions. Reports
// false if the set includes dir itself.
func ShapeForConnections(dir geom.Direction, links []geom.Direction) (WireShape, bool) {
	var opposite, ccw, cw bool
	for _, link := range links {
		switch link {
		case dir.Opposite():
			opposite = true
		case dir.RotateCCW():
			ccw = true
		case dir.RotateCW():
			cw = true
		default:
			return ShapeStub, false
		}
	}
	return shapeForConnections(opposite, ccw, cw)
}

func (s WireShape) String() string {
	switch s {
	case ShapeStub:
		return "Stub"
	case ShapeStraight:
		return "Straight"
	case ShapeTurnLeft:
		return "TurnLeft"
	case ShapeTurnRight:
		return "TurnRight"
	case ShapeSplitTee:
		return "SplitTee"
	case ShapeSplitLeft:
		return "SplitLeft"
	case ShapeSplitRight:
		return "SplitRight"
	default:
		return "Cross"
	}
}

// ParseWireShape inverts String.
func ParseWireShape(s string) (WireShape, bool) {
	switch s {
	case "Stub":
		return ShapeStub, true
	case "Straight":
		return ShapeStraight, true
	case "TurnLeft":
		return ShapeTurnLeft, true
	case "TurnRight":
		return ShapeTurnRight, true
	case "SplitTee":
		return ShapeSplitTee, true
	case "SplitLeft":
		return ShapeSplitLeft, true
	case "SplitRight":
		return ShapeSplitRight, true
	case "Cross":
		return ShapeCross, true
	default:
		return ShapeStub, false
	}
}
