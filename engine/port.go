// Package engine implements the circuit runtime: wire topology and
// typechecking, chip descriptors and evaluators, interface ports, and
// the cycle-by-cycle evaluator.
package engine

import (
	"fmt"

	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// PortFlow is the direction a value flows through a port.
type PortFlow int

const (
	// FlowSource ports send values onto the attached wire.
	FlowSource PortFlow = iota
	// FlowSink ports receive values from the attached wire.
	FlowSink
)

func (f PortFlow) String() string {
	if f == FlowSource {
		return "Source"
	}
	return "Sink"
}

// PortColor is the value discipline a port speaks.
type PortColor int

const (
	PortBehavior PortColor = iota
	PortEvent
	PortAnalog
)

func (c PortColor) String() string {
	switch c {
	case PortBehavior:
		return "Behavior"
	case PortEvent:
		return "Event"
	default:
		return "Analog"
	}
}

// Loc identifies a half-edge of the grid: a cell plus one of its four
// sides.  Ports and wire fragments both live at Locs.
type Loc struct {
	Coords geom.Coords
	Dir    geom.Direction
}

func (l Loc) String() string {
	return fmt.Sprintf("(%d, %d, %v)", l.Coords.X, l.Coords.Y, l.Dir)
}

// PortSpec is a fully located port of a chip or interface.
type PortSpec struct {
	Flow    PortFlow
	Color   PortColor
	Coords  geom.Coords
	Dir     geom.Direction
	MaxSize circuit.WireSize
}

// Loc returns the half-edge the port occupies.
func (p PortSpec) Loc() Loc {
	return Loc{Coords: p.Coords, Dir: p.Dir}
}

// ConstraintKind discriminates PortConstraint variants.
type ConstraintKind int

const (
	ConstraintExact ConstraintKind = iota
	ConstraintAtLeast
	ConstraintAtMost
	ConstraintEqual
	ConstraintDouble
)

// PortConstraint restricts the wire sizes admissible at one or two
// ports.  Exact, AtLeast and AtMost use Loc and Size; Equal ties Loc
// and Other to the same size; Double requires Loc's size to be twice
// Other's.
type PortConstraint struct {
	Kind  ConstraintKind
	Loc   Loc
	Other Loc
	Size  circuit.WireSize
}

// ExactConstraint requires the wire at loc to have exactly the given
// size.
func ExactConstraint(loc Loc, size circuit.WireSize) PortConstraint {
	return PortConstraint{Kind: ConstraintExact, Loc: loc, Size: size}
}

// AtLeastConstraint requires the wire at loc to have at least the given
// size.
func AtLeastConstraint(loc Loc, size circuit.WireSize) PortConstraint {
	return PortConstraint{Kind: ConstraintAtLeast, Loc: loc, Size: size}
}

// AtMostConstraint requires the wire at loc to have at most the given
// size.
func AtMostConstraint(loc Loc, size circuit.WireSize) PortConstraint {
	return PortConstraint{Kind: ConstraintAtMost, Loc: loc, Size: size}
}

// EqualConstraint requires the wires at the two locs to have equal
// sizes.
func EqualConstraint(a, b Loc) PortConstraint {
	return PortConstraint{Kind: ConstraintEqual, Loc: a, Other: b}
}

// DoubleConstraint requires the wire at a to be double the size of the
// wire at b.
func DoubleConstraint(a, b Loc) PortConstraint {
	return PortConstraint{Kind: ConstraintDouble, Loc: a, Other: b}
}

// PortDependency records that a chip reads its Sink port before writing
// its Source port within a single cycle.  Dependencies drive the
// topological ordering of wires; a Delay chip declares none, which is
// what lets feedback loops settle.
type PortDependency struct {
	Sink   Loc
	Source Loc
}
