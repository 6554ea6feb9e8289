package engine

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// portDef is a chip port in the chip's own frame: a cell delta within
// the footprint plus the side the port faces.
type portDef struct {
	flow  PortFlow
	color PortColor
	delta geom.CoordsDelta
	dir   geom.Direction
}

func sink(color PortColor, x, y int, dir geom.Direction) portDef {
	return portDef{flow: FlowSink, color: color, delta: geom.CoordsDelta{X: x, Y: y}, dir: dir}
}

func source(color PortColor, x, y int, dir geom.Direction) portDef {
	return portDef{flow: FlowSource, color: color, delta: geom.CoordsDelta{X: x, Y: y}, dir: dir}
}

// constraintDef is a size constraint between port indexes of a chip
// descriptor, before localization.
type constraintDef struct {
	kind ConstraintKind
	a, b int
	size circuit.WireSize
}

func exactly(i int, size circuit.WireSize) constraintDef {
	return constraintDef{kind: ConstraintExact, a: i, size: size}
}

func atLeast(i int, size circuit.WireSize) constraintDef {
	return constraintDef{kind: ConstraintAtLeast, a: i, size: size}
}

func atMost(i int, size circuit.WireSize) constraintDef {
	return constraintDef{kind: ConstraintAtMost, a: i, size: size}
}

func equal(a, b int) constraintDef {
	return constraintDef{kind: ConstraintEqual, a: a, b: b}
}

// double requires port a's size to be twice port b's.
func double(a, b int) constraintDef {
	return constraintDef{kind: ConstraintDouble, a: a, b: b}
}

// chipData is the static descriptor of a chip type: its ports, size
// constraints, and intra-cycle dependency edges (sink index, source
// index).
type chipData struct {
	ports       []portDef
	constraints []constraintDef
	deps        [][2]int
}

// localize maps a port delta and direction through a chip's placement.
func localize(coords geom.Coords, orient geom.Orientation, size geom.CoordsSize, port portDef) Loc {
	return Loc{
		Coords: coords.AddDelta(orient.TransformInSize(port.delta, size)),
		Dir:    orient.Apply(port.dir),
	}
}

// ChipPorts resolves a chip's ports through its placement.  The max
// size of each port is derived from the descriptor's constraints.
func ChipPorts(ctype circuit.ChipType, coords geom.Coords, orient geom.Orientation) []PortSpec {
	size := ctype.FootprintSize()
	data := chipDataFor(ctype)
	specs := make([]PortSpec, len(data.ports))
	for index, port := range data.ports {
		maxSize := circuit.MaxWireSize
		for _, c := range data.constraints {
			switch {
			case c.kind == ConstraintExact && c.a == index:
				maxSize = c.size
			case c.kind == ConstraintAtMost && c.a == index:
				if c.size < maxSize {
					maxSize = c.size
				}
			case c.kind == ConstraintDouble && c.b == index:
				if half := circuit.MaxWireSize.Half(); half < maxSize {
					maxSize = half
				}
			default:
				continue
			}
			if c.kind == ConstraintExact {
				break
			}
		}
		loc := localize(coords, orient, size, port)
		specs[index] = PortSpec{
			Flow:    port.flow,
			Color:   port.color,
			Coords:  loc.Coords,
			Dir:     loc.Dir,
			MaxSize: maxSize,
		}
	}
	return specs
}

// ChipConstraints resolves a chip's size constraints through its
// placement.
func ChipConstraints(ctype circuit.ChipType, coords geom.Coords, orient geom.Orientation) []PortConstraint {
	size := ctype.FootprintSize()
	data := chipDataFor(ctype)
	constraints := make([]PortConstraint, len(data.constraints))
	for i, c := range data.constraints {
		pc := PortConstraint{Kind: c.kind, Size: c.size}
		pc.Loc = localize(coords, orient, size, data.ports[c.a])
		if c.kind == ConstraintEqual || c.kind == ConstraintDouble {
			pc.Other = localize(coords, orient, size, data.ports[c.b])
		}
		constraints[i] = pc
	}
	return constraints
}

// ChipDependencies resolves a chip's dependency edges through its
// placement.
func ChipDependencies(ctype circuit.ChipType, coords geom.Coords, orient geom.Orientation) []PortDependency {
	size := ctype.FootprintSize()
	data := chipDataFor(ctype)
	deps := make([]PortDependency, len(data.deps))
	for i, edge := range data.deps {
		deps[i] = PortDependency{
			Sink:   localize(coords, orient, size, data.ports[edge[0]]),
			Source: localize(coords, orient, size, data.ports[edge[1]]),
		}
	}
	return deps
}

// ChipUsesEvents reports whether any of the chip's ports are
// event-colored.
func ChipUsesEvents(ctype circuit.ChipType) bool {
	for _, port := range chipDataFor(ctype).ports {
		if port.color == PortEvent {
			return true
		}
	}
	return false
}

func chipDataFor(ctype circuit.ChipType) *chipData {
	switch ctype.Kind {
	case circuit.KindACmp:
		return acmpChipData
	case circuit.KindAAdd, circuit.KindAMul:
		return aaddChipData
	case circuit.KindAdd, circuit.KindMul, circuit.KindSub:
		return addChipData
	case circuit.KindAdd2Bit:
		return add2BitChipData
	case circuit.KindAnd, circuit.KindOr, circuit.KindXor:
		return andChipData
	case circuit.KindBreak:
		return breakChipData
	case circuit.KindButton:
		return buttonChipData
	case circuit.KindClock:
		return clockChipData
	case circuit.KindCmp, circuit.KindCmpEq, circuit.KindEq:
		return cmpChipData
	case circuit.KindCoerce:
		return coerceChipData(ctype.Size)
	case circuit.KindComment:
		return commentChipData
	case circuit.KindConst:
		return constChipData(ctype.Value)
	case circuit.KindCounter:
		return counterChipData
	case circuit.KindDelay:
		return delayChipData
	case circuit.KindDemux:
		return demuxChipData
	case circuit.KindDiscard:
		return discardChipData
	case circuit.KindDisplay:
		return displayChipData
	case circuit.KindEggTimer:
		return eggTimerChipData
	case circuit.KindFilter:
		return filterChipData
	case circuit.KindHalve, circuit.KindNeg:
		return halveChipData
	case circuit.KindInc:
		return incChipData
	case circuit.KindIntegrate:
		return integrateChipData
	case circuit.KindJoin:
		return joinChipData
	case circuit.KindLatch:
		return latchChipData
	case circuit.KindLatest:
		return latestChipData
	case circuit.KindMul4Bit:
		return mul4BitChipData
	case circuit.KindMux:
		return muxChipData
	case circuit.KindNot:
		return notChipData
	case circuit.KindPack:
		return packChipData
	case circuit.KindQueue, circuit.KindStack:
		return queueChipData
	case circuit.KindRam:
		return ramChipData
	case circuit.KindRandom:
		return randomChipData
	case circuit.KindRelay:
		return relayChipData
	case circuit.KindSample:
		return sampleChipData
	case circuit.KindScreen:
		return screenChipData
	case circuit.KindStopwatch:
		return stopwatchChipData
	case circuit.KindToggle:
		return toggleChipData
	case circuit.KindUnpack:
		return unpackChipData
	default:
		return commentChipData
	}
}

// EvalSlot binds one chip port to the wire net behind it.
type EvalSlot struct {
	Wire WireID
	Size circuit.WireSize
}

// PlacedEval pairs a chip evaluator with the index of the output port
// whose wire group it belongs to.
type PlacedEval struct {
	Port int
	Eval ChipEval
}

// NewChipEvals builds the evaluators for one placed chip.  The slots
// slice parallels the descriptor's port list.  Chips with no runtime
// behavior (Comment, Display) yield none.
func NewChipEvals(ctype circuit.ChipType, coords geom.Coords, slots []EvalSlot) []PlacedEval {
	switch ctype.Kind {
	case circuit.KindACmp:
		return newACmpEvals(slots)
	case circuit.KindAAdd:
		return newAAddEvals(slots)
	case circuit.KindAMul:
		return newAMulEvals(slots)
	case circuit.KindAdd:
		return newAddEvals(slots)
	case circuit.KindAdd2Bit:
		return newAdd2BitEvals(slots)
	case circuit.KindAnd:
		return newAndEvals(slots)
	case circuit.KindBreak:
		return newBreakEvals(ctype.Flag, coords, slots)
	case circuit.KindButton:
		return newButtonEvals(ctype.Hotkey, coords, slots)
	case circuit.KindClock:
		return newClockEvals(slots)
	case circuit.KindCmp:
		return newCmpEvals(slots)
	case circuit.KindCmpEq:
		return newCmpEqEvals(slots)
	case circuit.KindCoerce:
		return newCoerceEvals(slots)
	case circuit.KindConst:
		return newConstEvals(ctype.Value, slots)
	case circuit.KindCounter:
		return newCounterEvals(slots)
	case circuit.KindDelay:
		return newDelayEvals(slots)
	case circuit.KindDemux:
		return newDemuxEvals(slots)
	case circuit.KindDiscard:
		return newDiscardEvals(slots)
	case circuit.KindEggTimer:
		return newEggTimerEvals(slots)
	case circuit.KindEq:
		return newEqEvals(slots)
	case circuit.KindFilter:
		return newFilterEvals(slots)
	case circuit.KindHalve:
		return newHalveEvals(slots)
	case circuit.KindInc:
		return newIncEvals(slots)
	case circuit.KindIntegrate:
		return newIntegrateEvals(slots)
	case circuit.KindJoin:
		return newJoinEvals(slots)
	case circuit.KindLatch:
		return newLatchEvals(slots)
	case circuit.KindLatest:
		return newLatestEvals(slots)
	case circuit.KindMul:
		return newMulEvals(slots)
	case circuit.KindMul4Bit:
		return newMul4BitEvals(slots)
	case circuit.KindMux:
		return newMuxEvals(slots)
	case circuit.KindNeg:
		return newNegEvals(slots)
	case circuit.KindNot:
		return newNotEvals(slots)
	case circuit.KindOr:
		return newOrEvals(slots)
	case circuit.KindPack:
		return newPackEvals(slots)
	case circuit.KindQueue:
		return newQueueEvals(slots)
	case circuit.KindRam:
		return newRamEvals(slots)
	case circuit.KindRandom:
		return newRandomEvals(slots)
	case circuit.KindRelay:
		return newRelayEvals(slots)
	case circuit.KindSample:
		return newSampleEvals(slots)
	case circuit.KindScreen:
		return newScreenEvals(coords, slots)
	case circuit.KindStack:
		return newStackEvals(slots)
	case circuit.KindStopwatch:
		return newStopwatchEvals(slots)
	case circuit.KindSub:
		return newSubEvals(slots)
	case circuit.KindToggle:
		return newToggleEvals(ctype.Flag, coords, slots)
	case circuit.KindXor:
		return newXorEvals(slots)
	default:
		return nil
	}
}
