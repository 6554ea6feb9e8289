package engine

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// Filter passes events through only while the behavior control on the
// north is zero.
var filterChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		source(PortEvent, 0, 0, geom.East),
		sink(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		equal(0, 1),
		exactly(2, circuit.SizeOne),
	},
	deps: [][2]int{{0, 1}, {2, 1}},
}

type filterChipEval struct {
	BaseChipEval
	input, output, control WireID
}

func newFilterEvals(slots []EvalSlot) []PlacedEval {
	eval := &filterChipEval{input: slots[0].Wire, output: slots[1].Wire, control: slots[2].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *filterChipEval) Eval(state *CircuitState) {
	if value, ok := state.RecvEvent(c.input); ok {
		if state.RecvBehavior(c.control) == 0 {
			state.SendEvent(c.output, value)
		}
	}
}

// Join merges two event streams; when both fire in the same cycle the
// west input wins.
var joinChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		sink(PortEvent, 0, 0, geom.South),
		source(PortEvent, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1), equal(0, 2), equal(1, 2)},
	deps:        [][2]int{{0, 2}, {1, 2}},
}

type joinChipEval struct {
	BaseChipEval
	input1, input2, output WireID
}

func newJoinEvals(slots []EvalSlot) []PlacedEval {
	eval := &joinChipEval{input1: slots[0].Wire, input2: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *joinChipEval) Eval(state *CircuitState) {
	if value, ok := state.RecvEvent(c.input1); ok {
		state.SendEvent(c.output, value)
	} else if value, ok := state.RecvEvent(c.input2); ok {
		state.SendEvent(c.output, value)
	}
}

// Latest holds the value of the most recent event as a behavior.
var latestChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		source(PortBehavior, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1)},
	deps:        [][2]int{{0, 1}},
}

type latestChipEval struct {
	BaseChipEval
	input, output WireID
}

func newLatestEvals(slots []EvalSlot) []PlacedEval {
	eval := &latestChipEval{input: slots[0].Wire, output: slots[1].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *latestChipEval) Eval(state *CircuitState) {
	if value, ok := state.RecvEvent(c.input); ok {
		state.SendBehavior(c.output, value)
	}
}

// Sample captures the behavior on the south as an event value whenever
// a trigger event arrives on the west.
var sampleChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		sink(PortBehavior, 0, 0, geom.South),
		source(PortEvent, 0, 0, geom.East),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeZero),
		equal(1, 2),
	},
	deps: [][2]int{{0, 2}, {1, 2}},
}

type sampleChipEval struct {
	BaseChipEval
	trigger, input, output WireID
}

func newSampleEvals(slots []EvalSlot) []PlacedEval {
	eval := &sampleChipEval{trigger: slots[0].Wire, input: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *sampleChipEval) Eval(state *CircuitState) {
	if state.HasEvent(c.trigger) {
		state.SendEvent(c.output, state.RecvBehavior(c.input))
	}
}

// Discard strips the payload from events, forwarding zero-size pulses.
var discardChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		source(PortEvent, 0, 0, geom.East),
	},
	constraints: []constraintDef{
		atLeast(0, circuit.SizeOne),
		exactly(1, circuit.SizeZero),
	},
	deps: [][2]int{{0, 1}},
}

type discardChipEval struct {
	BaseChipEval
	input, output WireID
}

func newDiscardEvals(slots []EvalSlot) []PlacedEval {
	eval := &discardChipEval{input: slots[0].Wire, output: slots[1].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *discardChipEval) Eval(state *CircuitState) {
	if state.HasEvent(c.input) {
		state.SendEvent(c.output, 0)
	}
}
