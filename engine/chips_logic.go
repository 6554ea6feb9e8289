package engine

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// Gate chips share one descriptor: two same-size inputs on the west
// and south, one output on the east.
var andChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		sink(PortBehavior, 0, 0, geom.South),
		source(PortBehavior, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1), equal(0, 2), equal(1, 2)},
	deps:        [][2]int{{0, 2}, {1, 2}},
}

type andChipEval struct {
	BaseChipEval
	input1, input2, output WireID
}

func newAndEvals(slots []EvalSlot) []PlacedEval {
	eval := &andChipEval{input1: slots[0].Wire, input2: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *andChipEval) Eval(state *CircuitState) {
	state.SendBehavior(c.output, state.RecvBehavior(c.input1)&state.RecvBehavior(c.input2))
}

type orChipEval struct {
	BaseChipEval
	input1, input2, output WireID
}

func newOrEvals(slots []EvalSlot) []PlacedEval {
	eval := &orChipEval{input1: slots[0].Wire, input2: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *orChipEval) Eval(state *CircuitState) {
	state.SendBehavior(c.output, state.RecvBehavior(c.input1)|state.RecvBehavior(c.input2))
}

type xorChipEval struct {
	BaseChipEval
	input1, input2, output WireID
}

func newXorEvals(slots []EvalSlot) []PlacedEval {
	eval := &xorChipEval{input1: slots[0].Wire, input2: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *xorChipEval) Eval(state *CircuitState) {
	state.SendBehavior(c.output, state.RecvBehavior(c.input1)^state.RecvBehavior(c.input2))
}

var notChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		source(PortBehavior, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1)},
	deps:        [][2]int{{0, 1}},
}

type notChipEval struct {
	BaseChipEval
	mask          uint32
	input, output WireID
}

func newNotEvals(slots []EvalSlot) []PlacedEval {
	eval := &notChipEval{mask: slots[1].Size.Mask(), input: slots[0].Wire, output: slots[1].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *notChipEval) Eval(state *CircuitState) {
	state.SendBehavior(c.output, ^state.RecvBehavior(c.input)&c.mask)
}

var muxChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		sink(PortBehavior, 0, 0, geom.South),
		source(PortBehavior, 0, 0, geom.East),
		sink(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		equal(0, 1), equal(0, 2), equal(1, 2),
		exactly(3, circuit.SizeOne),
	},
	deps: [][2]int{{0, 2}, {1, 2}, {3, 2}},
}

type muxChipEval struct {
	BaseChipEval
	input1, input2, output, control WireID
}

func newMuxEvals(slots []EvalSlot) []PlacedEval {
	eval := &muxChipEval{
		input1:  slots[0].Wire,
		input2:  slots[1].Wire,
		output:  slots[2].Wire,
		control: slots[3].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *muxChipEval) Eval(state *CircuitState) {
	if state.RecvBehavior(c.control) == 0 {
		state.SendBehavior(c.output, state.RecvBehavior(c.input1))
	} else {
		state.SendBehavior(c.output, state.RecvBehavior(c.input2))
	}
}

var demuxChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		source(PortEvent, 0, 0, geom.South),
		source(PortEvent, 0, 0, geom.East),
		sink(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		equal(0, 1), equal(0, 2), equal(1, 2),
		exactly(3, circuit.SizeOne),
	},
	deps: [][2]int{{0, 1}, {0, 2}, {3, 1}, {3, 2}},
}

type demuxChipEval struct {
	BaseChipEval
	input, output1, output2, control WireID
}

func newDemuxEvals(slots []EvalSlot) []PlacedEval {
	eval := &demuxChipEval{
		input:   slots[0].Wire,
		output1: slots[1].Wire,
		output2: slots[2].Wire,
		control: slots[3].Wire,
	}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *demuxChipEval) Eval(state *CircuitState) {
	if value, ok := state.RecvEvent(c.input); ok {
		if state.RecvBehavior(c.control) != 0 {
			state.SendEvent(c.output1, value)
		} else {
			state.SendEvent(c.output2, value)
		}
	}
}

var relayChipData = &chipData{
	ports: []portDef{
		sink(PortAnalog, 0, 0, geom.West),
		sink(PortAnalog, 0, 0, geom.South),
		source(PortAnalog, 0, 0, geom.East),
		sink(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeAnalog), exactly(1, circuit.SizeAnalog), exactly(2, circuit.SizeAnalog),
		exactly(3, circuit.SizeOne),
	},
	deps: [][2]int{{0, 2}, {1, 2}, {3, 2}},
}

type relayChipEval struct {
	BaseChipEval
	input1, input2, output, control WireID
}

func newRelayEvals(slots []EvalSlot) []PlacedEval {
	eval := &relayChipEval{
		input1:  slots[0].Wire,
		input2:  slots[1].Wire,
		output:  slots[2].Wire,
		control: slots[3].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *relayChipEval) Eval(state *CircuitState) {
	if state.RecvBehavior(c.control) == 0 {
		state.SendAnalog(c.output, state.RecvAnalog(c.input1))
	} else {
		state.SendAnalog(c.output, state.RecvAnalog(c.input2))
	}
}
