package engine

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// Cmp, CmpEq and Eq share a descriptor: two inputs facing each other on
// the west and east, a one-bit verdict on the north.
var cmpChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		sink(PortBehavior, 0, 0, geom.East),
		source(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		equal(0, 1),
		exactly(2, circuit.SizeOne),
	},
	deps: [][2]int{{0, 2}, {1, 2}},
}

type cmpChipEval struct {
	BaseChipEval
	input1, input2, output WireID
}

func newCmpEvals(slots []EvalSlot) []PlacedEval {
	eval := &cmpChipEval{input1: slots[0].Wire, input2: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *cmpChipEval) Eval(state *CircuitState) {
	if state.RecvBehavior(c.input1) < state.RecvBehavior(c.input2) {
		state.SendBehavior(c.output, 1)
	} else {
		state.SendBehavior(c.output, 0)
	}
}

type cmpEqChipEval struct {
	BaseChipEval
	input1, input2, output WireID
}

func newCmpEqEvals(slots []EvalSlot) []PlacedEval {
	eval := &cmpEqChipEval{input1: slots[0].Wire, input2: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *cmpEqChipEval) Eval(state *CircuitState) {
	if state.RecvBehavior(c.input1) <= state.RecvBehavior(c.input2) {
		state.SendBehavior(c.output, 1)
	} else {
		state.SendBehavior(c.output, 0)
	}
}

type eqChipEval struct {
	BaseChipEval
	input1, input2, output WireID
}

func newEqEvals(slots []EvalSlot) []PlacedEval {
	eval := &eqChipEval{input1: slots[0].Wire, input2: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *eqChipEval) Eval(state *CircuitState) {
	if state.RecvBehavior(c.input1) == state.RecvBehavior(c.input2) {
		state.SendBehavior(c.output, 1)
	} else {
		state.SendBehavior(c.output, 0)
	}
}

// ACmp compares two analog values whenever a test event arrives on the
// south.
var acmpChipData = &chipData{
	ports: []portDef{
		sink(PortAnalog, 0, 0, geom.West),
		sink(PortAnalog, 0, 0, geom.East),
		sink(PortEvent, 0, 0, geom.South),
		source(PortEvent, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeAnalog),
		exactly(1, circuit.SizeAnalog),
		exactly(2, circuit.SizeZero),
		exactly(3, circuit.SizeOne),
	},
	deps: [][2]int{{0, 3}, {1, 3}, {2, 3}},
}

type acmpChipEval struct {
	BaseChipEval
	input1, input2, test, output WireID
}

func newACmpEvals(slots []EvalSlot) []PlacedEval {
	eval := &acmpChipEval{
		input1: slots[0].Wire,
		input2: slots[1].Wire,
		test:   slots[2].Wire,
		output: slots[3].Wire,
	}
	return []PlacedEval{{Port: 3, Eval: eval}}
}

func (c *acmpChipEval) Eval(state *CircuitState) {
	if state.HasEvent(c.test) {
		if state.RecvAnalog(c.input1).Cmp(state.RecvAnalog(c.input2)) < 0 {
			state.SendEvent(c.output, 1)
		} else {
			state.SendEvent(c.output, 0)
		}
	}
}
