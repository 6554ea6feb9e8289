package engine

import (
	"math/rand"

	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// Const emits a fixed behavior value.  The wire must be wide enough to
// carry it.
func constChipData(value uint16) *chipData {
	data := &chipData{
		ports: []portDef{source(PortBehavior, 0, 0, geom.East)},
	}
	if min := circuit.MinSizeForValue(value); min > circuit.SizeOne {
		data.constraints = []constraintDef{atLeast(0, min)}
	}
	return data
}

type constChipEval struct {
	BaseChipEval
	value  uint32
	output WireID
}

func newConstEvals(value uint16, slots []EvalSlot) []PlacedEval {
	eval := &constChipEval{value: uint32(value), output: slots[0].Wire}
	return []PlacedEval{{Port: 0, Eval: eval}}
}

func (c *constChipEval) Eval(state *CircuitState) {
	state.SendBehavior(c.output, c.value)
}

// Coerce pins both of its wires to a chosen size; the value passes
// straight through.  Zero-bit and one-bit coercions both pin to one
// bit.
func coerceChipData(size circuit.WireSize) *chipData {
	if size < circuit.SizeOne {
		size = circuit.SizeOne
	}
	return &chipData{
		ports: []portDef{
			sink(PortBehavior, 0, 0, geom.West),
			source(PortBehavior, 0, 0, geom.East),
		},
		constraints: []constraintDef{exactly(0, size), exactly(1, size)},
		deps:        [][2]int{{0, 1}},
	}
}

type coerceChipEval struct {
	BaseChipEval
	input, output WireID
}

func newCoerceEvals(slots []EvalSlot) []PlacedEval {
	eval := &coerceChipEval{input: slots[0].Wire, output: slots[1].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *coerceChipEval) Eval(state *CircuitState) {
	state.SendBehavior(c.output, state.RecvBehavior(c.input))
}

// Pack concatenates two equal-size inputs into a double-size output,
// west input in the low bits.
var packChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		sink(PortBehavior, 0, 0, geom.North),
		source(PortBehavior, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1), double(2, 0), double(2, 1)},
	deps:        [][2]int{{0, 2}, {1, 2}},
}

type packChipEval struct {
	BaseChipEval
	inputBits              uint
	input1, input2, output WireID
}

func newPackEvals(slots []EvalSlot) []PlacedEval {
	eval := &packChipEval{
		inputBits: slots[0].Size.NumBits(),
		input1:    slots[0].Wire,
		input2:    slots[1].Wire,
		output:    slots[2].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *packChipEval) Eval(state *CircuitState) {
	value := state.RecvBehavior(c.input1) | state.RecvBehavior(c.input2)<<c.inputBits
	state.SendBehavior(c.output, value)
}

// Unpack splits a double-size input into low bits on the east and high
// bits on the north.
var unpackChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		source(PortBehavior, 0, 0, geom.East),
		source(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{equal(1, 2), double(0, 1), double(0, 2)},
	deps:        [][2]int{{0, 1}, {0, 2}},
}

type unpackChipEval struct {
	BaseChipEval
	outputBits                uint
	outputMask                uint32
	input, outputLo, outputHi WireID
}

func newUnpackEvals(slots []EvalSlot) []PlacedEval {
	eval := &unpackChipEval{
		outputBits: slots[1].Size.NumBits(),
		outputMask: slots[1].Size.Mask(),
		input:      slots[0].Wire,
		outputLo:   slots[1].Wire,
		outputHi:   slots[2].Wire,
	}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *unpackChipEval) Eval(state *CircuitState) {
	value := state.RecvBehavior(c.input)
	state.SendBehavior(c.outputLo, value&c.outputMask)
	state.SendBehavior(c.outputHi, value>>c.outputBits)
}

// Random emits a uniformly random value for each trigger event.
var randomChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		source(PortEvent, 0, 0, geom.East),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeZero),
		atLeast(1, circuit.SizeOne),
	},
	deps: [][2]int{{0, 1}},
}

type randomChipEval struct {
	BaseChipEval
	mask          uint32
	input, output WireID
}

func newRandomEvals(slots []EvalSlot) []PlacedEval {
	eval := &randomChipEval{mask: slots[1].Size.Mask(), input: slots[0].Wire, output: slots[1].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *randomChipEval) Eval(state *CircuitState) {
	if state.HasEvent(c.input) {
		state.SendEvent(c.output, rand.Uint32()&c.mask)
	}
}
