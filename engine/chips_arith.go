package engine

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// Add, Mul and Sub share a descriptor shaped like the logic gates.
var addChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		sink(PortBehavior, 0, 0, geom.South),
		source(PortBehavior, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1), equal(0, 2), equal(1, 2)},
	deps:        [][2]int{{0, 2}, {1, 2}},
}

type addChipEval struct {
	BaseChipEval
	mask                   uint32
	input1, input2, output WireID
}

func newAddEvals(slots []EvalSlot) []PlacedEval {
	eval := &addChipEval{
		mask:   slots[2].Size.Mask(),
		input1: slots[0].Wire,
		input2: slots[1].Wire,
		output: slots[2].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *addChipEval) Eval(state *CircuitState) {
	if state.BehaviorChanged(c.input1) || state.BehaviorChanged(c.input2) {
		sum := state.RecvBehavior(c.input1) + state.RecvBehavior(c.input2)
		state.SendBehavior(c.output, sum&c.mask)
	}
}

type mulChipEval struct {
	BaseChipEval
	mask                   uint32
	input1, input2, output WireID
}

func newMulEvals(slots []EvalSlot) []PlacedEval {
	eval := &mulChipEval{
		mask:   slots[2].Size.Mask(),
		input1: slots[0].Wire,
		input2: slots[1].Wire,
		output: slots[2].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *mulChipEval) Eval(state *CircuitState) {
	if state.BehaviorChanged(c.input1) || state.BehaviorChanged(c.input2) {
		product := state.RecvBehavior(c.input1) * state.RecvBehavior(c.input2)
		state.SendBehavior(c.output, product&c.mask)
	}
}

// Sub outputs the absolute difference of its inputs.
type subChipEval struct {
	BaseChipEval
	mask                   uint32
	input1, input2, output WireID
}

func newSubEvals(slots []EvalSlot) []PlacedEval {
	eval := &subChipEval{
		mask:   slots[2].Size.Mask(),
		input1: slots[0].Wire,
		input2: slots[1].Wire,
		output: slots[2].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *subChipEval) Eval(state *CircuitState) {
	if state.BehaviorChanged(c.input1) || state.BehaviorChanged(c.input2) {
		diff := int64(state.RecvBehavior(c.input1)) - int64(state.RecvBehavior(c.input2))
		if diff < 0 {
			diff = -diff
		}
		state.SendBehavior(c.output, uint32(diff)&c.mask)
	}
}

// Add2Bit adds two 2-bit inputs, splitting the 4-bit sum into a low
// pair on the east and a high pair on the north.
var add2BitChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		sink(PortBehavior, 0, 0, geom.South),
		source(PortBehavior, 0, 0, geom.East),
		source(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeTwo), exactly(1, circuit.SizeTwo),
		exactly(2, circuit.SizeTwo), exactly(3, circuit.SizeTwo),
	},
	deps: [][2]int{{0, 2}, {1, 2}, {0, 3}, {1, 3}},
}

type add2BitChipEval struct {
	BaseChipEval
	input1, input2, outputLo, outputHi WireID
}

func newAdd2BitEvals(slots []EvalSlot) []PlacedEval {
	eval := &add2BitChipEval{
		input1:   slots[0].Wire,
		input2:   slots[1].Wire,
		outputLo: slots[2].Wire,
		outputHi: slots[3].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *add2BitChipEval) Eval(state *CircuitState) {
	if state.BehaviorChanged(c.input1) || state.BehaviorChanged(c.input2) {
		sum := state.RecvBehavior(c.input1) + state.RecvBehavior(c.input2)
		state.SendBehavior(c.outputLo, sum&0x3)
		state.SendBehavior(c.outputHi, (sum>>2)&0x3)
	}
}

// Mul4Bit multiplies two 4-bit inputs, splitting the 8-bit product into
// low and high nibbles.
var mul4BitChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		sink(PortBehavior, 0, 0, geom.South),
		source(PortBehavior, 0, 0, geom.East),
		source(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeFour), exactly(1, circuit.SizeFour),
		exactly(2, circuit.SizeFour), exactly(3, circuit.SizeFour),
	},
	deps: [][2]int{{0, 2}, {1, 2}, {0, 3}, {1, 3}},
}

type mul4BitChipEval struct {
	BaseChipEval
	input1, input2, outputLo, outputHi WireID
}

func newMul4BitEvals(slots []EvalSlot) []PlacedEval {
	eval := &mul4BitChipEval{
		input1:   slots[0].Wire,
		input2:   slots[1].Wire,
		outputLo: slots[2].Wire,
		outputHi: slots[3].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *mul4BitChipEval) Eval(state *CircuitState) {
	if state.BehaviorChanged(c.input1) || state.BehaviorChanged(c.input2) {
		product := state.RecvBehavior(c.input1) * state.RecvBehavior(c.input2)
		state.SendBehavior(c.outputLo, product&0xf)
		state.SendBehavior(c.outputHi, (product>>4)&0xf)
	}
}

// Halve and Neg share a one-in one-out descriptor.
var halveChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		source(PortBehavior, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1)},
	deps:        [][2]int{{0, 1}},
}

type halveChipEval struct {
	BaseChipEval
	input, output WireID
}

func newHalveEvals(slots []EvalSlot) []PlacedEval {
	eval := &halveChipEval{input: slots[0].Wire, output: slots[1].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *halveChipEval) Eval(state *CircuitState) {
	state.SendBehavior(c.output, state.RecvBehavior(c.input)>>1)
}

// Neg outputs the two's complement of its input within the wire size.
type negChipEval struct {
	BaseChipEval
	mask          uint32
	input, output WireID
}

func newNegEvals(slots []EvalSlot) []PlacedEval {
	eval := &negChipEval{mask: slots[1].Size.Mask(), input: slots[0].Wire, output: slots[1].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *negChipEval) Eval(state *CircuitState) {
	state.SendBehavior(c.output, (^state.RecvBehavior(c.input)+1)&c.mask)
}

// Inc adds the behavior on the south to each event passing west to
// east.
var incChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		sink(PortBehavior, 0, 0, geom.South),
		source(PortEvent, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1), equal(0, 2), equal(1, 2)},
	deps:        [][2]int{{0, 2}, {1, 2}},
}

type incChipEval struct {
	BaseChipEval
	mask                   uint32
	input1, input2, output WireID
}

func newIncEvals(slots []EvalSlot) []PlacedEval {
	eval := &incChipEval{
		mask:   slots[2].Size.Mask(),
		input1: slots[0].Wire,
		input2: slots[1].Wire,
		output: slots[2].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *incChipEval) Eval(state *CircuitState) {
	if value, ok := state.RecvEvent(c.input1); ok {
		sum := value + state.RecvBehavior(c.input2)
		state.SendEvent(c.output, sum&c.mask)
	}
}

// AAdd and AMul share an analog arithmetic descriptor.
var aaddChipData = &chipData{
	ports: []portDef{
		sink(PortAnalog, 0, 0, geom.West),
		sink(PortAnalog, 0, 0, geom.South),
		source(PortAnalog, 0, 0, geom.East),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeAnalog),
		exactly(1, circuit.SizeAnalog),
		exactly(2, circuit.SizeAnalog),
	},
	deps: [][2]int{{0, 2}, {1, 2}},
}

type aaddChipEval struct {
	BaseChipEval
	input1, input2, output WireID
}

func newAAddEvals(slots []EvalSlot) []PlacedEval {
	eval := &aaddChipEval{input1: slots[0].Wire, input2: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *aaddChipEval) Eval(state *CircuitState) {
	sum := state.RecvAnalog(c.input1).Add(state.RecvAnalog(c.input2))
	state.SendAnalog(c.output, sum)
}

type amulChipEval struct {
	BaseChipEval
	input1, input2, output WireID
}

func newAMulEvals(slots []EvalSlot) []PlacedEval {
	eval := &amulChipEval{input1: slots[0].Wire, input2: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *amulChipEval) Eval(state *CircuitState) {
	product := state.RecvAnalog(c.input1).Mul(state.RecvAnalog(c.input2))
	state.SendAnalog(c.output, product)
}
