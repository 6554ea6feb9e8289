package engine

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// Counter holds a value that set/increment/decrement events update.
var counterChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.South),
		sink(PortEvent, 1, 0, geom.North),
		sink(PortEvent, 1, 0, geom.South),
		source(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		equal(0, 3),
		exactly(1, circuit.SizeZero),
		exactly(2, circuit.SizeZero),
	},
	deps: [][2]int{{0, 3}, {1, 3}, {2, 3}},
}

type counterChipEval struct {
	BaseChipEval
	mask                  uint32
	value                 uint32
	set, inc, dec, output WireID
}

func newCounterEvals(slots []EvalSlot) []PlacedEval {
	eval := &counterChipEval{
		mask:   slots[3].Size.Mask(),
		set:    slots[0].Wire,
		inc:    slots[1].Wire,
		dec:    slots[2].Wire,
		output: slots[3].Wire,
	}
	return []PlacedEval{{Port: 3, Eval: eval}}
}

func (c *counterChipEval) Eval(state *CircuitState) {
	if value, ok := state.RecvEvent(c.set); ok {
		c.value = value
	}
	if state.HasEvent(c.inc) {
		c.value = (c.value + 1) & c.mask
	}
	if state.HasEvent(c.dec) {
		c.value = (c.value - 1) & c.mask
	}
	state.SendBehavior(c.output, c.value)
}

// Latch is a set/reset flip-flop; simultaneous set and reset toggle it.
var latchChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		sink(PortEvent, 0, 0, geom.South),
		source(PortBehavior, 0, 0, geom.East),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeZero),
		exactly(1, circuit.SizeZero),
		exactly(2, circuit.SizeOne),
	},
	deps: [][2]int{{0, 2}, {1, 2}},
}

type latchChipEval struct {
	BaseChipEval
	value              uint32
	set, reset, output WireID
}

func newLatchEvals(slots []EvalSlot) []PlacedEval {
	eval := &latchChipEval{set: slots[0].Wire, reset: slots[1].Wire, output: slots[2].Wire}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *latchChipEval) Eval(state *CircuitState) {
	set, reset := state.HasEvent(c.set), state.HasEvent(c.reset)
	switch {
	case set && reset:
		c.value = 1 &^ c.value
	case set:
		c.value = 1
	case reset:
		c.value = 0
	}
	state.SendBehavior(c.output, c.value)
}

// Queue and Stack share a descriptor: push events on the west, the
// current length on the lower west, pop requests on the lower east,
// and popped values on the east.
var queueChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		source(PortBehavior, 0, 1, geom.West),
		sink(PortEvent, 1, 1, geom.East),
		source(PortEvent, 1, 0, geom.East),
	},
	constraints: []constraintDef{
		atLeast(0, circuit.SizeOne),
		exactly(1, circuit.SizeEight),
		exactly(2, circuit.SizeZero),
		atLeast(3, circuit.SizeOne),
		equal(0, 3),
	},
	deps: [][2]int{{0, 1}, {0, 3}, {2, 1}, {2, 3}},
}

const maxQueueLen = 255

type queueChipEval struct {
	BaseChipEval
	lifo                     bool
	values                   []uint32
	push, count, pop, output WireID
}

func newQueueEvals(slots []EvalSlot) []PlacedEval {
	eval := &queueChipEval{
		push:   slots[0].Wire,
		count:  slots[1].Wire,
		pop:    slots[2].Wire,
		output: slots[3].Wire,
	}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func newStackEvals(slots []EvalSlot) []PlacedEval {
	placed := newQueueEvals(slots)
	placed[0].Eval.(*queueChipEval).lifo = true
	return placed
}

func (c *queueChipEval) Eval(state *CircuitState) {
	pop := state.HasEvent(c.pop)
	if value, ok := state.RecvEvent(c.push); ok {
		if pop || len(c.values) < maxQueueLen {
			c.values = append(c.values, value)
		}
	}
	if pop && len(c.values) > 0 {
		var value uint32
		if c.lifo {
			value = c.values[len(c.values)-1]
			c.values = c.values[:len(c.values)-1]
		} else {
			value = c.values[0]
			c.values = c.values[1:]
		}
		state.SendEvent(c.output, value)
	}
	state.SendBehavior(c.count, uint32(len(c.values)))
}

// Ram is a dual-ported memory: each port has an address input, a write
// event input, and a read output.
var ramChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 0, 0, geom.West),
		sink(PortEvent, 0, 0, geom.North),
		source(PortBehavior, 0, 1, geom.West),
		sink(PortBehavior, 1, 1, geom.East),
		sink(PortEvent, 1, 1, geom.South),
		source(PortBehavior, 1, 0, geom.East),
	},
	constraints: []constraintDef{
		atMost(0, circuit.SizeEight),
		atMost(3, circuit.SizeEight),
		atLeast(1, circuit.SizeOne),
		atLeast(4, circuit.SizeOne),
		equal(0, 3),
		equal(1, 2), equal(1, 4), equal(1, 5),
		equal(2, 4), equal(2, 5),
		equal(4, 5),
	},
	deps: [][2]int{
		{0, 2}, {1, 2}, {3, 2}, {4, 2},
		{0, 5}, {1, 5}, {3, 5}, {4, 5},
	},
}

type ramChipEval struct {
	BaseChipEval
	cells               []uint32
	addr1, write1, out1 WireID
	addr2, write2, out2 WireID
}

func newRamEvals(slots []EvalSlot) []PlacedEval {
	eval := &ramChipEval{
		cells:  make([]uint32, 1<<slots[0].Size.NumBits()),
		addr1:  slots[0].Wire,
		write1: slots[1].Wire,
		out1:   slots[2].Wire,
		addr2:  slots[3].Wire,
		write2: slots[4].Wire,
		out2:   slots[5].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *ramChipEval) Eval(state *CircuitState) {
	addr1 := state.RecvBehavior(c.addr1)
	addr2 := state.RecvBehavior(c.addr2)
	value1, write1 := state.RecvEvent(c.write1)
	value2, write2 := state.RecvEvent(c.write2)
	if write1 && write2 && addr1 == addr2 && value1 != value2 {
		state.ReportError(state.FatalError(
			"Wrote conflicting values %d and %d to RAM address %d",
			value1, value2, addr1))
		return
	}
	if write1 {
		c.cells[addr1] = value1
	}
	if write2 {
		c.cells[addr2] = value2
	}
	state.SendBehavior(c.out1, c.cells[addr1])
	state.SendBehavior(c.out2, c.cells[addr2])
}

// Screen is a 256-cell byte display with three address/write/read port
// triples and a touch event output.  Touches arrive via OnPress with
// the touched cell as the sublocation.
var screenChipData = &chipData{
	ports: []portDef{
		sink(PortBehavior, 2, 0, geom.North),
		sink(PortEvent, 3, 0, geom.North),
		source(PortBehavior, 1, 0, geom.North),
		sink(PortBehavior, 0, 2, geom.West),
		sink(PortEvent, 0, 1, geom.West),
		source(PortBehavior, 0, 3, geom.West),
		sink(PortBehavior, 2, 4, geom.South),
		sink(PortEvent, 1, 4, geom.South),
		source(PortBehavior, 3, 4, geom.South),
		source(PortEvent, 4, 2, geom.East),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeEight), exactly(1, circuit.SizeEight),
		exactly(2, circuit.SizeEight), exactly(3, circuit.SizeEight),
		exactly(4, circuit.SizeEight), exactly(5, circuit.SizeEight),
		exactly(6, circuit.SizeEight), exactly(7, circuit.SizeEight),
		exactly(8, circuit.SizeEight), exactly(9, circuit.SizeEight),
	},
	deps: [][2]int{
		{0, 2}, {1, 2}, {3, 2}, {4, 2}, {6, 2}, {7, 2},
		{0, 5}, {1, 5}, {3, 5}, {4, 5}, {6, 5}, {7, 5},
		{0, 8}, {1, 8}, {3, 8}, {4, 8}, {6, 8}, {7, 8},
		{0, 9}, {1, 9}, {3, 9}, {4, 9}, {6, 9}, {7, 9},
	},
}

type screenChipEval struct {
	BaseChipEval
	coords               geom.Coords
	cells                [256]byte
	pressed              *uint32
	addr1, write1, read1 WireID
	addr2, write2, read2 WireID
	addr3, write3, read3 WireID
	touch                WireID
}

func newScreenEvals(coords geom.Coords, slots []EvalSlot) []PlacedEval {
	eval := &screenChipEval{
		coords: coords,
		addr1:  slots[0].Wire,
		write1: slots[1].Wire,
		read1:  slots[2].Wire,
		addr2:  slots[3].Wire,
		write2: slots[4].Wire,
		read2:  slots[5].Wire,
		addr3:  slots[6].Wire,
		write3: slots[7].Wire,
		read3:  slots[8].Wire,
		touch:  slots[9].Wire,
	}
	return []PlacedEval{{Port: 2, Eval: eval}}
}

func (c *screenChipEval) Eval(state *CircuitState) {
	triples := [3][3]WireID{
		{c.addr1, c.write1, c.read1},
		{c.addr2, c.write2, c.read2},
		{c.addr3, c.write3, c.read3},
	}
	for _, t := range triples {
		if value, ok := state.RecvEvent(t[1]); ok {
			c.cells[state.RecvBehavior(t[0])&0xff] = byte(value)
		}
	}
	for _, t := range triples {
		state.SendBehavior(t[2], uint32(c.cells[state.RecvBehavior(t[0])&0xff]))
	}
	if c.pressed != nil {
		cell := *c.pressed
		c.pressed = nil
		state.RecordInput(c.coords, cell, 1)
		state.SendEvent(c.touch, cell)
	}
}

func (c *screenChipEval) Coords() (geom.Coords, bool) { return c.coords, true }

func (c *screenChipEval) DisplayData() []byte { return c.cells[:] }

func (c *screenChipEval) OnPress(sublocation uint32, count uint32) {
	cell := sublocation
	c.pressed = &cell
}

// Integrate accumulates its analog input over time, saturating at plus
// or minus one.  A reset event reloads the initial condition from the
// south.
var integrateChipData = &chipData{
	ports: []portDef{
		sink(PortAnalog, 0, 0, geom.West),
		sink(PortEvent, 0, 0, geom.North),
		sink(PortAnalog, 0, 0, geom.South),
		source(PortAnalog, 0, 0, geom.East),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeAnalog),
		exactly(1, circuit.SizeZero),
		exactly(2, circuit.SizeAnalog),
		exactly(3, circuit.SizeAnalog),
	},
	deps: [][2]int{{0, 3}, {1, 3}, {2, 3}},
}

type integrateChipEval struct {
	BaseChipEval
	value                    geom.Fixed
	lastInput                geom.Fixed
	input, reset, ic, output WireID
}

func newIntegrateEvals(slots []EvalSlot) []PlacedEval {
	eval := &integrateChipEval{
		input:  slots[0].Wire,
		reset:  slots[1].Wire,
		ic:     slots[2].Wire,
		output: slots[3].Wire,
	}
	return []PlacedEval{{Port: 3, Eval: eval}}
}

// integrateTimeDelta is the integration step per cycle.
var integrateTimeDelta = geom.FixedFromRatio(1, 1000)

func (c *integrateChipEval) Eval(state *CircuitState) {
	if state.HasEvent(c.reset) {
		c.value = state.RecvAnalog(c.ic)
	}
	state.SendAnalog(c.output, c.value)
	c.lastInput = state.RecvAnalog(c.input)
	c.value = c.value.Add(c.lastInput.Mul(integrateTimeDelta))
}

func (c *integrateChipEval) NeedsAnotherCycle(state *CircuitState) bool {
	if state.Cycle()+1 >= MaxCyclesPerTimeStep {
		return false
	}
	switch c.lastInput.Cmp(geom.FixedZero) {
	case -1:
		return c.value.Cmp(geom.FixedOne.Neg()) != 0
	case 1:
		return c.value.Cmp(geom.FixedOne) != 0
	default:
		return false
	}
}
