package engine

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// Clock emits a pulse one time step after each received pulse.
var clockChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		source(PortEvent, 0, 0, geom.East),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeZero),
		exactly(1, circuit.SizeZero),
	},
}

type clockChipEval struct {
	BaseChipEval
	received      bool
	shouldSend    bool
	input, output WireID
}

func newClockEvals(slots []EvalSlot) []PlacedEval {
	eval := &clockChipEval{input: slots[0].Wire, output: slots[1].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *clockChipEval) Eval(state *CircuitState) {
	if c.shouldSend {
		state.SendEvent(c.output, 0)
		c.shouldSend = false
	}
}

func (c *clockChipEval) NeedsAnotherCycle(state *CircuitState) bool {
	if state.HasEvent(c.input) {
		c.received = true
	}
	return false
}

func (c *clockChipEval) OnTimeStep() {
	c.shouldSend = c.received
	c.received = false
}

// Delay re-emits each event one cycle later.
var delayChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		source(PortEvent, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1)},
}

type delayChipEval struct {
	BaseChipEval
	buffered      *uint32
	input, output WireID
}

func newDelayEvals(slots []EvalSlot) []PlacedEval {
	eval := &delayChipEval{input: slots[0].Wire, output: slots[1].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *delayChipEval) Eval(state *CircuitState) {
	if c.buffered != nil {
		state.SendEvent(c.output, *c.buffered)
		c.buffered = nil
	}
}

func (c *delayChipEval) NeedsAnotherCycle(state *CircuitState) bool {
	if value, ok := state.RecvEvent(c.input); ok {
		buffered := value
		c.buffered = &buffered
		return true
	}
	return false
}

// EggTimer counts down from a set value, emitting an alarm event when
// it reaches zero.
var eggTimerChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.South),
		source(PortBehavior, 1, 0, geom.North),
		source(PortEvent, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		equal(0, 1),
		exactly(2, circuit.SizeZero),
	},
	deps: [][2]int{{0, 1}, {0, 2}},
}

type eggTimerChipEval struct {
	BaseChipEval
	time               uint32
	shouldSend         bool
	set, remain, alarm WireID
}

func newEggTimerEvals(slots []EvalSlot) []PlacedEval {
	eval := &eggTimerChipEval{set: slots[0].Wire, remain: slots[1].Wire, alarm: slots[2].Wire}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *eggTimerChipEval) Eval(state *CircuitState) {
	if value, ok := state.RecvEvent(c.set); ok {
		c.time = value
		if value == 0 {
			c.shouldSend = true
		}
	}
	state.SendBehavior(c.remain, c.time)
	if c.shouldSend {
		state.SendEvent(c.alarm, 0)
		c.shouldSend = false
	}
}

func (c *eggTimerChipEval) OnTimeStep() {
	if c.time > 0 {
		c.time--
		if c.time == 0 {
			c.shouldSend = true
		}
	}
}

// Stopwatch counts time steps while running; start, stop and reset are
// zero-size events.  Simultaneous start and stop cancel out.
var stopwatchChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.South),
		sink(PortEvent, 1, 0, geom.North),
		sink(PortEvent, 1, 0, geom.South),
		source(PortBehavior, 0, 0, geom.North),
	},
	constraints: []constraintDef{
		exactly(0, circuit.SizeZero),
		exactly(1, circuit.SizeZero),
		exactly(2, circuit.SizeZero),
	},
	deps: [][2]int{{0, 3}, {1, 3}, {2, 3}},
}

type stopwatchChipEval struct {
	BaseChipEval
	mask                       uint32
	time                       uint32
	running                    bool
	start, stop, reset, output WireID
}

func newStopwatchEvals(slots []EvalSlot) []PlacedEval {
	eval := &stopwatchChipEval{
		mask:   slots[3].Size.Mask(),
		start:  slots[0].Wire,
		stop:   slots[1].Wire,
		reset:  slots[2].Wire,
		output: slots[3].Wire,
	}
	return []PlacedEval{{Port: 3, Eval: eval}}
}

func (c *stopwatchChipEval) Eval(state *CircuitState) {
	start, stop := state.HasEvent(c.start), state.HasEvent(c.stop)
	if start && !stop {
		c.running = true
	} else if stop && !start {
		c.running = false
	}
	if state.HasEvent(c.reset) {
		c.time = 0
	}
	state.SendBehavior(c.output, c.time)
}

func (c *stopwatchChipEval) OnTimeStep() {
	if c.running {
		c.time = (c.time + 1) & c.mask
	}
}
