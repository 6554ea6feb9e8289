package engine

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

// Comment chips have no ports and no runtime behavior.
var commentChipData = &chipData{}

// Display chips show the behavior value on their south side.
var displayChipData = &chipData{
	ports: []portDef{sink(PortBehavior, 0, 0, geom.South)},
}

// Break forwards events and, while enabled, pauses evaluation each time
// one passes through.
var breakChipData = &chipData{
	ports: []portDef{
		sink(PortEvent, 0, 0, geom.West),
		source(PortEvent, 0, 0, geom.East),
	},
	constraints: []constraintDef{equal(0, 1)},
	deps:        [][2]int{{0, 1}},
}

type breakChipEval struct {
	BaseChipEval
	enabled       bool
	coords        geom.Coords
	input, output WireID
}

func newBreakEvals(enabled bool, coords geom.Coords, slots []EvalSlot) []PlacedEval {
	eval := &breakChipEval{
		enabled: enabled,
		coords:  coords,
		input:   slots[0].Wire,
		output:  slots[1].Wire,
	}
	return []PlacedEval{{Port: 1, Eval: eval}}
}

func (c *breakChipEval) Eval(state *CircuitState) {
	if value, ok := state.RecvEvent(c.input); ok {
		state.SendEvent(c.output, value)
		if c.enabled {
			state.Breakpoint(c.coords)
		}
	}
}

func (c *breakChipEval) Coords() (geom.Coords, bool) { return c.coords, true }

func (c *breakChipEval) DisplayData() []byte {
	if c.enabled {
		return []byte{1}
	}
	return []byte{0}
}

func (c *breakChipEval) OnPress(sublocation uint32, count uint32) {
	if count%2 == 1 {
		c.enabled = !c.enabled
	}
}

// Button emits one zero-size event per press; extra presses queue up
// across cycles.  Presses arrive via OnPress or via the bound hotkey.
var buttonChipData = &chipData{
	ports: []portDef{source(PortEvent, 0, 0, geom.East)},
	constraints: []constraintDef{
		exactly(0, circuit.SizeZero),
	},
}

type buttonChipEval struct {
	BaseChipEval
	hotkey     string
	pressCount uint32
	coords     geom.Coords
	output     WireID
}

func newButtonEvals(hotkey string, coords geom.Coords, slots []EvalSlot) []PlacedEval {
	eval := &buttonChipEval{hotkey: hotkey, coords: coords, output: slots[0].Wire}
	return []PlacedEval{{Port: 0, Eval: eval}}
}

func (c *buttonChipEval) Eval(state *CircuitState) {
	if c.hotkey != "" {
		c.pressCount += state.PopHotkeyPresses(c.hotkey)
	}
	if c.pressCount > 0 {
		c.pressCount--
		state.SendEvent(c.output, 0)
		state.RecordInput(c.coords, 0, 1)
	}
}

func (c *buttonChipEval) NeedsAnotherCycle(*CircuitState) bool {
	return c.pressCount > 0
}

func (c *buttonChipEval) Coords() (geom.Coords, bool) { return c.coords, true }

func (c *buttonChipEval) OnPress(sublocation uint32, count uint32) {
	c.pressCount += count
}

// Toggle holds a one-bit value flipped by presses.
var toggleChipData = &chipData{
	ports: []portDef{source(PortBehavior, 0, 0, geom.East)},
	constraints: []constraintDef{
		exactly(0, circuit.SizeOne),
	},
}

type toggleChipEval struct {
	BaseChipEval
	value       uint32
	toggleCount uint32
	coords      geom.Coords
	output      WireID
}

func newToggleEvals(value bool, coords geom.Coords, slots []EvalSlot) []PlacedEval {
	eval := &toggleChipEval{coords: coords, output: slots[0].Wire}
	if value {
		eval.value = 1
	}
	return []PlacedEval{{Port: 0, Eval: eval}}
}

func (c *toggleChipEval) Eval(state *CircuitState) {
	if c.toggleCount > 0 {
		state.RecordInput(c.coords, 0, c.toggleCount)
		c.toggleCount = 0
	}
	state.SendBehavior(c.output, c.value)
}

func (c *toggleChipEval) Coords() (geom.Coords, bool) { return c.coords, true }

func (c *toggleChipEval) DisplayData() []byte {
	return []byte{byte(c.value)}
}

func (c *toggleChipEval) OnPress(sublocation uint32, count uint32) {
	if count%2 == 1 {
		c.value ^= 1
	}
	c.toggleCount += count
}
