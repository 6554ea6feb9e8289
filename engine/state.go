package engine

import (
	"fmt"

	"github.com/fab-xyz/go-fab/geom"
)

// RecordedInput is one interactive input (button press, toggle flip,
// screen touch) captured during a run, so that a solution can be
// replayed headlessly.
type RecordedInput struct {
	TimeStep    uint32
	Cycle       uint32
	Coords      geom.Coords
	Sublocation uint32
	Count       uint32
}

type slotValue struct {
	value   uint32
	changed bool
}

// CircuitState holds the value of every wire net during evaluation.
// Each slot is a (value, changed) pair; for event wires "changed"
// means an event is present this cycle, for behavior wires it means
// the value was updated this cycle.  Analog wires store an encoded
// Fixed in the value word.
type CircuitState struct {
	timeStep uint32
	cycle    uint32
	// Null wires are ports with no fragments attached.  They hold
	// values like any other slot, but updates to them do not count as
	// circuit activity for subcycle stepping.
	nullWires     map[WireID]bool
	values        []slotValue
	breakpoints   []geom.Coords
	hotkeyPresses map[string]uint32
	inputs        []RecordedInput
	errors        []*EvalError
	changed       bool
}

func newCircuitState(numWires int, nullWires map[WireID]bool) *CircuitState {
	return &CircuitState{
		nullWires:     nullWires,
		values:        make([]slotValue, numWires),
		hotkeyPresses: make(map[string]uint32),
	}
}

// TimeStep returns the current time step.
func (s *CircuitState) TimeStep() uint32 { return s.timeStep }

// Cycle returns the current cycle within the time step.
func (s *CircuitState) Cycle() uint32 { return s.cycle }

// RecvBehavior reads the behavior value on a wire.
func (s *CircuitState) RecvBehavior(wire WireID) uint32 {
	return s.values[wire].value
}

// BehaviorChanged reports whether the wire's behavior value changed
// this cycle.
func (s *CircuitState) BehaviorChanged(wire WireID) bool {
	return s.values[wire].changed
}

// RecvEvent returns the event value on a wire, if one is present this
// cycle.
func (s *CircuitState) RecvEvent(wire WireID) (uint32, bool) {
	slot := s.values[wire]
	return slot.value, slot.changed
}

// HasEvent reports whether an event is present on the wire this cycle.
func (s *CircuitState) HasEvent(wire WireID) bool {
	return s.values[wire].changed
}

// RecvAnalog reads the analog value on a wire.
func (s *CircuitState) RecvAnalog(wire WireID) geom.Fixed {
	return geom.FixedFromEncoded(s.values[wire].value)
}

// SendBehavior drives a behavior value onto a wire.  The state counts
// as changed only if the value differs from what the wire already
// carried.
func (s *CircuitState) SendBehavior(wire WireID, value uint32) {
	if s.values[wire].value != value {
		s.values[wire] = slotValue{value: value, changed: true}
		s.changed = !s.nullWires[wire]
	}
}

// SendEvent drives an event onto a wire.
func (s *CircuitState) SendEvent(wire WireID, value uint32) {
	s.values[wire] = slotValue{value: value, changed: true}
	s.changed = !s.nullWires[wire]
}

// SendAnalog drives an analog value onto a wire.
func (s *CircuitState) SendAnalog(wire WireID, value geom.Fixed) {
	s.SendBehavior(wire, value.Encoded())
}

// Breakpoint requests that evaluation pause at the chip at the given
// coords once the current subcycle completes.
func (s *CircuitState) Breakpoint(coords geom.Coords) {
	s.breakpoints = append(s.breakpoints, coords)
}

func (s *CircuitState) pressHotkey(code string) {
	s.hotkeyPresses[code]++
}

// PopHotkeyPresses consumes and returns the number of pending presses
// for the given hotkey code.
func (s *CircuitState) PopHotkeyPresses(code string) uint32 {
	n := s.hotkeyPresses[code]
	delete(s.hotkeyPresses, code)
	return n
}

// RecordInput logs an interactive input at the current time step and
// cycle for later replay.
func (s *CircuitState) RecordInput(coords geom.Coords, sublocation, count uint32) {
	s.inputs = append(s.inputs, RecordedInput{
		TimeStep:    s.timeStep,
		Cycle:       s.cycle,
		Coords:      coords,
		Sublocation: sublocation,
		Count:       count,
	})
}

// RecordedInputs returns all inputs logged so far.
func (s *CircuitState) RecordedInputs() []RecordedInput {
	return s.inputs
}

// FatalError builds an error that aborts evaluation.
func (s *CircuitState) FatalError(format string, args ...interface{}) *EvalError {
	return &EvalError{
		TimeStep: s.timeStep,
		Fatal:    true,
		Message:  fmt.Sprintf(format, args...),
	}
}

// PortError builds a non-fatal error attributed to a port.
func (s *CircuitState) PortError(port Loc, format string, args ...interface{}) *EvalError {
	loc := port
	return &EvalError{
		TimeStep: s.timeStep,
		Port:     &loc,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FatalPortError builds a fatal error attributed to a port.
func (s *CircuitState) FatalPortError(port Loc, format string, args ...interface{}) *EvalError {
	err := s.PortError(port, format, args...)
	err.Fatal = true
	return err
}

// ReportError records a runtime error raised by a chip evaluator.
// Fatal errors abort the run once the current subcycle completes.
func (s *CircuitState) ReportError(err *EvalError) {
	s.errors = append(s.errors, err)
}

func (s *CircuitState) takeErrors() []*EvalError {
	errs := s.errors
	s.errors = nil
	return errs
}

func (s *CircuitState) resetForCycle() {
	for i := range s.values {
		s.values[i].changed = false
	}
}

func (s *CircuitState) resetForSubcycle() {
	s.changed = false
}
