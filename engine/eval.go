package engine

import (
	"github.com/fab-xyz/go-fab/geom"
)

// MaxCyclesPerTimeStep bounds how many cycles a single time step may
// take to settle before evaluation fails.
const MaxCyclesPerTimeStep uint32 = 1000

// EvalResultKind discriminates EvalResult variants.
type EvalResultKind int

const (
	// ResultContinue means evaluation can keep stepping.
	ResultContinue EvalResultKind = iota
	// ResultBreakpoint means one or more Break chips fired.
	ResultBreakpoint
	// ResultFailure means a fatal error stopped evaluation.
	ResultFailure
	// ResultVictory means the puzzle completed successfully.
	ResultVictory
)

// EvalResult is the outcome of stepping the evaluator.
type EvalResult struct {
	Kind        EvalResultKind
	Breakpoints []geom.Coords
	Score       EvalScore
}

func evalContinue() EvalResult { return EvalResult{Kind: ResultContinue} }

// EvalError is a runtime evaluation error, optionally attributed to a
// port.  Fatal errors abort the run.
type EvalError struct {
	TimeStep uint32
	Port     *Loc
	Fatal    bool
	Message  string
}

func (e *EvalError) Error() string { return e.Message }

// ScoreMetric says how a victory score is measured.
type ScoreMetric int

const (
	// MetricCycles scores by the total number of cycles evaluated.
	MetricCycles ScoreMetric = iota
	// MetricValue scores by a puzzle-supplied value.
	MetricValue
	// MetricWireLength scores by the circuit's serialized wire count.
	MetricWireLength
)

// EvalScore is the score reported on victory.  For MetricCycles the
// evaluator fills in Value; for MetricWireLength the caller scores the
// circuit data itself.
type EvalScore struct {
	Metric ScoreMetric
	Value  uint32
}

// ChipEval is the runtime behavior of one placed chip.  Eval is called
// once per cycle during the chip's subcycle; the other methods have
// no-op defaults via BaseChipEval.
type ChipEval interface {
	// Eval updates outputs and internal state from inputs.
	Eval(state *CircuitState)
	// NeedsAnotherCycle is polled at the end of each cycle; returning
	// true forces another cycle within the same time step.
	NeedsAnotherCycle(state *CircuitState) bool
	// OnTimeStep updates internal state between time steps.
	OnTimeStep()
	// Coords returns the chip's location for chips that support
	// display data or presses, or false otherwise.
	Coords() (geom.Coords, bool)
	// DisplayData exposes chip-specific state for rendering.
	DisplayData() []byte
	// OnPress handles an interactive press; sublocation selects the
	// pressed part for chips with several.
	OnPress(sublocation uint32, count uint32)
}

// BaseChipEval provides the default no-op ChipEval methods; concrete
// evaluators embed it and override what they need.
type BaseChipEval struct{}

func (BaseChipEval) NeedsAnotherCycle(*CircuitState) bool { return false }
func (BaseChipEval) OnTimeStep()                          {}
func (BaseChipEval) Coords() (geom.Coords, bool)          { return geom.Coords{}, false }
func (BaseChipEval) DisplayData() []byte                  { return nil }
func (BaseChipEval) OnPress(uint32, uint32)               {}

// PuzzleEval drives the boundary of the circuit: it feeds inputs at
// interface ports, consumes outputs, and decides victory.
type PuzzleEval interface {
	// BeginTimeStep is called at the start of each time step to set up
	// input values.  Returning a score ends the run in victory.
	BeginTimeStep(state *CircuitState) (EvalScore, bool)
	// BeginAdditionalCycle is called at the start of every cycle after
	// the first within a time step.
	BeginAdditionalCycle(state *CircuitState)
	// EndCycle is called at the end of each cycle; this is where event
	// outputs should be received.
	EndCycle(state *CircuitState) []*EvalError
	// NeedsAnotherCycle is called after EndCycle.
	NeedsAnotherCycle(timeStep uint32) bool
	// EndTimeStep is called at the end of each time step; this is
	// where behavior outputs should be received.
	EndTimeStep(state *CircuitState) []*EvalError
}

// BasePuzzleEval provides default no-op PuzzleEval methods.
type BasePuzzleEval struct{}

func (BasePuzzleEval) BeginAdditionalCycle(*CircuitState)     {}
func (BasePuzzleEval) EndCycle(*CircuitState) []*EvalError    { return nil }
func (BasePuzzleEval) NeedsAnotherCycle(uint32) bool          { return false }
func (BasePuzzleEval) EndTimeStep(*CircuitState) []*EvalError { return nil }

// CircuitEval steps a typechecked circuit through subcycles, cycles
// and time steps.  Chips are pre-sorted into groups by the topological
// rank of the wire their output drives; each subcycle evaluates one
// group.
type CircuitEval struct {
	totalCycles uint32
	cycle       uint32
	subcycle    int
	errs        []*EvalError
	chips       [][]ChipEval
	puzzle      PuzzleEval
	state       *CircuitState
	coordsMap   map[geom.Coords][2]int
}

// NewCircuitEval assembles an evaluator from pre-grouped chip
// evaluators.
func NewCircuitEval(numWires int, nullWires map[WireID]bool, chipGroups [][]ChipEval, puzzle PuzzleEval) *CircuitEval {
	coordsMap := make(map[geom.Coords][2]int)
	for groupIndex, group := range chipGroups {
		for chipIndex, chip := range group {
			if coords, ok := chip.Coords(); ok {
				coordsMap[coords] = [2]int{groupIndex, chipIndex}
			}
		}
	}
	return &CircuitEval{
		chips:     chipGroups,
		puzzle:    puzzle,
		state:     newCircuitState(numWires, nullWires),
		coordsMap: coordsMap,
	}
}

// TimeStep returns the current time step.
func (e *CircuitEval) TimeStep() uint32 { return e.state.timeStep }

// Cycle returns the current cycle within the time step.
func (e *CircuitEval) Cycle() uint32 { return e.cycle }

// TotalCycles returns the number of cycles evaluated so far.
func (e *CircuitEval) TotalCycles() uint32 { return e.totalCycles }

// Subcycle returns the index of the next chip group to evaluate.
func (e *CircuitEval) Subcycle() int { return e.subcycle }

// State exposes the circuit state, for puzzle evaluators and tests.
func (e *CircuitEval) State() *CircuitState { return e.state }

// Errors returns the errors accumulated so far.
func (e *CircuitEval) Errors() []*EvalError { return e.errs }

// PressButton delivers an interactive press to the chip at coords.
func (e *CircuitEval) PressButton(coords geom.Coords, sublocation, count uint32) {
	if at, ok := e.coordsMap[coords]; ok {
		e.chips[at[0]][at[1]].OnPress(sublocation, count)
	}
}

// PressHotkey queues a hotkey press for Button chips bound to code.
func (e *CircuitEval) PressHotkey(code string) {
	e.state.pressHotkey(code)
}

// WireValue returns the current value word of a wire.
func (e *CircuitEval) WireValue(wire WireID) uint32 {
	return e.state.values[wire].value
}

// WireHasChange reports whether the wire changed (or carried an event)
// this cycle.
func (e *CircuitEval) WireHasChange(wire WireID) bool {
	return e.state.values[wire].changed
}

// DisplayData returns display state for the chip at coords, if any.
func (e *CircuitEval) DisplayData(coords geom.Coords) []byte {
	if at, ok := e.coordsMap[coords]; ok {
		return e.chips[at[0]][at[1]].DisplayData()
	}
	return nil
}

// appendErrors appends errs and reports whether any were fatal.
func (e *CircuitEval) appendErrors(errs []*EvalError) bool {
	fatal := false
	for _, err := range errs {
		if err.Fatal {
			fatal = true
		}
	}
	e.errs = append(e.errs, errs...)
	return fatal
}

// StepSubcycle advances evaluation until some wire changes value, a
// cycle or time step boundary is crossed, or the run ends.
func (e *CircuitEval) StepSubcycle() EvalResult {
	e.state.resetForSubcycle()
	for !e.state.changed {
		if e.subcycle >= len(e.chips) {
			needsAnotherCycle := false
			for _, group := range e.chips {
				for _, chip := range group {
					if chip.NeedsAnotherCycle(e.state) {
						needsAnotherCycle = true
					}
				}
			}
			if e.appendErrors(e.puzzle.EndCycle(e.state)) {
				return EvalResult{Kind: ResultFailure}
			}
			if e.puzzle.NeedsAnotherCycle(e.TimeStep()) {
				needsAnotherCycle = true
			}
			if e.cycle+1 >= MaxCyclesPerTimeStep {
				e.errs = append(e.errs, e.state.FatalError("Exceeded %d cycles", MaxCyclesPerTimeStep))
				return EvalResult{Kind: ResultFailure}
			}
			e.subcycle = 0
			e.cycle++
			e.totalCycles++
			e.state.cycle = e.cycle
			if needsAnotherCycle {
				e.state.resetForCycle()
				e.puzzle.BeginAdditionalCycle(e.state)
				return evalContinue()
			}
			if e.appendErrors(e.puzzle.EndTimeStep(e.state)) {
				return EvalResult{Kind: ResultFailure}
			}
			for _, group := range e.chips {
				for _, chip := range group {
					chip.OnTimeStep()
				}
			}
			e.state.resetForCycle()
			e.cycle = 0
			e.state.cycle = 0
			e.state.timeStep++
			return evalContinue()
		}
		if e.cycle == 0 && e.subcycle == 0 {
			if score, done := e.puzzle.BeginTimeStep(e.state); done {
				if len(e.errs) > 0 {
					return EvalResult{Kind: ResultFailure}
				}
				if score.Metric == MetricCycles {
					score.Value = e.totalCycles
				}
				return EvalResult{Kind: ResultVictory, Score: score}
			}
		}
		for _, chip := range e.chips[e.subcycle] {
			chip.Eval(e.state)
		}
		e.subcycle++
		if e.appendErrors(e.state.takeErrors()) {
			return EvalResult{Kind: ResultFailure}
		}
		if len(e.state.breakpoints) > 0 {
			coords := e.state.breakpoints
			e.state.breakpoints = nil
			return EvalResult{Kind: ResultBreakpoint, Breakpoints: coords}
		}
	}
	return evalContinue()
}

// StepCycle advances evaluation to the end of the current cycle.
func (e *CircuitEval) StepCycle() EvalResult {
	timeStep, cycle := e.TimeStep(), e.cycle
	for e.TimeStep() == timeStep && e.cycle == cycle {
		if result := e.StepSubcycle(); result.Kind != ResultContinue {
			return result
		}
	}
	return evalContinue()
}

// StepTime advances evaluation to the end of the current time step.
func (e *CircuitEval) StepTime() EvalResult {
	timeStep := e.TimeStep()
	for e.TimeStep() == timeStep {
		if result := e.StepSubcycle(); result.Kind != ResultContinue {
			return result
		}
	}
	return evalContinue()
}
