package engine

import (
	"strings"
	"testing"

	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/geom"
)

func chipEvals(t *testing.T, kind circuit.ChipKind, slots []EvalSlot) []ChipEval {
	t.Helper()
	placed := NewChipEvals(circuit.ChipType{Kind: kind}, geom.Coords{}, slots)
	if len(placed) == 0 {
		t.Fatalf("no evaluators for %v chip", circuit.NewChip(kind))
	}
	evals := make([]ChipEval, len(placed))
	for i, p := range placed {
		evals[i] = p.Eval
	}
	return evals
}

func TestXorTruthTable(t *testing.T) {
	slots := []EvalSlot{
		{Wire: 0, Size: circuit.SizeOne},
		{Wire: 1, Size: circuit.SizeOne},
		{Wire: 2, Size: circuit.SizeOne},
	}
	columns := []FabricationColumn{
		{Name: "in1", Flow: FlowSource, Color: PortBehavior, Wire: 0},
		{Name: "in2", Flow: FlowSource, Color: PortBehavior, Wire: 1},
		{Name: "out", Flow: FlowSink, Color: PortBehavior, Wire: 2},
	}
	table := [][]uint32{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
	}
	eval := NewCircuitEval(3, nil,
		[][]ChipEval{chipEvals(t, circuit.KindXor, slots)},
		NewFabricationEval(columns, table))
	errs, score := Verify(eval, nil, 10)
	if len(errs) != 0 {
		t.Fatalf("Verify returned errors: %v", errs)
	}
	if score == nil {
		t.Fatalf("Verify did not report victory")
	}
	if score.Metric != MetricCycles {
		t.Errorf("score metric = %v, want MetricCycles", score.Metric)
	}
}

func TestXorTruthTableMismatch(t *testing.T) {
	slots := []EvalSlot{
		{Wire: 0, Size: circuit.SizeOne},
		{Wire: 1, Size: circuit.SizeOne},
		{Wire: 2, Size: circuit.SizeOne},
	}
	columns := []FabricationColumn{
		{Name: "in1", Flow: FlowSource, Color: PortBehavior, Wire: 0},
		{Name: "in2", Flow: FlowSource, Color: PortBehavior, Wire: 1},
		{Name: "out", Flow: FlowSink, Color: PortBehavior, Wire: 2},
	}
	table := [][]uint32{{1, 0, 0}}
	eval := NewCircuitEval(3, nil,
		[][]ChipEval{chipEvals(t, circuit.KindXor, slots)},
		NewFabricationEval(columns, table))
	errs, _ := Verify(eval, nil, 10)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "expected 0 on out but got 1") {
		t.Errorf("unexpected error message: %q", errs[0].Message)
	}
}

func TestClockAndCounter(t *testing.T) {
	// The clock re-emits its input pulse one time step later; the pulse
	// then increments the counter.  Wires: 0 = clock in, 1 = clock out
	// to counter inc, 2 = counter value, 3 and 4 = unwired counter set
	// and dec ports.
	clock := chipEvals(t, circuit.KindClock, []EvalSlot{
		{Wire: 0, Size: circuit.SizeZero},
		{Wire: 1, Size: circuit.SizeZero},
	})
	counter := chipEvals(t, circuit.KindCounter, []EvalSlot{
		{Wire: 3, Size: circuit.SizeFour},
		{Wire: 1, Size: circuit.SizeZero},
		{Wire: 4, Size: circuit.SizeZero},
		{Wire: 2, Size: circuit.SizeFour},
	})
	columns := []FabricationColumn{
		{Name: "tick", Flow: FlowSource, Color: PortEvent, Wire: 0},
		{Name: "count", Flow: FlowSink, Color: PortBehavior, Wire: 2},
	}
	table := [][]uint32{
		{0, 0},
		{FabricationNil, 1},
		{FabricationNil, 1},
	}
	nullWires := map[WireID]bool{3: true, 4: true}
	eval := NewCircuitEval(5, nullWires,
		[][]ChipEval{clock, counter},
		NewFabricationEval(columns, table))
	errs, score := Verify(eval, nil, 10)
	if len(errs) != 0 {
		t.Fatalf("Verify returned errors: %v", errs)
	}
	if score == nil {
		t.Fatalf("Verify did not report victory")
	}
}

func buttonClockCounterEval(t *testing.T, puzzle PuzzleEval) *CircuitEval {
	t.Helper()
	// Wires: 0 = button out to clock in, 1 = clock out to counter inc,
	// 2 = counter value, 3 and 4 = unwired counter set and dec ports.
	button := chipEvals(t, circuit.KindButton, []EvalSlot{
		{Wire: 0, Size: circuit.SizeZero},
	})
	clock := chipEvals(t, circuit.KindClock, []EvalSlot{
		{Wire: 0, Size: circuit.SizeZero},
		{Wire: 1, Size: circuit.SizeZero},
	})
	counter := chipEvals(t, circuit.KindCounter, []EvalSlot{
		{Wire: 3, Size: circuit.SizeFour},
		{Wire: 1, Size: circuit.SizeZero},
		{Wire: 4, Size: circuit.SizeZero},
		{Wire: 2, Size: circuit.SizeFour},
	})
	nullWires := map[WireID]bool{3: true, 4: true}
	return NewCircuitEval(5, nullWires, [][]ChipEval{button, clock, counter}, puzzle)
}

func TestButtonClockCounter(t *testing.T) {
	// Each press makes the button emit one pulse, which the clock
	// re-emits one time step later to increment the counter.
	eval := buttonClockCounterEval(t, NewNullPuzzle())
	for step, want := range []uint32{0, 1, 2, 3} {
		if step < 3 {
			eval.PressButton(geom.Coords{}, 0, 1)
		}
		if result := eval.StepTime(); result.Kind != ResultContinue {
			t.Fatalf("step %d: result = %v, want continue", step, result.Kind)
		}
		if got := eval.WireValue(2); got != want {
			t.Errorf("counter after step %d = %d, want %d", step, got, want)
		}
	}
}

func TestButtonHotkeyPresses(t *testing.T) {
	// Queued hotkey presses drain one per cycle within the same time
	// step.  Wires: 0 = button out to counter inc, 1 = counter value,
	// 2 and 3 = unwired counter set and dec ports.
	placed := NewChipEvals(circuit.ButtonChip("K"), geom.Coords{}, []EvalSlot{
		{Wire: 0, Size: circuit.SizeZero},
	})
	button := []ChipEval{placed[0].Eval}
	counter := chipEvals(t, circuit.KindCounter, []EvalSlot{
		{Wire: 2, Size: circuit.SizeFour},
		{Wire: 0, Size: circuit.SizeZero},
		{Wire: 3, Size: circuit.SizeZero},
		{Wire: 1, Size: circuit.SizeFour},
	})
	nullWires := map[WireID]bool{2: true, 3: true}
	eval := NewCircuitEval(4, nullWires, [][]ChipEval{button, counter}, NewNullPuzzle())
	eval.PressHotkey("K")
	eval.PressHotkey("K")
	if result := eval.StepTime(); result.Kind != ResultContinue {
		t.Fatalf("result = %v, want continue", result.Kind)
	}
	if got := eval.WireValue(1); got != 2 {
		t.Errorf("counter = %d, want 2", got)
	}
	if eval.TotalCycles() != 2 {
		t.Errorf("TotalCycles = %d, want 2", eval.TotalCycles())
	}
}

func TestDelayEmitsNextCycle(t *testing.T) {
	delay := chipEvals(t, circuit.KindDelay, []EvalSlot{
		{Wire: 0, Size: circuit.SizeEight},
		{Wire: 1, Size: circuit.SizeEight},
	})
	columns := []FabricationColumn{
		{Name: "in", Flow: FlowSource, Color: PortEvent, Wire: 0},
		{Name: "out", Flow: FlowSink, Color: PortEvent, Wire: 1},
	}
	table := [][]uint32{
		{5, 5},
		{FabricationNil, FabricationNil},
		{7, 7},
	}
	eval := NewCircuitEval(2, nil, [][]ChipEval{delay},
		NewFabricationEval(columns, table))
	errs, score := Verify(eval, nil, 10)
	if len(errs) != 0 {
		t.Fatalf("Verify returned errors: %v", errs)
	}
	if score == nil {
		t.Fatalf("Verify did not report victory")
	}
	// Each delayed event costs an extra cycle within its time step.
	if eval.TotalCycles() < 5 {
		t.Errorf("TotalCycles = %d, want at least 5", eval.TotalCycles())
	}
}

// loopTestPuzzle injects one event into a delay loop, lets it circulate
// for a few cycles, then closes the filter so the time step can end.
type loopTestPuzzle struct {
	BasePuzzleEval
	in, control WireID
}

func (p *loopTestPuzzle) BeginTimeStep(state *CircuitState) (EvalScore, bool) {
	if state.TimeStep() >= 2 {
		return EvalScore{Metric: MetricCycles}, true
	}
	if state.TimeStep() == 0 {
		state.SendEvent(p.in, 9)
	}
	return EvalScore{}, false
}

func (p *loopTestPuzzle) BeginAdditionalCycle(state *CircuitState) {
	if state.Cycle() >= 3 {
		state.SendBehavior(p.control, 1)
	}
}

func TestDelayLoopSettles(t *testing.T) {
	// Wires: 0 = puzzle in to join, 1 = join out to delay, 2 = delay out
	// to filter, 3 = filter out back to join, 4 = filter control.
	delay := chipEvals(t, circuit.KindDelay, []EvalSlot{
		{Wire: 1, Size: circuit.SizeEight},
		{Wire: 2, Size: circuit.SizeEight},
	})
	filter := chipEvals(t, circuit.KindFilter, []EvalSlot{
		{Wire: 2, Size: circuit.SizeEight},
		{Wire: 3, Size: circuit.SizeEight},
		{Wire: 4, Size: circuit.SizeOne},
	})
	join := chipEvals(t, circuit.KindJoin, []EvalSlot{
		{Wire: 0, Size: circuit.SizeEight},
		{Wire: 3, Size: circuit.SizeEight},
		{Wire: 1, Size: circuit.SizeEight},
	})
	groups := [][]ChipEval{delay, filter, join}
	eval := NewCircuitEval(5, nil, groups, &loopTestPuzzle{in: 0, control: 4})
	errs, score := Verify(eval, nil, 10)
	if len(errs) != 0 {
		t.Fatalf("Verify returned errors: %v", errs)
	}
	if score == nil {
		t.Fatalf("loop did not settle: no victory")
	}
	if eval.TimeStep() != 2 {
		t.Errorf("TimeStep = %d, want 2", eval.TimeStep())
	}
}

// incLoopPuzzle seeds an increment loop with a zero-valued event and
// leaves it circulating.
type incLoopPuzzle struct {
	BasePuzzleEval
	in WireID
}

func (p *incLoopPuzzle) BeginTimeStep(state *CircuitState) (EvalScore, bool) {
	if state.TimeStep() == 0 {
		state.SendEvent(p.in, 0)
	}
	return EvalScore{}, false
}

func TestIncrementLoopAdvancesPerCycle(t *testing.T) {
	// The join feeds the circulating value to a latest and an inc; the
	// inc adds a constant one and the delay carries the sum back around
	// into the next cycle.  Wires: 0 = seed in to join, 1 = delay out
	// back to join, 2 = join out, 3 = constant addend, 4 = inc out to
	// delay, 5 = latest of the pre-increment value, 6 = latest of the
	// post-increment value.
	constant := []ChipEval{NewChipEvals(circuit.ConstChip(1), geom.Coords{}, []EvalSlot{
		{Wire: 3, Size: circuit.SizeEight},
	})[0].Eval}
	delay := chipEvals(t, circuit.KindDelay, []EvalSlot{
		{Wire: 4, Size: circuit.SizeEight},
		{Wire: 1, Size: circuit.SizeEight},
	})
	join := chipEvals(t, circuit.KindJoin, []EvalSlot{
		{Wire: 0, Size: circuit.SizeEight},
		{Wire: 1, Size: circuit.SizeEight},
		{Wire: 2, Size: circuit.SizeEight},
	})
	before := chipEvals(t, circuit.KindLatest, []EvalSlot{
		{Wire: 2, Size: circuit.SizeEight},
		{Wire: 5, Size: circuit.SizeEight},
	})
	inc := chipEvals(t, circuit.KindInc, []EvalSlot{
		{Wire: 2, Size: circuit.SizeEight},
		{Wire: 3, Size: circuit.SizeEight},
		{Wire: 4, Size: circuit.SizeEight},
	})
	after := chipEvals(t, circuit.KindLatest, []EvalSlot{
		{Wire: 4, Size: circuit.SizeEight},
		{Wire: 6, Size: circuit.SizeEight},
	})
	groups := [][]ChipEval{constant, delay, join, append(before, inc...), after}
	eval := NewCircuitEval(7, nil, groups, &incLoopPuzzle{in: 0})
	for cycle := uint32(0); cycle < 5; cycle++ {
		if result := eval.StepCycle(); result.Kind != ResultContinue {
			t.Fatalf("cycle %d: result = %v, want continue", cycle, result.Kind)
		}
		if got := eval.WireValue(5); got != cycle {
			t.Errorf("loop value in cycle %d = %d, want %d", cycle, got, cycle)
		}
		if got := eval.WireValue(6); got != cycle+1 {
			t.Errorf("inc output in cycle %d = %d, want %d", cycle, got, cycle+1)
		}
	}
}

// ramConflictPuzzle writes different values to the same RAM address
// through both ports in the same cycle.
type ramConflictPuzzle struct {
	BasePuzzleEval
	addr1, write1, addr2, write2 WireID
}

func (p *ramConflictPuzzle) BeginTimeStep(state *CircuitState) (EvalScore, bool) {
	if state.TimeStep() >= 1 {
		return EvalScore{Metric: MetricCycles}, true
	}
	state.SendBehavior(p.addr1, 3)
	state.SendBehavior(p.addr2, 3)
	state.SendEvent(p.write1, 1)
	state.SendEvent(p.write2, 2)
	return EvalScore{}, false
}

func TestRamWriteConflict(t *testing.T) {
	ram := chipEvals(t, circuit.KindRam, []EvalSlot{
		{Wire: 0, Size: circuit.SizeFour},
		{Wire: 1, Size: circuit.SizeEight},
		{Wire: 2, Size: circuit.SizeEight},
		{Wire: 3, Size: circuit.SizeFour},
		{Wire: 4, Size: circuit.SizeEight},
		{Wire: 5, Size: circuit.SizeEight},
	})
	puzzle := &ramConflictPuzzle{addr1: 0, write1: 1, addr2: 3, write2: 4}
	eval := NewCircuitEval(6, nil, [][]ChipEval{ram}, puzzle)
	errs, score := Verify(eval, nil, 10)
	if score != nil {
		t.Fatalf("conflicting writes still reported victory")
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if !errs[0].Fatal {
		t.Errorf("conflict error should be fatal")
	}
	if !strings.Contains(errs[0].Message, "conflicting values") {
		t.Errorf("unexpected error message: %q", errs[0].Message)
	}
}

// pingChipEval fires an event every cycle and always requests another
// cycle, so the time step can never settle.
type pingChipEval struct {
	BaseChipEval
	wire WireID
}

func (c *pingChipEval) Eval(state *CircuitState) {
	state.SendEvent(c.wire, 0)
}

func (c *pingChipEval) NeedsAnotherCycle(*CircuitState) bool { return true }

func TestExceededCycles(t *testing.T) {
	eval := NewCircuitEval(1, nil, [][]ChipEval{{&pingChipEval{wire: 0}}}, NewNullPuzzle())
	result := eval.StepTime()
	if result.Kind != ResultFailure {
		t.Fatalf("result = %v, want failure", result.Kind)
	}
	errs := eval.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "Exceeded 1000 cycles") {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestVerifyTimeout(t *testing.T) {
	eval := NewCircuitEval(1, nil, nil, NewNullPuzzle())
	errs, score := Verify(eval, nil, 5)
	if score != nil {
		t.Fatalf("open-ended run reported victory")
	}
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "Did not finish within 5 time steps") {
		t.Errorf("unexpected errors: %v", errs)
	}
}

// endAfterPuzzle ends the run in victory once the given time step is
// reached.
type endAfterPuzzle struct {
	BasePuzzleEval
	steps uint32
}

func (p *endAfterPuzzle) BeginTimeStep(state *CircuitState) (EvalScore, bool) {
	if state.TimeStep() >= p.steps {
		return EvalScore{Metric: MetricCycles}, true
	}
	return EvalScore{}, false
}

func TestReplayRecordedPresses(t *testing.T) {
	// Live run: press the button once before each of the first three
	// time steps.
	live := buttonClockCounterEval(t, NewNullPuzzle())
	for step := 0; step < 4; step++ {
		if step < 3 {
			live.PressButton(geom.Coords{}, 0, 1)
		}
		if result := live.StepTime(); result.Kind != ResultContinue {
			t.Fatalf("step %d: result = %v, want continue", step, result.Kind)
		}
	}
	inputs := live.State().RecordedInputs()
	if len(inputs) != 3 {
		t.Fatalf("recorded %d inputs, want 3", len(inputs))
	}
	for i, input := range inputs {
		if input.TimeStep != uint32(i) || input.Cycle != 0 || input.Count != 1 {
			t.Errorf("input %d = %+v", i, input)
		}
	}

	// Replaying the recorded presses into a fresh evaluator reproduces
	// the counter value.
	replay := buttonClockCounterEval(t, &endAfterPuzzle{steps: 4})
	errs, score := Verify(replay, inputs, 10)
	if len(errs) != 0 {
		t.Fatalf("Verify returned errors: %v", errs)
	}
	if score == nil {
		t.Fatalf("replay did not reach victory")
	}
	if got, want := replay.WireValue(2), live.WireValue(2); got != want {
		t.Errorf("replayed counter = %d, live counter = %d", got, want)
	}
}
