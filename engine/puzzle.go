package engine

// NullPuzzle drives no inputs and never ends the run.  It is useful
// for sandbox circuits and tests that step the evaluator directly.
type NullPuzzle struct {
	BasePuzzleEval
}

// BeginTimeStep never declares victory.
func (NullPuzzle) BeginTimeStep(*CircuitState) (EvalScore, bool) {
	return EvalScore{}, false
}

// NewNullPuzzle returns a puzzle evaluator that does nothing.
func NewNullPuzzle() PuzzleEval { return NullPuzzle{} }

// FabricationNil marks an empty cell in a fabrication table: no event
// sent, or no event expected, at that time step.
const FabricationNil uint32 = 0xffffffff

// FabricationColumn binds one column of a fabrication table to an
// interface port.  Source columns feed values into the circuit; sink
// columns state the values the circuit must produce.
type FabricationColumn struct {
	Name  string
	Flow  PortFlow
	Color PortColor
	Wire  WireID
	Port  Loc
}

// FabricationEval runs a circuit against a truth table, one row per
// time step.  Behavior inputs are driven and behavior outputs checked
// once per time step; event outputs are checked every cycle.  The run
// succeeds when every row has passed.
type FabricationEval struct {
	BasePuzzleEval
	columns []FabricationColumn
	table   [][]uint32
	seen    []bool
}

// NewFabricationEval builds a table evaluator.  Each row of the table
// must have one value per column.
func NewFabricationEval(columns []FabricationColumn, table [][]uint32) *FabricationEval {
	return &FabricationEval{
		columns: columns,
		table:   table,
		seen:    make([]bool, len(columns)),
	}
}

// NumTimeSteps returns the number of table rows.
func (f *FabricationEval) NumTimeSteps() uint32 { return uint32(len(f.table)) }

func (f *FabricationEval) BeginTimeStep(state *CircuitState) (EvalScore, bool) {
	step := state.TimeStep()
	if step >= f.NumTimeSteps() {
		return EvalScore{Metric: MetricCycles}, true
	}
	row := f.table[step]
	for i, col := range f.columns {
		if col.Flow != FlowSource {
			continue
		}
		switch col.Color {
		case PortEvent:
			if row[i] != FabricationNil {
				state.SendEvent(col.Wire, row[i])
			}
		default:
			state.SendBehavior(col.Wire, row[i])
		}
	}
	return EvalScore{}, false
}

func (f *FabricationEval) EndCycle(state *CircuitState) []*EvalError {
	row := f.table[state.TimeStep()]
	var errs []*EvalError
	for i, col := range f.columns {
		if col.Flow != FlowSink || col.Color != PortEvent {
			continue
		}
		value, ok := state.RecvEvent(col.Wire)
		if !ok {
			continue
		}
		switch {
		case row[i] == FabricationNil:
			errs = append(errs, state.PortError(col.Port,
				"unexpected event %d on %s", value, col.Name))
		case f.seen[i]:
			errs = append(errs, state.PortError(col.Port,
				"extra event %d on %s", value, col.Name))
		case value != row[i]:
			errs = append(errs, state.PortError(col.Port,
				"expected event %d on %s but got %d", row[i], col.Name, value))
		default:
			f.seen[i] = true
		}
	}
	return errs
}

func (f *FabricationEval) EndTimeStep(state *CircuitState) []*EvalError {
	row := f.table[state.TimeStep()]
	var errs []*EvalError
	for i, col := range f.columns {
		if col.Flow != FlowSink {
			continue
		}
		switch col.Color {
		case PortEvent:
			if row[i] != FabricationNil && !f.seen[i] {
				errs = append(errs, state.PortError(col.Port,
					"expected event %d on %s but got none", row[i], col.Name))
			}
			f.seen[i] = false
		default:
			if value := state.RecvBehavior(col.Wire); value != row[i] {
				errs = append(errs, state.PortError(col.Port,
					"expected %d on %s but got %d", row[i], col.Name, value))
			}
		}
	}
	return errs
}
