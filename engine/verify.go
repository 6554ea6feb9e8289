package engine

// Verify runs the evaluator headless to completion and returns the
// accumulated errors along with the score, if the run ended in victory.
func Verify(eval *CircuitEval, inputs []RecordedInput, maxTimeSteps uint32) ([]*EvalError, *EvalScore) {
	result := ReplayInputs(eval, inputs, maxTimeSteps)
	if result.Kind == ResultVictory {
		score := result.Score
		return eval.Errors(), &score
	}
	return eval.Errors(), nil
}

// ReplayInputs steps the evaluator to completion, replaying recorded
// interactive inputs at the time step and cycle they were captured.
// Breakpoints are ignored.  If the run is still going after
// maxTimeSteps, it fails with a fatal error.
func ReplayInputs(eval *CircuitEval, inputs []RecordedInput, maxTimeSteps uint32) EvalResult {
	next := 0
	for {
		for next < len(inputs) &&
			inputs[next].TimeStep == eval.TimeStep() &&
			inputs[next].Cycle == eval.Cycle() {
			input := inputs[next]
			eval.PressButton(input.Coords, input.Sublocation, input.Count)
			next++
		}
		result := eval.StepCycle()
		switch result.Kind {
		case ResultContinue, ResultBreakpoint:
			if eval.TimeStep() > maxTimeSteps {
				eval.errs = append(eval.errs, eval.state.FatalError(
					"Did not finish within %d time steps", maxTimeSteps))
				return EvalResult{Kind: ResultFailure}
			}
		default:
			return result
		}
	}
}
