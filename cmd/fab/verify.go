package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/engine"
	"github.com/fab-xyz/go-fab/eventlog"
	"github.com/fab-xyz/go-fab/grid"
	"github.com/fab-xyz/go-fab/puzzles"
	"github.com/fab-xyz/go-fab/store"
)

func verify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	puzzleName := fs.String("puzzle", "fab-xor", "Puzzle to verify the circuit against")
	steps := fs.Uint("steps", 100, "Maximum number of time steps before giving up")
	dbPath := fs.String("db", "", "Record the run in this SQLite database")
	tracePath := fs.String("trace", "", "Write the run trace to this file (.jsonl or .csv)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fab verify <circuit.toml> [options]

Run a circuit headlessly against a puzzle's fabrication table and
report the outcome.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Basic verification
  fab verify xor.toml --puzzle fab-xor

  # Allow a longer run
  fab verify slow.toml --steps 500

  # Record the run and keep a trace
  fab verify xor.toml --db runs.db --trace trace.jsonl
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("circuit file required")
	}
	circuitFile := fs.Arg(0)

	data, err := circuit.LoadCircuitData(circuitFile)
	if err != nil {
		return err
	}
	puzzle, ok := puzzles.Lookup(*puzzleName)
	if !ok {
		return fmt.Errorf("unknown puzzle %q (available: %s)",
			*puzzleName, strings.Join(puzzles.Names(), ", "))
	}

	g := grid.FromCircuitData(data, puzzle.Interfaces)
	eval, wireErrs := g.StartEval(puzzle.NewEval)
	if wireErrs != nil {
		for _, werr := range wireErrs {
			fmt.Fprintf(os.Stderr, "  %v\n", werr)
		}
		return fmt.Errorf("circuit failed typechecking with %d errors", len(wireErrs))
	}

	started := time.Now()
	evalErrs, score := engine.Verify(eval, nil, uint32(*steps))
	victory := score != nil
	if victory && score.Metric == engine.MetricWireLength {
		score.Value = uint32(data.WireLength())
	}

	if victory {
		fmt.Printf("Victory on %s after %d time steps\n", puzzle.Name, eval.TimeStep())
		fmt.Printf("  Cycles: %d\n", eval.TotalCycles())
		fmt.Printf("  Score: %d (%s)\n", score.Value, metricName(score.Metric))
		fmt.Printf("  Wire length: %d\n", data.WireLength())
	} else {
		for _, e := range evalErrs {
			if e.Port != nil {
				fmt.Printf("  time step %d at %v: %s\n", e.TimeStep, *e.Port, e.Message)
			} else {
				fmt.Printf("  time step %d: %s\n", e.TimeStep, e.Message)
			}
		}
	}

	runID := eventlog.NewRunID()
	if *dbPath != "" {
		if err := recordRun(*dbPath, runID, circuitFile, puzzle.Name, started, eval, evalErrs, score); err != nil {
			return err
		}
		fmt.Printf("Recorded run %s in %s\n", runID, *dbPath)
	}
	if *tracePath != "" {
		if err := writeTrace(*tracePath, runID, eval, evalErrs, score); err != nil {
			return err
		}
		fmt.Printf("Wrote trace to %s\n", *tracePath)
	}

	if !victory {
		return fmt.Errorf("verification failed with %d errors", len(evalErrs))
	}
	return nil
}

func metricName(metric engine.ScoreMetric) string {
	switch metric {
	case engine.MetricCycles:
		return "cycles"
	case engine.MetricValue:
		return "value"
	default:
		return "wire length"
	}
}

func recordRun(dbPath, runID, circuitFile, puzzleName string, started time.Time,
	eval *engine.CircuitEval, evalErrs []*engine.EvalError, score *engine.EvalScore) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	run := store.Run{
		ID:        runID,
		Circuit:   circuitFile,
		Puzzle:    puzzleName,
		StartedAt: started,
		TimeSteps: eval.TimeStep(),
		Victory:   score != nil,
	}
	if score != nil {
		run.Score = score.Value
	}
	for _, e := range evalErrs {
		run.Errors = append(run.Errors, e.Message)
	}
	return s.RecordRun(run)
}

func writeTrace(path, runID string, eval *engine.CircuitEval,
	evalErrs []*engine.EvalError, score *engine.EvalScore) error {
	var events []eventlog.Event
	for _, input := range eval.State().RecordedInputs() {
		events = append(events, eventlog.Event{
			RunID:    runID,
			TimeStep: input.TimeStep,
			Cycle:    input.Cycle,
			Kind:     eventlog.KindInput,
			X:        input.Coords.X,
			Y:        input.Coords.Y,
			Value:    input.Count,
		})
	}
	for _, e := range evalErrs {
		event := eventlog.Event{
			RunID:    runID,
			TimeStep: e.TimeStep,
			Kind:     eventlog.KindError,
			Message:  e.Message,
		}
		if e.Port != nil {
			event.X = e.Port.Coords.X
			event.Y = e.Port.Coords.Y
		}
		events = append(events, event)
	}
	final := eventlog.Event{
		RunID:    runID,
		TimeStep: eval.TimeStep(),
		Kind:     eventlog.KindFailure,
	}
	if score != nil {
		final.Kind = eventlog.KindVictory
		final.Value = score.Value
	}
	events = append(events, final)

	if strings.HasSuffix(path, ".csv") {
		return eventlog.WriteCSVFile(path, events)
	}
	return eventlog.WriteJSONLFile(path, events)
}
