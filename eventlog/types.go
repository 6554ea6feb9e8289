// Package eventlog records simulation run traces: the inputs fed to a
// circuit, the errors it produced, and how each run ended.  Traces are
// written and read as JSONL or CSV.
package eventlog

import (
	"sort"

	"github.com/google/uuid"
)

// EventKind classifies a trace event.
type EventKind string

const (
	// KindInput is an interactive input fed to the circuit.
	KindInput EventKind = "input"
	// KindError is a non-fatal evaluation error.
	KindError EventKind = "error"
	// KindBreakpoint marks a breakpoint pause.
	KindBreakpoint EventKind = "breakpoint"
	// KindVictory marks a successful run; Value holds the score.
	KindVictory EventKind = "victory"
	// KindFailure marks a failed run.
	KindFailure EventKind = "failure"
)

// Event is a single entry in a run trace.  X and Y locate the event on
// the board when it has a location; Message carries error text.
type Event struct {
	RunID    string    `json:"run_id"`
	TimeStep uint32    `json:"time_step"`
	Cycle    uint32    `json:"cycle"`
	Kind     EventKind `json:"kind"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
	Value    uint32    `json:"value"`
	Message  string    `json:"message,omitempty"`
}

// Trace is the ordered event sequence of one run.
type Trace struct {
	RunID  string
	Events []Event
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Collect groups events into per-run traces, ordered by run ID.  Event
// order within each trace is preserved.
func Collect(events []Event) []*Trace {
	byRun := make(map[string]*Trace)
	for _, event := range events {
		trace, ok := byRun[event.RunID]
		if !ok {
			trace = &Trace{RunID: event.RunID}
			byRun[event.RunID] = trace
		}
		trace.Events = append(trace.Events, event)
	}
	traces := make([]*Trace, 0, len(byRun))
	for _, trace := range byRun {
		traces = append(traces, trace)
	}
	sort.Slice(traces, func(i, j int) bool {
		return traces[i].RunID < traces[j].RunID
	})
	return traces
}

// Summary aggregates a set of events.
type Summary struct {
	NumRuns   int
	NumEvents int
	NumErrors int
	// LastTimeStep is the highest time step seen across all events.
	LastTimeStep uint32
	// Kinds counts events per kind.
	Kinds map[EventKind]int
}

// Summarize computes aggregate statistics over events.
func Summarize(events []Event) Summary {
	summary := Summary{Kinds: make(map[EventKind]int)}
	runs := make(map[string]bool)
	for _, event := range events {
		runs[event.RunID] = true
		summary.NumEvents++
		summary.Kinds[event.Kind]++
		if event.Kind == KindError || event.Kind == KindFailure {
			summary.NumErrors++
		}
		if event.TimeStep > summary.LastTimeStep {
			summary.LastTimeStep = event.TimeStep
		}
	}
	summary.NumRuns = len(runs)
	return summary
}
