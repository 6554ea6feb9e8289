package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{
		{
			ID: "run-1", Circuit: "xor.toml", Puzzle: "fab-xor",
			StartedAt: base, TimeSteps: 4, Victory: true, Score: 4,
		},
		{
			ID: "run-2", Circuit: "xor.toml", Puzzle: "fab-xor",
			StartedAt: base.Add(time.Minute), TimeSteps: 2, Victory: false,
			Errors: []string{"expected 1 on out but got 0", "expected 0 on out but got 1"},
		},
	}
	for _, run := range runs {
		if err := s.RecordRun(run); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", run.ID, err)
		}
	}

	listed, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("ListRuns returned %d runs, want 2", len(listed))
	}
	// Newest first.
	if listed[0].ID != "run-2" || listed[1].ID != "run-1" {
		t.Errorf("run order = %s, %s; want run-2, run-1", listed[0].ID, listed[1].ID)
	}
	if !listed[1].Victory || listed[1].Score != 4 {
		t.Errorf("run-1 = %+v", listed[1])
	}
	if len(listed[0].Errors) != 2 || listed[0].Errors[0] != "expected 1 on out but got 0" {
		t.Errorf("run-2 errors = %v", listed[0].Errors)
	}
	if !listed[1].StartedAt.Equal(base) {
		t.Errorf("run-1 started at %v, want %v", listed[1].StartedAt, base)
	}
}

func TestListRunsLimit(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		run := Run{ID: id, Circuit: "c", Puzzle: "p", StartedAt: base.Add(time.Duration(i) * time.Second)}
		if err := s.RecordRun(run); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}
	listed, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("ListRuns(2) returned %d runs", len(listed))
	}
	if listed[0].ID != "c" || listed[1].ID != "b" {
		t.Errorf("run order = %s, %s; want c, b", listed[0].ID, listed[1].ID)
	}
}

func TestRecordRunRejectsDuplicateID(t *testing.T) {
	s := openTestStore(t)
	run := Run{ID: "dup", Circuit: "c", Puzzle: "p", StartedAt: time.Now()}
	if err := s.RecordRun(run); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := s.RecordRun(run); err == nil {
		t.Errorf("duplicate run ID accepted")
	}
}
