// Package store persists verification runs in a SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded verification run.
type Run struct {
	ID        string
	Circuit   string
	Puzzle    string
	StartedAt time.Time
	TimeSteps uint32
	Victory   bool
	Score     uint32
	Errors    []string
}

// Store is a SQLite-backed run archive.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	circuit    TEXT NOT NULL,
	puzzle     TEXT NOT NULL,
	started_at TEXT NOT NULL,
	time_steps INTEGER NOT NULL,
	victory    INTEGER NOT NULL,
	score      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_errors (
	run_id  TEXT NOT NULL REFERENCES runs(id),
	seq     INTEGER NOT NULL,
	message TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Open opens (and if necessary creates) a run store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run and its errors atomically.
func (s *Store) RecordRun(run Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	_, err = tx.Exec(
		`INSERT INTO runs (id, circuit, puzzle, started_at, time_steps, victory, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Circuit, run.Puzzle,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.TimeSteps, run.Victory, run.Score,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	for i, message := range run.Errors {
		_, err = tx.Exec(
			`INSERT INTO run_errors (run_id, seq, message) VALUES (?, ?, ?)`,
			run.ID, i, message,
		)
		if err != nil {
			return fmt.Errorf("inserting run error: %w", err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.  A limit of
// zero or less means no limit.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, circuit, puzzle, started_at, time_steps, victory, score
		  FROM runs ORDER BY started_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var run Run
		var started string
		err := rows.Scan(&run.ID, &run.Circuit, &run.Puzzle, &started,
			&run.TimeSteps, &run.Victory, &run.Score)
		if err != nil {
			return nil, err
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range runs {
		if runs[i].Errors, err = s.runErrors(runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) runErrors(runID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT message FROM run_errors WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var messages []string
	for rows.Next() {
		var message string
		if err := rows.Scan(&message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
