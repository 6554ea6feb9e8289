package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fab-xyz/go-fab/store"
)

func history(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dbPath := fs.String("db", "fab.db", "SQLite database to read")
	limit := fs.Int("limit", 20, "Maximum number of runs to list (0 for all)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fab history [options]

List recorded verification runs, newest first.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Last 20 runs
  fab history --db runs.db

  # Everything
  fab history --db runs.db --limit 0
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(*limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs")
		return nil
	}
	for _, run := range runs {
		status := "failed"
		if run.Victory {
			status = fmt.Sprintf("victory, score %d", run.Score)
		}
		fmt.Printf("%s  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.ID)
		fmt.Printf("  %s against %s: %s in %d time steps\n",
			run.Circuit, run.Puzzle, status, run.TimeSteps)
		for _, message := range run.Errors {
			fmt.Printf("    %s\n", message)
		}
	}
	return nil
}
