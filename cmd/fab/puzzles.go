package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fab-xyz/go-fab/puzzles"
)

func listPuzzles(args []string) error {
	fs := flag.NewFlagSet("puzzles", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fab puzzles

List the built-in puzzles a circuit can be verified against.
`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, name := range puzzles.Names() {
		puzzle, _ := puzzles.Lookup(name)
		fmt.Printf("%-10s %s (%d time steps)\n", name, puzzle.Description, puzzle.NumTimeSteps())
	}
	return nil
}
