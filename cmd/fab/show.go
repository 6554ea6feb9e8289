package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/engine"
	"github.com/fab-xyz/go-fab/grid"
	"github.com/fab-xyz/go-fab/puzzles"
)

func show(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	puzzleName := fs.String("puzzle", "", "Typecheck against this puzzle's interfaces")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fab show <circuit.toml> [options]

Display a circuit file's bounds, chips, and wiring statistics.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Inspect a circuit file
  fab show xor.toml

  # Typecheck it against the puzzle it solves
  fab show xor.toml --puzzle fab-xor
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("circuit file required")
	}

	data, err := circuit.LoadCircuitData(fs.Arg(0))
	if err != nil {
		return err
	}
	var interfaces []*engine.Interface
	if *puzzleName != "" {
		puzzle, ok := puzzles.Lookup(*puzzleName)
		if !ok {
			return fmt.Errorf("unknown puzzle %q (available: %s)",
				*puzzleName, strings.Join(puzzles.Names(), ", "))
		}
		interfaces = puzzle.Interfaces
	}
	g := grid.FromCircuitData(data, interfaces)

	bounds := g.Bounds()
	fmt.Printf("Board: %dx%d\n", bounds.Width, bounds.Height)

	chips := g.Chips()
	fmt.Printf("Chips: %d\n", len(chips))
	for _, chip := range chips {
		fmt.Printf("  (%d, %d)  %s-%s\n", chip.Coords.X, chip.Coords.Y, chip.Orient, chip.Type)
	}

	fragments := 0
	for _, wire := range g.Wires() {
		fragments += len(wire.Fragments)
	}
	fmt.Printf("Wires: %d nets, %d fragments\n", len(g.Wires()), fragments)
	fmt.Printf("Wire length: %d\n", data.WireLength())

	if errs := g.Errors(); len(errs) > 0 {
		fmt.Printf("Typecheck errors: %d\n", len(errs))
		for _, werr := range errs {
			fmt.Printf("  %v\n", werr)
		}
	}
	return nil
}
