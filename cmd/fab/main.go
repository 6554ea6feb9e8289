package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "verify":
		if err := verify(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "show":
		if err := show(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "puzzles":
		if err := listPuzzles(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "history":
		if err := history(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("fab version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fab - circuit board verification tool

Usage:
  fab <command> [options]

Commands:
  verify     Run a circuit against a puzzle's fabrication table
  show       Display a circuit file's bounds, chips, and wiring
  puzzles    List the built-in puzzles
  history    List recorded verification runs
  help       Show this help message
  version    Show version information

Examples:
  # Verify a circuit against the XOR puzzle
  fab verify xor.toml --puzzle fab-xor

  # Record the run and write a trace
  fab verify xor.toml --db runs.db --trace trace.jsonl

  # Inspect a circuit file
  fab show xor.toml

  # List past runs
  fab history --db runs.db

For command-specific help, run:
  fab <command> --help`)
}
