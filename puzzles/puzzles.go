// Package puzzles holds the built-in fabrication puzzles that circuits
// are verified against.  Each puzzle supplies the board interfaces and
// a truth table, one row per time step.
package puzzles

import (
	"sort"

	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/engine"
	"github.com/fab-xyz/go-fab/geom"
)

// Puzzle is one fabrication puzzle: the interfaces it places along the
// board edges and the table a solution must reproduce.  Table columns
// follow interface order, one column per interface port.
type Puzzle struct {
	Name        string
	Description string
	Interfaces  []*engine.Interface
	Table       [][]uint32
}

// NewEval binds the puzzle's table to the interface slots assembled by
// the grid, yielding the puzzle evaluator for a run.
func (p *Puzzle) NewEval(slots [][]engine.EvalSlot) engine.PuzzleEval {
	var columns []engine.FabricationColumn
	for i, iface := range p.Interfaces {
		for j, port := range iface.Ports {
			columns = append(columns, engine.FabricationColumn{
				Name:  port.Name,
				Flow:  port.Flow,
				Color: port.Color,
				Wire:  slots[i][j].Wire,
			})
		}
	}
	return engine.NewFabricationEval(columns, p.Table)
}

// NumTimeSteps returns how many time steps a successful run takes.
func (p *Puzzle) NumTimeSteps() uint32 { return uint32(len(p.Table)) }

var registry = map[string]*Puzzle{}

func register(p *Puzzle) *Puzzle {
	registry[p.Name] = p
	return p
}

// Lookup returns the puzzle with the given name.
func Lookup(name string) (*Puzzle, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns the registered puzzle names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func behaviorIn(name, description string, size circuit.WireSize) engine.InterfacePort {
	return engine.InterfacePort{
		Name:        name,
		Description: description,
		Flow:        engine.FlowSource,
		Color:       engine.PortBehavior,
		Size:        size,
	}
}

func behaviorOut(name, description string, size circuit.WireSize) engine.InterfacePort {
	return engine.InterfacePort{
		Name:        name,
		Description: description,
		Flow:        engine.FlowSink,
		Color:       engine.PortBehavior,
		Size:        size,
	}
}

// NotPuzzle asks for a single inverter.
var NotPuzzle = register(&Puzzle{
	Name:        "fab-not",
	Description: "Invert a 1-bit input.",
	Interfaces: []*engine.Interface{
		{
			Name: "in", Side: geom.West, Pos: engine.InterfaceCenter(),
			Ports: []engine.InterfacePort{behaviorIn("in", "Input bit.", circuit.SizeOne)},
		},
		{
			Name: "out", Side: geom.East, Pos: engine.InterfaceCenter(),
			Ports: []engine.InterfacePort{behaviorOut("out", "Inverted input.", circuit.SizeOne)},
		},
	},
	Table: [][]uint32{
		{0, 1},
		{1, 0},
	},
})

// AndPuzzle asks for a 1-bit AND gate.
var AndPuzzle = register(&Puzzle{
	Name:        "fab-and",
	Description: "AND two 1-bit inputs.",
	Interfaces:  twoInOneOut(circuit.SizeOne),
	Table: [][]uint32{
		{0, 0, 0},
		{0, 1, 0},
		{1, 0, 0},
		{1, 1, 1},
	},
})

// XorPuzzle asks for a 1-bit XOR gate.
var XorPuzzle = register(&Puzzle{
	Name:        "fab-xor",
	Description: "XOR two 1-bit inputs.",
	Interfaces:  twoInOneOut(circuit.SizeOne),
	Table: [][]uint32{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
	},
})

// AddPuzzle asks for an 8-bit adder; sums wrap around.
var AddPuzzle = register(&Puzzle{
	Name:        "fab-add",
	Description: "Add two 8-bit inputs modulo 256.",
	Interfaces:  twoInOneOut(circuit.SizeEight),
	Table: [][]uint32{
		{1, 2, 3},
		{100, 100, 200},
		{200, 100, 44},
		{255, 1, 0},
	},
})

// twoInOneOut builds the common interface layout: two inputs stacked on
// the west side, one output centered on the east side.
func twoInOneOut(size circuit.WireSize) []*engine.Interface {
	return []*engine.Interface{
		{
			Name: "in1", Side: geom.West, Pos: engine.InterfaceLeft(0),
			Ports: []engine.InterfacePort{behaviorIn("in1", "First input.", size)},
		},
		{
			Name: "in2", Side: geom.West, Pos: engine.InterfaceRight(0),
			Ports: []engine.InterfacePort{behaviorIn("in2", "Second input.", size)},
		},
		{
			Name: "out", Side: geom.East, Pos: engine.InterfaceCenter(),
			Ports: []engine.InterfacePort{behaviorOut("out", "Result.", size)},
		},
	}
}
