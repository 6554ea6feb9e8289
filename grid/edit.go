package grid

import (
	"fmt"
	"sort"

	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/engine"
	"github.com/fab-xyz/go-fab/geom"
)

// placedChip is a chip anchored at its top-left cell.
type placedChip struct {
	ctype  circuit.ChipType
	orient geom.Orientation
}

// chipCell is one board cell covered by a chip: either the anchor cell
// holding the chip itself, or a reference back to the anchor.
type chipCell struct {
	chip   *placedChip
	origin geom.Coords
}

// EditGrid is an editable circuit board.  Mutations are grouped and
// undoable; after every mutation the wires are regrouped, recolored,
// sized, and checked for dependency loops.
type EditGrid struct {
	bounds        geom.CoordsRect
	interfaces    []*engine.Interface
	fragments     map[engine.Loc]*engine.Fragment
	chips         map[geom.Coords]chipCell
	wires         []*engine.WireInfo
	wiresForPorts map[engine.Loc]engine.WireID
	wireGroups    [][]engine.WireID
	errors        []engine.WireError
	undoStack     [][]GridChange
	redoStack     [][]GridChange
}

// NewEditGrid returns an empty board with the given bounds and puzzle
// interfaces.
func NewEditGrid(bounds geom.CoordsRect, interfaces []*engine.Interface) *EditGrid {
	g := &EditGrid{
		bounds:     bounds,
		interfaces: interfaces,
		fragments:  make(map[engine.Loc]*engine.Fragment),
		chips:      make(map[geom.Coords]chipCell),
	}
	g.typecheck()
	return g
}

// Bounds returns the board bounds.
func (g *EditGrid) Bounds() geom.CoordsRect { return g.bounds }

// Interfaces returns the puzzle interfaces along the board edges.
func (g *EditGrid) Interfaces() []*engine.Interface { return g.interfaces }

// Errors returns the current typecheck errors.
func (g *EditGrid) Errors() []engine.WireError { return g.errors }

// Wires returns the current wire nets.
func (g *EditGrid) Wires() []*engine.WireInfo { return g.wires }

// WireShapeAt returns the wire fragment shape at a half-edge.
func (g *EditGrid) WireShapeAt(loc engine.Loc) (circuit.WireShape, bool) {
	if frag, ok := g.fragments[loc]; ok {
		return frag.Shape, true
	}
	return 0, false
}

// ChipAt returns the chip covering the given cell, along with the
// anchor cell it is placed at.
func (g *EditGrid) ChipAt(coords geom.Coords) (geom.Coords, circuit.ChipType, geom.Orientation, bool) {
	cell, ok := g.chips[coords]
	if !ok {
		return geom.Coords{}, circuit.ChipType{}, geom.Orientation{}, false
	}
	if cell.chip == nil {
		coords = cell.origin
		cell = g.chips[coords]
	}
	return coords, cell.chip.ctype, cell.chip.orient, true
}

// ChipEntry is one placed chip, as returned by Chips.
type ChipEntry struct {
	Coords geom.Coords
	Type   circuit.ChipType
	Orient geom.Orientation
}

// Chips returns the placed chips sorted by position.
func (g *EditGrid) Chips() []ChipEntry {
	var out []ChipEntry
	for coords, cell := range g.chips {
		if cell.chip == nil {
			continue
		}
		out = append(out, ChipEntry{coords, cell.chip.ctype, cell.chip.orient})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coords.Y != out[j].Coords.Y {
			return out[i].Coords.Y < out[j].Coords.Y
		}
		return out[i].Coords.X < out[j].Coords.X
	})
	return out
}

// ValidationError explains why a mutation group could not be applied.
type ValidationError struct {
	Change  GridChange
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Mutate applies a group of changes atomically.  If any change cannot
// be applied, the already-applied prefix is rolled back and the
// offending change is reported in a ValidationError.  On success the
// inverse group is pushed onto the undo stack, the redo stack is
// cleared, and the wires are retypechecked.
func (g *EditGrid) Mutate(changes []GridChange) error {
	for i, change := range changes {
		if err := g.applyChange(change); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rerr := g.applyChange(changes[j].Invert()); rerr != nil {
					panic("rollback failed: " + rerr.Error())
				}
			}
			return err
		}
	}
	collapsed := InvertAndCollapseGroup(changes)
	if len(collapsed) > 0 {
		g.undoStack = append(g.undoStack, collapsed)
		g.redoStack = nil
	}
	g.typecheck()
	return nil
}

// Undo reverses the most recent mutation group.
func (g *EditGrid) Undo() bool {
	if len(g.undoStack) == 0 {
		return false
	}
	group := g.undoStack[len(g.undoStack)-1]
	g.undoStack = g.undoStack[:len(g.undoStack)-1]
	for _, change := range group {
		if err := g.applyChange(change); err != nil {
			panic("undo failed: " + err.Error())
		}
	}
	g.redoStack = append(g.redoStack, InvertGroup(group))
	g.typecheck()
	return true
}

// Redo reapplies the most recently undone mutation group.
func (g *EditGrid) Redo() bool {
	if len(g.redoStack) == 0 {
		return false
	}
	group := g.redoStack[len(g.redoStack)-1]
	g.redoStack = g.redoStack[:len(g.redoStack)-1]
	for _, change := range group {
		if err := g.applyChange(change); err != nil {
			panic("redo failed: " + err.Error())
		}
	}
	g.undoStack = append(g.undoStack, InvertGroup(group))
	g.typecheck()
	return true
}

// interfaceCells returns the cells occupied by interfaces under the
// given bounds.
func (g *EditGrid) interfaceCells(bounds geom.CoordsRect) map[geom.Coords]bool {
	cells := make(map[geom.Coords]bool)
	for _, iface := range g.interfaces {
		for _, spec := range iface.PortSpecs(bounds) {
			cells[spec.Coords] = true
		}
	}
	return cells
}

// validWireCell reports whether a wire fragment may occupy a cell:
// inside the bounds, or on an interface cell just outside them.
func (g *EditGrid) validWireCell(coords geom.Coords, bounds geom.CoordsRect) bool {
	return bounds.Contains(coords) || g.interfaceCells(bounds)[coords]
}

func (g *EditGrid) applyChange(change GridChange) error {
	fail := func(format string, args ...interface{}) error {
		return &ValidationError{Change: change, Message: fmt.Sprintf(format, args...)}
	}
	switch change.Kind {
	case ChangeReplaceWires:
		for loc, shape := range change.OldWires {
			frag, ok := g.fragments[loc]
			if !ok || frag.Shape != shape {
				return fail("no %v fragment at %v", shape, loc)
			}
		}
		for loc := range change.NewWires {
			if _, ok := change.OldWires[loc]; ok {
				continue
			}
			if _, occupied := g.fragments[loc]; occupied {
				return fail("fragment already at %v", loc)
			}
			if !g.validWireCell(loc.Coords, g.bounds) {
				return fail("wire at %v is out of bounds", loc)
			}
		}
		for loc := range change.OldWires {
			delete(g.fragments, loc)
		}
		for loc, shape := range change.NewWires {
			g.fragments[loc] = &engine.Fragment{Shape: shape}
		}
		return nil

	case ChangeAddChip:
		size := change.Orient.TransformSize(change.Chip.FootprintSize())
		footprint := geom.RectWithSize(change.Coords, size)
		if !g.bounds.ContainsRect(footprint) {
			return fail("chip at (%d, %d) is out of bounds", change.Coords.X, change.Coords.Y)
		}
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				cell := change.Coords.AddDelta(geom.CoordsDelta{X: x, Y: y})
				if _, occupied := g.chips[cell]; occupied {
					return fail("cell (%d, %d) already holds a chip", cell.X, cell.Y)
				}
				for _, dir := range geom.AllDirections() {
					if _, wired := g.fragments[engine.Loc{Coords: cell, Dir: dir}]; wired {
						return fail("cell (%d, %d) is wired", cell.X, cell.Y)
					}
				}
			}
		}
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				cell := change.Coords.AddDelta(geom.CoordsDelta{X: x, Y: y})
				g.chips[cell] = chipCell{origin: change.Coords}
			}
		}
		chip := placedChip{ctype: change.Chip, orient: change.Orient}
		g.chips[change.Coords] = chipCell{chip: &chip, origin: change.Coords}
		return nil

	case ChangeRemoveChip:
		cell, ok := g.chips[change.Coords]
		if !ok || cell.chip == nil || cell.chip.ctype != change.Chip ||
			cell.chip.orient != change.Orient {
			return fail("no such chip at (%d, %d)", change.Coords.X, change.Coords.Y)
		}
		size := change.Orient.TransformSize(change.Chip.FootprintSize())
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				delete(g.chips, change.Coords.AddDelta(geom.CoordsDelta{X: x, Y: y}))
			}
		}
		return nil

	default:
		if g.bounds != change.OldBounds {
			return fail("bounds do not match")
		}
		if !g.canHaveBounds(change.NewBounds) {
			return fail("new bounds would orphan chips, wires, or interfaces")
		}
		g.bounds = change.NewBounds
		return nil
	}
}

// canHaveBounds reports whether the board could be resized to the
// given bounds without orphaning chips, wires, or interfaces.
func (g *EditGrid) canHaveBounds(bounds geom.CoordsRect) bool {
	min := engine.MinBoundsSize(g.interfaces)
	if bounds.Width < min.Width || bounds.Height < min.Height {
		return false
	}
	for coords := range g.chips {
		if !bounds.Contains(coords) {
			return false
		}
	}
	for loc := range g.fragments {
		if !g.validWireCell(loc.Coords, bounds) {
			return false
		}
	}
	return true
}

// PlaceChipChanges builds the change group that places a chip and
// stubs out each of its ports.
func PlaceChipChanges(coords geom.Coords, ctype circuit.ChipType, orient geom.Orientation) []GridChange {
	stubs := make(map[engine.Loc]circuit.WireShape)
	for _, spec := range engine.ChipPorts(ctype, coords, orient) {
		stubs[spec.Loc()] = circuit.ShapeStub
		outside := engine.Loc{Coords: spec.Coords.Add(spec.Dir), Dir: spec.Dir.Opposite()}
		stubs[outside] = circuit.ShapeStub
	}
	return []GridChange{AddChip(coords, ctype, orient), MassAddWires(stubs)}
}

// typecheck regroups the wires and rechecks colors, sizes, and
// dependency loops.  Wire groups are only retained when there are no
// errors.
func (g *EditGrid) typecheck() {
	g.wiresForPorts = nil
	g.wireGroups = nil

	ports := make(map[engine.Loc]engine.PortInfo)
	var constraints []engine.PortConstraint
	var deps []engine.PortDependency
	for _, iface := range g.interfaces {
		for _, spec := range iface.PortSpecs(g.bounds) {
			ports[spec.Loc()] = engine.PortInfo{Flow: spec.Flow, Color: spec.Color}
		}
		constraints = append(constraints, iface.Constraints(g.bounds)...)
	}
	for _, chip := range g.Chips() {
		for _, spec := range engine.ChipPorts(chip.Type, chip.Coords, chip.Orient) {
			ports[spec.Loc()] = engine.PortInfo{Flow: spec.Flow, Color: spec.Color}
		}
		constraints = append(constraints, engine.ChipConstraints(chip.Type, chip.Coords, chip.Orient)...)
		deps = append(deps, engine.ChipDependencies(chip.Type, chip.Coords, chip.Orient)...)
	}

	g.wires = engine.GroupWires(ports, g.fragments)
	errs := engine.RecolorWires(g.wires)
	g.wiresForPorts = engine.MapPortsToWires(g.wires)
	errs = append(errs, engine.DetermineWireSizes(g.wires, g.wiresForPorts, constraints)...)
	groups, loopErrs := engine.DetectLoops(g.wires, g.wiresForPorts, deps)
	errs = append(errs, loopErrs...)
	g.errors = errs
	if len(errs) == 0 {
		g.wireGroups = groups
	}
}

// StartEval assembles a circuit evaluator.  The puzzle evaluator is
// built by the caller from the interface slots: one slot per interface
// port, in interface order.  Returns the typecheck errors instead if
// the circuit has any.
func (g *EditGrid) StartEval(newPuzzle func(slots [][]engine.EvalSlot) engine.PuzzleEval) (*engine.CircuitEval, []engine.WireError) {
	if len(g.errors) > 0 {
		return nil, g.errors
	}

	wireGroup := make(map[engine.WireID]int)
	for groupIndex, group := range g.wireGroups {
		for _, wire := range group {
			wireGroup[wire] = groupIndex
		}
	}
	nullWires := make(map[engine.WireID]bool)
	for id, wire := range g.wires {
		if len(wire.Fragments) == 0 {
			nullWires[engine.WireID(id)] = true
		}
	}

	slotsFor := func(specs []engine.PortSpec) []engine.EvalSlot {
		slots := make([]engine.EvalSlot, len(specs))
		for i, spec := range specs {
			wire := g.wiresForPorts[spec.Loc()]
			size, _ := g.wires[wire].Size.LowerBound()
			slots[i] = engine.EvalSlot{Wire: wire, Size: size}
		}
		return slots
	}

	chipGroups := make([][]engine.ChipEval, len(g.wireGroups))
	for _, chip := range g.Chips() {
		specs := engine.ChipPorts(chip.Type, chip.Coords, chip.Orient)
		slots := slotsFor(specs)
		for _, placed := range engine.NewChipEvals(chip.Type, chip.Coords, slots) {
			groupIndex := wireGroup[slots[placed.Port].Wire]
			chipGroups[groupIndex] = append(chipGroups[groupIndex], placed.Eval)
		}
	}

	ifaceSlots := make([][]engine.EvalSlot, len(g.interfaces))
	for i, iface := range g.interfaces {
		ifaceSlots[i] = slotsFor(iface.PortSpecs(g.bounds))
	}

	return engine.NewCircuitEval(len(g.wires), nullWires, chipGroups, newPuzzle(ifaceSlots)), nil
}
