// Package grid implements the editable circuit board: chip and wire
// placement, undoable mutations, typechecking, and conversion to and
// from the serializable circuit form.
package grid

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/engine"
	"github.com/fab-xyz/go-fab/geom"
)

// ChangeKind discriminates GridChange variants.
type ChangeKind int

const (
	// ChangeReplaceWires swaps one set of wire fragments for another.
	ChangeReplaceWires ChangeKind = iota
	// ChangeAddChip places a chip.
	ChangeAddChip
	// ChangeRemoveChip removes a chip.
	ChangeRemoveChip
	// ChangeSetBounds resizes the board.
	ChangeSetBounds
)

// GridChange is one atomic, invertible edit to the board.  Changes are
// applied in groups; a group either fully applies or fully fails.
type GridChange struct {
	Kind ChangeKind

	// ReplaceWires: fragments removed and fragments added.  A location
	// present in both maps changes shape.
	OldWires map[engine.Loc]circuit.WireShape
	NewWires map[engine.Loc]circuit.WireShape

	// AddChip and RemoveChip.
	Coords geom.Coords
	Chip   circuit.ChipType
	Orient geom.Orientation

	// SetBounds.
	OldBounds geom.CoordsRect
	NewBounds geom.CoordsRect
}

// ReplaceWires builds a change that removes the old fragments and adds
// the new ones.
func ReplaceWires(oldWires, newWires map[engine.Loc]circuit.WireShape) GridChange {
	return GridChange{Kind: ChangeReplaceWires, OldWires: oldWires, NewWires: newWires}
}

// MassAddWires builds a change that only adds fragments.
func MassAddWires(wires map[engine.Loc]circuit.WireShape) GridChange {
	return ReplaceWires(map[engine.Loc]circuit.WireShape{}, wires)
}

// MassRemoveWires builds a change that only removes fragments.
func MassRemoveWires(wires map[engine.Loc]circuit.WireShape) GridChange {
	return ReplaceWires(wires, map[engine.Loc]circuit.WireShape{})
}

// AddStubWire builds a change adding the stub pair across the edge
// between a cell and its neighbor in the given direction.
func AddStubWire(coords geom.Coords, dir geom.Direction) GridChange {
	return MassAddWires(stubPair(coords, dir))
}

// RemoveStubWire builds the inverse of AddStubWire.
func RemoveStubWire(coords geom.Coords, dir geom.Direction) GridChange {
	return MassRemoveWires(stubPair(coords, dir))
}

func stubPair(coords geom.Coords, dir geom.Direction) map[engine.Loc]circuit.WireShape {
	return map[engine.Loc]circuit.WireShape{
		{Coords: coords, Dir: dir}:                     circuit.ShapeStub,
		{Coords: coords.Add(dir), Dir: dir.Opposite()}: circuit.ShapeStub,
	}
}

// AddChip builds a change placing a chip.
func AddChip(coords geom.Coords, ctype circuit.ChipType, orient geom.Orientation) GridChange {
	return GridChange{Kind: ChangeAddChip, Coords: coords, Chip: ctype, Orient: orient}
}

// RemoveChip builds a change removing a chip.
func RemoveChip(coords geom.Coords, ctype circuit.ChipType, orient geom.Orientation) GridChange {
	return GridChange{Kind: ChangeRemoveChip, Coords: coords, Chip: ctype, Orient: orient}
}

// SetBounds builds a change resizing the board.
func SetBounds(oldBounds, newBounds geom.CoordsRect) GridChange {
	return GridChange{Kind: ChangeSetBounds, OldBounds: oldBounds, NewBounds: newBounds}
}

// Invert returns the change that undoes this one.
func (c GridChange) Invert() GridChange {
	switch c.Kind {
	case ChangeReplaceWires:
		return ReplaceWires(c.NewWires, c.OldWires)
	case ChangeAddChip:
		return RemoveChip(c.Coords, c.Chip, c.Orient)
	case ChangeRemoveChip:
		return AddChip(c.Coords, c.Chip, c.Orient)
	default:
		return SetBounds(c.NewBounds, c.OldBounds)
	}
}

// InvertGroup returns the group that undoes the given group.
func InvertGroup(group []GridChange) []GridChange {
	inverted := make([]GridChange, len(group))
	for i, change := range group {
		inverted[len(group)-1-i] = change.Invert()
	}
	return inverted
}

// InvertAndCollapseGroup inverts a group and merges adjacent changes
// where possible, dropping changes that turn out to be no-ops.  Undo
// stacks store collapsed groups.
func InvertAndCollapseGroup(group []GridChange) []GridChange {
	var result []GridChange
	for i := len(group) - 1; i >= 0; i-- {
		change := group[i].Invert()
		var last GridChange
		hasLast := len(result) > 0
		if hasLast {
			last = result[len(result)-1]
		}
		switch {
		case hasLast && last.Kind == ChangeReplaceWires &&
			change.Kind == ChangeReplaceWires:
			// Fuse: fragments that the first change adds and the second
			// removes (or vice versa) cancel out.
			oldWires := copyWires(last.OldWires)
			newWires := copyWires(last.NewWires)
			for loc, shape := range change.OldWires {
				if s, ok := newWires[loc]; ok && s == shape {
					delete(newWires, loc)
				} else {
					oldWires[loc] = shape
				}
			}
			for loc, shape := range change.NewWires {
				if s, ok := oldWires[loc]; ok && s == shape {
					delete(oldWires, loc)
				} else {
					newWires[loc] = shape
				}
			}
			result = result[:len(result)-1]
			if len(oldWires) > 0 || len(newWires) > 0 {
				result = append(result, ReplaceWires(oldWires, newWires))
			}
		case hasLast && sameChip(last, change) &&
			((last.Kind == ChangeAddChip && change.Kind == ChangeRemoveChip) ||
				(last.Kind == ChangeRemoveChip && change.Kind == ChangeAddChip)):
			result = result[:len(result)-1]
		case hasLast && last.Kind == ChangeSetBounds &&
			change.Kind == ChangeSetBounds:
			oldBounds, newBounds := last.OldBounds, change.NewBounds
			result = result[:len(result)-1]
			if oldBounds != newBounds {
				result = append(result, SetBounds(oldBounds, newBounds))
			}
		default:
			if collapsed, keep := normalizeChange(change); keep {
				result = append(result, collapsed)
			}
		}
	}
	return result
}

func copyWires(wires map[engine.Loc]circuit.WireShape) map[engine.Loc]circuit.WireShape {
	copied := make(map[engine.Loc]circuit.WireShape, len(wires))
	for loc, shape := range wires {
		copied[loc] = shape
	}
	return copied
}

func sameChip(a, b GridChange) bool {
	return a.Coords == b.Coords && a.Chip == b.Chip && a.Orient == b.Orient
}

// normalizeChange strips no-op entries from a change and reports
// whether anything remains.
func normalizeChange(change GridChange) (GridChange, bool) {
	switch change.Kind {
	case ChangeReplaceWires:
		oldWires := copyWires(change.OldWires)
		newWires := copyWires(change.NewWires)
		for loc, shape := range change.NewWires {
			if s, ok := oldWires[loc]; ok && s == shape {
				delete(oldWires, loc)
				delete(newWires, loc)
			}
		}
		if len(oldWires) == 0 && len(newWires) == 0 {
			return GridChange{}, false
		}
		return ReplaceWires(oldWires, newWires), true
	case ChangeSetBounds:
		if change.OldBounds == change.NewBounds {
			return GridChange{}, false
		}
		return change, true
	default:
		return change, true
	}
}
