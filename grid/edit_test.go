package grid

import (
	"errors"
	"testing"

	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/engine"
	"github.com/fab-xyz/go-fab/geom"
)

func testBounds() geom.CoordsRect {
	return geom.CoordsRect{Width: 6, Height: 6}
}

func countFragments(g *EditGrid) int {
	n := 0
	for _, wire := range g.Wires() {
		n += len(wire.Fragments)
	}
	return n
}

func TestMutateAddWireUndoRedo(t *testing.T) {
	g := NewEditGrid(testBounds(), nil)
	if err := g.Mutate([]GridChange{AddStubWire(geom.Coords{X: 0, Y: 0}, geom.East)}); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	if shape, ok := g.WireShapeAt(loc(0, 0, geom.East)); !ok || shape != circuit.ShapeStub {
		t.Errorf("missing stub at (0, 0, East)")
	}
	if shape, ok := g.WireShapeAt(loc(1, 0, geom.West)); !ok || shape != circuit.ShapeStub {
		t.Errorf("missing stub at (1, 0, West)")
	}

	if !g.Undo() {
		t.Fatalf("Undo returned false")
	}
	if countFragments(g) != 0 {
		t.Errorf("fragments remain after undo")
	}
	if !g.Redo() {
		t.Fatalf("Redo returned false")
	}
	if countFragments(g) != 2 {
		t.Errorf("fragments missing after redo")
	}
	if g.Redo() {
		t.Errorf("Redo with empty stack returned true")
	}
}

func TestMutateRollsBackOnFailure(t *testing.T) {
	g := NewEditGrid(testBounds(), nil)
	err := g.Mutate([]GridChange{
		AddStubWire(geom.Coords{X: 0, Y: 0}, geom.East),
		AddChip(geom.Coords{X: 10, Y: 10}, circuit.NewChip(circuit.KindAnd), geom.NewOrientation()),
	})
	if err == nil {
		t.Fatalf("Mutate with out-of-bounds chip succeeded")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T, want *ValidationError", err)
	}
	if countFragments(g) != 0 {
		t.Errorf("failed mutation left fragments behind")
	}
	if g.Undo() {
		t.Errorf("failed mutation was pushed onto the undo stack")
	}
}

func TestMutateRejectsOccupiedWire(t *testing.T) {
	g := NewEditGrid(testBounds(), nil)
	add := AddStubWire(geom.Coords{X: 0, Y: 0}, geom.East)
	if err := g.Mutate([]GridChange{add}); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	if err := g.Mutate([]GridChange{add}); err == nil {
		t.Errorf("adding a wire over an existing one succeeded")
	}
	out := AddStubWire(geom.Coords{X: 5, Y: 5}, geom.East)
	if err := g.Mutate([]GridChange{out}); err == nil {
		t.Errorf("adding a wire past the bounds succeeded")
	}
}

func TestPlaceChip(t *testing.T) {
	g := NewEditGrid(testBounds(), nil)
	coords := geom.Coords{X: 2, Y: 2}
	ctype := circuit.NewChip(circuit.KindNot)
	if err := g.Mutate(PlaceChipChanges(coords, ctype, geom.NewOrientation())); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	anchor, got, _, ok := g.ChipAt(coords)
	if !ok || anchor != coords || got != ctype {
		t.Fatalf("ChipAt = %v, %v, %t", anchor, got, ok)
	}
	// A Not chip has a west sink and an east source; placement stubs
	// out both.
	for _, l := range []engine.Loc{
		loc(2, 2, geom.West), loc(1, 2, geom.East),
		loc(2, 2, geom.East), loc(3, 2, geom.West),
	} {
		if _, ok := g.WireShapeAt(l); !ok {
			t.Errorf("missing port stub at %v", l)
		}
	}
	if errs := g.Errors(); len(errs) != 0 {
		t.Errorf("typecheck errors after placement: %v", errs)
	}

	if err := g.Mutate(PlaceChipChanges(coords, ctype, geom.NewOrientation())); err == nil {
		t.Errorf("placing a chip on an occupied cell succeeded")
	}

	if !g.Undo() {
		t.Fatalf("Undo returned false")
	}
	if _, _, _, ok := g.ChipAt(coords); ok {
		t.Errorf("chip remains after undo")
	}
	if countFragments(g) != 0 {
		t.Errorf("port stubs remain after undo")
	}
}

func TestMutateDetectsMultipleSenders(t *testing.T) {
	g := NewEditGrid(testBounds(), nil)
	west := circuit.ConstChip(1)
	east := circuit.ConstChip(2)
	flipped := geom.NewOrientation().RotateCW().RotateCW()
	if err := g.Mutate(PlaceChipChanges(geom.Coords{X: 0, Y: 0}, west, geom.NewOrientation())); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	if err := g.Mutate(PlaceChipChanges(geom.Coords{X: 2, Y: 0}, east, flipped)); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	// Join the two output stubs in the middle cell into one net.
	err := g.Mutate([]GridChange{ReplaceWires(
		wireMap(loc(1, 0, geom.West), circuit.ShapeStub, loc(1, 0, geom.East), circuit.ShapeStub),
		wireMap(loc(1, 0, geom.West), circuit.ShapeStraight, loc(1, 0, geom.East), circuit.ShapeStraight),
	)})
	if err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	found := false
	for _, werr := range g.Errors() {
		if _, ok := werr.(*engine.MultipleSendersError); ok {
			found = true
		}
	}
	if !found {
		t.Errorf("two constant outputs on one net: errors = %v", g.Errors())
	}
}

func TestSetBoundsValidation(t *testing.T) {
	g := NewEditGrid(testBounds(), nil)
	if err := g.Mutate(PlaceChipChanges(geom.Coords{X: 4, Y: 4}, circuit.NewChip(circuit.KindNot), geom.NewOrientation())); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	// Shrinking past the chip must fail.
	shrink := SetBounds(testBounds(), geom.CoordsRect{Width: 3, Height: 3})
	if err := g.Mutate([]GridChange{shrink}); err == nil {
		t.Errorf("shrinking the board over a chip succeeded")
	}
	// A stale old-bounds value must fail.
	stale := SetBounds(geom.CoordsRect{Width: 9, Height: 9}, geom.CoordsRect{Width: 10, Height: 10})
	if err := g.Mutate([]GridChange{stale}); err == nil {
		t.Errorf("SetBounds with stale old bounds succeeded")
	}
	grow := SetBounds(testBounds(), geom.CoordsRect{Width: 8, Height: 8})
	if err := g.Mutate([]GridChange{grow}); err != nil {
		t.Fatalf("growing the board failed: %v", err)
	}
	if g.Bounds().Width != 8 {
		t.Errorf("bounds = %v, want width 8", g.Bounds())
	}
}

func TestUndoRedoSymmetry(t *testing.T) {
	g := NewEditGrid(testBounds(), nil)
	steps := [][]GridChange{
		PlaceChipChanges(geom.Coords{X: 1, Y: 1}, circuit.NewChip(circuit.KindAnd), geom.NewOrientation()),
		{AddStubWire(geom.Coords{X: 3, Y: 3}, geom.South)},
		{SetBounds(testBounds(), geom.CoordsRect{Width: 7, Height: 7})},
	}
	for _, step := range steps {
		if err := g.Mutate(step); err != nil {
			t.Fatalf("Mutate failed: %v", err)
		}
	}
	chips, frags, bounds := len(g.Chips()), countFragments(g), g.Bounds()

	for i := 0; i < len(steps); i++ {
		if !g.Undo() {
			t.Fatalf("Undo %d returned false", i)
		}
	}
	if len(g.Chips()) != 0 || countFragments(g) != 0 || g.Bounds() != testBounds() {
		t.Fatalf("full undo did not restore the empty board")
	}
	for i := 0; i < len(steps); i++ {
		if !g.Redo() {
			t.Fatalf("Redo %d returned false", i)
		}
	}
	if len(g.Chips()) != chips || countFragments(g) != frags || g.Bounds() != bounds {
		t.Errorf("full redo did not restore the edited board")
	}
}
