package grid

import (
	"testing"

	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/engine"
	"github.com/fab-xyz/go-fab/geom"
)

func loc(x, y int, dir geom.Direction) engine.Loc {
	return engine.Loc{Coords: geom.Coords{X: x, Y: y}, Dir: dir}
}

func wireMap(pairs ...interface{}) map[engine.Loc]circuit.WireShape {
	m := make(map[engine.Loc]circuit.WireShape)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i].(engine.Loc)] = pairs[i+1].(circuit.WireShape)
	}
	return m
}

func TestInvertRoundTrip(t *testing.T) {
	changes := []GridChange{
		AddStubWire(geom.Coords{X: 1, Y: 1}, geom.East),
		AddChip(geom.Coords{X: 2, Y: 2}, circuit.NewChip(circuit.KindAnd), geom.NewOrientation()),
		SetBounds(geom.CoordsRect{Width: 4, Height: 4}, geom.CoordsRect{Width: 6, Height: 6}),
	}
	for _, change := range changes {
		twice := change.Invert().Invert()
		if twice.Kind != change.Kind {
			t.Errorf("double inversion changed kind: %v vs %v", twice.Kind, change.Kind)
		}
		for l, shape := range change.OldWires {
			if twice.OldWires[l] != shape {
				t.Errorf("double inversion changed OldWires[%v]", l)
			}
		}
		for l, shape := range change.NewWires {
			if twice.NewWires[l] != shape {
				t.Errorf("double inversion changed NewWires[%v]", l)
			}
		}
		if twice.Coords != change.Coords || twice.Chip != change.Chip ||
			twice.Orient != change.Orient ||
			twice.OldBounds != change.OldBounds || twice.NewBounds != change.NewBounds {
			t.Errorf("double inversion = %+v, want %+v", twice, change)
		}
	}
}

func TestCollapseWireChangesCancel(t *testing.T) {
	a := loc(0, 0, geom.East)
	group := []GridChange{
		MassAddWires(wireMap(a, circuit.ShapeStub)),
		MassRemoveWires(wireMap(a, circuit.ShapeStub)),
	}
	if collapsed := InvertAndCollapseGroup(group); len(collapsed) != 0 {
		t.Errorf("collapsed group = %v, want empty", collapsed)
	}
}

func TestCollapseWireChangesFuse(t *testing.T) {
	a, b, c := loc(0, 0, geom.East), loc(1, 0, geom.West), loc(1, 0, geom.East)
	group := []GridChange{
		MassAddWires(wireMap(a, circuit.ShapeStub, b, circuit.ShapeStub)),
		ReplaceWires(
			wireMap(b, circuit.ShapeStub),
			wireMap(c, circuit.ShapeStub),
		),
	}
	collapsed := InvertAndCollapseGroup(group)
	if len(collapsed) != 1 {
		t.Fatalf("collapsed to %d changes, want 1: %v", len(collapsed), collapsed)
	}
	change := collapsed[0]
	if change.Kind != ChangeReplaceWires {
		t.Fatalf("collapsed change kind = %v, want ChangeReplaceWires", change.Kind)
	}
	wantOld := wireMap(a, circuit.ShapeStub, c, circuit.ShapeStub)
	if len(change.OldWires) != len(wantOld) {
		t.Errorf("OldWires = %v, want %v", change.OldWires, wantOld)
	}
	for l, shape := range wantOld {
		if change.OldWires[l] != shape {
			t.Errorf("OldWires[%v] = %v, want %v", l, change.OldWires[l], shape)
		}
	}
	if len(change.NewWires) != 0 {
		t.Errorf("NewWires = %v, want empty", change.NewWires)
	}
}

func TestCollapseChipAddRemoveCancel(t *testing.T) {
	coords := geom.Coords{X: 1, Y: 1}
	ctype := circuit.NewChip(circuit.KindNot)
	orient := geom.NewOrientation()
	group := []GridChange{
		AddChip(coords, ctype, orient),
		RemoveChip(coords, ctype, orient),
	}
	if collapsed := InvertAndCollapseGroup(group); len(collapsed) != 0 {
		t.Errorf("collapsed group = %v, want empty", collapsed)
	}
}

func TestCollapseChipDifferentOrientationKept(t *testing.T) {
	coords := geom.Coords{X: 1, Y: 1}
	ctype := circuit.NewChip(circuit.KindNot)
	group := []GridChange{
		AddChip(coords, ctype, geom.NewOrientation()),
		RemoveChip(coords, ctype, geom.NewOrientation().RotateCW()),
	}
	if collapsed := InvertAndCollapseGroup(group); len(collapsed) != 2 {
		t.Errorf("collapsed to %d changes, want 2", len(collapsed))
	}
}

func TestCollapseSetBoundsChain(t *testing.T) {
	r1 := geom.CoordsRect{Width: 4, Height: 4}
	r2 := geom.CoordsRect{Width: 5, Height: 4}
	r3 := geom.CoordsRect{Width: 6, Height: 4}
	group := []GridChange{SetBounds(r1, r2), SetBounds(r2, r3)}
	collapsed := InvertAndCollapseGroup(group)
	if len(collapsed) != 1 {
		t.Fatalf("collapsed to %d changes, want 1: %v", len(collapsed), collapsed)
	}
	if collapsed[0].OldBounds != r3 || collapsed[0].NewBounds != r1 {
		t.Errorf("collapsed bounds = %v -> %v, want %v -> %v",
			collapsed[0].OldBounds, collapsed[0].NewBounds, r3, r1)
	}

	roundTrip := []GridChange{SetBounds(r1, r2), SetBounds(r2, r1)}
	if collapsed := InvertAndCollapseGroup(roundTrip); len(collapsed) != 0 {
		t.Errorf("collapsed round trip = %v, want empty", collapsed)
	}
}

func TestCollapseDropsNoOps(t *testing.T) {
	a := loc(0, 0, geom.East)
	r := geom.CoordsRect{Width: 4, Height: 4}
	group := []GridChange{
		ReplaceWires(wireMap(a, circuit.ShapeStub), wireMap(a, circuit.ShapeStub)),
	}
	if collapsed := InvertAndCollapseGroup(group); len(collapsed) != 0 {
		t.Errorf("no-op wire change survived: %v", collapsed)
	}
	group = []GridChange{
		AddChip(geom.Coords{X: 2, Y: 2}, circuit.NewChip(circuit.KindAnd), geom.NewOrientation()),
		SetBounds(r, r),
	}
	collapsed := InvertAndCollapseGroup(group)
	if len(collapsed) != 1 || collapsed[0].Kind != ChangeRemoveChip {
		t.Errorf("collapsed group = %v, want just the chip removal", collapsed)
	}
}
