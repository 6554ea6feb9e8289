package grid

import (
	"github.com/fab-xyz/go-fab/circuit"
	"github.com/fab-xyz/go-fab/engine"
	"github.com/fab-xyz/go-fab/geom"
)

// ToCircuitData serializes the board.  Only one representative
// half-edge per wire shape is stored; the rest are implied and
// restored on load.  A stub abutting a larger shape is implied by that
// shape and dropped; stub pairs keep their east or south half.
func (g *EditGrid) ToCircuitData() *circuit.CircuitData {
	data := circuit.NewCircuitData(g.bounds.Width, g.bounds.Height)
	origin := g.bounds.TopLeft()
	for _, chip := range g.Chips() {
		data.InsertChip(origin.DeltaTo(chip.Coords), chip.Type, chip.Orient)
	}
	for loc, frag := range g.fragments {
		keep := false
		switch frag.Shape {
		case circuit.ShapeStub:
			other := engine.Loc{Coords: loc.Coords.Add(loc.Dir), Dir: loc.Dir.Opposite()}
			if o, ok := g.fragments[other]; ok && o.Shape == circuit.ShapeStub {
				keep = loc.Dir == geom.East || loc.Dir == geom.South
			}
		case circuit.ShapeStraight:
			keep = loc.Dir == geom.East || loc.Dir == geom.South
		case circuit.ShapeTurnLeft, circuit.ShapeSplitTee:
			keep = true
		case circuit.ShapeCross:
			keep = loc.Dir == geom.East
		}
		if keep {
			data.InsertWire(origin.DeltaTo(loc.Coords), loc.Dir, frag.Shape)
		}
	}
	return data
}

// FromCircuitData builds a board from serialized data.  Entries that
// would collide with already-restored fragments are dropped rather
// than corrupting the board.
func FromCircuitData(data *circuit.CircuitData, interfaces []*engine.Interface) *EditGrid {
	bounds := geom.CoordsRect{Width: data.Size.Width, Height: data.Size.Height}
	g := &EditGrid{
		bounds:     bounds,
		interfaces: interfaces,
		fragments:  make(map[engine.Loc]*engine.Fragment),
		chips:      make(map[geom.Coords]chipCell),
	}
	origin := bounds.TopLeft()
	for _, chip := range data.Chips() {
		g.applyChange(AddChip(origin.AddDelta(chip.Delta), chip.Type, chip.Orient))
	}
	for _, wire := range data.Wires() {
		g.restoreShape(origin.AddDelta(wire.Delta), wire.Dir, wire.Shape)
	}
	g.restoreStubs()
	g.typecheck()
	return g
}

// restoreShape expands one serialized wire entry into the full set of
// half-edges the shape occupies within its cell.  If any of them is
// already taken, the entry is skipped.
func (g *EditGrid) restoreShape(coords geom.Coords, dir geom.Direction, shape circuit.WireShape) {
	type half struct {
		dir   geom.Direction
		shape circuit.WireShape
	}
	var halves []half
	switch shape {
	case circuit.ShapeStub:
		halves = []half{{dir, circuit.ShapeStub}}
	case circuit.ShapeStraight:
		halves = []half{
			{dir, circuit.ShapeStraight},
			{dir.Opposite(), circuit.ShapeStraight},
		}
	case circuit.ShapeTurnLeft:
		halves = []half{
			{dir, circuit.ShapeTurnLeft},
			{dir.RotateCCW(), circuit.ShapeTurnRight},
		}
	case circuit.ShapeTurnRight:
		halves = []half{
			{dir, circuit.ShapeTurnRight},
			{dir.RotateCW(), circuit.ShapeTurnLeft},
		}
	case circuit.ShapeSplitTee:
		halves = []half{
			{dir, circuit.ShapeSplitTee},
			{dir.RotateCCW(), circuit.ShapeSplitRight},
			{dir.RotateCW(), circuit.ShapeSplitLeft},
		}
	case circuit.ShapeSplitLeft:
		halves = []half{
			{dir, circuit.ShapeSplitLeft},
			{dir.Opposite(), circuit.ShapeSplitRight},
			{dir.RotateCCW(), circuit.ShapeSplitTee},
		}
	case circuit.ShapeSplitRight:
		halves = []half{
			{dir, circuit.ShapeSplitRight},
			{dir.Opposite(), circuit.ShapeSplitLeft},
			{dir.RotateCW(), circuit.ShapeSplitTee},
		}
	default:
		for _, d := range geom.AllDirections() {
			halves = append(halves, half{d, circuit.ShapeCross})
		}
	}
	for _, h := range halves {
		if _, occupied := g.fragments[engine.Loc{Coords: coords, Dir: h.dir}]; occupied {
			return
		}
	}
	for _, h := range halves {
		g.fragments[engine.Loc{Coords: coords, Dir: h.dir}] = &engine.Fragment{Shape: h.shape}
	}
}

// restoreStubs adds the stub half of every fragment pair whose other
// half was implied away during serialization, including the stubs at
// chip and interface ports.
func (g *EditGrid) restoreStubs() {
	var missing []engine.Loc
	for loc := range g.fragments {
		other := engine.Loc{Coords: loc.Coords.Add(loc.Dir), Dir: loc.Dir.Opposite()}
		if _, ok := g.fragments[other]; !ok {
			missing = append(missing, other)
		}
	}
	for _, loc := range missing {
		g.fragments[loc] = &engine.Fragment{Shape: circuit.ShapeStub}
	}
}
