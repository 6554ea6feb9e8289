package engine

import (
	"fmt"
	"sort"

	"github.com/fab-xyz/go-fab/circuit"
)

// WireID indexes a wire net within a typechecked grid.
type WireID int

// WireColor is the resolved value discipline of a wire net.
type WireColor int

const (
	// WireUnknown marks a net not connected to any ports.
	WireUnknown WireColor = iota
	// WireAmbiguous marks a net connected to ports of different colors.
	WireAmbiguous
	WireBehavior
	WireEvent
	WireAnalog
)

func (c WireColor) String() string {
	switch c {
	case WireAmbiguous:
		return "Ambiguous"
	case WireBehavior:
		return "Behavior"
	case WireEvent:
		return "Event"
	case WireAnalog:
		return "Analog"
	default:
		return "Unknown"
	}
}

// PortInfo is the flow and color of a port, as seen by the net it is
// attached to.
type PortInfo struct {
	Flow  PortFlow
	Color PortColor
}

// Fragment is one wire half-edge stored in a grid, tagged with the net
// it was last assigned to.
type Fragment struct {
	Shape circuit.WireShape
	Wire  WireID
}

// WireInfo is one wire net: its fragments, its attached ports, and the
// results of typechecking.
type WireInfo struct {
	Fragments map[Loc]bool
	Ports     map[Loc]PortInfo
	Color     WireColor
	Size      circuit.WireSizeInterval
	HasError  bool
}

func newWireInfo(fragments map[Loc]bool, ports map[Loc]PortInfo) *WireInfo {
	return &WireInfo{
		Fragments: fragments,
		Ports:     ports,
		Color:     WireUnknown,
		Size:      circuit.FullInterval(),
	}
}

// WireError is a typechecking failure attributable to one or more wire
// nets.
type WireError interface {
	error
	WireIDs() []WireID
}

// MultipleSendersError reports a net driven by more than one source
// port.
type MultipleSendersError struct {
	Wire WireID
}

func (e *MultipleSendersError) Error() string {
	return fmt.Sprintf("wire %d has multiple senders", e.Wire)
}

func (e *MultipleSendersError) WireIDs() []WireID { return []WireID{e.Wire} }

// PortColorMismatchError reports a net connected to ports of different
// colors.
type PortColorMismatchError struct {
	Wire WireID
}

func (e *PortColorMismatchError) Error() string {
	return fmt.Sprintf("wire %d has a color mismatch", e.Wire)
}

func (e *PortColorMismatchError) WireIDs() []WireID { return []WireID{e.Wire} }

// NoValidSizeError reports a net whose size interval became empty.
type NoValidSizeError struct {
	Wire WireID
}

func (e *NoValidSizeError) Error() string {
	return fmt.Sprintf("wire %d has a size mismatch", e.Wire)
}

func (e *NoValidSizeError) WireIDs() []WireID { return []WireID{e.Wire} }

// UnbrokenLoopError reports a dependency cycle among wire nets with no
// Delay chip to break it.  ContainsEvents is true if any net in the
// cycle carries events.
type UnbrokenLoopError struct {
	Wires          []WireID
	ContainsEvents bool
}

func (e *UnbrokenLoopError) Error() string {
	return fmt.Sprintf("wires %v form a loop", e.Wires)
}

func (e *UnbrokenLoopError) WireIDs() []WireID { return e.Wires }

// GroupWires collects fragments into connected wire nets, attaching
// ports to the nets whose stubs touch them, and assigns a WireID to
// every fragment.  Ports with no fragment at their location get a
// fragment-less net of their own.  Net numbering is deterministic.
func GroupWires(allPorts map[Loc]PortInfo, allFragments map[Loc]*Fragment) []*WireInfo {
	starts := make([]Loc, 0, len(allFragments))
	for loc := range allFragments {
		starts = append(starts, loc)
	}
	sortLocs(starts)

	visited := make(map[Loc]bool, len(allFragments))
	var wires []*WireInfo
	for _, start := range starts {
		if visited[start] {
			continue
		}
		visited[start] = true
		stack := []Loc{start}
		fragments := map[Loc]bool{start: true}
		ports := make(map[Loc]PortInfo)
		for len(stack) > 0 {
			loc := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			shape := allFragments[loc].Shape
			next := []Loc{{Coords: loc.Coords.Add(loc.Dir), Dir: loc.Dir.Opposite()}}
			if shape == circuit.ShapeStub {
				if port, ok := allPorts[loc]; ok {
					ports[loc] = port
				}
			}
			for _, dir := range shape.Connections(loc.Dir) {
				next = append(next, Loc{Coords: loc.Coords, Dir: dir})
			}
			for _, n := range next {
				if _, ok := allFragments[n]; ok && !fragments[n] {
					fragments[n] = true
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
		id := WireID(len(wires))
		for loc := range fragments {
			allFragments[loc].Wire = id
		}
		wires = append(wires, newWireInfo(fragments, ports))
	}

	// Ports with no wire get a fragment-less net so that chips can
	// still be evaluated against them.
	orphans := make([]Loc, 0)
	for loc := range allPorts {
		if _, ok := allFragments[loc]; !ok {
			orphans = append(orphans, loc)
		}
	}
	sortLocs(orphans)
	for _, loc := range orphans {
		ports := map[Loc]PortInfo{loc: allPorts[loc]}
		wires = append(wires, newWireInfo(make(map[Loc]bool), ports))
	}
	return wires
}

func sortLocs(locs []Loc) {
	sort.Slice(locs, func(i, j int) bool {
		a, b := locs[i], locs[j]
		if a.Coords.X != b.Coords.X {
			return a.Coords.X < b.Coords.X
		}
		if a.Coords.Y != b.Coords.Y {
			return a.Coords.Y < b.Coords.Y
		}
		return a.Dir < b.Dir
	})
}

// RecolorWires assigns each net a color from its attached ports and
// seeds its size interval, reporting color mismatches and nets with
// more than one sender.
func RecolorWires(wires []*WireInfo) []WireError {
	var errs []WireError
	for index, wire := range wires {
		numSenders := 0
		var hasBehavior, hasEvent, hasAnalog bool
		for _, port := range wire.Ports {
			if port.Flow == FlowSource {
				numSenders++
			}
			switch port.Color {
			case PortBehavior:
				hasBehavior = true
			case PortEvent:
				hasEvent = true
			case PortAnalog:
				hasAnalog = true
			}
		}
		switch {
		case hasBehavior && (hasEvent || hasAnalog) || hasEvent && hasAnalog:
			wire.Color = WireAmbiguous
			wire.Size = circuit.AtLeastInterval(circuit.SizeOne)
			wire.HasError = true
			errs = append(errs, &PortColorMismatchError{Wire: WireID(index)})
		case hasBehavior:
			wire.Color = WireBehavior
			wire.Size = circuit.AtLeastInterval(circuit.SizeOne)
		case hasEvent:
			wire.Color = WireEvent
			wire.Size = circuit.FullInterval()
		case hasAnalog:
			wire.Color = WireAnalog
			wire.Size = circuit.ExactInterval(circuit.SizeAnalog)
		default:
			wire.Color = WireUnknown
			wire.Size = circuit.EmptyInterval()
		}
		if numSenders > 1 {
			wire.HasError = true
			errs = append(errs, &MultipleSendersError{Wire: WireID(index)})
		}
	}
	return errs
}

// MapPortsToWires indexes every port location by the net it belongs to.
func MapPortsToWires(wires []*WireInfo) map[Loc]WireID {
	wiresForPorts := make(map[Loc]WireID)
	for index, wire := range wires {
		for loc := range wire.Ports {
			wiresForPorts[loc] = WireID(index)
		}
	}
	return wiresForPorts
}

// DetermineWireSizes narrows each net's size interval until the
// constraint set reaches a fixed point.  Equal and Double constraints
// are retained while their intervals stay ambiguous; the rest apply
// once.  Nets with a known color but an empty interval get a
// NoValidSizeError.
func DetermineWireSizes(wires []*WireInfo, wiresForPorts map[Loc]WireID, constraints []PortConstraint) []WireError {
	changed := true
	for changed {
		changed = false
		kept := constraints[:0]
		for _, constraint := range constraints {
			retain := false
			switch constraint.Kind {
			case ConstraintExact:
				wire := wires[wiresForPorts[constraint.Loc]]
				newSize := wire.Size.Intersection(circuit.ExactInterval(constraint.Size))
				if !newSize.Equals(wire.Size) {
					wire.Size = newSize
					changed = true
				}
			case ConstraintAtLeast:
				wire := wires[wiresForPorts[constraint.Loc]]
				if wire.Size.MakeAtLeast(constraint.Size) {
					changed = true
				}
			case ConstraintAtMost:
				wire := wires[wiresForPorts[constraint.Loc]]
				if wire.Size.MakeAtMost(constraint.Size) {
					changed = true
				}
			case ConstraintEqual:
				id1 := wiresForPorts[constraint.Loc]
				id2 := wiresForPorts[constraint.Other]
				if id1 != id2 {
					size1, size2 := wires[id1].Size, wires[id2].Size
					if !size1.IsEmpty() && !size2.IsEmpty() {
						newSize := size1.Intersection(size2)
						if !newSize.Equals(size1) || !newSize.Equals(size2) {
							changed = true
						}
						wires[id1].Size = newSize
						wires[id2].Size = newSize
						retain = newSize.IsAmbiguous()
					}
				}
			case ConstraintDouble:
				id1 := wiresForPorts[constraint.Loc]
				id2 := wiresForPorts[constraint.Other]
				if id1 == id2 {
					// A wire cannot be double its own size.
					wire := wires[id1]
					if !wire.Size.IsEmpty() {
						changed = true
					}
					wire.Size = circuit.EmptyInterval()
				} else {
					size1, size2 := wires[id1].Size, wires[id2].Size
					if !size1.IsEmpty() && !size2.IsEmpty() {
						newSize1 := size1.Intersection(size2.Double())
						newSize2 := size2.Intersection(size1.Half())
						if !newSize1.Equals(size1) || !newSize2.Equals(size2) {
							changed = true
						}
						wires[id1].Size = newSize1
						wires[id2].Size = newSize2
						retain = newSize1.IsAmbiguous() || newSize2.IsAmbiguous()
					}
				}
			}
			if retain {
				kept = append(kept, constraint)
			}
		}
		constraints = kept
	}

	var errs []WireError
	for index, wire := range wires {
		if wire.Color != WireUnknown && wire.Size.IsEmpty() {
			wire.HasError = true
			errs = append(errs, &NoValidSizeError{Wire: WireID(index)})
		}
	}
	return errs
}

// DetectLoops orders the nets into groups such that every net's
// dependency sources fall in an earlier group.  On success the groups
// drive the evaluator's subcycle order.  On failure it reports each
// strongly connected component (ignoring trivial single-net components
// without a self-loop) as an UnbrokenLoopError.
func DetectLoops(wires []*WireInfo, wiresForPorts map[Loc]WireID, dependencies []PortDependency) ([][]WireID, []WireError) {
	n := len(wires)
	successors := make([][]WireID, n)
	for _, dep := range dependencies {
		sink := wiresForPorts[dep.Sink]
		source := wiresForPorts[dep.Source]
		successors[sink] = append(successors[sink], source)
	}

	if groups, ok := sortIntoGroups(n, successors); ok {
		return groups, nil
	}

	var errs []WireError
	for _, comp := range stronglyConnected(n, successors) {
		if len(comp) == 1 {
			selfLoop := false
			for _, succ := range successors[comp[0]] {
				if succ == comp[0] {
					selfLoop = true
				}
			}
			if !selfLoop {
				continue
			}
		}
		containsEvents := false
		for _, id := range comp {
			if wires[id].Color == WireEvent {
				containsEvents = true
			}
			wires[id].HasError = true
		}
		errs = append(errs, &UnbrokenLoopError{Wires: comp, ContainsEvents: containsEvents})
	}
	return nil, errs
}

// sortIntoGroups performs a layered topological sort: group k holds the
// nets whose every predecessor sits in a group before k.  Reports
// failure if any cycle prevents the sort from consuming all nets.
func sortIntoGroups(n int, successors [][]WireID) ([][]WireID, bool) {
	indegree := make([]int, n)
	for _, succs := range successors {
		for _, succ := range succs {
			indegree[succ]++
		}
	}
	var frontier []WireID
	for id := 0; id < n; id++ {
		if indegree[id] == 0 {
			frontier = append(frontier, WireID(id))
		}
	}
	var groups [][]WireID
	placed := 0
	for len(frontier) > 0 {
		groups = append(groups, frontier)
		placed += len(frontier)
		var next []WireID
		for _, id := range frontier {
			for _, succ := range successors[id] {
				indegree[succ]--
				if indegree[succ] == 0 {
					next = append(next, succ)
				}
			}
		}
		frontier = next
	}
	if placed < n {
		return nil, false
	}
	return groups, true
}

// stronglyConnected is Tarjan's algorithm, iterative to avoid deep
// recursion on long wire chains.
func stronglyConnected(n int, successors [][]WireID) [][]WireID {
	const unvisited = -1
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}
	var stack []WireID
	var comps [][]WireID
	counter := 0

	type frame struct {
		node WireID
		succ int
	}
	for start := 0; start < n; start++ {
		if index[start] != unvisited {
			continue
		}
		callStack := []frame{{node: WireID(start)}}
		index[start] = counter
		lowlink[start] = counter
		counter++
		stack = append(stack, WireID(start))
		onStack[start] = true
		for len(callStack) > 0 {
			top := &callStack[len(callStack)-1]
			v := top.node
			if top.succ < len(successors[v]) {
				w := successors[v][top.succ]
				top.succ++
				if index[w] == unvisited {
					index[w] = counter
					lowlink[w] = counter
					counter++
					stack = append(stack, w)
					onStack[w] = true
					callStack = append(callStack, frame{node: w})
				} else if onStack[w] {
					if index[w] < lowlink[v] {
						lowlink[v] = index[w]
					}
				}
				continue
			}
			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := callStack[len(callStack)-1].node
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}
			if lowlink[v] == index[v] {
				var comp []WireID
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				sort.Slice(comp, func(i, j int) bool { return comp[i] < comp[j] })
				comps = append(comps, comp)
			}
		}
	}
	return comps
}
