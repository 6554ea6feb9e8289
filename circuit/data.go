package circuit

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fab-xyz/go-fab/geom"
)

// CircuitData is the compact serialized form of a circuit: the bounds
// size plus chip and wire maps keyed by cell deltas relative to the
// bounds origin.
type CircuitData struct {
	Size  geom.CoordsSize
	chips map[geom.CoordsDelta]chipEntry
	wires map[wireKey]WireShape
}

type chipEntry struct {
	ctype  ChipType
	orient geom.Orientation
}

type wireKey struct {
	delta geom.CoordsDelta
	dir   geom.Direction
}

// ChipEntry is one chip placement in a CircuitData.
type ChipEntry struct {
	Delta  geom.CoordsDelta
	Type   ChipType
	Orient geom.Orientation
}

// WireEntry is one wire fragment in a CircuitData.
type WireEntry struct {
	Delta geom.CoordsDelta
	Dir   geom.Direction
	Shape WireShape
}

// NewCircuitData returns empty data with the given bounds size.
func NewCircuitData(width, height int) *CircuitData {
	return &CircuitData{
		Size:  geom.CoordsSize{Width: width, Height: height},
		chips: make(map[geom.CoordsDelta]chipEntry),
		wires: make(map[wireKey]WireShape),
	}
}

// InsertChip records a chip at the given delta.
func (d *CircuitData) InsertChip(delta geom.CoordsDelta, ctype ChipType, orient geom.Orientation) {
	d.chips[delta] = chipEntry{ctype: ctype, orient: orient}
}

// InsertWire records a wire fragment at the given half-edge.
func (d *CircuitData) InsertWire(delta geom.CoordsDelta, dir geom.Direction, shape WireShape) {
	d.wires[wireKey{delta: delta, dir: dir}] = shape
}

// Chips lists the chip placements sorted by delta.
func (d *CircuitData) Chips() []ChipEntry {
	entries := make([]ChipEntry, 0, len(d.chips))
	for delta, entry := range d.chips {
		entries = append(entries, ChipEntry{Delta: delta, Type: entry.ctype, Orient: entry.orient})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Delta.X != entries[j].Delta.X {
			return entries[i].Delta.X < entries[j].Delta.X
		}
		return entries[i].Delta.Y < entries[j].Delta.Y
	})
	return entries
}

// Wires lists the wire fragments sorted by delta and direction.
func (d *CircuitData) Wires() []WireEntry {
	entries := make([]WireEntry, 0, len(d.wires))
	for key, shape := range d.wires {
		entries = append(entries, WireEntry{Delta: key.delta, Dir: key.dir, Shape: shape})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Delta.X != b.Delta.X {
			return a.Delta.X < b.Delta.X
		}
		if a.Delta.Y != b.Delta.Y {
			return a.Delta.Y < b.Delta.Y
		}
		return a.Dir < b.Dir
	})
	return entries
}

// NumWires returns the number of stored wire fragments.
func (d *CircuitData) NumWires() int {
	return len(d.wires)
}

// WireLength is the score metric for circuit compactness: the count of
// serialized wire fragments.
func (d *CircuitData) WireLength() int {
	return len(d.wires)
}

type circuitDoc struct {
	Size  [2]int            `toml:"size"`
	Chips map[string]string `toml:"chips"`
	Wires map[string]string `toml:"wires"`
}

// Encode serializes the data as a TOML document with deterministic key
// order.
func (d *CircuitData) Encode() ([]byte, error) {
	doc := circuitDoc{
		Size:  [2]int{d.Size.Width, d.Size.Height},
		Chips: make(map[string]string, len(d.chips)),
		Wires: make(map[string]string, len(d.wires)),
	}
	for delta, entry := range d.chips {
		doc.Chips[deltaKey(delta)] = fmt.Sprintf("%s-%s", entry.orient, entry.ctype)
	}
	for key, shape := range d.wires {
		doc.Wires[locationKey(key.delta, key.dir)] = shape.String()
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode circuit: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCircuitData parses a TOML document produced by Encode.
func DecodeCircuitData(data []byte) (*CircuitData, error) {
	var doc circuitDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode circuit: %w", err)
	}
	out := NewCircuitData(doc.Size[0], doc.Size[1])
	for key, spec := range doc.Chips {
		delta, ok := parseDeltaKey(key)
		if !ok {
			return nil, fmt.Errorf("decode circuit: invalid coords key %q", key)
		}
		dash := strings.IndexByte(spec, '-')
		if dash < 0 {
			return nil, fmt.Errorf("decode circuit: invalid chip spec %q", spec)
		}
		orient, err := geom.ParseOrientation(spec[:dash])
		if err != nil {
			return nil, fmt.Errorf("decode circuit: invalid chip spec %q", spec)
		}
		ctype, err := ParseChipType(spec[dash+1:])
		if err != nil {
			return nil, fmt.Errorf("decode circuit: invalid chip spec %q", spec)
		}
		out.InsertChip(delta, ctype, orient)
	}
	for key, name := range doc.Wires {
		delta, dir, ok := parseLocationKey(key)
		if !ok {
			return nil, fmt.Errorf("decode circuit: invalid location key %q", key)
		}
		shape, ok := ParseWireShape(name)
		if !ok {
			return nil, fmt.Errorf("decode circuit: invalid wire shape %q", name)
		}
		out.InsertWire(delta, dir, shape)
	}
	return out, nil
}

// LoadCircuitData reads and decodes a circuit file.
func LoadCircuitData(path string) (*CircuitData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read circuit file: %w", err)
	}
	return DecodeCircuitData(data)
}

// Save encodes and writes the data to a circuit file.
func (d *CircuitData) Save(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write circuit file: %w", err)
	}
	return nil
}

// deltaKey encodes a signed delta as sign-letter tokens, "p2m3" for
// (+2, -3).
func deltaKey(delta geom.CoordsDelta) string {
	return fmt.Sprintf("%s%s", signToken(delta.X), signToken(delta.Y))
}

func signToken(v int) string {
	if v < 0 {
		return fmt.Sprintf("m%d", -v)
	}
	return fmt.Sprintf("p%d", v)
}

func parseDeltaKey(key string) (geom.CoordsDelta, bool) {
	x, rest, ok := parseSignToken(key)
	if !ok {
		return geom.CoordsDelta{}, false
	}
	y, rest, ok := parseSignToken(rest)
	if !ok || rest != "" {
		return geom.CoordsDelta{}, false
	}
	return geom.CoordsDelta{X: x, Y: y}, true
}

func parseSignToken(s string) (value int, rest string, ok bool) {
	if s == "" {
		return 0, "", false
	}
	sign := 0
	switch s[0] {
	case 'p':
		sign = 1
	case 'm':
		sign = -1
	default:
		return 0, "", false
	}
	i := 1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		value = value*10 + int(s[i]-'0')
		i++
	}
	if i == 1 {
		return 0, "", false
	}
	return sign * value, s[i:], true
}

func locationKey(delta geom.CoordsDelta, dir geom.Direction) string {
	return deltaKey(delta) + string(dirLetter(dir))
}

func dirLetter(dir geom.Direction) byte {
	switch dir {
	case geom.East:
		return 'e'
	case geom.South:
		return 's'
	case geom.West:
		return 'w'
	default:
		return 'n'
	}
}

func parseLocationKey(key string) (geom.CoordsDelta, geom.Direction, bool) {
	if key == "" {
		return geom.CoordsDelta{}, 0, false
	}
	var dir geom.Direction
	switch key[len(key)-1] {
	case 'e':
		dir = geom.East
	case 's':
		dir = geom.South
	case 'w':
		dir = geom.West
	case 'n':
		dir = geom.North
	default:
		return geom.CoordsDelta{}, 0, false
	}
	delta, ok := parseDeltaKey(key[:len(key)-1])
	if !ok {
		return geom.CoordsDelta{}, 0, false
	}
	return delta, dir, true
}
