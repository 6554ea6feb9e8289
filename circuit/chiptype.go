package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fab-xyz/go-fab/geom"
)

// ChipKind enumerates the chips in the catalog.
type ChipKind int

const (
	KindACmp ChipKind = iota
	KindAAdd
	KindAMul
	KindAdd
	KindAdd2Bit
	KindAnd
	KindBreak
	KindButton
	KindClock
	KindCmp
	KindCmpEq
	KindCoerce
	KindComment
	KindConst
	KindCounter
	KindDelay
	KindDemux
	KindDiscard
	KindDisplay
	KindEggTimer
	KindEq
	KindFilter
	KindHalve
	KindInc
	KindIntegrate
	KindJoin
	KindLatch
	KindLatest
	KindMul
	KindMul4Bit
	KindMux
	KindNeg
	KindNot
	KindOr
	KindPack
	KindQueue
	KindRam
	KindRandom
	KindRelay
	KindSample
	KindScreen
	KindStack
	KindStopwatch
	KindSub
	KindToggle
	KindUnpack
	KindXor

	numChipKinds
)

var chipKindNames = map[ChipKind]string{
	KindACmp: "ACmp", KindAAdd: "AAdd", KindAMul: "AMul",
	KindAdd: "Add", KindAdd2Bit: "Add2Bit", KindAnd: "And",
	KindBreak: "Break", KindButton: "Button", KindClock: "Clock",
	KindCmp: "Cmp", KindCmpEq: "CmpEq", KindCoerce: "Coerce",
	KindComment: "Comment", KindConst: "Const", KindCounter: "Counter",
	KindDelay: "Delay", KindDemux: "Demux", KindDiscard: "Discard",
	KindDisplay: "Display", KindEggTimer: "EggTimer", KindEq: "Eq",
	KindFilter: "Filter", KindHalve: "Halve", KindInc: "Inc",
	KindIntegrate: "Integrate", KindJoin: "Join", KindLatch: "Latch",
	KindLatest: "Latest", KindMul: "Mul", KindMul4Bit: "Mul4Bit",
	KindMux: "Mux", KindNeg: "Neg", KindNot: "Not", KindOr: "Or",
	KindPack: "Pack", KindQueue: "Queue", KindRam: "Ram",
	KindRandom: "Random", KindRelay: "Relay", KindSample: "Sample",
	KindScreen: "Screen", KindStack: "Stack", KindStopwatch: "Stopwatch",
	KindSub: "Sub", KindToggle: "Toggle", KindUnpack: "Unpack",
	KindXor: "Xor",
}

var chipKindsByName = func() map[string]ChipKind {
	m := make(map[string]ChipKind, len(chipKindNames))
	for kind, name := range chipKindNames {
		m[name] = kind
	}
	return m
}()

// AllChipKinds lists every kind in a fixed order.
func AllChipKinds() []ChipKind {
	kinds := make([]ChipKind, 0, numChipKinds)
	for kind := ChipKind(0); kind < numChipKinds; kind++ {
		kinds = append(kinds, kind)
	}
	return kinds
}

// ChipType is a chip kind together with its per-placement payload (the
// constant value, toggle state, hotkey binding, and so on).
type ChipType struct {
	Kind ChipKind
	// Value is the emitted constant for Const chips.
	Value uint16
	// Flag is the Break enabled state or the Toggle initial state.
	Flag bool
	// Hotkey is the Button hotkey binding; empty means none.
	Hotkey string
	// Size is the coerced width for Coerce chips.
	Size WireSize
	// Comment is the Comment chip's label.
	Comment string
}

// NewChip returns a ChipType for a payload-free kind.
func NewChip(kind ChipKind) ChipType {
	return ChipType{Kind: kind}
}

// ConstChip returns a Const chip emitting the given value.
func ConstChip(value uint16) ChipType {
	return ChipType{Kind: KindConst, Value: value}
}

// BreakChip returns a Break chip with the given enabled state.
func BreakChip(enabled bool) ChipType {
	return ChipType{Kind: KindBreak, Flag: enabled}
}

// ToggleChip returns a Toggle chip with the given initial state.
func ToggleChip(on bool) ChipType {
	return ChipType{Kind: KindToggle, Flag: on}
}

// ButtonChip returns a Button chip with an optional hotkey binding.
func ButtonChip(hotkey string) ChipType {
	return ChipType{Kind: KindButton, Hotkey: hotkey}
}

// CoerceChip returns a Coerce chip pinned to the given width.
func CoerceChip(size WireSize) ChipType {
	return ChipType{Kind: KindCoerce, Size: size}
}

// CommentChip returns a Comment chip with the given label.
func CommentChip(text string) ChipType {
	return ChipType{Kind: KindComment, Comment: text}
}

// FootprintSize returns the chip's cell footprint in its default
// orientation.
func (ct ChipType) FootprintSize() geom.CoordsSize {
	switch ct.Kind {
	case KindRam, KindStack, KindQueue:
		return geom.CoordsSize{Width: 2, Height: 2}
	case KindDisplay, KindCounter, KindEggTimer, KindStopwatch:
		return geom.CoordsSize{Width: 2, Height: 1}
	case KindScreen:
		return geom.CoordsSize{Width: 5, Height: 5}
	default:
		return geom.CoordsSize{Width: 1, Height: 1}
	}
}

func (ct ChipType) String() string {
	name := chipKindNames[ct.Kind]
	switch ct.Kind {
	case KindConst:
		return fmt.Sprintf("%s(%d)", name, ct.Value)
	case KindBreak, KindToggle:
		return fmt.Sprintf("%s(%t)", name, ct.Flag)
	case KindButton:
		if ct.Hotkey == "" {
			return name
		}
		return fmt.Sprintf("%s(%s)", name, ct.Hotkey)
	case KindCoerce:
		return fmt.Sprintf("%s(%s)", name, ct.Size)
	case KindComment:
		return fmt.Sprintf("%s('%s')", name, ct.Comment)
	default:
		return name
	}
}

// ParseChipType inverts String, also accepting payload-free "Break",
// "Toggle", and "Coerce" spellings with default payloads.
func ParseChipType(s string) (ChipType, error) {
	name := s
	payload := ""
	hasPayload := false
	if i := strings.IndexByte(s, '('); i >= 0 && strings.HasSuffix(s, ")") {
		name = s[:i]
		payload = s[i+1 : len(s)-1]
		hasPayload = true
	}
	kind, ok := chipKindsByName[name]
	if !ok {
		return ChipType{}, fmt.Errorf("invalid chip type %q", s)
	}
	ct := ChipType{Kind: kind}
	switch kind {
	case KindConst:
		value, err := strconv.ParseUint(payload, 10, 16)
		if err != nil {
			return ChipType{}, fmt.Errorf("invalid chip type %q", s)
		}
		ct.Value = uint16(value)
	case KindBreak, KindToggle:
		if hasPayload {
			flag, err := strconv.ParseBool(payload)
			if err != nil {
				return ChipType{}, fmt.Errorf("invalid chip type %q", s)
			}
			ct.Flag = flag
		}
	case KindButton:
		ct.Hotkey = payload
	case KindCoerce:
		if hasPayload {
			size, ok := ParseWireSize(payload)
			if !ok {
				return ChipType{}, fmt.Errorf("invalid chip type %q", s)
			}
			ct.Size = size
		} else {
			ct.Size = SizeOne
		}
	case KindComment:
		if !strings.HasPrefix(payload, "'") || !strings.HasSuffix(payload, "'") || len(payload) < 2 {
			return ChipType{}, fmt.Errorf("invalid chip type %q", s)
		}
		ct.Comment = payload[1 : len(payload)-1]
	default:
		if hasPayload {
			return ChipType{}, fmt.Errorf("invalid chip type %q", s)
		}
	}
	return ct, nil
}
