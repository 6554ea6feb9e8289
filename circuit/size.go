// Package circuit defines the serializable circuit model: wire sizes and
// shapes, chip types, and the compact CircuitData form that circuits are
// stored and exchanged in.
package circuit

// WireSize is the bit width carried by a wire. Digital sizes are powers
// of two from zero to sixteen bits; SizeAnalog marks analog wires, which
// carry fixed-point values instead of bit patterns.
type WireSize int

const (
	SizeZero WireSize = iota
	SizeOne
	SizeTwo
	SizeFour
	SizeEight
	SizeSixteen
	SizeAnalog
)

// MinWireSize and MaxWireSize bound the digital size lattice.
const (
	MinWireSize = SizeZero
	MaxWireSize = SizeSixteen
)

// MinSizeForValue returns the smallest digital size that can carry the
// given value.
func MinSizeForValue(value uint16) WireSize {
	switch {
	case value > 0xff:
		return SizeSixteen
	case value > 0xf:
		return SizeEight
	case value > 3:
		return SizeFour
	case value > 1:
		return SizeTwo
	case value > 0:
		return SizeOne
	default:
		return SizeZero
	}
}

// NumBits returns the bit count of a digital size.
func (s WireSize) NumBits() uint {
	switch s {
	case SizeOne:
		return 1
	case SizeTwo:
		return 2
	case SizeFour:
		return 4
	case SizeEight:
		return 8
	case SizeSixteen:
		return 16
	default:
		return 0
	}
}

// Mask returns the value mask for a digital size. Analog wires hold an
// encoded fixed-point value and use the full 32 bits.
func (s WireSize) Mask() uint32 {
	if s == SizeAnalog {
		return 0xffffffff
	}
	return (1 << s.NumBits()) - 1
}

// Half returns the size with half as many bits. Halving one bit or zero
// bits yields zero bits; analog has no half.
func (s WireSize) Half() WireSize {
	switch s {
	case SizeZero, SizeOne:
		return SizeZero
	case SizeAnalog:
		return SizeAnalog
	default:
		return s - 1
	}
}

// Double returns the size with twice as many bits, and whether that size
// exists.
func (s WireSize) Double() (WireSize, bool) {
	switch s {
	case SizeZero:
		return SizeZero, true
	case SizeSixteen, SizeAnalog:
		return s, false
	default:
		return s + 1, true
	}
}

func (s WireSize) String() string {
	switch s {
	case SizeZero:
		return "0"
	case SizeOne:
		return "1"
	case SizeTwo:
		return "2"
	case SizeFour:
		return "4"
	case SizeEight:
		return "8"
	case SizeSixteen:
		return "16"
	default:
		return "Analog"
	}
}

// ParseWireSize inverts String.
func ParseWireSize(s string) (WireSize, bool) {
	switch s {
	case "0":
		return SizeZero, true
	case "1":
		return SizeOne, true
	case "2":
		return SizeTwo, true
	case "4":
		return SizeFour, true
	case "8":
		return SizeEight, true
	case "16":
		return SizeSixteen, true
	case "Analog":
		return SizeAnalog, true
	default:
		return SizeZero, false
	}
}
