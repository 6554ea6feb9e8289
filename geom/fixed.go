package geom

import "strconv"

const fixedLimit = 1_000_000_000

// Fixed is a fixed-point number clamped to the range [-1.0, 1.0],
// inclusive on both sides. Analog wires carry Fixed values.
type Fixed struct {
	inner int32
}

// FixedZero is the Fixed value 0.0.
var FixedZero = Fixed{0}

// FixedOne is the Fixed value 1.0.
var FixedOne = Fixed{fixedLimit}

// NewFixed clamps the raw representation into range.
func NewFixed(inner int32) Fixed {
	if inner >= fixedLimit {
		return Fixed{fixedLimit}
	}
	if inner <= -fixedLimit {
		return Fixed{-fixedLimit}
	}
	return Fixed{inner}
}

// FixedFromRatio returns the nearest Fixed to numerator/denominator.
func FixedFromRatio(numerator, denominator int32) Fixed {
	sign := int32(1)
	if numerator < 0 {
		sign = -sign
		numerator = -numerator
	}
	if denominator < 0 {
		sign = -sign
		denominator = -denominator
	}
	dividend := int64(numerator) * fixedLimit
	divisor := int64(denominator)
	quotient := dividend / divisor
	remainder := dividend % divisor
	var magnitude int32
	switch {
	case quotient >= fixedLimit:
		magnitude = fixedLimit
	case remainder*2 >= divisor:
		magnitude = int32(quotient) + 1
	default:
		magnitude = int32(quotient)
	}
	return Fixed{sign * magnitude}
}

// FixedFromFloat rounds a float to the nearest Fixed, clamping to range.
func FixedFromFloat(value float64) Fixed {
	if value > 1.0 {
		value = 1.0
	} else if value < -1.0 {
		value = -1.0
	}
	scaled := value * fixedLimit
	if scaled >= 0 {
		return NewFixed(int32(scaled + 0.5))
	}
	return NewFixed(int32(scaled - 0.5))
}

// Float converts the Fixed to a float64.
func (f Fixed) Float() float64 {
	return float64(f.inner) / fixedLimit
}

// FixedFromEncoded reinterprets a 32-bit slot value as a Fixed.
func FixedFromEncoded(encoded uint32) Fixed {
	return NewFixed(int32(encoded))
}

// Encoded reinterprets the Fixed as a 32-bit slot value.
func (f Fixed) Encoded() uint32 {
	return uint32(f.inner)
}

// Abs returns the magnitude of f.
func (f Fixed) Abs() Fixed {
	if f.inner < 0 {
		return Fixed{-f.inner}
	}
	return f
}

// Neg returns the negation of f.
func (f Fixed) Neg() Fixed {
	return Fixed{-f.inner}
}

// Add returns f+other, saturating at the range limits.
func (f Fixed) Add(other Fixed) Fixed {
	return NewFixed(f.inner + other.inner)
}

// Sub returns f-other, saturating at the range limits.
func (f Fixed) Sub(other Fixed) Fixed {
	return NewFixed(f.inner - other.inner)
}

// Mul returns the product of f and other, truncated toward zero.
func (f Fixed) Mul(other Fixed) Fixed {
	product := int64(f.inner) * int64(other.inner)
	return Fixed{int32(product / fixedLimit)}
}

// Cmp returns -1, 0, or 1 as f is less than, equal to, or greater than
// other.
func (f Fixed) Cmp(other Fixed) int {
	switch {
	case f.inner < other.inner:
		return -1
	case f.inner > other.inner:
		return 1
	default:
		return 0
	}
}

func (f Fixed) String() string {
	return strconv.FormatFloat(f.Float(), 'g', -1, 64)
}
