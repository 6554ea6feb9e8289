package circuit

// WireSizeInterval is a closed interval on the wire size lattice, used
// while solving size constraints. The canonical empty interval has its
// bounds inverted; all empty intervals are considered equal.
type WireSizeInterval struct {
	Lo, Hi WireSize
}

// EmptyInterval returns the canonical empty interval.
func EmptyInterval() WireSizeInterval {
	return WireSizeInterval{Lo: MaxWireSize, Hi: MinWireSize}
}

// FullInterval covers every digital size.
func FullInterval() WireSizeInterval {
	return WireSizeInterval{Lo: MinWireSize, Hi: MaxWireSize}
}

// ExactInterval contains a single size.
func ExactInterval(size WireSize) WireSizeInterval {
	return WireSizeInterval{Lo: size, Hi: size}
}

// AtLeastInterval covers sizes from the given one up.
func AtLeastInterval(size WireSize) WireSizeInterval {
	return WireSizeInterval{Lo: size, Hi: MaxWireSize}
}

// IsEmpty reports whether the interval contains no size.
func (i WireSizeInterval) IsEmpty() bool {
	return i.Lo > i.Hi
}

// IsAmbiguous reports whether the interval contains more than one size.
func (i WireSizeInterval) IsAmbiguous() bool {
	return i.Lo < i.Hi
}

// LowerBound returns the smallest size in the interval, or false if the
// interval is empty. A non-singleton interval resolves to its lower
// bound (the minimum viable width).
func (i WireSizeInterval) LowerBound() (WireSize, bool) {
	if i.IsEmpty() {
		return SizeZero, false
	}
	return i.Lo, true
}

// MakeAtLeast raises the lower bound and reports whether the interval
// changed.
func (i *WireSizeInterval) MakeAtLeast(size WireSize) bool {
	if !i.IsEmpty() && i.Lo < size {
		i.Lo = size
		return true
	}
	return false
}

// MakeAtMost lowers the upper bound and reports whether the interval
// changed.
func (i *WireSizeInterval) MakeAtMost(size WireSize) bool {
	if !i.IsEmpty() && i.Hi > size {
		i.Hi = size
		return true
	}
	return false
}

// Intersection returns the sizes contained in both intervals.
func (i WireSizeInterval) Intersection(other WireSizeInterval) WireSizeInterval {
	return WireSizeInterval{Lo: max(i.Lo, other.Lo), Hi: min(i.Hi, other.Hi)}
}

// Half maps the interval through the size-halving function. Sizes below
// two bits have no distinct half, so the lower bound saturates.
func (i WireSizeInterval) Half() WireSizeInterval {
	if i.IsEmpty() {
		return EmptyInterval()
	}
	return WireSizeInterval{Lo: max(i.Lo, SizeTwo).Half(), Hi: i.Hi.Half()}
}

// Double maps the interval through the size-doubling function. If even
// the lower bound cannot double, the result is empty.
func (i WireSizeInterval) Double() WireSizeInterval {
	if i.IsEmpty() {
		return EmptyInterval()
	}
	lo, ok := i.Lo.Double()
	if !ok {
		return EmptyInterval()
	}
	hi, ok := i.Hi.Double()
	if !ok {
		hi = MaxWireSize
	}
	return WireSizeInterval{Lo: lo, Hi: hi}
}

// Equals compares intervals, treating all empty intervals as equal.
func (i WireSizeInterval) Equals(other WireSizeInterval) bool {
	if i.IsEmpty() {
		return other.IsEmpty()
	}
	if other.IsEmpty() {
		return false
	}
	return i.Lo == other.Lo && i.Hi == other.Hi
}
