package circuit

import "testing"

var allDigitalSizes = []WireSize{
	SizeZero, SizeOne, SizeTwo, SizeFour, SizeEight, SizeSixteen,
}

func TestMinSizeForValue(t *testing.T) {
	for _, size := range allDigitalSizes {
		mask := size.Mask()
		if mask > 0xffff {
			t.Fatalf("%v: mask %#x exceeds 16 bits", size, mask)
		}
		if got := MinSizeForValue(uint16(mask)); got != size {
			t.Errorf("MinSizeForValue(%#x) = %v, want %v", mask, got, size)
		}
	}
}

func TestSizeHalfDouble(t *testing.T) {
	for _, size := range allDigitalSizes[1:] {
		doubled, ok := size.Half().Double()
		if size == SizeOne {
			// One bit halves to zero, which doubles back to zero.
			if !ok || doubled != SizeZero {
				t.Errorf("One.Half().Double() = %v, %t", doubled, ok)
			}
			continue
		}
		if !ok || doubled != size {
			t.Errorf("%v.Half().Double() = %v, %t", size, doubled, ok)
		}
	}
	if _, ok := SizeSixteen.Double(); ok {
		t.Errorf("Sixteen should not double")
	}
	if _, ok := SizeAnalog.Double(); ok {
		t.Errorf("Analog should not double")
	}
}

func TestSizeStringRoundTrip(t *testing.T) {
	for _, size := range append(allDigitalSizes, SizeAnalog) {
		got, ok := ParseWireSize(size.String())
		if !ok || got != size {
			t.Errorf("round trip %v = %v, %t", size, got, ok)
		}
	}
	if _, ok := ParseWireSize("3"); ok {
		t.Errorf("expected parse failure for 3")
	}
}

func TestIntervalIsEmpty(t *testing.T) {
	if !EmptyInterval().IsEmpty() {
		t.Errorf("empty interval should be empty")
	}
	if FullInterval().IsEmpty() {
		t.Errorf("full interval should not be empty")
	}
	if ExactInterval(SizeZero).IsEmpty() {
		t.Errorf("exact interval should not be empty")
	}
}

func TestIntervalHalf(t *testing.T) {
	tests := []struct {
		in, want WireSizeInterval
	}{
		{EmptyInterval(), EmptyInterval()},
		{ExactInterval(SizeOne), EmptyInterval()},
		{FullInterval(), WireSizeInterval{Lo: SizeOne, Hi: SizeEight}},
		{WireSizeInterval{Lo: SizeFour, Hi: SizeSixteen}, WireSizeInterval{Lo: SizeTwo, Hi: SizeEight}},
	}
	for _, test := range tests {
		if got := test.in.Half(); !got.Equals(test.want) {
			t.Errorf("%v.Half() = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestIntervalDouble(t *testing.T) {
	tests := []struct {
		in, want WireSizeInterval
	}{
		{EmptyInterval(), EmptyInterval()},
		{ExactInterval(SizeSixteen), EmptyInterval()},
		{WireSizeInterval{Lo: SizeTwo, Hi: SizeEight}, WireSizeInterval{Lo: SizeFour, Hi: SizeSixteen}},
		{WireSizeInterval{Lo: SizeOne, Hi: SizeSixteen}, WireSizeInterval{Lo: SizeTwo, Hi: SizeSixteen}},
	}
	for _, test := range tests {
		if got := test.in.Double(); !got.Equals(test.want) {
			t.Errorf("%v.Double() = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestIntervalBounds(t *testing.T) {
	interval := FullInterval()
	if !interval.MakeAtLeast(SizeTwo) {
		t.Errorf("MakeAtLeast should report a change")
	}
	if interval.MakeAtLeast(SizeOne) {
		t.Errorf("MakeAtLeast below lower bound should not change")
	}
	if !interval.MakeAtMost(SizeEight) {
		t.Errorf("MakeAtMost should report a change")
	}
	if lo, ok := interval.LowerBound(); !ok || lo != SizeTwo {
		t.Errorf("LowerBound = %v, %t", lo, ok)
	}
	got := interval.Intersection(ExactInterval(SizeFour))
	if !got.Equals(ExactInterval(SizeFour)) {
		t.Errorf("intersection = %v", got)
	}
	got = interval.Intersection(ExactInterval(SizeSixteen))
	if !got.IsEmpty() {
		t.Errorf("disjoint intersection should be empty, got %v", got)
	}
	if _, ok := got.LowerBound(); ok {
		t.Errorf("empty interval should have no lower bound")
	}
}
