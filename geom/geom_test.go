package geom

import (
	"math"
	"testing"
)

func TestDirectionRotate(t *testing.T) {
	for _, dir := range AllDirections() {
		if dir == dir.RotateCW() || dir == dir.RotateCCW() {
			t.Errorf("%v: quarter turn should change direction", dir)
		}
		if got := dir.RotateCW().RotateCCW(); got != dir {
			t.Errorf("%v: cw then ccw = %v", dir, got)
		}
		if got := dir.RotateCCW().RotateCW(); got != dir {
			t.Errorf("%v: ccw then cw = %v", dir, got)
		}
		if dir.IsVertical() == dir.RotateCW().IsVertical() {
			t.Errorf("%v: quarter turn should flip axis", dir)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	coords := Coords{3, -4}
	for _, dir := range AllDirections() {
		opp := dir.Opposite()
		if dir == opp {
			t.Errorf("%v equals its opposite", dir)
		}
		if opp.Opposite() != dir {
			t.Errorf("%v: double opposite = %v", dir, opp.Opposite())
		}
		if coords.Add(dir) != coords.Sub(opp) {
			t.Errorf("%v: add != sub of opposite", dir)
		}
	}
}

func TestDirectionFlipVert(t *testing.T) {
	for _, dir := range AllDirections() {
		flipped := dir.FlipVert()
		if dir.IsVertical() != flipped.IsVertical() {
			t.Errorf("%v: flip changed axis", dir)
		}
		if dir.IsVertical() && flipped != dir.Opposite() {
			t.Errorf("%v: vertical flip should reverse", dir)
		}
		if !dir.IsVertical() && flipped != dir {
			t.Errorf("%v: horizontal flip should be identity", dir)
		}
	}
}

func TestOrientationStringRoundTrip(t *testing.T) {
	for _, name := range []string{"f0", "f1", "f2", "f3", "t0", "t1", "t2", "t3"} {
		orient, err := ParseOrientation(name)
		if err != nil {
			t.Fatalf("ParseOrientation(%q): %v", name, err)
		}
		if got := orient.String(); got != name {
			t.Errorf("round trip %q = %q", name, got)
		}
	}
	if _, err := ParseOrientation("x5"); err == nil {
		t.Errorf("expected error for invalid orientation")
	}
	if got := NewOrientation().String(); got != "f0" {
		t.Errorf("identity = %q, want f0", got)
	}
	if got := NewOrientation().RotateCCW().String(); got != "f3" {
		t.Errorf("ccw = %q, want f3", got)
	}
	if got := NewOrientation().FlipHorz().String(); got != "t2" {
		t.Errorf("flip horz = %q, want t2", got)
	}
}

func TestOrientationApply(t *testing.T) {
	for _, dir := range AllDirections() {
		if got := NewOrientation().Apply(dir); got != dir {
			t.Errorf("identity * %v = %v", dir, got)
		}
		if got := NewOrientation().RotateCW().Apply(dir); got != dir.RotateCW() {
			t.Errorf("cw * %v = %v", dir, got)
		}
		if got := NewOrientation().RotateCCW().Apply(dir); got != dir.RotateCCW() {
			t.Errorf("ccw * %v = %v", dir, got)
		}
		if got := NewOrientation().FlipVert().Apply(dir); got != dir.FlipVert() {
			t.Errorf("flip * %v = %v", dir, got)
		}
	}
}

func TestOrientationCompose(t *testing.T) {
	orient := NewOrientation().FlipVert().RotateCW()
	if got := orient.Compose(orient); got != NewOrientation() {
		t.Errorf("self-inverse orientation composed with itself = %v", got)
	}
	orient = NewOrientation().RotateCW().FlipVert()
	if got := orient.RotateCCW(); got != NewOrientation().FlipHorz() {
		t.Errorf("rotate/flip identity failed: %v", got)
	}
	// Composition must act the same as applying both in sequence.
	variants := []Orientation{
		NewOrientation(),
		NewOrientation().RotateCW(),
		NewOrientation().RotateCW().RotateCW(),
		NewOrientation().RotateCCW(),
		NewOrientation().FlipVert(),
		NewOrientation().FlipVert().RotateCW(),
		NewOrientation().FlipHorz(),
		NewOrientation().FlipHorz().RotateCW(),
	}
	for _, a := range variants {
		for _, b := range variants {
			for _, dir := range AllDirections() {
				if got, want := a.Compose(b).Apply(dir), a.Apply(b.Apply(dir)); got != want {
					t.Errorf("(%v*%v)*%v = %v, want %v", a, b, dir, got, want)
				}
			}
		}
	}
}

func TestOrientationTransformInSize(t *testing.T) {
	size := CoordsSize{Width: 3, Height: 2}
	tests := []struct {
		orient Orientation
		delta  CoordsDelta
		want   CoordsDelta
	}{
		{NewOrientation(), CoordsDelta{0, 0}, CoordsDelta{0, 0}},
		{NewOrientation(), CoordsDelta{2, 1}, CoordsDelta{2, 1}},
		{NewOrientation().RotateCW(), CoordsDelta{0, 0}, CoordsDelta{1, 0}},
		{NewOrientation().RotateCW(), CoordsDelta{2, 1}, CoordsDelta{0, 2}},
		{NewOrientation().RotateCW().RotateCW(), CoordsDelta{0, 0}, CoordsDelta{2, 1}},
		{NewOrientation().FlipVert(), CoordsDelta{0, 0}, CoordsDelta{0, 1}},
		{NewOrientation().FlipVert(), CoordsDelta{2, 1}, CoordsDelta{2, 0}},
	}
	for _, test := range tests {
		if got := test.orient.TransformInSize(test.delta, size); got != test.want {
			t.Errorf("%v.TransformInSize(%v) = %v, want %v",
				test.orient, test.delta, got, test.want)
		}
	}
}

func TestOrientationTransformSize(t *testing.T) {
	size := CoordsSize{Width: 3, Height: 2}
	if got := NewOrientation().TransformSize(size); got != size {
		t.Errorf("identity changed size: %v", got)
	}
	want := CoordsSize{Width: 2, Height: 3}
	if got := NewOrientation().RotateCW().TransformSize(size); got != want {
		t.Errorf("rotated size = %v, want %v", got, want)
	}
	if got := NewOrientation().FlipVert().TransformSize(size); got != size {
		t.Errorf("flipped size = %v, want %v", got, size)
	}
}

func TestRectContains(t *testing.T) {
	rect := CoordsRect{X: -1, Y: 2, Width: 3, Height: 4}
	inside := []Coords{{-1, 2}, {1, 2}, {-1, 5}, {1, 5}, {0, 3}}
	for _, c := range inside {
		if !rect.Contains(c) {
			t.Errorf("rect should contain %v", c)
		}
	}
	outside := []Coords{{-2, 2}, {2, 2}, {-1, 1}, {-1, 6}, {2, 6}}
	for _, c := range outside {
		if rect.Contains(c) {
			t.Errorf("rect should not contain %v", c)
		}
	}
}

func TestRectIntersection(t *testing.T) {
	a := CoordsRect{X: 0, Y: 0, Width: 4, Height: 4}
	b := CoordsRect{X: 2, Y: 1, Width: 4, Height: 2}
	want := CoordsRect{X: 2, Y: 1, Width: 2, Height: 2}
	if got := a.Intersection(b); got != want {
		t.Errorf("intersection = %v, want %v", got, want)
	}
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Errorf("rects should intersect")
	}
	c := CoordsRect{X: 4, Y: 0, Width: 2, Height: 2}
	if a.Intersects(c) {
		t.Errorf("adjacent rects should not intersect")
	}
	if got := a.Intersection(c); !got.IsEmpty() {
		t.Errorf("disjoint intersection = %v", got)
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := CoordsRect{X: 0, Y: 0, Width: 5, Height: 5}
	if !outer.ContainsRect(CoordsRect{X: 1, Y: 1, Width: 3, Height: 3}) {
		t.Errorf("inner rect should be contained")
	}
	if outer.ContainsRect(CoordsRect{X: 3, Y: 3, Width: 3, Height: 3}) {
		t.Errorf("overhanging rect should not be contained")
	}
	if !outer.ContainsRect(CoordsRect{}) {
		t.Errorf("empty rect should be contained")
	}
}

func TestFixedRoundTrips(t *testing.T) {
	values := []Fixed{
		FixedZero,
		FixedOne,
		FixedOne.Neg(),
		FixedFromFloat(0.5),
		FixedFromFloat(-0.5),
		FixedFromFloat(0.25),
		FixedFromFloat(-0.75),
		FixedFromFloat(math.Sqrt2 / 2),
	}
	for _, value := range values {
		if got := FixedFromEncoded(value.Encoded()); got != value {
			t.Errorf("encoded round trip of %v = %v", value, got)
		}
		if got := FixedFromFloat(value.Float()); got != value {
			t.Errorf("float round trip of %v = %v", value, got)
		}
	}
}

func TestFixedClamp(t *testing.T) {
	if got := NewFixed(math.MaxInt32); got != FixedOne {
		t.Errorf("clamp high = %v", got)
	}
	if got := NewFixed(math.MinInt32); got != FixedOne.Neg() {
		t.Errorf("clamp low = %v", got)
	}
	if got := FixedOne.Add(FixedOne); got != FixedOne {
		t.Errorf("saturating add = %v", got)
	}
	if got := FixedOne.Neg().Sub(FixedOne); got != FixedOne.Neg() {
		t.Errorf("saturating sub = %v", got)
	}
}

func TestFixedArith(t *testing.T) {
	half := FixedFromRatio(1, 2)
	quarter := FixedFromRatio(1, 4)
	if got := half.Mul(half); got != quarter {
		t.Errorf("0.5*0.5 = %v, want %v", got, quarter)
	}
	if got := half.Add(half); got != FixedOne {
		t.Errorf("0.5+0.5 = %v", got)
	}
	if got := half.Cmp(quarter); got != 1 {
		t.Errorf("0.5 cmp 0.25 = %d", got)
	}
	if got := quarter.Neg().Cmp(FixedZero); got != -1 {
		t.Errorf("-0.25 cmp 0 = %d", got)
	}
}
