package photons2d

import (
	"math"
	"testing"
)

func TestOffsets(t *testing.T) {
	got := Offsets(5, -10, 10)
	want := []Real{-10, -5, 0, 5, 10}
	if len(got) != len(want) {
		t.Fatalf("len %d", len(got))
	}
	for i := range want {
		if !approxEqual(got[i], want[i], 1e-12) {
			t.Fatalf("offset %d = %g, want %g", i, got[i], want[i])
		}
	}
	if o := Offsets(1, -10, 10); len(o) != 1 || o[0] != 0 {
		t.Fatalf("single offset: %v", o)
	}
	if o := Offsets(0, -1, 1); o != nil {
		t.Fatalf("zero offsets: %v", o)
	}
	o := Offsets(1000, -10, 10)
	if o[999] != 10 {
		t.Fatalf("last offset %g", o[999])
	}
	for i := 1; i < len(o); i++ {
		if o[i] <= o[i-1] {
			t.Fatalf("offsets not increasing at %d", i)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !isFinite(1) || isFinite(math.NaN()) || isFinite(math.Inf(-1)) {
		t.Fatal("isFinite wrong")
	}
	if imax(2, 3) != 3 || imax(3, 2) != 3 {
		t.Fatal("imax wrong")
	}
}
