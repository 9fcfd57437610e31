package photons2d

import (
	"math"
)

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Offsets returns n evenly spaced values from lo to hi inclusive.
// A single offset is placed in the middle of the range.
func Offsets(n int, lo, hi Real) []Real {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Real{(lo + hi) / 2}
	}
	out := make([]Real, n)
	step := (hi - lo) / Real(n-1)
	for i := range out {
		out[i] = lo + Real(i)*step
	}
	out[n-1] = hi
	return out
}
