package mathutil

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Clone returns a copy of v that never aliases it. A nil v yields an empty slice.
func Clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// FirstNonFinite returns the index of the first NaN or ±Inf entry, or -1.
func FirstNonFinite(v []float64) int {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return i
		}
	}
	return -1
}

// MaxAbsDiff returns max|a[i]-b[i]|. It panics if the lengths differ.
func MaxAbsDiff(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return floats.Distance(a, b, math.Inf(1))
}
