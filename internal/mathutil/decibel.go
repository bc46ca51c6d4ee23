package mathutil

import "math"

// Decibels returns 20·log10(v). Zero maps to -Inf and negative input to NaN.
func Decibels(v float64) float64 {
	return 20 * math.Log10(v)
}

// DecibelsVec stores Decibels(src[i]) in dst. dst and src may alias.
func DecibelsVec(dst, src []float64) {
	for i, v := range src {
		dst[i] = Decibels(v)
	}
}
