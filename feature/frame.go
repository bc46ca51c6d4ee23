package feature

import (
	"fmt"
	"math"
)

// PreEmphasize applies a first-order high-pass filter: y[n] = x[n] - alpha*x[n-1].
// y[0] = x[0]. The input is left untouched.
func PreEmphasize(samples []float64, alpha float64) []float64 {
	out := make([]float64, len(samples))
	if len(samples) == 0 {
		return out
	}
	out[0] = samples[0]
	for i := 1; i < len(samples); i++ {
		out[i] = samples[i] - alpha*samples[i-1]
	}
	return out
}

// HannWeights returns the n-point symmetric Hann window 0.5 - 0.5*cos(2πi/(n-1)).
func HannWeights(n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %w: hann window needs at least 2 samples, got %d", ErrConfig, ErrNumeric, n)
	}
	w := make([]float64, n)
	denom := float64(n - 1)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/denom)
	}
	return w, nil
}

// HannWindow applies a Hann window in-place.
func HannWindow(frame []float64) error {
	w, err := HannWeights(len(frame))
	if err != nil {
		return err
	}
	applyWindow(frame, w)
	return nil
}

func applyWindow(frame, window []float64) {
	for i := range frame {
		frame[i] *= window[i]
	}
}
