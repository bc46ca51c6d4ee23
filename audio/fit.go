package audio

import "math"

// FitFrame returns exactly n samples: samples truncated to n, or
// zero-padded at the end when shorter. The input is not modified.
func FitFrame(samples []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	copy(out, samples)
	return out
}

// Sine synthesizes n samples of amplitude·sin(2π·freq·i/sampleRate).
func Sine(n int, freq float64, sampleRate int, amplitude float64) []float64 {
	if n <= 0 || sampleRate <= 0 {
		return nil
	}
	out := make([]float64, n)
	step := 2 * math.Pi * freq / float64(sampleRate)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}
