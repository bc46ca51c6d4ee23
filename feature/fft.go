package feature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FastDFT returns the same f bins as DFT using gonum's mixed-radix FFT.
//
// The direct sum only depends on k modulo f, so samples are folded into an
// f-point sequence first (zero-padded when len(x) < f). The upper half of the
// spectrum is filled from conjugate symmetry.
func FastDFT(x []float64, f int) (re, im []float64) {
	seq := make([]float64, f)
	for k, v := range x {
		seq[k%f] += v
	}

	coeffs := fourier.NewFFT(f).Coefficients(nil, seq)

	re = make([]float64, f)
	im = make([]float64, f)
	for i, c := range coeffs {
		re[i] = real(c)
		im[i] = imag(c)
	}
	for i := len(coeffs); i < f; i++ {
		c := coeffs[f-i]
		re[i] = real(c)
		im[i] = -imag(c)
	}
	return re, im
}

// Magnitude computes sqrt(re²+im²) per bin.
func Magnitude(re, im []float64) ([]float64, error) {
	if len(re) != len(im) {
		return nil, fmt.Errorf("%w: real part has %d bins, imaginary part %d", ErrConfig, len(re), len(im))
	}
	amp := make([]float64, len(re))
	for i := range re {
		amp[i] = math.Sqrt(re[i]*re[i] + im[i]*im[i])
	}
	return amp, nil
}
