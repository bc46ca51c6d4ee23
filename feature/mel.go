package feature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ieee0824/mfcc-go/internal/mathutil"
)

const (
	melBreakHz = 700.0
	melQ       = 1127.01048
)

// HzToMel converts a frequency in Hz to mels: 1127.01048·ln(f/700 + 1).
func HzToMel(hz float64) float64 {
	return melQ * math.Log(hz/melBreakHz+1.0)
}

// MelToHz is the inverse of HzToMel: 700·(exp(m/1127.01048) - 1).
func MelToHz(mel float64) float64 {
	return melBreakHz * (math.Exp(mel/melQ) - 1.0)
}

// MelFilterBank is a set of triangular filters over a magnitude spectrum of
// fixed length. Row c of weights is filter c.
type MelFilterBank struct {
	nyq     int
	weights *mat.Dense // [channels][nyq]
	start   []int
	center  []int
	end     []int
	centers []float64 // center frequencies in Hz
}

// NewMelFilterBank builds channels triangular filters for a spectrum of nyq bins.
//
// nyq is used both as the bin count and as the top frequency in Hz (one bin
// per Hz), so melmax = HzToMel(nyq). The filters are spaced evenly on the mel
// scale; filter c rises from the previous center to its own and falls to the
// next one.
func NewMelFilterBank(nyq, channels int) (*MelFilterBank, error) {
	if nyq <= 0 {
		return nil, fmt.Errorf("%w: spectrum length %d", ErrConfig, nyq)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: mel channels %d", ErrConfig, channels)
	}

	// melMax and dMel stay float64. Truncating them to integers moves the
	// centers by up to about one percent (5331 vs 5282 for nyq=22000, c=12).
	melMax := HzToMel(float64(nyq))
	dMel := melMax / float64(channels+1)

	fb := &MelFilterBank{
		nyq:     nyq,
		weights: mat.NewDense(channels, nyq, nil),
		start:   make([]int, channels),
		center:  make([]int, channels),
		end:     make([]int, channels),
		centers: make([]float64, channels),
	}

	for c := 0; c < channels; c++ {
		fb.centers[c] = MelToHz(float64(c+1) * dMel)
		idx := int(math.Floor(fb.centers[c]))
		fb.center[c] = min(max(idx, 0), nyq-1)
	}
	for c := 0; c < channels; c++ {
		if c > 0 {
			fb.start[c] = fb.center[c-1]
		}
		if c < channels-1 {
			fb.end[c] = fb.center[c+1]
		} else {
			fb.end[c] = nyq
		}
	}

	for c := 0; c < channels; c++ {
		row := fb.weights.RawRowView(c)
		s, ctr, e := fb.start[c], fb.center[c], fb.end[c]
		for i := s; i < ctr; i++ {
			row[i] = float64(i-s) / float64(ctr-s)
		}
		for i := ctr; i < e; i++ {
			row[i] = 1.0 - float64(i-ctr)/float64(e-ctr)
		}
	}

	return fb, nil
}

// Channels returns the number of filters.
func (fb *MelFilterBank) Channels() int { return len(fb.center) }

// Len returns the spectrum length the filters expect.
func (fb *MelFilterBank) Len() int { return fb.nyq }

// Filter returns a copy of the weights of filter c.
func (fb *MelFilterBank) Filter(c int) []float64 {
	return mat.Row(nil, c, fb.weights)
}

// Bounds returns the support [start, end) and the peak bin of filter c.
func (fb *MelFilterBank) Bounds(c int) (start, center, end int) {
	return fb.start[c], fb.center[c], fb.end[c]
}

// Centers returns the filter center frequencies in Hz.
func (fb *MelFilterBank) Centers() []float64 {
	return mathutil.Clone(fb.centers)
}

// Apply projects a magnitude spectrum onto the filters:
// energy[c] = Σ_i amp[i]·weight[c][i].
func (fb *MelFilterBank) Apply(amp []float64) ([]float64, error) {
	if len(amp) != fb.nyq {
		return nil, fmt.Errorf("%w: spectrum has %d bins, filter bank expects %d", ErrConfig, len(amp), fb.nyq)
	}
	energies := mat.NewVecDense(fb.Channels(), nil)
	energies.MulVec(fb.weights, mat.NewVecDense(len(amp), amp))
	return energies.RawVector().Data, nil
}

// LogCompress converts amplitudes to decibels: 20·log10(a).
// Zero maps to -Inf and negative values to NaN; callers that cannot accept
// non-finite output should run CheckFinite.
func LogCompress(a []float64) []float64 {
	out := make([]float64, len(a))
	mathutil.DecibelsVec(out, a)
	return out
}

// CheckFinite returns an ErrNumeric naming the first NaN or infinite entry.
func CheckFinite(v []float64) error {
	if i := mathutil.FirstNonFinite(v); i >= 0 {
		return fmt.Errorf("%w: value %d is %v", ErrNumeric, i, v[i])
	}
	return nil
}
