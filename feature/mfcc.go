package feature

import (
	"fmt"
	"runtime"

	"gonum.org/v1/gonum/mat"

	"github.com/ieee0824/mfcc-go/internal/mathutil"
)

// Trace holds every intermediate vector of one extraction.
type Trace struct {
	Emphasized  []float64 `json:"emphasized" yaml:"emphasized" msgpack:"emphasized"`
	Windowed    []float64 `json:"windowed" yaml:"windowed" msgpack:"windowed"`
	Real        []float64 `json:"real" yaml:"real" msgpack:"real"`
	Imag        []float64 `json:"imag" yaml:"imag" msgpack:"imag"`
	Magnitude   []float64 `json:"magnitude" yaml:"magnitude" msgpack:"magnitude"` // after the Nyquist cut
	MelEnergies []float64 `json:"mel_energies" yaml:"mel_energies" msgpack:"mel_energies"`
	LogMel      []float64 `json:"log_mel" yaml:"log_mel" msgpack:"log_mel"`
	Cepstrum    []float64 `json:"cepstrum" yaml:"cepstrum" msgpack:"cepstrum"`
	MFCC        []float64 `json:"mfcc" yaml:"mfcc" msgpack:"mfcc"`
}

// Extractor computes MFCCs from single frames. It precomputes the window,
// filter bank and DCT basis once and is immutable afterwards, so one
// Extractor may be shared between goroutines.
type Extractor struct {
	cfg    Config
	window []float64
	melFB  *MelFilterBank
	dct    *mat.Dense
}

// NewExtractor validates cfg and builds the reusable tables.
func NewExtractor(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	window, err := HannWeights(cfg.FrameSize)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	melFB, err := NewMelFilterBank(cfg.NyquistBins(), cfg.MelChannels)
	if err != nil {
		return nil, fmt.Errorf("mel filter bank: %w", err)
	}
	return &Extractor{
		cfg:    cfg,
		window: window,
		melFB:  melFB,
		dct:    DCTBasis(cfg.MelChannels),
	}, nil
}

// Config returns the configuration the extractor was built with.
func (e *Extractor) Config() Config { return e.cfg }

// FilterBank returns the extractor's mel filter bank.
func (e *Extractor) FilterBank() *MelFilterBank { return e.melFB }

// Extract returns the MFCC vector (cepstrum[1 : MFCCDim+1]) of frame.
// len(frame) must equal Config.FrameSize.
func (e *Extractor) Extract(frame []float64) ([]float64, error) {
	tr, err := e.ExtractDetailed(frame)
	if err != nil {
		return nil, err
	}
	return tr.MFCC, nil
}

// ExtractDetailed runs the pipeline and keeps every intermediate vector.
func (e *Extractor) ExtractDetailed(frame []float64) (*Trace, error) {
	if len(frame) != e.cfg.FrameSize {
		return nil, fmt.Errorf("%w: frame has %d samples, want %d", ErrConfig, len(frame), e.cfg.FrameSize)
	}
	tr := &Trace{}

	// 1. Pre-emphasis
	tr.Emphasized = PreEmphasize(frame, e.cfg.PreEmphasis)

	// 2. Hann window
	tr.Windowed = mathutil.Clone(tr.Emphasized)
	applyWindow(tr.Windowed, e.window)

	// 3. Spectral transform
	tr.Real, tr.Imag = e.transform(tr.Windowed)

	// 4. Magnitude, cut at Nyquist
	amp, err := Magnitude(tr.Real, tr.Imag)
	if err != nil {
		return nil, fmt.Errorf("magnitude: %w", err)
	}
	tr.Magnitude = amp[:e.cfg.NyquistBins():e.cfg.NyquistBins()]

	// 5. Mel filter bank
	tr.MelEnergies, err = e.melFB.Apply(tr.Magnitude)
	if err != nil {
		return nil, fmt.Errorf("mel filter bank: %w", err)
	}

	// 6. Log compression
	tr.LogMel = LogCompress(tr.MelEnergies)

	// 7. DCT-II
	tr.Cepstrum = dctApply(e.dct, tr.LogMel, false)

	// 8. Lifter: drop c0, keep MFCCDim coefficients
	tr.MFCC = mathutil.Clone(tr.Cepstrum[1 : e.cfg.MFCCDim+1])

	return tr, nil
}

func (e *Extractor) transform(x []float64) (re, im []float64) {
	f := e.cfg.FreqResolution
	if e.cfg.Transform == TransformFFT {
		return FastDFT(x, f)
	}
	workers := e.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return ParallelDFT(x, f, workers)
}
