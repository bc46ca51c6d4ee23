package feature

import (
	"fmt"
	"math"
)

// Transform selects how the spectral step is computed.
type Transform string

const (
	// TransformDirect is the O(N·F) direct summation.
	TransformDirect Transform = "direct"
	// TransformFFT folds the frame modulo F and runs a mixed-radix FFT.
	// Bin i still corresponds to frequency i·rate/F.
	TransformFFT Transform = "fft"
)

// Config holds all MFCC extraction parameters.
type Config struct {
	FrameSize      int       `yaml:"frame_size" json:"frame_size"`           // samples per analysis frame (N)
	FreqResolution int       `yaml:"freq_resolution" json:"freq_resolution"` // spectral bins before the Nyquist cut (F)
	MelChannels    int       `yaml:"mel_channels" json:"mel_channels"`       // triangular filters (C)
	MFCCDim        int       `yaml:"mfcc_dim" json:"mfcc_dim"`               // coefficients kept after liftering (M)
	PreEmphasis    float64   `yaml:"preemphasis_alpha" json:"preemphasis_alpha"`
	Transform      Transform `yaml:"transform" json:"transform"`
	Workers        int       `yaml:"workers" json:"workers"` // direct DFT workers; 0 = GOMAXPROCS, 1 = sequential
}

// DefaultConfig returns the default 1024-sample, 20-channel, 12-coefficient setup.
func DefaultConfig() Config {
	return Config{
		FrameSize:      1024,
		FreqResolution: 44000,
		MelChannels:    20,
		MFCCDim:        12,
		PreEmphasis:    0.97,
		Transform:      TransformDirect,
		Workers:        1,
	}
}

// NyquistBins returns the magnitude spectrum length after the Nyquist cut.
func (c Config) NyquistBins() int {
	return c.FreqResolution / 2
}

// Validate reports the first invalid parameter as an ErrConfig.
func (c Config) Validate() error {
	switch {
	case c.FrameSize < 2:
		return fmt.Errorf("%w: frame size %d (need at least 2)", ErrConfig, c.FrameSize)
	case c.FreqResolution < 2:
		return fmt.Errorf("%w: frequency resolution %d (need at least 2)", ErrConfig, c.FreqResolution)
	case c.MelChannels < 1:
		return fmt.Errorf("%w: mel channels %d", ErrConfig, c.MelChannels)
	case c.MFCCDim < 1:
		return fmt.Errorf("%w: mfcc dim %d", ErrConfig, c.MFCCDim)
	case c.MFCCDim >= c.MelChannels:
		return fmt.Errorf("%w: mfcc dim %d must be below mel channels %d", ErrConfig, c.MFCCDim, c.MelChannels)
	case math.IsNaN(c.PreEmphasis) || math.IsInf(c.PreEmphasis, 0):
		return fmt.Errorf("%w: pre-emphasis coefficient %v", ErrConfig, c.PreEmphasis)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrConfig, c.Workers)
	}
	switch c.Transform {
	case TransformDirect, TransformFFT:
	default:
		return fmt.Errorf("%w: unknown transform %q", ErrConfig, c.Transform)
	}
	return nil
}
