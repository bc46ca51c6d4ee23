// Package mfcc extracts mel-frequency cepstral coefficients from a single
// audio frame read from a WAV or FLAC file.
package mfcc

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ieee0824/mfcc-go/audio"
	"github.com/ieee0824/mfcc-go/feature"
)

// Error kinds shared by every stage. Test with errors.Is.
var (
	ErrIO      = audio.ErrIO
	ErrFormat  = audio.ErrFormat
	ErrConfig  = feature.ErrConfig
	ErrNumeric = feature.ErrNumeric
)

// Extractor is the top-level MFCC extractor.
type Extractor struct {
	StrictFinite bool // reject NaN/Inf coefficients with ErrNumeric

	cfg    feature.Config
	logger *slog.Logger
	ext    *feature.Extractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConfig sets custom MFCC parameters.
func WithConfig(cfg feature.Config) Option {
	return func(e *Extractor) {
		e.cfg = cfg
	}
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStrictFinite enables or disables rejection of non-finite coefficients.
func WithStrictFinite(strict bool) Option {
	return func(e *Extractor) {
		e.StrictFinite = strict
	}
}

// New creates an Extractor. Defaults are feature.DefaultConfig, strict
// finiteness checking and a discarding logger.
func New(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		cfg:          feature.DefaultConfig(),
		StrictFinite: true,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	ext, err := feature.NewExtractor(e.cfg)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}
	e.ext = ext
	e.logger.Debug("mfcc: extractor ready",
		"frame_size", e.cfg.FrameSize,
		"freq_resolution", e.cfg.FreqResolution,
		"mel_channels", e.cfg.MelChannels,
		"mfcc_dim", e.cfg.MFCCDim,
		"transform", e.cfg.Transform,
	)
	return e, nil
}

// Config returns the MFCC parameters the extractor was built with.
func (e *Extractor) Config() feature.Config {
	return e.cfg
}

// FilterBank returns the mel filter bank in use.
func (e *Extractor) FilterBank() *feature.MelFilterBank {
	return e.ext.FilterBank()
}

// ExtractFile reads an audio file and returns the MFCCs of its first frame.
func (e *Extractor) ExtractFile(path string) ([]float64, error) {
	tr, err := e.TraceFile(path)
	if err != nil {
		return nil, err
	}
	return tr.MFCC, nil
}

// TraceFile is ExtractFile keeping every intermediate vector.
func (e *Extractor) TraceFile(path string) (*feature.Trace, error) {
	samples, header, err := audio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	e.logger.Debug("mfcc: audio loaded",
		"path", path,
		"sample_rate", header.SampleRate,
		"samples", header.NumSamples,
	)
	return e.ExtractTrace(samples)
}

// ExtractSamples fits samples to one frame and returns its MFCCs.
func (e *Extractor) ExtractSamples(samples []float64) ([]float64, error) {
	tr, err := e.ExtractTrace(samples)
	if err != nil {
		return nil, err
	}
	return tr.MFCC, nil
}

// ExtractTrace fits samples to one frame, truncating or zero-padding, and
// runs the full pipeline.
func (e *Extractor) ExtractTrace(samples []float64) (*feature.Trace, error) {
	if len(samples) != e.cfg.FrameSize {
		e.logger.Debug("mfcc: fitting frame", "have", len(samples), "want", e.cfg.FrameSize)
	}
	frame := audio.FitFrame(samples, e.cfg.FrameSize)

	tr, err := e.ext.ExtractDetailed(frame)
	if err != nil {
		return nil, fmt.Errorf("extract features: %w", err)
	}
	e.logger.Debug("mfcc: pipeline done",
		"bins", len(tr.Magnitude),
		"mel_channels", len(tr.MelEnergies),
		"coefficients", len(tr.MFCC),
	)

	if e.StrictFinite {
		if err := feature.CheckFinite(tr.LogMel); err != nil {
			return nil, fmt.Errorf("log compression: %w", err)
		}
		if err := feature.CheckFinite(tr.MFCC); err != nil {
			return nil, fmt.Errorf("cepstrum: %w", err)
		}
	}
	return tr, nil
}
