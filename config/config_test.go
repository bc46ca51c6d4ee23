package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ieee0824/mfcc-go/feature"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mfcc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultInput, cfg.Input)
	require.Equal(t, FormatText, cfg.Output.Format)
	require.Equal(t, feature.DefaultConfig(), cfg.Feature)
}

func TestLoad_Partial(t *testing.T) {
	path := writeConfig(t, `
feature:
  frame_size: 512
  transform: fft
output:
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 512, cfg.Feature.FrameSize)
	require.Equal(t, feature.TransformFFT, cfg.Feature.Transform)
	require.Equal(t, 44000, cfg.Feature.FreqResolution)
	require.Equal(t, 20, cfg.Feature.MelChannels)
	require.Equal(t, 12, cfg.Feature.MFCCDim)
	require.InDelta(t, 0.97, cfg.Feature.PreEmphasis, 1e-12)
	require.Equal(t, FormatJSON, cfg.Output.Format)
	require.Equal(t, DefaultInput, cfg.Input)
}

func TestLoad_ExplicitZeroPreEmphasis(t *testing.T) {
	cfg, err := Load(writeConfig(t, "feature:\n  preemphasis_alpha: 0\n"))
	require.NoError(t, err)
	require.Zero(t, cfg.Feature.PreEmphasis)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"dim not below channels", "feature:\n  mfcc_dim: 20\n"},
		{"unknown transform", "feature:\n  transform: wavelet\n"},
		{"unknown format", "output:\n  format: csv\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"malformed", "feature: [1, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, feature.ErrConfig)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "debug"
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Feature.MelChannels = 26
	cfg.Output.File = "out.json"
	data, err := cfg.Marshal()
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
