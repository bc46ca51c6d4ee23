package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFLACFixture(t *testing.T, name string, rate int, bps uint8, channels ...[]int32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := writeFLAC(seekOnly{f}, rate, bps, channels...); err != nil {
		t.Fatalf("writeFLAC: %v", err)
	}
	return path
}

func ramp(n int, step int32) []int32 {
	s := make([]int32, n)
	for i := range s {
		s[i] = int32(i-n/2) * step
	}
	return s
}

func TestReadFLACFile_Mono16(t *testing.T) {
	raw := ramp(100, 300)
	raw[0], raw[1] = math.MaxInt16, math.MinInt16
	path := writeFLACFixture(t, "mono.flac", 16000, 16, raw)

	samples, header, err := ReadFLACFile(path)
	if err != nil {
		t.Fatalf("ReadFLACFile error: %v", err)
	}
	if header.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", header.SampleRate)
	}
	if header.BitsPerSample != 16 || header.NumChannels != 1 {
		t.Errorf("header = %+v, want mono 16-bit", header)
	}
	if header.NumSamples != len(raw) || len(samples) != len(raw) {
		t.Fatalf("NumSamples = %d, len = %d, want %d", header.NumSamples, len(samples), len(raw))
	}
	for i, r := range raw {
		if want := float64(r) / 32768; samples[i] != want {
			t.Fatalf("samples[%d] = %v, want %v", i, samples[i], want)
		}
	}
}

func TestReadFLACFile_NormalizesByBitDepth(t *testing.T) {
	raw := make([]int32, 32)
	raw[0] = 1 << 22
	raw[1] = -(1 << 23)
	path := writeFLACFixture(t, "hires.flac", 48000, 24, raw)

	samples, header, err := ReadFLACFile(path)
	if err != nil {
		t.Fatalf("ReadFLACFile error: %v", err)
	}
	if header.BitsPerSample != 24 {
		t.Errorf("BitsPerSample = %d, want 24", header.BitsPerSample)
	}
	if samples[0] != 0.5 || samples[1] != -1 || samples[2] != 0 {
		t.Errorf("samples[:3] = %v, want [0.5 -1 0]", samples[:3])
	}
}

func TestReadFLACFile_ManyFrames(t *testing.T) {
	// 2*4096+5 samples: the last frame borrows from the one before it.
	raw := ramp(2*flacMaxBlock+5, 3)
	path := writeFLACFixture(t, "long.flac", 44100, 16, raw)

	samples, header, err := ReadFLACFile(path)
	if err != nil {
		t.Fatalf("ReadFLACFile error: %v", err)
	}
	if header.NumSamples != len(raw) {
		t.Fatalf("NumSamples = %d, want %d", header.NumSamples, len(raw))
	}
	for i, r := range raw {
		if samples[i] != float64(r)/32768 {
			t.Fatalf("samples[%d] = %v, want %v", i, samples[i], float64(r)/32768)
		}
	}
}

func TestReadFLACFile_StereoRejected(t *testing.T) {
	path := writeFLACFixture(t, "stereo.flac", 44100, 16, ramp(64, 10), ramp(64, -10))
	_, _, err := ReadFLACFile(path)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", err)
	}
}

func TestReadFLACFile_NotFLAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.flac")
	if err := os.WriteFile(path, buildWAV(monoParams(8000), []int16{1}), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := ReadFile(path)
	if !errors.Is(err, ErrIO) && !errors.Is(err, ErrFormat) {
		t.Errorf("err = %v, want ErrIO or ErrFormat", err)
	}
}

func TestReadFLACFile_Missing(t *testing.T) {
	_, _, err := ReadFLACFile(filepath.Join(t.TempDir(), "none.flac"))
	if !errors.Is(err, ErrIO) {
		t.Errorf("err = %v, want ErrIO", err)
	}
}

func TestWriteFLACFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.FLAC")
	in := Sine(1000, 440, 44100, 0.5)
	if err := WriteFLACFile(path, in, 44100); err != nil {
		t.Fatalf("WriteFLACFile error: %v", err)
	}
	out, header, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if header.SampleRate != 44100 || len(out) != len(in) {
		t.Fatalf("header = %+v, len = %d", header, len(out))
	}
	for i := range in {
		if math.Abs(out[i]-in[i]) > 1.0/32768 {
			t.Fatalf("sample %d = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestWriteFLACFile_Rejects(t *testing.T) {
	dir := t.TempDir()
	if err := WriteFLACFile(filepath.Join(dir, "short.flac"), make([]float64, 15), 8000); !errors.Is(err, ErrFormat) {
		t.Errorf("short: err = %v, want ErrFormat", err)
	}
	if err := WriteFLACFile(filepath.Join(dir, "rate.flac"), make([]float64, 64), 0); !errors.Is(err, ErrFormat) {
		t.Errorf("rate: err = %v, want ErrFormat", err)
	}
}

func TestFLACBlocks(t *testing.T) {
	tests := []struct {
		n    int
		want []flacBlock
	}{
		{16, []flacBlock{{0, 16}}},
		{4096, []flacBlock{{0, 4096}}},
		{4100, []flacBlock{{0, 4084}, {4084, 16}}},
		{4200, []flacBlock{{0, 4096}, {4096, 104}}},
	}
	for _, tt := range tests {
		got := flacBlocks(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("flacBlocks(%d) = %v, want %v", tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("flacBlocks(%d)[%d] = %v, want %v", tt.n, i, got[i], tt.want[i])
			}
		}
	}
}
