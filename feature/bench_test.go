package feature

import (
	"math"
	"testing"
)

func generateSine(n int, freq float64) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / 44000)
	}
	return samples
}

func BenchmarkDFT_1024x44000(b *testing.B) {
	x := generateSine(1024, 440)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DFT(x, 44000)
	}
}

func BenchmarkParallelDFT_1024x44000(b *testing.B) {
	x := generateSine(1024, 440)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParallelDFT(x, 44000, 8)
	}
}

func BenchmarkFastDFT_1024x44000(b *testing.B) {
	x := generateSine(1024, 440)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FastDFT(x, 44000)
	}
}

func BenchmarkMelFilterBank_Apply(b *testing.B) {
	fb, err := NewMelFilterBank(22000, 20)
	if err != nil {
		b.Fatal(err)
	}
	amp := make([]float64, 22000)
	for i := range amp {
		amp[i] = 0.01
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fb.Apply(amp)
	}
}

func BenchmarkExtract_FFT(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Transform = TransformFFT
	ext, err := NewExtractor(cfg)
	if err != nil {
		b.Fatal(err)
	}
	frame := generateSine(cfg.FrameSize, 440)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ext.Extract(frame)
	}
}
