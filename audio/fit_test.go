package audio

import (
	"math"
	"testing"
)

func TestFitFrame(t *testing.T) {
	in := []float64{1, 2, 3, 4}

	got := FitFrame(in, 2)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("truncate = %v", got)
	}

	got = FitFrame(in, 6)
	want := []float64{1, 2, 3, 4, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pad[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got[0] = 99
	if in[0] != 1 {
		t.Error("FitFrame aliased its input")
	}

	if got := FitFrame(nil, 3); len(got) != 3 {
		t.Errorf("nil input len = %d, want 3", len(got))
	}
	if got := FitFrame(in, 0); len(got) != 0 {
		t.Errorf("n=0 len = %d, want 0", len(got))
	}
}

func TestSine(t *testing.T) {
	s := Sine(4, 1000, 4000, 0.5)
	want := []float64{0, 0.5, 0, -0.5}
	for i := range want {
		if math.Abs(s[i]-want[i]) > 1e-12 {
			t.Errorf("s[%d] = %v, want %v", i, s[i], want[i])
		}
	}
	if Sine(0, 1, 1, 1) != nil || Sine(4, 1, 0, 1) != nil {
		t.Error("degenerate Sine should be nil")
	}
}
