package feature

import (
	"math"
	"sync"
)

// DFT computes f bins of the discrete Fourier transform of x by direct
// summation:
//
//	re[i] = Σ_{k<N} x[k]·cos(2πki/f)
//	im[i] = Σ_{k<N} -x[k]·sin(2πki/f)
//
// f is independent of len(x). Bins beyond len(x) behave as if x were
// zero-padded; when f < len(x) every sample still contributes.
func DFT(x []float64, f int) (re, im []float64) {
	re = make([]float64, f)
	im = make([]float64, f)
	dftRange(x, f, 0, f, re, im)
	return re, im
}

// ParallelDFT is DFT with the output bins split across workers goroutines.
// Results match DFT up to floating-point rounding.
func ParallelDFT(x []float64, f, workers int) (re, im []float64) {
	if workers <= 1 || f < 2 {
		return DFT(x, f)
	}
	if workers > f {
		workers = f
	}
	re = make([]float64, f)
	im = make([]float64, f)

	// Contiguous bin ranges, one per job. Each job writes a disjoint slice.
	chunk := (f + workers - 1) / workers
	jobs := make(chan int, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for lo := range jobs {
				hi := min(lo+chunk, f)
				dftRange(x, f, lo, hi, re, im)
			}
		}()
	}
	for lo := 0; lo < f; lo += chunk {
		jobs <- lo
	}
	close(jobs)
	wg.Wait()

	return re, im
}

// dftRange fills re[lo:hi] and im[lo:hi].
func dftRange(x []float64, f, lo, hi int, re, im []float64) {
	step := 2 * math.Pi / float64(f)
	for i := lo; i < hi; i++ {
		var sr, si float64
		for k, v := range x {
			// k*i is reduced modulo f so the angle stays small for large frames.
			theta := step * float64((k*i)%f)
			sin, cos := math.Sincos(theta)
			sr += v * cos
			si -= v * sin
		}
		re[i] = sr
		im[i] = si
	}
}
