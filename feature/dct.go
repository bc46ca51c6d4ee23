package feature

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DCTBasis returns the n×n orthonormal DCT-II matrix:
//
//	B[0][i] = sqrt(1/n)
//	B[k][i] = sqrt(2/n)·cos((2i+1)kπ / 2n)   for k > 0
//
// DCT is B·s and IDCT (DCT-III) is Bᵀ·d, so the pair round-trips exactly.
func DCTBasis(n int) *mat.Dense {
	b := mat.NewDense(n, n, nil)
	s0 := math.Sqrt(1.0 / float64(n))
	sk := math.Sqrt(2.0 / float64(n))
	for k := 0; k < n; k++ {
		row := b.RawRowView(k)
		for i := range row {
			if k == 0 {
				row[i] = s0
				continue
			}
			row[i] = sk * math.Cos(float64((2*i+1)*k)*math.Pi/float64(2*n))
		}
	}
	return b
}

// DCT applies the orthonormal type-II DCT.
func DCT(s []float64) []float64 {
	if len(s) == 0 {
		return []float64{}
	}
	return dctApply(DCTBasis(len(s)), s, false)
}

// IDCT applies the orthonormal type-III DCT, the inverse of DCT.
func IDCT(d []float64) []float64 {
	if len(d) == 0 {
		return []float64{}
	}
	return dctApply(DCTBasis(len(d)), d, true)
}

// dctApply multiplies v by basis (or its transpose for the inverse).
func dctApply(basis *mat.Dense, v []float64, inverse bool) []float64 {
	var m mat.Matrix = basis
	if inverse {
		m = basis.T()
	}
	out := mat.NewVecDense(len(v), nil)
	out.MulVec(m, mat.NewVecDense(len(v), v))
	return out.RawVector().Data
}
