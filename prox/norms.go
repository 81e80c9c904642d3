// SPDX-License-Identifier: MIT

package prox

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// L1OffDiag returns Σ_{i≠j} |a_ij| of a d×d slice.
func L1OffDiag(a []float64, d int) float64 {
	var sum float64
	for i, v := range a {
		if i%(d+1) != 0 {
			sum += math.Abs(v)
		}
	}

	return sum
}

// Nuclear returns the sum of the singular values of a d×d slice.
func Nuclear(a []float64, d int) (float64, error) {
	if d <= 0 || len(a) != d*d {
		return 0, proxErrorf(opNuclear, ErrShape)
	}
	if err := checkFinite(a); err != nil {
		return 0, proxErrorf(opNuclear, err)
	}
	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(d, d, append([]float64(nil), a...)), mat.SVDNone); !ok {
		return 0, proxErrorf(opNuclear, ErrDecomposition)
	}
	var sum float64
	for _, v := range svd.Values(nil) {
		sum += v
	}

	return sum, nil
}

// LogLikelihood returns log det K − tr(S·K), the Gaussian log-likelihood of
// precision K under empirical covariance S, up to constants and scale.
// The symmetric part of K is factorized with a Cholesky decomposition.
//
// Errors: ErrShape, ErrNonFinite, ErrNotPositiveDefinite.
func LogLikelihood(s, k []float64, d int) (float64, error) {
	if err := checkSlice(s, k, d); err != nil {
		return 0, proxErrorf(opLogLikelihood, err)
	}
	if err := checkFinite(k); err != nil {
		return 0, proxErrorf(opLogLikelihood, err)
	}

	sym := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			sym.SetSym(i, j, (k[i*d+j]+k[j*d+i])/2)
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return 0, proxErrorf(opLogLikelihood, ErrNotPositiveDefinite)
	}

	var tr float64
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			tr += s[i*d+j] * k[j*d+i]
		}
	}

	return chol.LogDet() - tr, nil
}
