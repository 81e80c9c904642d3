// SPDX-License-Identifier: MIT

package ltgl_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/veronicatozzo/regain/ltgl"
	"github.com/veronicatozzo/regain/tensor"
)

// identityProblem returns T identity covariances of size d with n samples each.
func identityProblem(tb testing.TB, T, d int, n float64) (*tensor.Stack, []float64) {
	tb.Helper()
	s, err := tensor.NewStack(T, d)
	require.NoError(tb, err)
	counts := make([]float64, T)
	for t := 0; t < T; t++ {
		for i := 0; i < d; i++ {
			require.NoError(tb, s.Set(t, i, i, 1))
		}
		counts[t] = n
	}

	return s, counts
}

// smallConfig is the shared hyperparameter setting of the solver tests.
func smallConfig() ltgl.Config {
	cfg := ltgl.DefaultConfig()
	cfg.Alpha, cfg.Tau, cfg.Beta, cfg.Eta = 0.1, 0.1, 0.1, 0.1
	cfg.MaxIter = 200

	return cfg
}

// randomData draws T Gaussian observation matrices (rows × d) with a fixed seed.
func randomData(T, rows, d int, seed int64) []*mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	out := make([]*mat.Dense, T)
	for t := range out {
		x := mat.NewDense(rows, d, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < d; j++ {
				x.Set(i, j, rng.NormFloat64())
			}
		}
		out[t] = x
	}

	return out
}

// diag returns element (i, i) of slice t.
func diag(tb testing.TB, s *tensor.Stack, t, i int) float64 {
	tb.Helper()
	v, err := s.At(t, i, i)
	require.NoError(tb, err)

	return v
}

// maxOffDiag returns the largest |A[i,j]|, i != j, over all slices.
func maxOffDiag(s *tensor.Stack) float64 {
	var worst float64
	d := s.Dim()
	for t := 0; t < s.Len(); t++ {
		src := s.Slice(t)
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				if i == j {
					continue
				}
				if v := src[i*d+j]; v > worst {
					worst = v
				} else if -v > worst {
					worst = -v
				}
			}
		}
	}

	return worst
}

// symmetricOf returns the symmetric part (A + Aᵀ)/2 of a square matrix.
func symmetricOf(a mat.Matrix) *mat.SymDense {
	d, _ := a.Dims()
	out := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			out.SetSym(i, j, (a.At(i, j)+a.At(j, i))/2)
		}
	}

	return out
}
