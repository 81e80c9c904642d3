// SPDX-License-Identifier: MIT

// Package covariance computes the per-slice empirical covariances consumed by
// the graphical lasso solvers.
//
// The estimator is the maximum-likelihood covariance of the columns:
//
//	S = (Xcᵀ·Xc) / n,   Xc = X − 1·meanᵀ   (or Xc = X when assume-centered)
//
// which matches the biased estimator of scikit-learn's empirical_covariance.
// A single observation is allowed and yields S = 0 unless assume-centered.
package covariance

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/veronicatozzo/regain/tensor"
)

var (
	// ErrNoObservations is returned for an empty input list or a matrix with
	// zero rows or columns.
	ErrNoObservations = errors.New("covariance: no observations")

	// ErrDimensionMismatch is returned when slices disagree on the feature count.
	ErrDimensionMismatch = errors.New("covariance: inconsistent feature dimension")
)

const (
	opEmpirical = "Empirical"
	opStack     = "Stack"
)

func covErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Empirical returns the d×d maximum-likelihood covariance of the columns of x
// (observations × features).
//
// Implementation:
//   - Stage 1: validate a non-empty r×c input.
//   - Stage 2: center every column with its mean (skipped when assumeCentered).
//   - Stage 3: accumulate S = Xcᵀ·Xc / r as a symmetric rank-r update.
//
// Complexity:
//   - Time O(r·c²), Space O(r·c + c²).
func Empirical(x mat.Matrix, assumeCentered bool) (*mat.SymDense, error) {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil, covErrorf(opEmpirical, ErrNoObservations)
	}

	xc := mat.DenseCopyOf(x)
	if !assumeCentered {
		col := make([]float64, r)
		for j := 0; j < c; j++ {
			mat.Col(col, j, xc)
			mean := stat.Mean(col, nil)
			for i := 0; i < r; i++ {
				xc.Set(i, j, col[i]-mean)
			}
		}
	}

	cov := mat.NewSymDense(c, nil)
	cov.SymRankK(cov, 1/float64(r), xc.T())

	return cov, nil
}

// Stack computes Empirical for every matrix and packs the results into a
// T×d×d tensor, together with the per-slice observation counts.
//
// Errors:
//   - ErrNoObservations: empty list or an empty matrix.
//   - ErrDimensionMismatch: feature counts differ between slices.
func Stack(data []mat.Matrix, assumeCentered bool) (*tensor.Stack, []float64, error) {
	if len(data) == 0 {
		return nil, nil, covErrorf(opStack, ErrNoObservations)
	}
	_, d := data[0].Dims()
	if d == 0 {
		return nil, nil, covErrorf(opStack, fmt.Errorf("slice 0: %w", ErrNoObservations))
	}

	s, err := tensor.NewStack(len(data), d)
	if err != nil {
		return nil, nil, covErrorf(opStack, err)
	}
	n := make([]float64, len(data))
	for t, x := range data {
		r, c := x.Dims()
		if c != d {
			return nil, nil, covErrorf(opStack, fmt.Errorf("slice %d has %d features, want %d: %w", t, c, d, ErrDimensionMismatch))
		}
		cov, err := Empirical(x, assumeCentered)
		if err != nil {
			return nil, nil, covErrorf(opStack, fmt.Errorf("slice %d: %w", t, err))
		}
		s.Matrix(t).Copy(cov)
		n[t] = float64(r)
	}

	return s, n, nil
}
