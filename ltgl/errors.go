// SPDX-License-Identifier: MIT

package ltgl

import "errors"

var (
	// ErrInvalidInput is returned before any iteration when the data,
	// sample counts or configuration are unusable. No partial result is
	// produced.
	ErrInvalidInput = errors.New("ltgl: invalid input")

	// ErrNumericalDegeneracy is returned when a proximal step meets a
	// non-finite or non-positive-definite matrix. The run is aborted; retry
	// with a larger Rho or regularized input.
	ErrNumericalDegeneracy = errors.New("ltgl: numerical degeneracy")

	// ErrDiverged is wrapped (inside ErrNumericalDegeneracy) when the
	// iterates grow without bound.
	ErrDiverged = errors.New("ltgl: iterates diverged")

	// ErrNotConverged is reported by Result.Err when MaxIter was exhausted.
	// The estimate in the Result is still the last iterate.
	ErrNotConverged = errors.New("ltgl: did not converge")
)
