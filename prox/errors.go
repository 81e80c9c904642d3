// SPDX-License-Identifier: MIT

package prox

import (
	"errors"
	"fmt"
)

var (
	// ErrBadParameter is returned for a negative, NaN or infinite scalar
	// parameter, or a non-positive step where a positive one is required.
	ErrBadParameter = errors.New("prox: invalid scalar parameter")

	// ErrShape is returned when a slice length is not d*d.
	ErrShape = errors.New("prox: slice length does not match d*d")

	// ErrNonFinite is returned when an input contains NaN or ±Inf.
	ErrNonFinite = errors.New("prox: NaN or Inf in input")

	// ErrNotPositiveDefinite is returned when a matrix that must be positive
	// definite is not, or when the log-det prox would produce a non-positive
	// eigenvalue through underflow.
	ErrNotPositiveDefinite = errors.New("prox: matrix is not positive definite")

	// ErrDecomposition is returned when an eigen or singular value
	// factorization does not converge.
	ErrDecomposition = errors.New("prox: factorization failed")

	// ErrUnknownPenalty is returned when parsing an unrecognised penalty name.
	ErrUnknownPenalty = errors.New("prox: unknown penalty")
)

const (
	opSoftThreshold  = "SoftThreshold"
	opSoftOffDiag    = "SoftThresholdOffDiag"
	opLogDet         = "LogDet"
	opTraceNorm      = "TraceNorm"
	opTraceIndicator = "TraceIndicator"
	opPenalty        = "Penalty.Prox"
	opLogLikelihood  = "LogLikelihood"
	opNuclear        = "Nuclear"
)

func proxErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
