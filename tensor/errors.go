// SPDX-License-Identifier: MIT

// Package tensor: sentinel error set.
// All constructors and accessors return these sentinels, optionally wrapped
// with an operation tag via tensorErrorf; callers match with errors.Is.

package tensor

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape is invalid (T < 0 or d <= 0).
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrOutOfRange indicates a slice, row or column index outside valid bounds.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between operands.
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")

	// ErrNonSquare signals that a slice source was not a square matrix.
	ErrNonSquare = errors.New("tensor: matrix is not square")

	// ErrAsymmetry signals that a slice expected to be symmetric is not, within eps.
	ErrAsymmetry = errors.New("tensor: slice is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("tensor: NaN or Inf encountered")

	// ErrNilStack indicates that a nil *Stack was passed.
	ErrNilStack = errors.New("tensor: nil stack")
)

// Operation tags for error wrapping.
const (
	opNewStack    = "NewStack"
	opFromSlices  = "FromSlices"
	opFromMatrix  = "FromMatrices"
	opAt          = "At"
	opSet         = "Set"
	opRange       = "Range"
	opDivSlices   = "DivSlices"
	opArithmetic  = "arithmetic"
	opValidateSym = "ValidateSymmetric"
	opValidateFin = "ValidateFinite"
)

// tensorErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func tensorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
