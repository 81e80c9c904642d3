// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//  - Canonical validation checks shared by the solver and its collaborators.
//  - Return wrapped sentinels so call sites can match with errors.Is.

package tensor

import (
	"fmt"
	"math"
)

// ValidateNotNil ensures the stack reference is non-nil.
func ValidateNotNil(s *Stack) error {
	if s == nil {
		return ErrNilStack
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and share (T, d).
func ValidateSameShape(a, b *Stack) error {
	if a == nil || b == nil {
		return ErrNilStack
	}
	if a.n != b.n || a.d != b.d {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf anywhere in s.
// The reported location is the first offending element in t→i→j order.
func ValidateFinite(s *Stack) error {
	if err := ValidateNotNil(s); err != nil {
		return tensorErrorf(opValidateFin, err)
	}
	dd := s.d * s.d
	for k, v := range s.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t, r := k/dd, k%dd
			return tensorErrorf(opValidateFin, fmt.Errorf("(%d,%d,%d): %w", t, r/s.d, r%s.d, ErrNaNInf))
		}
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] − A[j,i]| <= eps for every slice.
// Complexity: O(T·d²) on the upper triangle only.
func ValidateSymmetric(s *Stack, eps float64) error {
	if err := ValidateNotNil(s); err != nil {
		return tensorErrorf(opValidateSym, err)
	}
	d := s.d
	for t := 0; t < s.n; t++ {
		src := s.Slice(t)
		for i := 0; i < d; i++ {
			for j := i + 1; j < d; j++ {
				if math.Abs(src[i*d+j]-src[j*d+i]) > eps {
					return tensorErrorf(opValidateSym, fmt.Errorf("slice %d (%d,%d): %w", t, i, j, ErrAsymmetry))
				}
			}
		}
	}

	return nil
}
