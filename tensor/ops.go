// SPDX-License-Identifier: MIT

// Package tensor - in-place arithmetic and reductions.
//
// Purpose:
//   - Whole-tensor kernels run as single flat loops through gonum/floats.
//   - Per-slice kernels (Symmetrize, DivSlices) walk slices in t→i→j order.
//
// Determinism:
//   - Fixed traversal order; identical inputs give bitwise identical outputs.

package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// mustSameShape panics when a and b differ in shape; arithmetic between
// stacks of different shapes is a programmer error.
func mustSameShape(a, b *Stack) {
	if a.n != b.n || a.d != b.d {
		panic(tensorErrorf(opArithmetic, fmt.Errorf("%dx%dx%d vs %dx%dx%d: %w",
			a.n, a.d, a.d, b.n, b.d, b.d, ErrDimensionMismatch)))
	}
}

// Add performs s += b in place and returns s.
func (s *Stack) Add(b *Stack) *Stack {
	mustSameShape(s, b)
	floats.Add(s.data, b.data)

	return s
}

// Sub performs s -= b in place and returns s.
func (s *Stack) Sub(b *Stack) *Stack {
	mustSameShape(s, b)
	floats.Sub(s.data, b.data)

	return s
}

// AddScaled performs s += alpha*b in place and returns s.
func (s *Stack) AddScaled(alpha float64, b *Stack) *Stack {
	mustSameShape(s, b)
	floats.AddScaled(s.data, alpha, b.data)

	return s
}

// Scale performs s *= alpha in place and returns s.
func (s *Stack) Scale(alpha float64) *Stack {
	floats.Scale(alpha, s.data)

	return s
}

// CopyFrom overwrites s with the contents of b (same shape required).
func (s *Stack) CopyFrom(b *Stack) *Stack {
	mustSameShape(s, b)
	copy(s.data, b.data)

	return s
}

// Zero resets every element to 0.
func (s *Stack) Zero() *Stack {
	for i := range s.data {
		s.data[i] = 0
	}

	return s
}

// DivSlices divides every element of slice t by div[t], in place.
// Errors:
//   - ErrDimensionMismatch when len(div) != T.
//   - ErrNaNInf when a divisor is zero or non-finite.
func (s *Stack) DivSlices(div []float64) error {
	if len(div) != s.n {
		return tensorErrorf(opDivSlices, ErrDimensionMismatch)
	}
	for t, v := range div {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return tensorErrorf(opDivSlices, fmt.Errorf("divisor[%d]=%g: %w", t, v, ErrNaNInf))
		}
		floats.Scale(1/v, s.Slice(t))
	}

	return nil
}

// Symmetrize replaces every slice A by (A + Aᵀ)/2, in place.
func (s *Stack) Symmetrize() *Stack {
	var (
		t, i, j int
		a, b, m float64
		src     []float64
		d       = s.d
	)
	for t = 0; t < s.n; t++ {
		src = s.Slice(t)
		for i = 0; i < d; i++ {
			for j = i + 1; j < d; j++ {
				a, b = src[i*d+j], src[j*d+i]
				m = (a + b) / 2
				src[i*d+j], src[j*d+i] = m, m
			}
		}
	}

	return s
}

// FrobSq returns the squared Frobenius norm of the whole tensor (Σ x²).
func (s *Stack) FrobSq() float64 {
	return floats.Dot(s.data, s.data)
}

// Frob returns the Frobenius norm of the whole tensor.
func (s *Stack) Frob() float64 {
	return floats.Norm(s.data, 2)
}

// DiffFrobSq returns ‖a − b‖²_F without allocating.
func DiffFrobSq(a, b *Stack) float64 {
	mustSameShape(a, b)
	var sum, v float64
	for i, x := range a.data {
		v = x - b.data[i]
		sum += v * v
	}

	return sum
}

// MaxAsymmetry returns max over slices and i<j of |A[i,j] − A[j,i]|.
func (s *Stack) MaxAsymmetry() float64 {
	var worst float64
	d := s.d
	for t := 0; t < s.n; t++ {
		src := s.Slice(t)
		for i := 0; i < d; i++ {
			for j := i + 1; j < d; j++ {
				if v := math.Abs(src[i*d+j] - src[j*d+i]); v > worst {
					worst = v
				}
			}
		}
	}

	return worst
}
