// SPDX-License-Identifier: MIT

// Package tensor - Stack storage (slice-major, row-major within a slice) & safe accessors.
//
// Purpose:
//   - Provide one contiguous buffer for T square d×d slices, offset = t*d*d + i*d + j.
//   - Guarantee safety at the public surface: At/Set/Range return errors instead of panicking.
//   - Support no-copy views over consecutive slices (Range/Head/Tail) and deep copies (Clone).
//
// Complexity quicksheet:
//   - NewStack: O(T*d²) zero-init; At/Set: O(1); Clone: O(T*d²); Range/Head/Tail/Slice: O(1).

package tensor

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Stack is a dense T×d×d tensor.
//   - n is the number of slices (zero allowed: an empty stack is a valid view).
//   - d is the side of every square slice (always > 0).
//   - data has length n*d*d; slice t occupies data[t*d*d : (t+1)*d*d].
type Stack struct {
	n, d int       // slice count (>=0) and slice side (>0)
	data []float64 // contiguous storage; may alias a parent stack for views
}

var _ fmt.Stringer = (*Stack)(nil)

// NewStack creates an n×d×d zero tensor.
// Implementation:
//   - Stage 1: validate n >= 0 and d > 0; else ErrBadShape.
//   - Stage 2: allocate a zero-filled buffer.
//
// Behavior highlights:
//   - n == 0 is accepted: pairwise stacks of a single-slice problem are empty.
//
// Errors:
//   - ErrBadShape.
//
// Complexity:
//   - Time O(n*d²), Space O(n*d²).
func NewStack(n, d int) (*Stack, error) {
	if n < 0 || d <= 0 {
		return nil, tensorErrorf(opNewStack, ErrBadShape)
	}

	return &Stack{n: n, d: d, data: make([]float64, n*d*d)}, nil
}

// FromSlices builds a Stack from nested [t][i][j] values, copying them.
// Every slice must be d×d with the same d. An empty outer slice is rejected
// because d cannot be inferred.
func FromSlices(v [][][]float64) (*Stack, error) {
	if len(v) == 0 || len(v[0]) == 0 {
		return nil, tensorErrorf(opFromSlices, ErrBadShape)
	}
	d := len(v[0])
	s, err := NewStack(len(v), d)
	if err != nil {
		return nil, tensorErrorf(opFromSlices, err)
	}
	for t, m := range v {
		if len(m) != d {
			return nil, tensorErrorf(opFromSlices, fmt.Errorf("slice %d: %w", t, ErrDimensionMismatch))
		}
		for i, row := range m {
			if len(row) != d {
				return nil, tensorErrorf(opFromSlices, fmt.Errorf("slice %d row %d: %w", t, i, ErrNonSquare))
			}
			copy(s.data[s.offset(t)+i*d:], row)
		}
	}

	return s, nil
}

// FromMatrices builds a Stack from gonum matrices, copying them.
// All matrices must be square with the same dimension.
func FromMatrices(ms []mat.Matrix) (*Stack, error) {
	if len(ms) == 0 {
		return nil, tensorErrorf(opFromMatrix, ErrBadShape)
	}
	r, c := ms[0].Dims()
	if r != c {
		return nil, tensorErrorf(opFromMatrix, fmt.Errorf("slice 0: %w", ErrNonSquare))
	}
	s, err := NewStack(len(ms), r)
	if err != nil {
		return nil, tensorErrorf(opFromMatrix, err)
	}
	for t, m := range ms {
		mr, mc := m.Dims()
		if mr != mc {
			return nil, tensorErrorf(opFromMatrix, fmt.Errorf("slice %d: %w", t, ErrNonSquare))
		}
		if mr != r {
			return nil, tensorErrorf(opFromMatrix, fmt.Errorf("slice %d: %w", t, ErrDimensionMismatch))
		}
		s.Matrix(t).Copy(m)
	}

	return s, nil
}

// Len returns the number of slices T.
func (s *Stack) Len() int { return s.n }

// Dim returns the side d of every slice.
func (s *Stack) Dim() int { return s.d }

// Shape returns (T, d).
func (s *Stack) Shape() (n, d int) { return s.n, s.d }

// Size returns the total element count T*d*d.
func (s *Stack) Size() int { return len(s.data) }

// Raw exposes the backing buffer. Mutations are visible to the stack and to
// every view sharing it.
func (s *Stack) Raw() []float64 { return s.data }

// offset returns the flat index of element (t,0,0). No bounds check.
func (s *Stack) offset(t int) int { return t * s.d * s.d }

// Slice returns the row-major d*d window of slice t, sharing storage.
// It panics when t is out of range; use At/Set for checked access.
func (s *Stack) Slice(t int) []float64 {
	if t < 0 || t >= s.n {
		panic(tensorErrorf(opRange, fmt.Errorf("slice %d of %d: %w", t, s.n, ErrOutOfRange)))
	}
	o := s.offset(t)

	return s.data[o : o+s.d*s.d : o+s.d*s.d]
}

// Matrix returns slice t as a *mat.Dense sharing storage with the stack.
func (s *Stack) Matrix(t int) *mat.Dense {
	return mat.NewDense(s.d, s.d, s.Slice(t))
}

// indexOf validates (t,i,j) and returns the flat offset.
func (s *Stack) indexOf(t, i, j int) (int, error) {
	if t < 0 || t >= s.n || i < 0 || i >= s.d || j < 0 || j >= s.d {
		return 0, ErrOutOfRange
	}

	return s.offset(t) + i*s.d + j, nil
}

// At returns element (i,j) of slice t.
// Errors: ErrOutOfRange.
func (s *Stack) At(t, i, j int) (float64, error) {
	k, err := s.indexOf(t, i, j)
	if err != nil {
		return 0, tensorErrorf(opAt, fmt.Errorf("(%d,%d,%d): %w", t, i, j, err))
	}

	return s.data[k], nil
}

// Set assigns v to element (i,j) of slice t.
// Errors: ErrOutOfRange.
func (s *Stack) Set(t, i, j int, v float64) error {
	k, err := s.indexOf(t, i, j)
	if err != nil {
		return tensorErrorf(opSet, fmt.Errorf("(%d,%d,%d): %w", t, i, j, err))
	}
	s.data[k] = v

	return nil
}

// Range returns a no-copy view over slices [lo, hi).
// Errors: ErrOutOfRange when 0 <= lo <= hi <= T does not hold.
func (s *Stack) Range(lo, hi int) (*Stack, error) {
	if lo < 0 || hi > s.n || lo > hi {
		return nil, tensorErrorf(opRange, fmt.Errorf("[%d,%d) of %d: %w", lo, hi, s.n, ErrOutOfRange))
	}

	return s.view(lo, hi), nil
}

// view is Range without validation.
func (s *Stack) view(lo, hi int) *Stack {
	return &Stack{n: hi - lo, d: s.d, data: s.data[s.offset(lo):s.offset(hi):s.offset(hi)]}
}

// Head returns a view of every slice except the last (empty for T <= 1).
func (s *Stack) Head() *Stack {
	if s.n == 0 {
		return s.view(0, 0)
	}

	return s.view(0, s.n-1)
}

// Tail returns a view of every slice except the first (empty for T <= 1).
func (s *Stack) Tail() *Stack {
	if s.n == 0 {
		return s.view(0, 0)
	}

	return s.view(1, s.n)
}

// Clone returns a deep copy with independent storage.
func (s *Stack) Clone() *Stack {
	data := make([]float64, len(s.data))
	copy(data, s.data)

	return &Stack{n: s.n, d: s.d, data: data}
}

// ZerosLike allocates a zero stack with the same shape.
func (s *Stack) ZerosLike() *Stack {
	return &Stack{n: s.n, d: s.d, data: make([]float64, len(s.data))}
}

// ToSlices copies the stack into nested [t][i][j] slices.
func (s *Stack) ToSlices() [][][]float64 {
	out := make([][][]float64, s.n)
	for t := range out {
		src := s.Slice(t)
		out[t] = make([][]float64, s.d)
		for i := range out[t] {
			row := make([]float64, s.d)
			copy(row, src[i*s.d:(i+1)*s.d])
			out[t][i] = row
		}
	}

	return out
}

// String renders every slice as rows of comma-separated values.
func (s *Stack) String() string {
	var sb strings.Builder
	for t := 0; t < s.n; t++ {
		fmt.Fprintf(&sb, "slice %d:\n", t)
		src := s.Slice(t)
		for i := 0; i < s.d; i++ {
			sb.WriteString("[")
			for j := 0; j < s.d; j++ {
				if j > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "%g", src[i*s.d+j])
			}
			sb.WriteString("]\n")
		}
	}

	return sb.String()
}
