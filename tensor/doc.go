// SPDX-License-Identifier: MIT

// Package tensor provides Stack, a dense T×d×d tensor of float64 values used
// to hold a sequence of square matrices (one per time slice).
//
// What & Why:
//
//	Time-varying graphical models keep many same-shaped matrices side by side:
//	covariances, precision estimates, consensus copies and scaled duals. A Stack
//	stores them in one contiguous row-major buffer so that whole-tensor
//	arithmetic is a single flat loop, while each slice remains addressable as
//	an independent d×d matrix.
//
// Views:
//
//	Range(lo, hi), Head() and Tail() return no-copy views over consecutive
//	slices. Head() is every slice but the last, Tail() every slice but the
//	first; mutating a view mutates the parent. This mirrors the [:-1] / [1:]
//	slicing used by pairwise temporal terms.
//
// Error policy:
//
//	Constructors and indexed accessors (NewStack, FromSlices, At, Set, Range)
//	return sentinel errors. In-place arithmetic between stacks panics on shape
//	mismatch, following gonum/mat: a mismatch there is a programmer error.
//
// Complexity:
//
//	Element-wise operations are O(T·d²); views are O(1); Clone is O(T·d²).
package tensor
