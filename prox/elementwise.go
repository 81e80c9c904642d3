// SPDX-License-Identifier: MIT

package prox

import (
	"math"
)

// checkSlice validates that dst and a both hold a d×d slice.
func checkSlice(dst, a []float64, d int) error {
	if d <= 0 || len(a) != d*d || len(dst) != d*d {
		return ErrShape
	}

	return nil
}

// checkParam validates a non-negative finite scalar.
func checkParam(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrBadParameter
	}

	return nil
}

// checkFinite rejects NaN and ±Inf entries.
func checkFinite(a []float64) error {
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}

	return nil
}

// shrink is the scalar soft-threshold sign(x)·max(|x|−lambda, 0).
func shrink(x, lambda float64) float64 {
	if x > lambda {
		return x - lambda
	}
	if x < -lambda {
		return x + lambda
	}

	return 0
}

// SoftThreshold writes sign(a)·max(|a|−lambda, 0) element-wise into dst.
// dst may alias a. The diagonal is shrunk like every other entry.
//
// Errors: ErrBadParameter (lambda < 0 or non-finite).
func SoftThreshold(dst, a []float64, lambda float64) error {
	if len(dst) != len(a) {
		return proxErrorf(opSoftThreshold, ErrShape)
	}
	if err := checkParam(lambda); err != nil {
		return proxErrorf(opSoftThreshold, err)
	}
	for i, v := range a {
		dst[i] = shrink(v, lambda)
	}

	return nil
}

// SoftThresholdOffDiag is SoftThreshold restricted to off-diagonal entries of
// a d×d slice; diagonal entries are copied unchanged.
func SoftThresholdOffDiag(dst, a []float64, d int, lambda float64) error {
	if err := checkSlice(dst, a, d); err != nil {
		return proxErrorf(opSoftOffDiag, err)
	}
	if err := checkParam(lambda); err != nil {
		return proxErrorf(opSoftOffDiag, err)
	}
	for i, v := range a {
		if i%(d+1) == 0 {
			dst[i] = v
			continue
		}
		dst[i] = shrink(v, lambda)
	}

	return nil
}
