// SPDX-License-Identifier: MIT

package ltgl

// Test bridge (white-box).
//
// Purpose:
//   - Expose the unexported divisor, consensus and residual kernels to
//     ltgl_test without widening the production API.
//   - Being a _test.go file in package ltgl, it never reaches production builds.

import "github.com/veronicatozzo/regain/tensor"

var (
	ExportedConsensusDivisor = consensusDivisor
	ExportedConsensus        = consensus
	ExportedForEachSlice     = forEachSlice
)

// Residuals mirrors the unexported residuals record.
type Residuals struct {
	RNorm, SNorm, EPri, EDual float64
}

// ExportedComputeResiduals wraps computeResiduals.
func ExportedComputeResiduals(k, l, zc, wc, uc, yc, zPrev, wPrev *tensor.Stack, rho, tol, rtol float64) Residuals {
	r := computeResiduals(k, l, zc, wc, uc, yc, zPrev, wPrev, rho, tol, rtol)
	return Residuals{RNorm: r.rnorm, SNorm: r.snorm, EPri: r.ePri, EDual: r.eDual}
}

// ExportedNewStateErr reports the allocation error of newState, if any.
func ExportedNewStateErr(s *tensor.Stack, n []float64, cfg Config) error {
	_, err := newState(s, n, cfg)
	return err
}
