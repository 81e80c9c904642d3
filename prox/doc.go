// SPDX-License-Identifier: MIT

// Package prox implements the proximal operators and norms consumed by the
// time-varying graphical lasso solver.
//
// Every operator works on one square slice stored row-major in a []float64 of
// length d*d and writes its result to dst, which may alias the input for the
// element-wise operators. The spectral operators (LogDet, TraceNorm,
// TraceIndicator) factorize through gonum/mat and allocate their own
// workspace, so they are safe to run concurrently on disjoint slices.
//
// Operators:
//
//	SoftThreshold        sign(a)·max(|a|−λ, 0) element-wise
//	SoftThresholdOffDiag same, diagonal copied unchanged
//	LogDet               argmin_X −log det X + tr(A X) + ‖X‖²/(2t)
//	TraceNorm            singular values shrunk by λ, clipped at zero
//	TraceIndicator       eigenvalues shifted by −λ, clipped at zero (PSD)
//
// Temporal penalties (Penalty) pair a value with its prox:
//
//	Laplacian  ‖A‖²_F    prox: A/(1+2β)
//	L1         Σ|a_ij|   prox: SoftThreshold(A, β)
//	L2         ‖A‖_F     prox: A·max(0, 1−β/‖A‖_F)
//	Linf       max|a_ij| prox: A − β·P_{‖·‖₁≤1}(A/β)
package prox
