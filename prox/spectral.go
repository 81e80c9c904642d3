// SPDX-License-Identifier: MIT

// Package prox - spectral operators.
//
// Purpose:
//   - Operators that act on the spectrum of a slice: factorize, map the
//     eigenvalues (or singular values), reconstruct.
//
// Implementation:
//   - Stage 1: validate shape, parameter and finiteness.
//   - Stage 2: factorize the symmetric part (EigenSym) or the slice itself (SVD).
//   - Stage 3: map the spectrum and rebuild Q·diag(f(λ))·Qᵀ (or U·diag·Vᵀ) into dst.
//
// Complexity:
//   - Time O(d³), Space O(d²) per call.
//
// Notes:
//   - Inputs are copied before factorization, so dst may alias the input.

package prox

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// eigSym factorizes the symmetric part (A+Aᵀ)/2 of a d×d slice.
func eigSym(a []float64, d int) ([]float64, *mat.Dense, error) {
	sym := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			sym.SetSym(i, j, (a[i*d+j]+a[j*d+i])/2)
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, ErrDecomposition
	}
	vals := es.Values(nil)
	vecs := mat.NewDense(d, d, nil)
	es.VectorsTo(vecs)

	return vals, vecs, nil
}

// isSymmetric reports exact symmetry of a d×d slice.
func isSymmetric(a []float64, d int) bool {
	for i := 0; i < d; i++ {
		for j := i + 1; j < d; j++ {
			if a[i*d+j] != a[j*d+i] {
				return false
			}
		}
	}

	return true
}

// reconstruct writes Q·diag(w)·Qᵀ into dst (row-major d×d).
func reconstruct(dst []float64, q *mat.Dense, w []float64, d int) {
	raw := q.RawMatrix()
	var (
		i, j, k int
		sum     float64
		ri, rj  []float64
	)
	for i = 0; i < d; i++ {
		ri = raw.Data[i*raw.Stride : i*raw.Stride+d]
		for j = i; j < d; j++ {
			rj = raw.Data[j*raw.Stride : j*raw.Stride+d]
			sum = 0
			for k = 0; k < d; k++ {
				if w[k] != 0 {
					sum += ri[k] * w[k] * rj[k]
				}
			}
			dst[i*d+j] = sum
			dst[j*d+i] = sum
		}
	}
}

// LogDet solves, for symmetric A and step t > 0,
//
//	X* = argmin_X −log det X + tr(A·X) + ‖X‖²_F / (2t).
//
// This is the proximal step of the Gaussian negative log-likelihood in the
// form used by the data-fit update: given the matrix M to be fitted, callers
// pass A = S − M/t. With eigenpairs (e_k, q_k) of A the solution is
// Q·diag(ξ)·Qᵀ where ξ_k = t·(−e_k + √(e_k² + 4/t))/2, always positive.
//
// Behavior highlights:
//   - Only the symmetric part of a is used.
//   - For e_k > 0 the algebraically equal form 2/(e_k + √(e_k² + 4/t)) avoids
//     cancellation.
//
// Errors:
//   - ErrShape, ErrBadParameter (t <= 0 or non-finite), ErrNonFinite,
//     ErrDecomposition, ErrNotPositiveDefinite (ξ_k underflows to 0).
func LogDet(dst, a []float64, d int, t float64) error {
	if err := checkSlice(dst, a, d); err != nil {
		return proxErrorf(opLogDet, err)
	}
	if !(t > 0) || math.IsInf(t, 0) {
		return proxErrorf(opLogDet, ErrBadParameter)
	}
	if err := checkFinite(a); err != nil {
		return proxErrorf(opLogDet, err)
	}

	vals, vecs, err := eigSym(a, d)
	if err != nil {
		return proxErrorf(opLogDet, err)
	}
	c := 2 / math.Sqrt(t) // √(e² + 4/t) == hypot(e, c)
	for k, e := range vals {
		var xi float64
		if e > 0 {
			xi = 2 / (e + math.Hypot(e, c))
		} else {
			xi = t * (math.Hypot(e, c) - e) / 2
		}
		if !(xi > 0) || math.IsInf(xi, 0) {
			return proxErrorf(opLogDet, ErrNotPositiveDefinite)
		}
		vals[k] = xi
	}
	reconstruct(dst, vecs, vals, d)

	return nil
}

// TraceNorm shrinks the singular values of a by lambda, clipping at zero:
// U·diag(max(σ−λ, 0))·Vᵀ. This is the prox of λ‖·‖_* (nuclear norm).
// Exactly symmetric input takes the eigen path and yields exactly symmetric
// output; anything else goes through a thin SVD.
//
// Errors: ErrShape, ErrBadParameter, ErrNonFinite, ErrDecomposition.
func TraceNorm(dst, a []float64, d int, lambda float64) error {
	if err := checkSlice(dst, a, d); err != nil {
		return proxErrorf(opTraceNorm, err)
	}
	if err := checkParam(lambda); err != nil {
		return proxErrorf(opTraceNorm, err)
	}
	if err := checkFinite(a); err != nil {
		return proxErrorf(opTraceNorm, err)
	}

	if isSymmetric(a, d) {
		// singular values of a symmetric matrix are |e_k|; shrinking on the
		// eigenbasis keeps the output exactly symmetric
		vals, vecs, err := eigSym(a, d)
		if err != nil {
			return proxErrorf(opTraceNorm, err)
		}
		for k, e := range vals {
			vals[k] = math.Copysign(math.Max(math.Abs(e)-lambda, 0), e)
		}
		reconstruct(dst, vecs, vals, d)
		return nil
	}

	m := mat.NewDense(d, d, append([]float64(nil), a...))
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return proxErrorf(opTraceNorm, ErrDecomposition)
	}
	sv := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	for k := range sv {
		sv[k] = math.Max(sv[k]-lambda, 0)
	}
	var (
		i, j, k int
		sum     float64
	)
	for i = 0; i < d; i++ {
		for j = 0; j < d; j++ {
			sum = 0
			for k = 0; k < d; k++ {
				if sv[k] != 0 {
					sum += u.At(i, k) * sv[k] * v.At(j, k)
				}
			}
			dst[i*d+j] = sum
		}
	}

	return nil
}

// TraceIndicator shifts the eigenvalues of the symmetric part of a by −lambda
// and clips them at zero: the prox of λ·tr(X) + indicator{X ⪰ 0}. Use it in
// place of TraceNorm when the latent component must stay positive
// semi-definite.
//
// Errors: ErrShape, ErrBadParameter, ErrNonFinite, ErrDecomposition.
func TraceIndicator(dst, a []float64, d int, lambda float64) error {
	if err := checkSlice(dst, a, d); err != nil {
		return proxErrorf(opTraceIndicator, err)
	}
	if err := checkParam(lambda); err != nil {
		return proxErrorf(opTraceIndicator, err)
	}
	if err := checkFinite(a); err != nil {
		return proxErrorf(opTraceIndicator, err)
	}

	vals, vecs, err := eigSym(a, d)
	if err != nil {
		return proxErrorf(opTraceIndicator, err)
	}
	for k := range vals {
		vals[k] = math.Max(vals[k]-lambda, 0)
	}
	reconstruct(dst, vecs, vals, d)

	return nil
}
