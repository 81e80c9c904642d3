// SPDX-License-Identifier: MIT

// Package ltgl - per-iteration stages.
//
// Purpose:
//   - updateR: proximal step of the negative log-likelihood, per slice.
//   - updateZ / updateW: consensus splitting of K and L into a penalty copy
//     (index 0) and the two members of every temporal pair (index 1, 2).
//   - updateK / updateL: average the copies back into the primal estimates.
//   - updateDuals: scaled dual ascent with unit step.
//
// Determinism:
//   - Every stage writes fresh stacks; per-slice maps never share outputs.

package ltgl

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/veronicatozzo/regain/prox"
	"github.com/veronicatozzo/regain/tensor"
)

// sliceProx maps slice t of src into dst.
type sliceProx func(t int, dst, src []float64) error

// updateR computes, per slice, R_t = LogDet(S_t − ρ/n_t·sym(M_t), n_t/ρ) with
// M = K − L + X, the target of the scaled dual term ρ/2‖K − L − R + X‖².
// With LegacyLatentStep the historical target K − L − X is used.
// Symmetrization happens before scaling.
func (st *state) updateR() error {
	a := st.k.Clone().Sub(st.l)
	if st.cfg.LegacyLatentStep {
		a.Sub(st.x)
	} else {
		a.Add(st.x)
	}
	a.Symmetrize()
	r := a.ZerosLike()
	rho, d := st.cfg.Rho, a.Dim()

	err := forEachSlice(st.cfg.Workers, a.Len(), func(t int) error {
		at := a.Slice(t)
		floats.Scale(-rho/st.n[t], at)
		floats.Add(at, st.s.Slice(t))
		return prox.LogDet(r.Slice(t), at, d, st.n[t]/rho)
	})
	if err != nil {
		return fmt.Errorf("R-update: %w", err)
	}
	st.r = r

	return nil
}

// split computes the consensus copies of one primal variable v with scaled
// duals d0, d1, d2:
//
//	c0 = first(v + d0)
//	e  = pen.Prox(v[1:] − v[:-1] + d2 − d1, weight)
//	c1 = ½(v[:-1] + v[1:] + d1 + d2 − e)
//	c2 = ½(v[:-1] + v[1:] + d1 + d2 + e)
func (st *state) split(v, d0, d1, d2 *tensor.Stack, first sliceProx, pen prox.Penalty, weight float64) (c0, c1, c2 *tensor.Stack, err error) {
	a := v.Clone().Add(d0)
	c0 = a.ZerosLike()
	err = forEachSlice(st.cfg.Workers, a.Len(), func(t int) error {
		return first(t, c0.Slice(t), a.Slice(t))
	})
	if err != nil {
		return nil, nil, nil, err
	}

	head, tail := v.Head(), v.Tail()
	diff := tail.Clone().Sub(head).Add(d2).Sub(d1)
	e := diff.ZerosLike()
	err = forEachSlice(st.cfg.Workers, diff.Len(), func(t int) error {
		return pen.Prox(e.Slice(t), diff.Slice(t), weight)
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("temporal pair: %w", err)
	}

	mid := head.Clone().Add(tail).Add(d1).Add(d2)
	c1 = mid.Clone().Sub(e).Scale(0.5)
	c2 = mid.Add(e).Scale(0.5)

	return c0, c1, c2, nil
}

// updateZ splits K: Z0 by soft-thresholding at α/ρ, Z1/Z2 by Psi at 2β/ρ.
func (st *state) updateZ() error {
	lambda := st.cfg.Alpha / st.cfg.Rho
	soft := func(_ int, dst, src []float64) error {
		return prox.SoftThreshold(dst, src, lambda)
	}
	z0, z1, z2, err := st.split(st.k, st.u0, st.u1, st.u2, soft, st.cfg.Psi, 2*st.cfg.Beta/st.cfg.Rho)
	if err != nil {
		return fmt.Errorf("Z-update: %w", err)
	}
	st.z0, st.z1, st.z2 = z0, z1, z2

	return nil
}

// updateW splits L: W0 by trace-norm shrinkage at n_t·τ/ρ (or the
// trace-indicator operator when LatentPSD), W1/W2 by Phi at 2η/ρ.
func (st *state) updateW() error {
	latent := prox.TraceNorm
	if st.cfg.LatentPSD {
		latent = prox.TraceIndicator
	}
	d, tau, rho := st.l.Dim(), st.cfg.Tau, st.cfg.Rho
	shrink := func(t int, dst, src []float64) error {
		return latent(dst, src, d, st.n[t]*tau/rho)
	}
	w0, w1, w2, err := st.split(st.l, st.y0, st.y1, st.y2, shrink, st.cfg.Phi, 2*st.cfg.Eta/st.cfg.Rho)
	if err != nil {
		return fmt.Errorf("W-update: %w", err)
	}
	st.w0, st.w1, st.w2 = w0, w1, w2

	return nil
}

// updateK recomputes K from the current L and this iteration's R and Z:
//
//	K = (L + R − X + Z0 − U0 + (Z1 − U1)[:-1] + (Z2 − U2)[1:]) / (divisor + 1)
func (st *state) updateK() error {
	k := st.l.Clone().Add(st.r).Sub(st.x).Add(st.z0).Sub(st.u0)
	k.Head().Add(st.z1).Sub(st.u1)
	k.Tail().Add(st.z2).Sub(st.u2)
	if err := k.DivSlices(st.divK); err != nil {
		return fmt.Errorf("K-update: %w", err)
	}
	if err := tensor.ValidateFinite(k); err != nil {
		return fmt.Errorf("K-update: %w", err)
	}
	st.k = k

	return nil
}

// updateL recomputes L from the new K and this iteration's R and W:
//
//	L = (K − R + X + W0 − Y0 + (W1 − Y1)[:-1] + (W2 − Y2)[1:]) / (divisor + 1)
//
// With LegacyLatentStep the historical formula is used instead:
//
//	L = (R − K − X + W0 − Y0 + …) / (divisor − 1)
//
// It pairs with the historical R target and diverges; the driver stops it
// through the divergence guard.
func (st *state) updateL() error {
	var l *tensor.Stack
	if st.cfg.LegacyLatentStep {
		l = st.r.Clone().Sub(st.k).Sub(st.x)
	} else {
		l = st.k.Clone().Sub(st.r).Add(st.x)
	}
	l.Add(st.w0).Sub(st.y0)
	l.Head().Add(st.w1).Sub(st.y1)
	l.Tail().Add(st.w2).Sub(st.y2)
	if err := l.DivSlices(st.divL); err != nil {
		return fmt.Errorf("L-update: %w", err)
	}
	if err := tensor.ValidateFinite(l); err != nil {
		return fmt.Errorf("L-update: %w", err)
	}
	st.l = l

	return nil
}

// updateDuals accumulates the scaled residual of every constraint.
func (st *state) updateDuals() {
	st.x.Add(st.k).Sub(st.l).Sub(st.r)

	st.u0.Add(st.k).Sub(st.z0)
	st.u1.Add(st.k.Head()).Sub(st.z1)
	st.u2.Add(st.k.Tail()).Sub(st.z2)

	st.y0.Add(st.l).Sub(st.w0)
	st.y1.Add(st.l.Head()).Sub(st.w1)
	st.y2.Add(st.l.Tail()).Sub(st.w2)
}
