// SPDX-License-Identifier: MIT

package ltgl

import (
	"fmt"
	"math"

	"github.com/veronicatozzo/regain/tensor"
)

// consensus aggregates the three copies of a variable onto the T slices:
// (c0 + c1[:-1] + c2[1:]) / divisor. The result is a fresh stack.
func consensus(c0, c1, c2 *tensor.Stack, div []float64) (*tensor.Stack, error) {
	out := c0.Clone()
	out.Head().Add(c1)
	out.Tail().Add(c2)
	if err := out.DivSlices(div); err != nil {
		return nil, err
	}

	return out, nil
}

// residuals holds the stopping-test quantities of one iteration.
type residuals struct {
	rnorm, snorm float64
	ePri, eDual  float64
}

// computeResiduals evaluates primal/dual residual norms and their adaptive
// tolerances:
//
//	rnorm  = √(‖K − Zc‖² + ‖L − Wc‖²)
//	snorm  = ρ·√(‖Zc − Zc_prev‖² + ‖Wc − Wc_prev‖²)
//	e_pri  = √(2|K|)·tol + rtol·max(√(‖K‖² + ‖L‖²), √(‖Zc‖² + ‖Wc‖²))
//	e_dual = √(2|K|)·tol + rtol·ρ·√(‖Uc‖² + ‖Yc‖²)
//
// where |K| is the element count T·d·d.
func computeResiduals(k, l, zc, wc, uc, yc, zPrev, wPrev *tensor.Stack, rho, tol, rtol float64) residuals {
	base := math.Sqrt(float64(2*k.Size())) * tol

	return residuals{
		rnorm: math.Sqrt(tensor.DiffFrobSq(k, zc) + tensor.DiffFrobSq(l, wc)),
		snorm: rho * math.Sqrt(tensor.DiffFrobSq(zc, zPrev)+tensor.DiffFrobSq(wc, wPrev)),
		ePri: base + rtol*math.Max(
			math.Sqrt(k.FrobSq()+l.FrobSq()),
			math.Sqrt(zc.FrobSq()+wc.FrobSq())),
		eDual: base + rtol*rho*math.Sqrt(uc.FrobSq()+yc.FrobSq()),
	}
}

// checkConvergence builds the consensus aggregates, evaluates the residuals
// and snapshots the Z/W aggregates by value for the next iteration.
func (st *state) checkConvergence() (residuals, error) {
	zc, err := consensus(st.z0, st.z1, st.z2, st.div)
	if err != nil {
		return residuals{}, fmt.Errorf("Z consensus: %w", err)
	}
	uc, err := consensus(st.u0, st.u1, st.u2, st.div)
	if err != nil {
		return residuals{}, fmt.Errorf("U consensus: %w", err)
	}
	wc, err := consensus(st.w0, st.w1, st.w2, st.div)
	if err != nil {
		return residuals{}, fmt.Errorf("W consensus: %w", err)
	}
	yc, err := consensus(st.y0, st.y1, st.y2, st.div)
	if err != nil {
		return residuals{}, fmt.Errorf("Y consensus: %w", err)
	}

	res := computeResiduals(st.k, st.l, zc, wc, uc, yc, st.zPrev, st.wPrev,
		st.cfg.Rho, st.cfg.Tol, st.cfg.RTol)

	st.zPrev.CopyFrom(zc)
	st.wPrev.CopyFrom(wc)

	return res, nil
}
