// SPDX-License-Identifier: MIT

package ltgl

import (
	"fmt"

	"github.com/veronicatozzo/regain/prox"
	"github.com/veronicatozzo/regain/tensor"
)

// objective evaluates the penalized negative log-likelihood on this
// iteration's split variables:
//
//	Σ −n_t·loglik(S_t, R_t) + α Σ ‖Z0_t‖_od,1 + τ Σ ‖W0_t‖_*
//	  + β Σ ψ(Z2_i − Z1_i) + η Σ φ(W2_i − W1_i)
//
// The value is diagnostic only; it never drives the stopping test.
func (st *state) objective() (float64, error) {
	var (
		obj float64
		d   = st.s.Dim()
		cfg = st.cfg
	)
	for t := 0; t < st.s.Len(); t++ {
		ll, err := prox.LogLikelihood(st.s.Slice(t), st.r.Slice(t), d)
		if err != nil {
			return 0, fmt.Errorf("objective: slice %d: %w", t, err)
		}
		obj -= st.n[t] * ll

		obj += cfg.Alpha * prox.L1OffDiag(st.z0.Slice(t), d)

		nuc, err := prox.Nuclear(st.w0.Slice(t), d)
		if err != nil {
			return 0, fmt.Errorf("objective: slice %d: %w", t, err)
		}
		obj += cfg.Tau * nuc
	}
	obj += cfg.Beta * pairPenalty(cfg.Psi, st.z1, st.z2)
	obj += cfg.Eta * pairPenalty(cfg.Phi, st.w1, st.w2)

	return obj, nil
}

// pairPenalty returns Σ_i p(c2_i − c1_i) over the temporal pairs.
func pairPenalty(p prox.Penalty, c1, c2 *tensor.Stack) float64 {
	diff := c2.Clone().Sub(c1)
	var sum float64
	for i := 0; i < diff.Len(); i++ {
		sum += p.Value(diff.Slice(i))
	}

	return sum
}
