// SPDX-License-Identifier: MIT

package ltgl

import (
	"github.com/sirupsen/logrus"

	"github.com/veronicatozzo/regain/tensor"
)

// state is the working set of one solver run. The driver owns every field;
// stages read the previous values and the driver swaps in fresh stacks.
//
// Pairwise stacks (index 1 and 2 families) hold T−1 slices: slice i is the
// pair (i, i+1). For T == 1 they are empty and every temporal term vanishes.
type state struct {
	cfg Config
	log logrus.FieldLogger

	s *tensor.Stack // empirical covariances, read-only
	n []float64     // per-slice sample counts

	div  []float64 // consensus copies per slice
	divK []float64 // divisor + 1
	divL []float64 // divisor + 1, or divisor − 1 for the legacy latent step

	// primal estimates and accumulated scaled duals
	k, l, x    *tensor.Stack
	u0, u1, u2 *tensor.Stack
	y0, y1, y2 *tensor.Stack

	// per-iteration stage outputs
	r          *tensor.Stack
	z0, z1, z2 *tensor.Stack
	w0, w1, w2 *tensor.Stack

	// deep copies of the previous consensus aggregates
	zPrev, wPrev *tensor.Stack

	// √(‖K‖² + ‖L‖²) after the first iteration, floored at 1
	normRef float64
}

// consensusDivisor returns, for every slice, how many consensus copies of K
// (or L) refer to it: the sparsity copy plus one temporal copy per
// neighbouring pair. Interior slices have 3, both ends 2, a lone slice 1.
func consensusDivisor(t int) []float64 {
	div := make([]float64, t)
	for i := range div {
		div[i] = 3
	}
	if t > 0 {
		div[0]--
		div[t-1]--
	}
	if t == 1 {
		div[0] = 1
	}

	return div
}

// newState allocates zero primal and dual stacks for s.
func newState(s *tensor.Stack, n []float64, cfg Config) (*state, error) {
	t, d := s.Shape()
	var err error
	zeros := func(m int) *tensor.Stack {
		z, zerr := tensor.NewStack(m, d)
		if zerr != nil && err == nil {
			err = zerr
		}
		return z
	}
	pairs := t - 1

	st := &state{
		cfg: cfg,
		log: cfg.logger(),
		s:   s,
		n:   n,
		div: consensusDivisor(t),

		k: zeros(t), l: zeros(t), x: zeros(t),
		u0: zeros(t), u1: zeros(pairs), u2: zeros(pairs),
		y0: zeros(t), y1: zeros(pairs), y2: zeros(pairs),

		zPrev: zeros(t), wPrev: zeros(t),
	}
	if err != nil {
		return nil, err
	}
	st.divK = make([]float64, t)
	st.divL = make([]float64, t)
	for i, v := range st.div {
		st.divK[i] = v + 1
		if cfg.LegacyLatentStep {
			st.divL[i] = v - 1
		} else {
			st.divL[i] = v + 1
		}
	}

	return st, nil
}
