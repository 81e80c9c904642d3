// SPDX-License-Identifier: MIT

// Package ltgl - driver.
//
// Purpose:
//   - Validate the problem once, allocate the working state and run the
//     fixed-order ADMM iteration until the residual test passes or MaxIter
//     is exhausted.
//
// Behavior highlights:
//   - Invalid input fails before the first iteration with ErrInvalidInput.
//   - A numerical failure inside any stage aborts the run with
//     ErrNumericalDegeneracy; no partial Result is returned.
//   - Exhausting MaxIter is not an error: the Result carries the last
//     iterate with Status NotConverged.
//   - Iterates growing past divergenceGrowth times their first-iteration
//     norm abort the run with ErrNumericalDegeneracy wrapping ErrDiverged.
//
// Complexity:
//   - Per iteration O(T·d³) for the eigen/SVD decompositions, O(T·d²) memory
//     for each of the ~20 working stacks.

package ltgl

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/veronicatozzo/regain/covariance"
	"github.com/veronicatozzo/regain/tensor"
)

// divergenceGrowth bounds how far the iterate norm may grow past its
// first-iteration value before the run is declared divergent.
const divergenceGrowth = 1e10

// Solve estimates (K, L) from T observation matrices (rows are observations,
// columns features). The empirical covariance of every slice is computed
// first (see covariance.Stack), with n_t the row count of slice t.
func Solve(data []*mat.Dense, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ms := make([]mat.Matrix, len(data))
	for t, x := range data {
		if x == nil {
			return nil, fmt.Errorf("%w: slice %d is nil", ErrInvalidInput, t)
		}
		ms[t] = x
	}
	s, n, err := covariance.Stack(ms, cfg.AssumeCentered)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return SolveCovariance(s, n, cfg)
}

// SolveCovariance estimates (K, L) from precomputed empirical covariances
// S (T×d×d) and per-slice sample counts. S is not modified; a copy is kept
// in Result.Covariance.
func SolveCovariance(s *tensor.Stack, nSamples []float64, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateProblem(s, nSamples, cfg); err != nil {
		return nil, err
	}

	st, err := newState(s.Clone(), append([]float64(nil), nSamples...), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	res := &Result{Covariance: st.s, Status: NotConverged}
	if cfg.ReturnHistory {
		res.History = make([]ConvergenceRecord, 0, min(cfg.MaxIter, 256))
	}

	for iter := 1; iter <= cfg.MaxIter; iter++ {
		rec, err := st.iterate(iter)
		if err != nil {
			return nil, fmt.Errorf("%w: iteration %d: %w", ErrNumericalDegeneracy, iter, err)
		}
		res.Iterations = iter
		if cfg.ReturnHistory {
			res.History = append(res.History, rec)
		}
		if cfg.Verbose {
			st.log.WithFields(logrus.Fields{
				"iter":     rec.Iteration,
				"obj":      rec.Objective,
				"rnorm":    rec.RNorm,
				"snorm":    rec.SNorm,
				"eps_pri":  rec.EPri,
				"eps_dual": rec.EDual,
			}).Info("ltgl: iteration")
		}
		if rec.Converged() {
			res.Status = Converged
			break
		}
	}

	if res.Status != Converged {
		st.log.WithField("max_iter", cfg.MaxIter).Warn("ltgl: objective did not converge")
	}
	res.Precision, res.Latent = st.k, st.l

	return res, nil
}

// iterate runs one full ADMM iteration in the fixed stage order.
func (st *state) iterate(iter int) (ConvergenceRecord, error) {
	stages := [...]func() error{st.updateR, st.updateZ, st.updateW, st.updateK, st.updateL}
	for _, stage := range stages {
		if err := stage(); err != nil {
			return ConvergenceRecord{}, err
		}
	}
	// the objective needs this iteration's R, Z and W, before the duals move
	obj, err := st.objective()
	if err != nil {
		return ConvergenceRecord{}, err
	}
	st.updateDuals()

	if err := st.checkGrowth(iter); err != nil {
		return ConvergenceRecord{}, err
	}
	res, err := st.checkConvergence()
	if err != nil {
		return ConvergenceRecord{}, err
	}

	return ConvergenceRecord{
		Iteration: iter,
		Objective: obj,
		RNorm:     res.rnorm,
		SNorm:     res.snorm,
		EPri:      res.ePri,
		EDual:     res.eDual,
	}, nil
}

// checkGrowth rejects iterates whose norm √(‖K‖² + ‖L‖²) exceeds
// divergenceGrowth times its first-iteration value (floored at 1). The
// relative tolerances scale with that norm, so a diverging run would
// otherwise pass the stopping test.
func (st *state) checkGrowth(iter int) error {
	norm := math.Sqrt(st.k.FrobSq() + st.l.FrobSq())
	if iter == 1 {
		st.normRef = math.Max(1, norm)
		return nil
	}
	if !(norm <= divergenceGrowth*st.normRef) {
		return fmt.Errorf("iterate norm %.3g exceeds %g times its initial value %.3g: %w",
			norm, divergenceGrowth, st.normRef, ErrDiverged)
	}

	return nil
}

// validateProblem checks the data side of a run: a non-empty finite S,
// one positive finite sample count per slice, and T >= 2 for the legacy
// latent step.
func validateProblem(s *tensor.Stack, n []float64, cfg Config) error {
	if s == nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, tensor.ErrNilStack)
	}
	t := s.Len()
	if t == 0 {
		return fmt.Errorf("%w: empty covariance stack", ErrInvalidInput)
	}
	if len(n) != t {
		return fmt.Errorf("%w: %d sample counts for %d slices", ErrInvalidInput, len(n), t)
	}
	for i, v := range n {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample count %d is %g", ErrInvalidInput, i, v)
		}
	}
	if err := tensor.ValidateFinite(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if cfg.LegacyLatentStep && t == 1 {
		return fmt.Errorf("%w: legacy latent step needs at least two slices", ErrInvalidInput)
	}

	return nil
}

// IsDegenerate reports whether err came from a numerical failure inside
// the iteration rather than from invalid input.
func IsDegenerate(err error) bool { return errors.Is(err, ErrNumericalDegeneracy) }
