// SPDX-License-Identifier: MIT

package ltgl

import (
	"fmt"

	"github.com/veronicatozzo/regain/tensor"
)

// Status tells whether the stopping criterion was met.
type Status int

const (
	// Converged means rnorm <= e_pri and snorm <= e_dual at the last iteration.
	Converged Status = iota
	// NotConverged means MaxIter was exhausted; the estimate is the last iterate.
	NotConverged
)

// String returns a lower-case status name.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case NotConverged:
		return "not_converged"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ConvergenceRecord is the diagnostic snapshot of one iteration.
type ConvergenceRecord struct {
	Iteration int     `json:"iteration"`
	Objective float64 `json:"obj"`
	RNorm     float64 `json:"rnorm"`
	SNorm     float64 `json:"snorm"`
	EPri      float64 `json:"e_pri"`
	EDual     float64 `json:"e_dual"`
}

// Converged reports whether both residuals are within tolerance.
func (r ConvergenceRecord) Converged() bool {
	return r.RNorm <= r.EPri && r.SNorm <= r.EDual
}

// Result is the outcome of a solver run.
type Result struct {
	// Precision is the sparse component K (T×d×d).
	Precision *tensor.Stack
	// Latent is the low-rank component L (T×d×d).
	Latent *tensor.Stack
	// Covariance is the empirical covariance S the solver was fitted on.
	Covariance *tensor.Stack
	// History holds one record per iteration when Config.ReturnHistory is set.
	History []ConvergenceRecord
	// Iterations is the number of iterations performed.
	Iterations int
	// Status tells whether the stopping criterion was met.
	Status Status
}

// Converged reports Status == Converged.
func (r *Result) Converged() bool { return r.Status == Converged }

// Err returns nil for a converged run and a wrapped ErrNotConverged
// otherwise, for callers that prefer error flow over status checks.
func (r *Result) Err() error {
	if r.Converged() {
		return nil
	}

	return fmt.Errorf("%w after %d iterations", ErrNotConverged, r.Iterations)
}
