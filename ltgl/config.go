// SPDX-License-Identifier: MIT

// Package ltgl - solver configuration.
//
// Purpose:
//   - One explicit structure for the five hyperparameters and the solver
//     controls, so nothing is passed positionally.
//   - Defaults live in constants (single source of truth) and DefaultConfig.
//   - Validation is declarative (struct tags) and reports every violation.

package ltgl

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/veronicatozzo/regain/prox"
)

// Defaults.
const (
	DefaultAlpha   = 1.0
	DefaultTau     = 1.0
	DefaultBeta    = 1.0
	DefaultEta     = 1.0
	DefaultRho     = 1.0
	DefaultMaxIter = 1000
	DefaultTol     = 1e-4
	DefaultRTol    = 1e-2
	DefaultWorkers = 1
)

// Config holds hyperparameters and solver controls.
type Config struct {
	// Alpha weights the off-diagonal ℓ1 penalty on K (sparsity).
	Alpha float64 `yaml:"alpha" validate:"finite,gte=0"`
	// Tau weights the trace norm on L (low rank).
	Tau float64 `yaml:"tau" validate:"finite,gte=0"`
	// Beta weights the temporal penalty Psi on consecutive K slices.
	Beta float64 `yaml:"beta" validate:"finite,gte=0"`
	// Eta weights the temporal penalty Phi on consecutive L slices.
	Eta float64 `yaml:"eta" validate:"finite,gte=0"`
	// Rho is the augmented Lagrangian penalty.
	Rho float64 `yaml:"rho" validate:"finite,gt=0"`

	// MaxIter caps the number of ADMM iterations.
	MaxIter int `yaml:"max_iter" validate:"gt=0"`
	// Tol and RTol are the absolute and relative stopping tolerances.
	Tol  float64 `yaml:"tol" validate:"finite,gt=0"`
	RTol float64 `yaml:"rtol" validate:"finite,gt=0"`

	// ReturnHistory keeps one ConvergenceRecord per iteration in the Result.
	ReturnHistory bool `yaml:"return_history"`
	// Verbose logs every iteration at Info level.
	Verbose bool `yaml:"verbose"`

	// Psi and Phi select the temporal penalties on K and L.
	Psi prox.Penalty `yaml:"psi" validate:"penalty"`
	Phi prox.Penalty `yaml:"phi" validate:"penalty"`

	// LatentPSD replaces trace-norm shrinkage of W0 with the trace-indicator
	// operator, keeping the latent component positive semi-definite.
	LatentPSD bool `yaml:"latent_psd"`

	// LegacyLatentStep restores the historical updates: R fitted to
	// K − L − X and L recomputed as (R − K − X + …)/(divisor − 1). They do
	// not follow from the augmented Lagrangian and diverge on well-posed
	// problems, which surfaces as ErrDiverged. Rejected for a single slice.
	LegacyLatentStep bool `yaml:"legacy_latent_step"`

	// AssumeCentered skips column centering in Solve's covariance step.
	AssumeCentered bool `yaml:"assume_centered"`

	// Workers bounds the goroutines used for per-slice proximal maps;
	// values <= 1 run sequentially.
	Workers int `yaml:"workers" validate:"gte=0"`

	// Logger receives iteration and non-convergence messages. Nil discards.
	Logger logrus.FieldLogger `yaml:"-" validate:"-"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Alpha:   DefaultAlpha,
		Tau:     DefaultTau,
		Beta:    DefaultBeta,
		Eta:     DefaultEta,
		Rho:     DefaultRho,
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
		RTol:    DefaultRTol,
		Psi:     prox.Laplacian,
		Phi:     prox.Laplacian,
		Workers: DefaultWorkers,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// configValidator lazily builds the shared validator with the custom
// "finite" and "penalty" tags.
func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field()
			if f.Kind() != reflect.Float64 && f.Kind() != reflect.Float32 {
				return true
			}
			x := f.Float()
			return !math.IsNaN(x) && !math.IsInf(x, 0)
		})
		_ = v.RegisterValidation("penalty", func(fl validator.FieldLevel) bool {
			return prox.Penalty(fl.Field().Int()).Valid()
		})
		validate = v
	})

	return validate
}

// Validate checks every field and reports all violations at once, wrapped
// in ErrInvalidInput.
func (c Config) Validate() error {
	err := configValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s=%v fails %s", fe.Field(), fe.Value(), rule))
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

// logger returns the configured logger or a discarding one.
func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
