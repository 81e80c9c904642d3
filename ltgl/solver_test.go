// SPDX-License-Identifier: MIT

package ltgl_test

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/veronicatozzo/regain/ltgl"
	"github.com/veronicatozzo/regain/prox"
	"github.com/veronicatozzo/regain/tensor"
)

func TestSolveCovariance_IdentityConverges(t *testing.T) {
	t.Parallel()

	s, n := identityProblem(t, 3, 3, 50)
	res, err := ltgl.SolveCovariance(s, n, smallConfig())
	require.NoError(t, err)
	require.True(t, res.Converged())
	require.NoError(t, res.Err())
	assert.Less(t, res.Iterations, 200)

	for tt := 0; tt < 3; tt++ {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 1, diag(t, res.Precision, tt, i), 0.02, "K[%d][%d,%d]", tt, i, i)
			assert.InDelta(t, 0, diag(t, res.Latent, tt, i), 0.02, "L[%d][%d,%d]", tt, i, i)
		}
	}
	assert.Less(t, maxOffDiag(res.Precision), 1e-8)
	assert.Less(t, maxOffDiag(res.Latent), 1e-8)

	// slices agree with each other
	for tt := 1; tt < 3; tt++ {
		assert.InDelta(t, diag(t, res.Precision, 0, 0), diag(t, res.Precision, tt, 0), 0.01)
	}

	// the covariance is carried by value
	assert.Equal(t, s.Raw(), res.Covariance.Raw())
	assert.NotSame(t, &s.Raw()[0], &res.Covariance.Raw()[0])
}

func TestSolveCovariance_ZeroCovarianceOneIteration(t *testing.T) {
	t.Parallel()

	s, err := tensor.NewStack(3, 3)
	require.NoError(t, err)
	cfg := ltgl.DefaultConfig()
	cfg.MaxIter = 1

	res, err := ltgl.SolveCovariance(s, []float64{3, 3, 3}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)

	assert.Less(t, maxOffDiag(res.Precision), 1e-12)
	assert.Less(t, maxOffDiag(res.Latent), 1e-12)
	assert.Less(t, res.Precision.MaxAsymmetry(), 1e-12)
	assert.Less(t, res.Latent.MaxAsymmetry(), 1e-12)

	// R = √(n/ρ)·I; K = R/(divisor+1); L = (K − R)/(divisor+1)
	r := math.Sqrt(3)
	kEnd, kMid := r/3, r/4
	assert.InDelta(t, kEnd, diag(t, res.Precision, 0, 0), 1e-12)
	assert.InDelta(t, kMid, diag(t, res.Precision, 1, 1), 1e-12)
	assert.InDelta(t, kEnd, diag(t, res.Precision, 2, 2), 1e-12)
	assert.InDelta(t, (kEnd-r)/3, diag(t, res.Latent, 0, 0), 1e-12)
	assert.InDelta(t, (kMid-r)/4, diag(t, res.Latent, 1, 1), 1e-12)
}

func TestSolve_SymmetricEveryIteration(t *testing.T) {
	t.Parallel()

	data := randomData(4, 30, 4, 7)
	penalties := [][2]prox.Penalty{
		{prox.Laplacian, prox.Laplacian},
		{prox.L1, prox.L2},
		{prox.L2, prox.Linf},
	}
	for _, pp := range penalties {
		cfg := ltgl.DefaultConfig()
		cfg.Alpha, cfg.Tau, cfg.Beta, cfg.Eta = 0.2, 0.2, 0.5, 0.5
		cfg.Psi, cfg.Phi = pp[0], pp[1]
		for m := 1; m <= 6; m++ {
			cfg.MaxIter = m
			res, err := ltgl.Solve(data, cfg)
			require.NoError(t, err, "%v/%v iter %d", pp[0], pp[1], m)
			assert.Less(t, res.Precision.MaxAsymmetry(), 1e-10, "%v/%v iter %d", pp[0], pp[1], m)
			assert.Less(t, res.Latent.MaxAsymmetry(), 1e-10, "%v/%v iter %d", pp[0], pp[1], m)
		}
	}
}

func TestSolveCovariance_FewSlices(t *testing.T) {
	t.Parallel()

	for _, T := range []int{1, 2} {
		s, n := identityProblem(t, T, 3, 50)
		res, err := ltgl.SolveCovariance(s, n, smallConfig())
		require.NoError(t, err, "T=%d", T)
		assert.True(t, res.Converged(), "T=%d", T)
		assert.Equal(t, T, res.Precision.Len())
		assert.Equal(t, T, res.Latent.Len())
		for tt := 0; tt < T; tt++ {
			assert.InDelta(t, 1, diag(t, res.Precision, tt, 0), 0.05, "T=%d", T)
		}
	}
}

func TestSolveCovariance_ObjectiveWithoutTemporalTerms(t *testing.T) {
	t.Parallel()

	s, n := identityProblem(t, 3, 3, 50)
	cfg := smallConfig()
	cfg.Beta, cfg.Eta = 0, 0
	cfg.ReturnHistory = true

	res, err := ltgl.SolveCovariance(s, n, cfg)
	require.NoError(t, err)
	require.True(t, res.Converged())
	require.Len(t, res.History, res.Iterations)

	for i, rec := range res.History {
		assert.Equal(t, i+1, rec.Iteration)
		assert.False(t, math.IsNaN(rec.Objective))
	}
	// ADMM iterates are not feasible, so allow a small relative slack once
	// the start-up transient is over
	for i := 5; i < len(res.History); i++ {
		prev, cur := res.History[i-1].Objective, res.History[i].Objective
		assert.LessOrEqual(t, cur, prev+1e-4*math.Abs(prev), "iteration %d", i+1)
	}
	last := res.History[len(res.History)-1]
	assert.True(t, last.Converged())
}

func TestSolveCovariance_NotConverged(t *testing.T) {
	t.Parallel()

	s, n := identityProblem(t, 3, 3, 50)
	cfg := smallConfig()
	cfg.MaxIter = 2
	logger, hook := logtest.NewNullLogger()
	cfg.Logger = logger

	res, err := ltgl.SolveCovariance(s, n, cfg)
	require.NoError(t, err)
	assert.Equal(t, ltgl.NotConverged, res.Status)
	assert.Equal(t, 2, res.Iterations)
	assert.ErrorIs(t, res.Err(), ltgl.ErrNotConverged)
	require.NotNil(t, res.Precision)
	require.NotNil(t, res.Latent)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 2, entry.Data["max_iter"])
}

func TestSolveCovariance_VerboseLogsEveryIteration(t *testing.T) {
	t.Parallel()

	s, n := identityProblem(t, 2, 2, 10)
	cfg := smallConfig()
	cfg.MaxIter = 3
	cfg.Verbose = true
	logger, hook := logtest.NewNullLogger()
	cfg.Logger = logger

	res, err := ltgl.SolveCovariance(s, n, cfg)
	require.NoError(t, err)

	infos := 0
	for _, e := range hook.AllEntries() {
		if e.Level != logrus.InfoLevel {
			continue
		}
		infos++
		for _, key := range []string{"iter", "obj", "rnorm", "snorm", "eps_pri", "eps_dual"} {
			assert.Contains(t, e.Data, key)
		}
	}
	assert.Equal(t, res.Iterations, infos)
}

func TestSolve_WorkersDoNotChangeResult(t *testing.T) {
	t.Parallel()

	data := randomData(5, 40, 5, 11)
	cfg := ltgl.DefaultConfig()
	cfg.Alpha, cfg.Tau = 0.3, 0.3
	cfg.MaxIter = 25

	cfg.Workers = 1
	seq, err := ltgl.Solve(data, cfg)
	require.NoError(t, err)

	cfg.Workers = 4
	par, err := ltgl.Solve(data, cfg)
	require.NoError(t, err)

	assert.Equal(t, seq.Iterations, par.Iterations)
	assert.Equal(t, seq.Precision.Raw(), par.Precision.Raw())
	assert.Equal(t, seq.Latent.Raw(), par.Latent.Raw())
}

func TestSolveCovariance_LegacyLatentStep(t *testing.T) {
	t.Parallel()

	s, n := identityProblem(t, 3, 3, 50)
	cfg := smallConfig()

	// a short run stops before any false convergence
	cfg.MaxIter = 5
	def, err := ltgl.SolveCovariance(s, n, cfg)
	require.NoError(t, err)
	cfg.LegacyLatentStep = true
	short, err := ltgl.SolveCovariance(s, n, cfg)
	require.NoError(t, err)
	assert.Equal(t, ltgl.NotConverged, short.Status)
	assert.NotEqual(t, def.Latent.Raw(), short.Latent.Raw())

	// a full run blows up and is reported as degenerate, never as converged
	cfg.MaxIter = 200
	res, err := ltgl.SolveCovariance(s, n, cfg)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ltgl.ErrNumericalDegeneracy)
	assert.ErrorIs(t, err, ltgl.ErrDiverged)
	assert.True(t, ltgl.IsDegenerate(err))

	one, nOne := identityProblem(t, 1, 3, 50)
	_, err = ltgl.SolveCovariance(one, nOne, cfg)
	assert.ErrorIs(t, err, ltgl.ErrInvalidInput)
}

func TestSolveCovariance_LegacyScalarDiverges(t *testing.T) {
	t.Parallel()

	s, n := identityProblem(t, 2, 1, 1)
	cfg := scalarConfig(0)
	cfg.LegacyLatentStep = true
	cfg.MaxIter = 3000

	_, err := ltgl.SolveCovariance(s, n, cfg)
	assert.ErrorIs(t, err, ltgl.ErrDiverged)
}

func TestSolveCovariance_InvalidInput(t *testing.T) {
	t.Parallel()

	s, n := identityProblem(t, 3, 2, 10)
	empty, err := tensor.NewStack(0, 2)
	require.NoError(t, err)
	withNaN := s.Clone()
	require.NoError(t, withNaN.Set(1, 0, 1, math.NaN()))

	cases := []struct {
		name   string
		s      *tensor.Stack
		n      []float64
		mutate func(*ltgl.Config)
	}{
		{name: "nil covariance", s: nil, n: n},
		{name: "empty covariance", s: empty, n: nil},
		{name: "sample count length", s: s, n: n[:2]},
		{name: "zero samples", s: s, n: []float64{10, 0, 10}},
		{name: "NaN samples", s: s, n: []float64{10, math.NaN(), 10}},
		{name: "NaN covariance", s: withNaN, n: n},
		{name: "negative alpha", s: s, n: n, mutate: func(c *ltgl.Config) { c.Alpha = -1 }},
		{name: "NaN tau", s: s, n: n, mutate: func(c *ltgl.Config) { c.Tau = math.NaN() }},
		{name: "zero rho", s: s, n: n, mutate: func(c *ltgl.Config) { c.Rho = 0 }},
		{name: "zero max iter", s: s, n: n, mutate: func(c *ltgl.Config) { c.MaxIter = 0 }},
		{name: "zero tol", s: s, n: n, mutate: func(c *ltgl.Config) { c.Tol = 0 }},
		{name: "bad penalty", s: s, n: n, mutate: func(c *ltgl.Config) { c.Psi = prox.Penalty(42) }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := ltgl.DefaultConfig()
			if tc.mutate != nil {
				tc.mutate(&cfg)
			}
			res, err := ltgl.SolveCovariance(tc.s, tc.n, cfg)
			assert.ErrorIs(t, err, ltgl.ErrInvalidInput)
			assert.Nil(t, res)
			assert.False(t, ltgl.IsDegenerate(err))
		})
	}
}

func TestSolve_InvalidData(t *testing.T) {
	t.Parallel()

	cfg := ltgl.DefaultConfig()

	_, err := ltgl.Solve(nil, cfg)
	assert.ErrorIs(t, err, ltgl.ErrInvalidInput)

	_, err = ltgl.Solve([]*mat.Dense{mat.NewDense(4, 2, nil), nil}, cfg)
	assert.ErrorIs(t, err, ltgl.ErrInvalidInput)

	mixed := []*mat.Dense{mat.NewDense(4, 2, nil), mat.NewDense(4, 3, nil)}
	_, err = ltgl.Solve(mixed, cfg)
	assert.ErrorIs(t, err, ltgl.ErrInvalidInput)
}

// scalarConfig is a d=1 problem whose minimiser is known in closed form:
// with β = η = 0 the objective per slice is −log k + s·k + α·k (soft
// thresholding also shrinks the diagonal), so k = 1/(s + α), and L = 0
// because α <= n·τ.
func scalarConfig(temporal float64) ltgl.Config {
	cfg := ltgl.DefaultConfig()
	cfg.Alpha, cfg.Tau = 0.2, 0.5
	cfg.Beta, cfg.Eta = temporal, temporal
	cfg.Tol, cfg.RTol = 1e-12, 1e-12
	cfg.MaxIter = 1000

	return cfg
}

func TestSolveCovariance_ScalarClosedForm(t *testing.T) {
	t.Parallel()

	for _, sv := range []float64{0.5, 1, 2} {
		for _, temporal := range []float64{0, 0.3} {
			s, err := tensor.NewStack(3, 1)
			require.NoError(t, err)
			for tt := 0; tt < 3; tt++ {
				require.NoError(t, s.Set(tt, 0, 0, sv))
			}
			res, err := ltgl.SolveCovariance(s, []float64{1, 1, 1}, scalarConfig(temporal))
			require.NoError(t, err, "s=%g β=%g", sv, temporal)
			require.True(t, res.Converged(), "s=%g β=%g", sv, temporal)

			want := 1 / (sv + 0.2)
			for tt := 0; tt < 3; tt++ {
				assert.InDelta(t, want, res.Precision.Raw()[tt], 1e-8, "s=%g β=%g slice %d", sv, temporal, tt)
				assert.InDelta(t, 0, res.Latent.Raw()[tt], 1e-8, "s=%g β=%g slice %d", sv, temporal, tt)
			}
		}
	}
}

// TestSolve_OptimalityConditions checks the first-order conditions of the
// slice-separable problem (β = η = 0) at the returned estimate. With
// R = K − L and M = n·(R⁻¹ − S):
//
//	M ∈ α·∂‖K‖₁       → |M_ij| <= α, and M_ij = α·sign(K_ij) where K_ij != 0
//	−M ∈ nτ·∂‖L‖_*    → ‖M‖₂ <= nτ, and −M·u = nτ·sign(λ)·u for L·u = λ·u, λ != 0
func TestSolve_OptimalityConditions(t *testing.T) {
	t.Parallel()

	const (
		rows = 30
		kkt  = 1e-4
		nz   = 1e-5
	)
	cases := []struct {
		name       string
		alpha, tau float64
	}{
		{name: "sparse precision", alpha: 0.5, tau: 0.07},
		{name: "low-rank latent", alpha: 1, tau: 0.06},
	}
	for _, tc := range cases {
		for seed := int64(1); seed <= 2; seed++ {
			data := randomData(3, rows, 4, seed)
			cfg := ltgl.DefaultConfig()
			cfg.Alpha, cfg.Tau, cfg.Beta, cfg.Eta = tc.alpha, tc.tau, 0, 0
			cfg.Tol, cfg.RTol = 1e-9, 1e-9
			cfg.MaxIter = 10000

			res, err := ltgl.Solve(data, cfg)
			require.NoError(t, err, tc.name)
			require.True(t, res.Converged(), "%s seed %d", tc.name, seed)

			d := res.Precision.Dim()
			bound := rows * tc.tau
			for tt := 0; tt < res.Precision.Len(); tt++ {
				k, l := res.Precision.Matrix(tt), res.Latent.Matrix(tt)
				var r, rInv, m mat.Dense
				r.Sub(k, l)
				require.NoError(t, rInv.Inverse(&r))
				m.Sub(&rInv, res.Covariance.Matrix(tt))
				m.Scale(rows, &m)

				for i := 0; i < d; i++ {
					for j := 0; j < d; j++ {
						mij := m.At(i, j)
						assert.LessOrEqual(t, math.Abs(mij), tc.alpha+kkt, "%s seed %d slice %d (%d,%d)", tc.name, seed, tt, i, j)
						if kij := k.At(i, j); math.Abs(kij) > nz {
							assert.InDelta(t, tc.alpha*math.Copysign(1, kij), mij, kkt, "%s seed %d slice %d (%d,%d)", tc.name, seed, tt, i, j)
						}
					}
				}

				msym := symmetricOf(&m)
				var em mat.EigenSym
				require.True(t, em.Factorize(msym, false))
				for _, ev := range em.Values(nil) {
					assert.LessOrEqual(t, math.Abs(ev), bound+kkt, "%s seed %d slice %d", tc.name, seed, tt)
				}

				var el mat.EigenSym
				require.True(t, el.Factorize(symmetricOf(l), true))
				var vecs mat.Dense
				el.VectorsTo(&vecs)
				for c, lambda := range el.Values(nil) {
					if math.Abs(lambda) <= nz {
						continue
					}
					u := vecs.ColView(c)
					var mu mat.VecDense
					mu.MulVec(&m, u)
					mu.AddScaledVec(&mu, bound*math.Copysign(1, lambda), u)
					assert.Less(t, mat.Norm(&mu, 2), kkt, "%s seed %d slice %d eigenvalue %g", tc.name, seed, tt, lambda)
				}
			}
		}
	}
}
