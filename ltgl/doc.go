// SPDX-License-Identifier: MIT

// Package ltgl estimates latent time-varying graphical models by consensus
// ADMM.
//
// 🚀 What is it?
//
//	Given T data matrices observed over time (observations × d features),
//	ltgl finds for every slice t a sparse precision component K_t and a
//	low-rank latent component L_t such that K_t − L_t explains the empirical
//	covariance S_t, while consecutive slices are kept close:
//
//	  min Σ_t −n_t·(log det R_t − tr(S_t R_t)) + α‖K_t‖_od,1 + τ‖L_t‖_*
//	      + β Σ_t ψ(K_t − K_{t−1}) + η Σ_t φ(L_t − L_{t−1}),   R_t = K_t − L_t
//
// ⚙️ Usage:
//
//	cfg := ltgl.DefaultConfig()
//	cfg.Alpha, cfg.Tau = 0.1, 0.1
//	res, err := ltgl.Solve(data, cfg)
//	if err != nil { ... }               // invalid input or numerical degeneracy
//	if !res.Converged() { ... }         // usable, but MaxIter was exhausted
//	K, L := res.Precision, res.Latent
//
// Iteration:
//
//	Every iteration runs, in this order: the data-fit step (R), the sparse
//	consensus step (Z0 soft-threshold, Z1/Z2 temporal pair), the latent
//	consensus step (W0 trace-norm shrinkage, W1/W2 temporal pair), the
//	recomputation of K then L, the scaled dual ascent and the stopping test
//	on primal/dual residual norms.
//
// Concurrency:
//
//	A single Solve call is sequential except for the per-slice proximal maps,
//	which fan out over Config.Workers goroutines. Each goroutine writes only
//	its own slice, so results do not depend on the worker count.
package ltgl
