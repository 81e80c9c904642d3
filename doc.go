// Package regain estimates regularised time-varying graphical models: a
// sequence of sparse precision matrices, one per time slice, plus low-rank
// latent components, fitted jointly so that consecutive slices stay close.
//
// 🚀 What is regain?
//
//	A pure-Go toolkit built on gonum that brings together:
//		• Latent time-varying graphical lasso by consensus ADMM (ltgl)
//		• Proximal operators: log-det, soft-threshold, trace norm, temporal penalties (prox)
//		• Empirical covariances of observation matrices (covariance)
//		• A T×d×d tensor with no-copy range views (tensor)
//		• Graph views of an estimate: partial correlations, edges, changes (network)
//		• A command-line front end: regain fit (cmd/regain)
//
// ✨ Why regain?
//
//   - One explicit Config, validated up front; every violation reported at once
//   - Non-convergence is a status, not an error; numerical trouble is an error
//   - Deterministic results for any worker count
//
// Under the hood:
//
//	tensor/      — Stack, views, in-place arithmetic, validators
//	prox/        — per-slice proximal maps and norms
//	covariance/  — per-slice MLE covariance and sample counts
//	ltgl/        — Config, Solve, SolveCovariance, Result
//	network/     — observed precision, partial correlation, edge lists
//	cmd/regain/  — CLI: YAML config + CSV slices in, JSON out
//
// Quick ride:
//
//	cfg := ltgl.DefaultConfig()
//	cfg.Alpha, cfg.Tau = 0.1, 0.1
//	res, err := ltgl.Solve(slices, cfg)
//	if err != nil { ... }
//	observed, _ := network.ObservedPrecision(res.Precision, res.Latent)
//	edges, _ := network.Edges(observed, 1e-3)
package regain
