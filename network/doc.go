// SPDX-License-Identifier: MIT

// Package network turns an estimated precision sequence into graphs.
//
// 🚀 What is it?
//
//	After ltgl.Solve the sparse component K and the latent component L are
//	dense tensors. This package derives what is usually inspected next:
//	  - ObservedPrecision: K_t − L_t, the precision of the observed variables.
//	  - PartialCorrelation: −P_ij/√(P_ii·P_jj), unit diagonal.
//	  - Edges: the undirected edge list of every slice above a threshold.
//	  - Changes: edges added and removed between consecutive slices.
//
// Every function is pure: inputs are never modified.
package network
