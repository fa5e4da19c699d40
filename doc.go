// Package semcov fits linear structural-equation models (SEM) with latent
// variables to an observed sample covariance matrix.
//
// 🚀 What is semcov?
//
//	A deterministic covariance-propagation engine for causal DAGs:
//		• Structure compilation: a boolean parent matrix becomes a sparse,
//		  topologically layered adjacency (CSR parent/child lists, latent
//		  presence spans)
//		• Forward pass: the model-implied covariance is computed by a linear
//		  recursion over the layering — O(edges) per layer instead of a dense
//		  O(n³) matrix inversion
//		• Backward pass: a hand-derived adjoint walks the same layering in
//		  reverse, accumulating loss gradients for every edge weight
//		• Loss: closed-form Gaussian Kullback–Leibler divergence (and a cheap
//		  proxy) against a caller-supplied sample covariance
//
// ✨ Why choose semcov?
//
//   - Deterministic – fixed sweep orders, bit-identical repeated runs
//   - Safe surface – sentinel errors, no panics on user input
//   - Precision-generic – float32 or float64 state, fixed at construction
//   - Live views – weights, lambda and covariance share storage with the
//     solver; the outer optimizer mutates them in place between steps
//
// Everything is organized under three subpackages:
//
//	matrix/ — row-major dense matrices, no-copy windows, read/write interfaces
//	dag/    — structure matrices and their compiled, layered adjacency
//	solver/ — the propagation engine: forward, backward, KL loss, facade
//
// Quick ASCII example (one latent, one visible):
//
//	    L0 ──w──▶ V0
//
//	Var(V0) = w²·Var(L0) + λ(V0); the sample covariance over {V0} is the
//	training target.
//
// Dive into the per-package docs for contracts, complexity and examples.
//
//	go get github.com/katalvlaran/semcov
package semcov
