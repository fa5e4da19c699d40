// Package solver fits a latent-variable SEM to a sample covariance by
// propagating covariance forward — and loss gradients backward — over the
// layered adjacency compiled by package dag.
//
// What:
//
//   - Solver owns every buffer for one model instance: weights, lambda
//     (exogenous noise), the full covariance matrix, a weight-gradient
//     buffer and a parity-selected pair of covariance-gradient buffers.
//   - Forward() recomputes the model-implied covariance in place by a
//     linear recursion over the layering: Cov(c,j) = Σ_p W(p,c)·Cov(p,j),
//     the self term adding Lambda(c,c). Cost is O(edges) per partner
//     instead of a dense O(n³) inversion — the recursion realizes
//     Cov = (I−B)⁻¹ Λ (I−B)⁻ᵀ without ever materializing an inverse.
//   - Backward() seeds dLoss/dVisibleCov = S⁻¹ − Σ_v⁻¹ and walks the same
//     layering in reverse with a hand-derived adjoint, accumulating
//     dLoss/dW(p,c) into the weight-gradient buffer. No per-call
//     allocation: all buffers are reused across steps.
//   - KLProxyLoss() = trace(S⁻¹·Σ_v) − logdet(Σ_v) and
//     KLLoss() = (proxy − V + logdet S)/2, the closed-form KL divergence
//     between zero-mean Gaussians. S⁻¹ and logdet S are cached until
//     SetSampleCovariance replaces S.
//
// Precision:
//
//	The engine state is generic over float32/float64, fixed at
//	construction via Options.Precision; there is no runtime switching.
//	Accessors return live views sharing the engine storage (converting on
//	access for the float32 engine), so the caller's optimizer mutates
//	weights and lambda in place between steps.
//
// Determinism:
//
//	Sweeps are sequential with fixed layer, node, partner and parent
//	orders; identical inputs yield bit-identical covariance output.
//
// Dense linear algebra (matrix inverse, log-determinant, trace) is
// delegated to gonum and used only at the loss/seed level — never inside
// the layered sweeps.
//
// Errors:
//
//   - ErrPrecision, ErrParameterShape, ErrSampleShape: invalid-argument
//     conditions, raised before any buffer is touched.
//   - ErrForwardRequired, ErrNoSampleCovariance: Backward() preconditions.
//   - ErrNotPositiveDefinite and wrapped gonum errors: numeric failures of
//     the top-level inverse/log-determinant; never regularized internally.
package solver
