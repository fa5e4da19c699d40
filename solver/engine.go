package solver

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/semcov/dag"
	"github.com/katalvlaran/semcov/matrix"
)

// number constrains engine storage to the two supported element types.
type number interface {
	~float32 | ~float64
}

// engineOps is the precision-erased surface Solver drives. Both generic
// instantiations satisfy it, so the facade stays non-generic.
type engineOps interface {
	forward()
	backward()
	prepareGrads(seed *mat.Dense)
	copyVisible(dst *mat.Dense)
	weightsView() matrix.Mutable
	lambdaView() matrix.Mutable
	covarianceView() matrix.Mutable
	visibleCovarianceView() matrix.Mutable
	weightGradientView() matrix.Mutable
}

// engine holds every mutable buffer of one model instance. All slices are
// allocated once in newEngine and reused across sweeps; forward and
// backward never allocate.
//
// Index conventions (latent = L, visible = V, total = L+V):
//   - signed node n maps to buffer row n+L;
//   - weights and wGrad are total×V, column = visible child;
//   - lambda, cov and both covGrad buffers are total×total, row-major.
type engine[T number] struct {
	layout  *dag.Layout
	latent  int
	visible int
	total   int

	weights []T    // edge weights W(p,c); zero off the structure
	lambda  []T    // exogenous noise; only the diagonal is read
	cov     []T    // model covariance, symmetric
	wGrad   []T    // dLoss/dW, accumulated by backward
	covGrad [2][]T // parity-selected covariance adjoint buffers
}

// newEngine allocates the buffers for lo and seeds the parameters: lambda
// starts all-zero (callers install every exogenous variance explicitly)
// and edge weights come from params when given, otherwise from the seeded
// standard normal. params shape is validated by New before reaching here.
//
// Complexity: O((L+V)² + E).
func newEngine[T number](lo *dag.Layout, params *matrix.Dense, rng *rand.Rand) *engine[T] {
	latent, visible, total := lo.LatentCount(), lo.VisibleCount(), lo.TotalCount()
	e := &engine[T]{
		layout:  lo,
		latent:  latent,
		visible: visible,
		total:   total,
		weights: make([]T, total*visible),
		lambda:  make([]T, total*total),
		cov:     make([]T, total*total),
		wGrad:   make([]T, total*visible),
		covGrad: [2][]T{make([]T, total*total), make([]T, total*total)},
	}

	for c := 0; c < visible; c++ {
		for _, p := range lo.ParentsOf(c) {
			row := p + latent
			if params != nil {
				v, _ := params.At(row, c) // in range: shape checked by New
				e.weights[row*visible+c] = T(v)
			} else {
				e.weights[row*visible+c] = T(rng.NormFloat64())
			}
		}
	}

	return e
}

// prepareGrads resets the gradient buffers and deposits the symmetric
// visible-block seed dLoss/dΣ_v into the adjoint buffer the deepest layer
// reads first. With K layers that buffer is covGrad[(K+1)%2], because the
// reverse sweep starts at layer K−1 and (K−1)%2 == (K+1)%2.
//
// Complexity: O((L+V)² + V²).
func (e *engine[T]) prepareGrads(seed *mat.Dense) {
	clear(e.wGrad)
	clear(e.covGrad[0])
	clear(e.covGrad[1])

	dst := e.covGrad[(e.layout.NumLayers()+1)%2]
	var i, j int
	for i = 0; i < e.visible; i++ {
		base := (e.latent + i) * e.total
		for j = 0; j < e.visible; j++ {
			dst[base+e.latent+j] = T(seed.At(i, j))
		}
	}
}

// copyVisible writes the visible×visible block of the model covariance
// into dst (pre-sized by the caller). Complexity: O(V²).
func (e *engine[T]) copyVisible(dst *mat.Dense) {
	var i, j int
	for i = 0; i < e.visible; i++ {
		base := (e.latent + i) * e.total
		for j = 0; j < e.visible; j++ {
			dst.Set(i, j, float64(e.cov[base+e.latent+j]))
		}
	}
}

// weightsView exposes the (L+V)×V edge-weight buffer.
func (e *engine[T]) weightsView() matrix.Mutable {
	return &view[T]{data: e.weights, rows: e.total, cols: e.visible, stride: e.visible}
}

// lambdaView exposes the (L+V)×(L+V) exogenous-noise buffer. Only the
// diagonal participates in the sweeps.
func (e *engine[T]) lambdaView() matrix.Mutable {
	return &view[T]{data: e.lambda, rows: e.total, cols: e.total, stride: e.total}
}

// covarianceView exposes the full (L+V)×(L+V) model covariance.
func (e *engine[T]) covarianceView() matrix.Mutable {
	return &view[T]{data: e.cov, rows: e.total, cols: e.total, stride: e.total}
}

// visibleCovarianceView exposes the visible×visible block of the model
// covariance as a window sharing the same storage.
func (e *engine[T]) visibleCovarianceView() matrix.Mutable {
	return &view[T]{
		data: e.cov, rows: e.visible, cols: e.visible,
		stride: e.total, r0: e.latent, c0: e.latent,
	}
}

// weightGradientView exposes the (L+V)×V gradient buffer filled by backward.
func (e *engine[T]) weightGradientView() matrix.Mutable {
	return &view[T]{data: e.wGrad, rows: e.total, cols: e.visible, stride: e.visible}
}
