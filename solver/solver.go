package solver

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/semcov/dag"
	"github.com/katalvlaran/semcov/matrix"
)

// Solver is the single-goroutine facade over one compiled model: it owns
// the precision-selected engine, the sample covariance with its cached
// inverse and log-determinant, and the dense scratch buffers the loss and
// seed computations reuse. A Solver is not safe for concurrent use; run
// independent instances for parallelism.
type Solver struct {
	layout *dag.Layout
	prec   Precision
	eng    engineOps

	// Sample side. Inverse and log-determinant are computed lazily and
	// stay valid until SetSampleCovariance replaces the sample.
	sample       *mat.Dense
	sampleInv    *mat.Dense
	sampleLogDet float64
	haveSample   bool
	haveInverse  bool
	haveLogDet   bool

	// Dense V×V scratch, allocated once.
	visBuf  *mat.Dense // model visible covariance Σ_v
	visInv  *mat.Dense // Σ_v⁻¹ for the backward seed
	prodBuf *mat.Dense // S⁻¹·Σ_v for the trace term
	seedBuf *mat.Dense // S⁻¹ − Σ_v⁻¹

	forwardDone bool
}

// New compiles the structure and builds a solver around it.
//
// Stages:
//  1. Validate options: precision, then (via dag.Compile) the structure,
//     then the optional initial parameter shape.
//  2. Instantiate the engine at the requested precision; edge weights come
//     from opts.Parameters or the seeded normal initializer.
//  3. Allocate the dense scratch buffers once, sized to the visible block.
//
// A nil opts selects DefaultOptions. Errors: ErrPrecision,
// ErrParameterShape and the dag compilation sentinels.
func New(s *dag.Structure, opts *Options) (*Solver, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Precision != Double && opts.Precision != Single {
		return nil, fmt.Errorf("solver: precision %d: %w", int(opts.Precision), ErrPrecision)
	}
	lo, err := dag.Compile(s)
	if err != nil {
		return nil, err
	}
	if p := opts.Parameters; p != nil &&
		(p.Rows() != lo.TotalCount() || p.Cols() != lo.VisibleCount()) {
		return nil, fmt.Errorf("solver: parameters are %d×%d, want %d×%d: %w",
			p.Rows(), p.Cols(), lo.TotalCount(), lo.VisibleCount(), ErrParameterShape)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	sv := &Solver{layout: lo, prec: opts.Precision}
	switch opts.Precision {
	case Single:
		sv.eng = newEngine[float32](lo, opts.Parameters, rng)
	default:
		sv.eng = newEngine[float64](lo, opts.Parameters, rng)
	}

	v := lo.VisibleCount()
	sv.visBuf = mat.NewDense(v, v, nil)
	sv.visInv = mat.NewDense(v, v, nil)
	sv.prodBuf = mat.NewDense(v, v, nil)
	sv.seedBuf = mat.NewDense(v, v, nil)

	return sv, nil
}

// Forward recomputes the model covariance from the current weights and
// lambda. It never fails and never allocates; call it after every
// parameter mutation and before Backward or the losses.
func (sv *Solver) Forward() {
	sv.eng.forward()
	sv.forwardDone = true
}

// SetSampleCovariance copies m as the V×V sample covariance S and
// invalidates the cached S⁻¹ and logdet S. The input is staged before any
// state changes, so a failed call leaves the previous sample intact.
// Errors: ErrSampleShape, or a read error surfaced from m.
func (sv *Solver) SetSampleCovariance(m matrix.Matrix) error {
	v := sv.layout.VisibleCount()
	if m == nil || m.Rows() != v || m.Cols() != v {
		return fmt.Errorf("solver: want %d×%d: %w", v, v, ErrSampleShape)
	}

	staged := make([]float64, v*v)
	var i, j int
	for i = 0; i < v; i++ {
		for j = 0; j < v; j++ {
			x, err := m.At(i, j)
			if err != nil {
				return fmt.Errorf("solver: read sample covariance: %w", err)
			}
			staged[i*v+j] = x
		}
	}

	sv.sample = mat.NewDense(v, v, staged)
	sv.haveSample = true
	sv.haveInverse = false
	sv.haveLogDet = false

	return nil
}

// sampleInverse returns the cached S⁻¹, inverting on first use.
func (sv *Solver) sampleInverse() (*mat.Dense, error) {
	if !sv.haveSample {
		return nil, ErrNoSampleCovariance
	}
	if !sv.haveInverse {
		if sv.sampleInv == nil {
			v := sv.layout.VisibleCount()
			sv.sampleInv = mat.NewDense(v, v, nil)
		}
		if err := sv.sampleInv.Inverse(sv.sample); err != nil {
			return nil, fmt.Errorf("solver: invert sample covariance: %w", err)
		}
		sv.haveInverse = true
	}

	return sv.sampleInv, nil
}

// sampleLogDeterminant returns the cached logdet S, computing on first use.
func (sv *Solver) sampleLogDeterminant() (float64, error) {
	if !sv.haveSample {
		return 0, ErrNoSampleCovariance
	}
	if !sv.haveLogDet {
		det, sign := mat.LogDet(sv.sample)
		if sign <= 0 || math.IsNaN(det) || math.IsInf(det, -1) {
			return 0, fmt.Errorf("solver: sample covariance: %w", ErrNotPositiveDefinite)
		}
		sv.sampleLogDet = det
		sv.haveLogDet = true
	}

	return sv.sampleLogDet, nil
}

// Backward computes the weight gradient of KLProxyLoss for the covariance
// produced by the last Forward.
//
// Stages:
//  1. Preconditions: a prior Forward and a sample covariance.
//  2. Seed: S⁻¹ − Σ_v⁻¹, with Σ_v⁻¹ recomputed fresh (the model moved
//     since the last step; only the sample side is cached).
//  3. Adjoint sweep over the layering, filling WeightGradients.
//
// Errors: ErrForwardRequired, ErrNoSampleCovariance, and wrapped gonum
// errors when either covariance is singular.
func (sv *Solver) Backward() error {
	if !sv.forwardDone {
		return ErrForwardRequired
	}
	inv, err := sv.sampleInverse()
	if err != nil {
		return err
	}

	sv.eng.copyVisible(sv.visBuf)
	if err = sv.visInv.Inverse(sv.visBuf); err != nil {
		return fmt.Errorf("solver: invert visible covariance: %w", err)
	}
	sv.seedBuf.Sub(inv, sv.visInv)

	sv.eng.prepareGrads(sv.seedBuf)
	sv.eng.backward()

	return nil
}

// Weights returns a live (L+V)×V view of the edge-weight buffer. Writes
// take effect on the next Forward; entries off the structure are inert.
func (sv *Solver) Weights() matrix.Mutable { return sv.eng.weightsView() }

// Lambda returns a live (L+V)×(L+V) view of the exogenous-noise buffer.
// It starts all-zero and only the diagonal participates in the sweeps, so
// callers install every variance they intend the model to carry.
func (sv *Solver) Lambda() matrix.Mutable { return sv.eng.lambdaView() }

// Covariance returns a live (L+V)×(L+V) view of the full model covariance
// produced by Forward. Latent pairs outside a latent's presence span read
// as zero.
func (sv *Solver) Covariance() matrix.Mutable { return sv.eng.covarianceView() }

// VisibleCovariance returns a live V×V view of the visible block Σ_v.
func (sv *Solver) VisibleCovariance() matrix.Mutable { return sv.eng.visibleCovarianceView() }

// WeightGradients returns a live (L+V)×V view of dKLProxyLoss/dW filled by
// the last Backward. The KL gradient is exactly half of it.
func (sv *Solver) WeightGradients() matrix.Mutable { return sv.eng.weightGradientView() }

// Layout returns the compiled, immutable adjacency the solver runs on.
func (sv *Solver) Layout() *dag.Layout { return sv.layout }

// Precision returns the engine storage precision chosen at construction.
func (sv *Solver) Precision() Precision { return sv.prec }
