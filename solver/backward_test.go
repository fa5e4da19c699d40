package solver_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/semcov/matrix"
	"github.com/katalvlaran/semcov/solver"
)

// TestBackward_Preconditions: Forward must precede Backward, and a sample
// covariance must be installed before gradients make sense.
func TestBackward_Preconditions(t *testing.T) {
	sv := chainSolver(t, solver.Double)

	assert.ErrorIs(t, sv.Backward(), solver.ErrForwardRequired)

	sv.Forward()
	assert.ErrorIs(t, sv.Backward(), solver.ErrNoSampleCovariance)
}

// TestBackward_ChainGradient pins the hand-derived chain number. With
// Σ_v(w) = w²·λ_L + λ_V = w² + 0.5 and S = [[1]],
//
//	proxy(w) = Σ_v − ln Σ_v,  dproxy/dw = 2w − 2w/Σ_v = 4 − 4/4.5
func TestBackward_ChainGradient(t *testing.T) {
	sv := chainSolver(t, solver.Double)
	sv.Forward()

	s, err := matrix.NewDenseFromRows([][]float64{{1}})
	require.NoError(t, err)
	require.NoError(t, sv.SetSampleCovariance(s))
	require.NoError(t, sv.Backward())

	g, err := sv.WeightGradients().At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 4-4/4.5, g, 1e-12)

	zero, err := sv.WeightGradients().At(1, 0)
	require.NoError(t, err)
	assert.Zero(t, zero, "non-edge gradient entries stay zero")
}

// TestBackward_ProxyIsTwiceKL pins the gradient contract: Backward fills
// dKLProxyLoss/dW, which is exactly twice the KL gradient (the KL halves
// the proxy and shifts it by a weight-independent constant). Verified
// against a centered finite difference of KLLoss itself.
func TestBackward_ProxyIsTwiceKL(t *testing.T) {
	const h = 1e-6
	sv := chainSolver(t, solver.Double)
	s, err := matrix.NewDenseFromRows([][]float64{{1}})
	require.NoError(t, err)
	require.NoError(t, sv.SetSampleCovariance(s))

	fd := func(w float64) float64 {
		require.NoError(t, sv.Weights().Set(0, 0, w))
		sv.Forward()
		kl, err := sv.KLLoss()
		require.NoError(t, err)

		return kl
	}
	klSlope := (fd(2+h) - fd(2-h)) / (2 * h)

	require.NoError(t, sv.Weights().Set(0, 0, 2))
	sv.Forward()
	require.NoError(t, sv.Backward())
	g, err := sv.WeightGradients().At(0, 0)
	require.NoError(t, err)

	assert.InDelta(t, 2*klSlope, g, 1e-4, "proxy gradient is twice the KL gradient")
}

// randomSampleCovariance draws a symmetric diagonally dominant V×V matrix,
// positive definite by Gershgorin, to stand in for an empirical covariance.
func randomSampleCovariance(t *testing.T, sv *solver.Solver, rng *rand.Rand) matrix.Matrix {
	t.Helper()
	v := sv.Layout().VisibleCount()
	out, err := matrix.NewDense(v, v)
	require.NoError(t, err)
	for i := 0; i < v; i++ {
		for j := 0; j < i; j++ {
			x := (2*rng.Float64() - 1) / float64(v)
			require.NoError(t, out.Set(i, j, x))
			require.NoError(t, out.Set(j, i, x))
		}
		require.NoError(t, out.Set(i, i, 1.5+rng.Float64()))
	}

	return out
}

// TestBackward_FiniteDifference checks every structural edge gradient
// against a centered finite difference of KLProxyLoss on a batch of random
// layered models.
func TestBackward_FiniteDifference(t *testing.T) {
	const h = 1e-6
	rng := rand.New(rand.NewSource(41))

	for trial := 0; trial < 15; trial++ {
		s := randomLayeredStructure(t, rng, 1+rng.Intn(2), 2+rng.Intn(4))
		sv, err := solver.New(s, nil)
		require.NoError(t, err)
		randomizeParameters(t, sv, rng)
		require.NoError(t, sv.SetSampleCovariance(randomSampleCovariance(t, sv, rng)))

		lo := sv.Layout()
		latent := lo.LatentCount()
		w := sv.Weights()

		// Finite differences first, restoring each weight afterwards.
		type edge struct {
			row, col int
			fd       float64
		}
		var edges []edge
		for c := 0; c < lo.VisibleCount(); c++ {
			for _, p := range lo.ParentsOf(c) {
				row := p + latent
				w0, err := w.At(row, c)
				require.NoError(t, err)

				require.NoError(t, w.Set(row, c, w0+h))
				sv.Forward()
				up, err := sv.KLProxyLoss()
				require.NoError(t, err)

				require.NoError(t, w.Set(row, c, w0-h))
				sv.Forward()
				down, err := sv.KLProxyLoss()
				require.NoError(t, err)

				require.NoError(t, w.Set(row, c, w0))
				edges = append(edges, edge{row: row, col: c, fd: (up - down) / (2 * h)})
			}
		}

		// One analytic sweep, then compare per edge.
		sv.Forward()
		require.NoError(t, sv.Backward())
		for _, e := range edges {
			g, err := sv.WeightGradients().At(e.row, e.col)
			require.NoError(t, err)
			assert.InDelta(t, e.fd, g, 1e-4*(1+math.Abs(e.fd)),
				"trial %d edge (%d,%d)", trial, e.row, e.col)
		}
	}
}

// TestBackward_Restartable: a second Forward+Backward after a parameter
// change reproduces the gradient of a fresh solver at the same point
// (gradient buffers are reset per call, never accumulated).
func TestBackward_Restartable(t *testing.T) {
	first := chainSolver(t, solver.Double)
	s, err := matrix.NewDenseFromRows([][]float64{{1}})
	require.NoError(t, err)
	require.NoError(t, first.SetSampleCovariance(s))

	// Step once at w=2, then move to w=3 and step again.
	first.Forward()
	require.NoError(t, first.Backward())
	require.NoError(t, first.Weights().Set(0, 0, 3))
	first.Forward()
	require.NoError(t, first.Backward())

	fresh := chainSolver(t, solver.Double)
	require.NoError(t, fresh.Weights().Set(0, 0, 3))
	require.NoError(t, fresh.SetSampleCovariance(s))
	fresh.Forward()
	require.NoError(t, fresh.Backward())

	got, err := first.WeightGradients().At(0, 0)
	require.NoError(t, err)
	want, err := fresh.WeightGradients().At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
