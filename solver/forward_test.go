package solver_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/semcov/solver"
)

// denseVisibleReference computes the model-implied visible covariance the
// brute-force way: Σ = (I−Wᵀ)⁻¹ Λ (I−Wᵀ)⁻ᵀ over all L+V nodes, then the
// visible block. The layered recursion must agree with it exactly (up to
// float64 rounding).
func denseVisibleReference(t *testing.T, sv *solver.Solver) *mat.Dense {
	t.Helper()
	lo := sv.Layout()
	latent, visible, total := lo.LatentCount(), lo.VisibleCount(), lo.TotalCount()

	a := mat.NewDense(total, total, nil) // I − Wᵀ
	lam := mat.NewDense(total, total, nil)
	for i := 0; i < total; i++ {
		a.Set(i, i, 1)
		noise, err := sv.Lambda().At(i, i)
		require.NoError(t, err)
		lam.Set(i, i, noise)
	}
	for c := 0; c < visible; c++ {
		for _, p := range lo.ParentsOf(c) {
			w, err := sv.Weights().At(p+latent, c)
			require.NoError(t, err)
			a.Set(latent+c, p+latent, -w)
		}
	}

	var ainv, tmp, full mat.Dense
	require.NoError(t, ainv.Inverse(a), "I−Wᵀ is unit lower triangular, always invertible")
	tmp.Mul(&ainv, lam)
	full.Mul(&tmp, ainv.T())

	vis := mat.NewDense(visible, visible, nil)
	for i := 0; i < visible; i++ {
		for j := 0; j < visible; j++ {
			vis.Set(i, j, full.At(latent+i, latent+j))
		}
	}

	return vis
}

// TestForward_Chain pins the hand-traced chain numbers: the recursion
// walks Var(L)=1, Cov(L,V)=W·Var(L)=2, Var(V)=W·Cov(L,V)+λ=4.5.
func TestForward_Chain(t *testing.T) {
	sv := chainSolver(t, solver.Double)
	sv.Forward()

	cov := sv.Covariance()
	varL, err := cov.At(0, 0)
	require.NoError(t, err)
	crossLV, err := cov.At(0, 1)
	require.NoError(t, err)
	mirror, err := cov.At(1, 0)
	require.NoError(t, err)
	varV, err := cov.At(1, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, varL, 1e-12)
	assert.InDelta(t, 2.0, crossLV, 1e-12)
	assert.Equal(t, crossLV, mirror, "off-diagonal writes are mirrored")
	assert.InDelta(t, 4.5, varV, 1e-12)
}

// TestForward_MatchesDenseReference drives a batch of random layered
// models through the recursion and checks the whole visible block against
// the dense (I−Wᵀ)⁻¹ Λ (I−Wᵀ)⁻ᵀ computation.
func TestForward_MatchesDenseReference(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	for trial := 0; trial < 25; trial++ {
		s := randomLayeredStructure(t, rng, 1+rng.Intn(3), 2+rng.Intn(6))
		sv, err := solver.New(s, nil)
		require.NoError(t, err)
		randomizeParameters(t, sv, rng)

		sv.Forward()
		ref := denseVisibleReference(t, sv)

		lo := sv.Layout()
		for i := 0; i < lo.VisibleCount(); i++ {
			for j := 0; j < lo.VisibleCount(); j++ {
				got, err := sv.VisibleCovariance().At(i, j)
				require.NoError(t, err)
				assert.InDelta(t, ref.At(i, j), got, 1e-9,
					"trial %d entry (%d,%d)", trial, i, j)
			}
		}
	}
}

// TestForward_Idempotent: repeated Forward calls with unchanged parameters
// leave the covariance unchanged (buffers are fully rewritten, not
// accumulated).
func TestForward_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	s := randomLayeredStructure(t, rng, 2, 5)
	sv, err := solver.New(s, nil)
	require.NoError(t, err)
	randomizeParameters(t, sv, rng)

	sv.Forward()
	lo := sv.Layout()
	first := make([]float64, 0, lo.TotalCount()*lo.TotalCount())
	for i := 0; i < lo.TotalCount(); i++ {
		for j := 0; j < lo.TotalCount(); j++ {
			v, err := sv.Covariance().At(i, j)
			require.NoError(t, err)
			first = append(first, v)
		}
	}

	sv.Forward()
	for i := 0; i < lo.TotalCount(); i++ {
		for j := 0; j < lo.TotalCount(); j++ {
			v, err := sv.Covariance().At(i, j)
			require.NoError(t, err)
			assert.Equal(t, first[i*lo.TotalCount()+j], v)
		}
	}
}
