package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// KLProxyLoss returns trace(S⁻¹·Σ_v) − logdet(Σ_v), the weight-dependent
// part of the Gaussian KL divergence; Backward produces exactly its
// gradient. Σ_v is whatever the last Forward left in the covariance
// buffer — before any Forward it is all zero and reports
// ErrNotPositiveDefinite.
//
// Errors: ErrNoSampleCovariance, ErrNotPositiveDefinite, wrapped gonum
// inversion errors.
func (sv *Solver) KLProxyLoss() (float64, error) {
	inv, err := sv.sampleInverse()
	if err != nil {
		return 0, err
	}

	sv.eng.copyVisible(sv.visBuf)
	det, sign := mat.LogDet(sv.visBuf)
	// A −Inf log-determinant means a singular matrix regardless of sign.
	if sign <= 0 || math.IsNaN(det) || math.IsInf(det, -1) {
		return 0, fmt.Errorf("solver: model visible covariance: %w", ErrNotPositiveDefinite)
	}
	sv.prodBuf.Mul(inv, sv.visBuf)

	return mat.Trace(sv.prodBuf) - det, nil
}

// KLLoss returns the full KL divergence between the zero-mean Gaussians
// N(0, Σ_v) and N(0, S):
//
//	KL = (trace(S⁻¹·Σ_v) − logdet(Σ_v) − V + logdet(S)) / 2
//
// It is KLProxyLoss shifted by a weight-independent constant and halved,
// so both losses share the same minimizer; the cached logdet S makes the
// shift free after the first call.
func (sv *Solver) KLLoss() (float64, error) {
	proxy, err := sv.KLProxyLoss()
	if err != nil {
		return 0, err
	}
	logS, err := sv.sampleLogDeterminant()
	if err != nil {
		return 0, err
	}

	return (proxy - float64(sv.layout.VisibleCount()) + logS) / 2, nil
}
