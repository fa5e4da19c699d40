package solver

// backward runs the adjoint of forward: starting from the visible-block
// seed dLoss/dΣ_v deposited by prepareGrads, it walks the layers in
// reverse and pushes each pair's adjoint onto the pair's parents while
// accumulating the weight gradient
//
//	dLoss/dW(p,c) += g(c,j) · Cov(p,j)
//	adj(p,j)      += W(p,c) · g(c,j)
//
// Buffer discipline: per layer the read buffer rb and write buffer wb
// alternate by layer parity; wb starts as a copy of rb and collects the
// pushed-down adjoints. The pair adjoint is read as the combined mirror
// g = wb(c,j) + wb(j,c), which also picks up same-layer contributions
// written earlier in the sweep — that is why columns run descending.
//
// Per column the pair order is the exact reverse of forward: self first
// (its push lands in the column's own off-diagonal row), then earlier
// visible partners descending, then the layer's latents. Latent partners
// use the same presence-span scope as forward; pairs outside the span
// carry no adjoint because forward never routed covariance through them.
//
// Zero-adjoint pairs are skipped, so cost tracks the nonzero support of
// the seed rather than the full matrix.
func (e *engine[T]) backward() {
	lo := e.layout
	var row, jr, pr, c, j, i int
	var g T
	for l := lo.NumLayers() - 1; l >= 1; l-- {
		rb := e.covGrad[l%2]
		wb := e.covGrad[(l+1)%2]
		copy(wb, rb)

		layer := lo.Layers[l]
		latents := lo.LatentsOf(l)
		for c = layer.Start + layer.Count - 1; c >= layer.Start; c-- {
			row = c + e.latent
			parents := lo.ParentsOf(c)

			// 1. Self pair: pushed adjoints land in this column's own row
			// and feed the pair loops below.
			if g = wb[row*e.total+row]; g != 0 {
				for _, q := range parents {
					pr = q + e.latent
					e.wGrad[pr*e.visible+c] += g * e.cov[pr*e.total+row]
					wb[row*e.total+pr] += e.weights[pr*e.visible+c] * g
				}
			}

			// 2. Earlier visible partners, descending.
			for j = c - 1; j >= 0; j-- {
				jr = j + e.latent
				g = wb[row*e.total+jr] + wb[jr*e.total+row]
				if g == 0 {
					continue
				}
				for _, q := range parents {
					pr = q + e.latent
					e.wGrad[pr*e.visible+c] += g * e.cov[pr*e.total+jr]
					wb[pr*e.total+jr] += e.weights[pr*e.visible+c] * g
				}
			}

			// 3. Latent partners of the layer.
			for i = len(latents) - 1; i >= 0; i-- {
				jr = latents[i] + e.latent
				g = wb[row*e.total+jr] + wb[jr*e.total+row]
				if g == 0 {
					continue
				}
				for _, q := range parents {
					pr = q + e.latent
					e.wGrad[pr*e.visible+c] += g * e.cov[pr*e.total+jr]
					wb[pr*e.total+jr] += e.weights[pr*e.visible+c] * g
				}
			}
		}
	}
}
