package solver

// forward recomputes the model covariance in place by the layered linear
// recursion
//
//	Cov(c, j) = Σ_{p ∈ parents(c)} W(p,c) · Cov(p, j)
//
// with the self pair adding the exogenous term Lambda(c,c). The sweep
// walks layers ascending and, within a layer, columns ascending; per
// column the partner order is latents of the layer, then earlier visible
// columns, then self. Every off-diagonal write is mirrored so later reads
// can use either orientation.
//
// Latent partners are restricted to the latents whose presence span covers
// the layer. Pairs outside the span stay zero in the buffer: below the span
// they are mathematically zero, past it they are never read again — the
// span ends at the latent's last child, so no later column consumes them
// and the visible block is unaffected either way.
//
// Complexity: O(E · (L+V)) worst case, O(E · partners) in practice.
// No allocations; output is bit-identical across runs for equal inputs.
func (e *engine[T]) forward() {
	clear(e.cov)

	// Latent nodes are exogenous roots: unit recursion, diagonal only.
	var row, jr, pr, c, j int
	for row = 0; row < e.latent; row++ {
		e.cov[row*e.total+row] = e.lambda[row*e.total+row]
	}

	lo := e.layout
	var acc T
	for l := 1; l < lo.NumLayers(); l++ {
		layer := lo.Layers[l]
		latents := lo.LatentsOf(l)
		for c = layer.Start; c < layer.Start+layer.Count; c++ {
			row = c + e.latent
			parents := lo.ParentsOf(c)

			// 1. Latent partners active in this layer.
			for _, p := range latents {
				jr = p + e.latent
				acc = 0
				for _, q := range parents {
					pr = q + e.latent
					acc += e.weights[pr*e.visible+c] * e.cov[pr*e.total+jr]
				}
				e.cov[row*e.total+jr] = acc
				e.cov[jr*e.total+row] = acc
			}

			// 2. Earlier visible partners (same layer included: columns
			// before c are already final).
			for j = 0; j < c; j++ {
				jr = j + e.latent
				acc = 0
				for _, q := range parents {
					pr = q + e.latent
					acc += e.weights[pr*e.visible+c] * e.cov[pr*e.total+jr]
				}
				e.cov[row*e.total+jr] = acc
				e.cov[jr*e.total+row] = acc
			}

			// 3. Self pair: variance picks up the exogenous noise term.
			acc = 0
			for _, q := range parents {
				pr = q + e.latent
				acc += e.weights[pr*e.visible+c] * e.cov[pr*e.total+row]
			}
			e.cov[row*e.total+row] = acc + e.lambda[row*e.total+row]
		}
	}
}
