package dag

import "fmt"

// Compile builds the layered adjacency of s.
//
// Stage 1 (Layering): visible columns are scanned in order; a boundary
// marker, starting below the lowest latent index, opens a new layer whenever
// a column owns a parent not strictly below the marker. Parents are recorded
// in CSR form (latents first, ascending), latent presence spans extended to
// the column's layer.
// Stage 2 (Children): edges are bucketed per (parent, layer of child) into a
// flattened CSR with prefix-summed offsets.
// Stage 3 (Latent neighbors): per layer, the latents whose span covers it.
// Stage 4 (Validate): every visible edge must cross strictly increasing
// layer indices; otherwise ErrNotLayered — the boundary heuristic alone is
// not trusted.
//
// The returned Layout is immutable. Errors leave no partial state behind.
//
// Complexity: O((L+V)·V + E).
func Compile(s *Structure) (*Layout, error) {
	if s == nil {
		return nil, ErrNilStructure
	}
	latent, visible := s.latent, s.visible
	total := latent + visible

	// Stage 1: layering + parent CSR + latent spans.
	layers := []Layer{{}} // reserved empty sentinel at index 0
	parents := make([]int, 0, visible)
	parentBases := make([]int, visible+1)
	colLayer := make([]int, visible)
	spans := make([]Span, latent)
	for i := range spans {
		spans[i] = Span{Min: -1, Max: -1}
	}

	marker := -(latent + 1) // below the lowest possible parent index
	var c, p int
	for c = 0; c < visible; c++ {
		for p = -latent; p < visible; p++ {
			if !s.HasEdge(p, c) {
				continue
			}
			// A parent at or past the marker ends the current run.
			if p >= marker {
				marker = c
				layers = append(layers, Layer{Index: len(layers), Start: c})
			}
			parents = append(parents, p)
		}
		if len(layers) == 1 {
			// Leading parentless columns still need a home in layer 1.
			layers = append(layers, Layer{Index: 1, Start: c})
		}
		cur := len(layers) - 1
		layers[cur].Count++
		colLayer[c] = cur
		parentBases[c+1] = len(parents)

		for _, p = range parents[parentBases[c]:] {
			if p < 0 {
				sp := &spans[p+latent]
				if sp.Min < 0 {
					sp.Min = cur
				}
				sp.Max = cur
			}
		}
	}
	numLayers := len(layers)
	edges := len(parents)

	// Stage 2: child CSR bucketed per (node, layer), prefix-sum fill.
	childBases := make([]int, total*numLayers+1)
	for c = 0; c < visible; c++ {
		for _, p = range parents[parentBases[c]:parentBases[c+1]] {
			childBases[(p+latent)*numLayers+colLayer[c]+1]++
		}
	}
	for i := 1; i < len(childBases); i++ {
		childBases[i] += childBases[i-1]
	}
	children := make([]int, edges)
	cursor := make([]int, total*numLayers)
	copy(cursor, childBases[:total*numLayers])
	for c = 0; c < visible; c++ {
		for _, p = range parents[parentBases[c]:parentBases[c+1]] {
			slot := (p + latent) * numLayers
			slot += colLayer[c]
			children[cursor[slot]] = c
			cursor[slot]++
		}
	}

	// Stage 3: per-layer latent neighbors from presence spans.
	neighbors := make([]int, 0, latent)
	neighborBases := make([]int, numLayers+1)
	for l := 1; l < numLayers; l++ {
		for p = -latent; p < 0; p++ {
			if spans[p+latent].Covers(l) {
				neighbors = append(neighbors, p)
			}
		}
		neighborBases[l+1] = len(neighbors)
		layers[l].LatentWidth = neighborBases[l+1] - neighborBases[l]
	}

	lo := &Layout{
		Layers:              layers,
		Parents:             parents,
		ParentBases:         parentBases,
		Children:            children,
		ChildBases:          childBases,
		LatentSpans:         spans,
		LatentNeighbors:     neighbors,
		LatentNeighborBases: neighborBases,
		latent:              latent,
		visible:             visible,
		colLayer:            colLayer,
	}

	// Stage 4: post-hoc validation — every visible edge must point from an
	// earlier layer into a strictly later one.
	for p = 0; p < visible; p++ {
		for l := 1; l < numLayers; l++ {
			for _, c = range lo.ChildrenOf(p, l) {
				if colLayer[p] >= l {
					return nil, fmt.Errorf("dag: edge %d→%d stays within layer %d: %w", p, c, l, ErrNotLayered)
				}
			}
		}
	}

	return lo, nil
}
