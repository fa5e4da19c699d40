package dag

import (
	"fmt"
	"strings"
)

// Structure is an immutable (L+V)×V boolean parent matrix. The first L rows
// are latent nodes, the remaining V rows are visible nodes; columns are
// visible nodes only. It is built once via NewStructure and never mutated.
type Structure struct {
	latent  int    // number of latent nodes (rows − cols)
	visible int    // number of visible nodes (cols)
	bits    []bool // row-major (latent+visible)×visible buffer
}

// NewStructure copies rows into a validated Structure.
// Errors: ErrEmptyStructure, ErrRaggedStructure, ErrLatentCount.
//
// Complexity: O(r·c).
func NewStructure(rows [][]bool) (*Structure, error) {
	// 1. Validate outline before any allocation.
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyStructure
	}
	cols := len(rows[0])
	for i := range rows {
		if len(rows[i]) != cols {
			return nil, ErrRaggedStructure
		}
	}
	if len(rows) < cols {
		return nil, ErrLatentCount
	}

	// 2. Copy into a flat row-major buffer (input slices are not retained).
	s := &Structure{
		latent:  len(rows) - cols,
		visible: cols,
		bits:    make([]bool, len(rows)*cols),
	}
	for i := range rows {
		copy(s.bits[i*cols:(i+1)*cols], rows[i])
	}

	return s, nil
}

// LatentCount returns L, the number of latent nodes. Complexity: O(1).
func (s *Structure) LatentCount() int { return s.latent }

// VisibleCount returns V, the number of visible nodes. Complexity: O(1).
func (s *Structure) VisibleCount() int { return s.visible }

// TotalCount returns L+V. Complexity: O(1).
func (s *Structure) TotalCount() int { return s.latent + s.visible }

// HasEdge reports whether parent→child is present. The parent uses the
// signed convention (latents −L..−1, visibles 0..V−1); child is a visible
// column 0..V−1. Out-of-range queries report false.
// Complexity: O(1).
func (s *Structure) HasEdge(parent, child int) bool {
	row := parent + s.latent
	if row < 0 || row >= s.TotalCount() || child < 0 || child >= s.visible {
		return false
	}

	return s.bits[row*s.visible+child]
}

// Layer is one topologically consistent run of visible columns.
// Layers[0] of a Layout is the reserved empty sentinel.
type Layer struct {
	Index       int // position within Layout.Layers
	Start       int // first visible column of the run
	Count       int // number of visible columns assigned to the run
	LatentWidth int // latents active while this layer is computed
}

// Span is an inclusive [Min, Max] layer range. Min and Max are −1 for a
// latent node with no outgoing edges.
type Span struct {
	Min, Max int
}

// Covers reports whether layer lies inside the span. Complexity: O(1).
func (sp Span) Covers(layer int) bool {
	return sp.Min >= 0 && sp.Min <= layer && layer <= sp.Max
}

// Layout is the compiled, immutable adjacency of a Structure.
//
// CSR conventions:
//   - Parents holds each visible node's parents in ascending signed order
//     (latents first); ParentBases has length V+1 and is monotone
//     non-decreasing with ParentBases[V] == EdgeCount().
//   - Children holds child columns bucketed per (node, layer); the bucket of
//     node row r and layer l spans ChildBases[r·K+l] .. ChildBases[r·K+l+1]
//     with K = NumLayers(). Offsets are monotone over the flattened index
//     and end at EdgeCount().
//   - LatentNeighbors lists, per layer, the signed indices of latents whose
//     presence span covers that layer; LatentNeighborBases has length K+1.
type Layout struct {
	Layers              []Layer
	Parents             []int
	ParentBases         []int
	Children            []int
	ChildBases          []int
	LatentSpans         []Span
	LatentNeighbors     []int
	LatentNeighborBases []int

	latent   int
	visible  int
	colLayer []int // visible column → layer index
}

// LatentCount returns L. Complexity: O(1).
func (lo *Layout) LatentCount() int { return lo.latent }

// VisibleCount returns V. Complexity: O(1).
func (lo *Layout) VisibleCount() int { return lo.visible }

// TotalCount returns L+V. Complexity: O(1).
func (lo *Layout) TotalCount() int { return lo.latent + lo.visible }

// NumLayers returns the layer count including the empty sentinel layer 0.
// Complexity: O(1).
func (lo *Layout) NumLayers() int { return len(lo.Layers) }

// EdgeCount returns the total number of structure edges. Complexity: O(1).
func (lo *Layout) EdgeCount() int { return lo.ParentBases[len(lo.ParentBases)-1] }

// ParentsOf returns the signed parent indices of visible column c, latents
// first in ascending order. The returned slice aliases the Layout and must
// not be mutated. Out-of-range columns return nil.
// Complexity: O(1).
func (lo *Layout) ParentsOf(c int) []int {
	if c < 0 || c >= lo.visible {
		return nil
	}

	return lo.Parents[lo.ParentBases[c]:lo.ParentBases[c+1]]
}

// ChildrenOf returns the visible children of signed node that sit in the
// given layer. The returned slice aliases the Layout and must not be
// mutated. Out-of-range arguments return nil.
// Complexity: O(1).
func (lo *Layout) ChildrenOf(node, layer int) []int {
	row := node + lo.latent
	k := lo.NumLayers()
	if row < 0 || row >= lo.TotalCount() || layer < 0 || layer >= k {
		return nil
	}
	base := row*k + layer

	return lo.Children[lo.ChildBases[base]:lo.ChildBases[base+1]]
}

// LatentsOf returns the signed indices of latents active in the given layer,
// in ascending order. The returned slice aliases the Layout and must not be
// mutated. Out-of-range layers return nil.
// Complexity: O(1).
func (lo *Layout) LatentsOf(layer int) []int {
	if layer < 0 || layer >= lo.NumLayers() {
		return nil
	}

	return lo.LatentNeighbors[lo.LatentNeighborBases[layer]:lo.LatentNeighborBases[layer+1]]
}

// LayerOf returns the layer index a visible column was assigned to, or −1
// for out-of-range columns. Complexity: O(1).
func (lo *Layout) LayerOf(c int) int {
	if c < 0 || c >= lo.visible {
		return -1
	}

	return lo.colLayer[c]
}

// String renders a readable layering summary for diagnostics; not for hot
// paths.
func (lo *Layout) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Layout{latent: %d, visible: %d, edges: %d, layers: %d}\n",
		lo.latent, lo.visible, lo.EdgeCount(), lo.NumLayers()-1)
	for l := 1; l < lo.NumLayers(); l++ {
		layer := lo.Layers[l]
		fmt.Fprintf(&b, "  layer %d: cols %d..%d, latents %v\n",
			l, layer.Start, layer.Start+layer.Count-1, lo.LatentsOf(l))
	}

	return b.String()
}
