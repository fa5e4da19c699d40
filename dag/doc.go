// Package dag turns a boolean structure matrix over latent and visible nodes
// into a sparse, topologically layered adjacency used by the semcov solver.
//
// What:
//
//   - Structure wraps a (L+V)×V boolean parent matrix: the first L rows are
//     latent nodes, the remaining V rows are visible nodes, and columns are
//     visible nodes only (latents cannot be children). Entry (r, c) = true
//     means node r is a parent of visible node c.
//   - Compile produces a Layout: an ordered layer partition of the visible
//     nodes, CSR parent and per-layer child lists, latent presence spans and
//     per-layer latent neighbor lists.
//
// Node indexing convention (shared with the solver): latent nodes occupy the
// negative index range −L..−1, visible nodes 0..V−1. Row r of the structure
// matrix corresponds to node r−L.
//
// Layering:
//
//	Visible columns are assumed to respect a topological order. A boundary
//	marker starts below the lowest latent index; scanning each column's
//	parents in ascending order, the first parent not strictly below the
//	marker advances the marker to the current column and opens a new layer.
//	This yields one layer per maximal run of columns whose parents all lie
//	strictly before the run's start. Layers[0] is a reserved empty sentinel.
//	A post-hoc validation pass then checks that every visible edge crosses
//	strictly increasing layer indices and rejects the structure with
//	ErrNotLayered otherwise — the boundary heuristic is never trusted
//	unconditionally.
//
// Errors:
//
//   - ErrEmptyStructure: structure has no rows or no columns.
//   - ErrRaggedStructure: rows have differing lengths.
//   - ErrLatentCount: fewer rows than columns (negative latent count).
//   - ErrNotLayered: column order is not topological for the given edges.
//
// Complexity:
//
//   - Compile: O((L+V)·V) scan + O(E) CSR fill; validation O(E).
//
// The Layout is immutable once built; the solver reads it concurrently from
// its forward and backward sweeps without locking.
package dag
