// SPDX-License-Identifier: MIT

// Package matrix provides the small dense-matrix surface shared by the
// semcov solver: row-major float64 storage with safe accessors, no-copy
// windows, and the read/write interfaces the solver's live views implement.
//
// What:
//
//   - Dense — a cache-friendly row-major buffer with the explicit index
//     formula i*cols + j; At/Set return errors instead of panicking.
//   - Window — a no-copy view into a Dense; writes reflect in the base.
//   - Matrix / Mutable — minimal read and read/write interfaces, satisfied
//     by Dense, Window and the solver's storage-sharing views.
//
// Why:
//
//   - Callers hand parameters and sample covariances to the solver through
//     one ingestion type, and receive live views back through one interface.
//   - Keeping At/Set error-returning (never panicking) makes shape bugs a
//     recoverable condition at the public surface.
//
// Errors:
//
//   - ErrInvalidDimensions: requested shape has a non-positive dimension.
//   - ErrOutOfRange: a row or column index is outside valid bounds.
//   - ErrRagged: rows of differing lengths during ingestion.
//   - ErrNaNInf: NaN or ±Inf handed to Set.
//
// Complexity: NewDense O(r·c); At/Set O(1); Window O(1); Clone O(r·c).
package matrix
