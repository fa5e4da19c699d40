// SPDX-License-Identifier: MIT

package matrix

import "errors"

// Sentinel errors for the matrix package. All public methods return these
// (optionally wrapped with context via %w); tests match them with errors.Is.
// No method panics on user-triggered conditions.
var (
	// ErrInvalidDimensions indicates a requested dimension is non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")
	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")
	// ErrRagged indicates ingested rows have differing lengths.
	ErrRagged = errors.New("matrix: all rows must have the same length")
	// ErrNaNInf indicates a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)
