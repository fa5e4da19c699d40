package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/semcov/matrix"
)

// view is a live, no-copy rectangular window over an engine buffer. Reads
// and writes go straight to the shared storage; the float32 instantiation
// converts on access. Bounds and NaN checks mirror the matrix package so
// every Mutable in the module reports the same sentinels.
type view[T number] struct {
	data   []T
	rows   int
	cols   int
	stride int // row stride of the underlying buffer
	r0, c0 int // top-left offset inside the buffer
}

// Compile-time interface conformance for both instantiations.
var (
	_ matrix.Mutable = (*view[float32])(nil)
	_ matrix.Mutable = (*view[float64])(nil)
)

// Rows returns the view height. Complexity: O(1).
func (v *view[T]) Rows() int { return v.rows }

// Cols returns the view width. Complexity: O(1).
func (v *view[T]) Cols() int { return v.cols }

// At reads element (row, col) or returns matrix.ErrOutOfRange.
// Complexity: O(1).
func (v *view[T]) At(row, col int) (float64, error) {
	if row < 0 || row >= v.rows || col < 0 || col >= v.cols {
		return 0, fmt.Errorf("solver: view.At(%d,%d): %w", row, col, matrix.ErrOutOfRange)
	}

	return float64(v.data[(v.r0+row)*v.stride+(v.c0+col)]), nil
}

// Set writes element (row, col) into the shared engine buffer. Returns
// matrix.ErrOutOfRange for invalid indices and matrix.ErrNaNInf for
// non-finite values. Complexity: O(1).
func (v *view[T]) Set(row, col int, x float64) error {
	if row < 0 || row >= v.rows || col < 0 || col >= v.cols {
		return fmt.Errorf("solver: view.Set(%d,%d): %w", row, col, matrix.ErrOutOfRange)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("solver: view.Set(%d,%d): %w", row, col, matrix.ErrNaNInf)
	}
	v.data[(v.r0+row)*v.stride+(v.c0+col)] = T(x)

	return nil
}
