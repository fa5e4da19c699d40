// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a contiguous row-major buffer with the explicit index formula
//     i*cols + j and error-returning accessors at the public surface.
//   - Support no-copy windows (Window) whose mutations reflect in the base.
//   - Keep algorithmic determinism: fixed loop orders, no map iteration.

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is the minimal read surface shared by Dense, Window and the
// solver's live views. At returns ErrOutOfRange for invalid indices.
type Matrix interface {
	Rows() int
	Cols() int
	At(row, col int) (float64, error)
}

// Mutable extends Matrix with element writes. Implementations backed by
// float32 storage convert on write; the storage is still shared.
type Mutable interface {
	Matrix
	Set(row, col int, v float64) error
}

// Dense is a concrete row-major float64 matrix.
//   - r, c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int
	data []float64
}

// Compile-time interface conformance.
var (
	_ Mutable      = (*Dense)(nil)
	_ Mutable      = (*Window)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// Returns ErrInvalidDimensions when rows or cols is non-positive.
//
// Complexity: O(r·c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFromRows copies a [][]float64 into a fresh Dense.
// Returns ErrInvalidDimensions for an empty input and ErrRagged when rows
// have differing lengths. The input slices are not retained.
//
// Complexity: O(r·c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	// 1. Validate outline.
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	cols := len(rows[0])
	for i := range rows {
		if len(rows[i]) != cols {
			return nil, ErrRagged
		}
	}
	// 2. Allocate and copy row by row (deterministic order).
	m, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		copy(m.data[i*cols:(i+1)*cols], rows[i])
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Kept unexported so the public surface never panics on bad indices.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, fmt.Errorf("Dense.At(%d,%d): %w", row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col). Returns ErrOutOfRange for invalid indices and
// ErrNaNInf for non-finite values.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return fmt.Errorf("Dense.Set(%d,%d): %w", row, col, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("Dense.Set(%d,%d): %w", row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy with an independent buffer.
// Complexity: O(r·c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Do visits each element in row-major order and calls f(i, j, v); iteration
// stops early when f returns false. Read-only, no allocations.
// Complexity: O(r·c).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// String renders a readable row-wise dump for diagnostics; not for hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString("[")
		base = i * m.c
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&b, "%g", m.data[base+j])
			if j+1 < m.c {
				b.WriteString(", ")
			}
		}
		b.WriteString("]\n")
	}

	return b.String()
}

// Window creates a no-copy view [r0:r0+rows, c0:c0+cols) over the same
// storage. Writes through the window reflect in the base and vice versa.
// Returns ErrOutOfRange when the requested region leaves the base.
// Complexity: O(1).
func (m *Dense) Window(r0, c0, rows, cols int) (*Window, error) {
	if r0 < 0 || c0 < 0 || rows <= 0 || cols <= 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, fmt.Errorf("Dense.Window(%d,%d,%d,%d): %w", r0, c0, rows, cols, ErrOutOfRange)
	}

	return &Window{base: m, r0: r0, c0: c0, r: rows, c: cols}, nil
}

// Window is a non-owning rectangular view into a Dense (shared storage).
type Window struct {
	base *Dense
	r0   int // top row offset in base
	c0   int // left col offset in base
	r    int // view height
	c    int // view width
}

// Rows returns the number of rows in the view. Complexity: O(1).
func (w *Window) Rows() int { return w.r }

// Cols returns the number of columns in the view. Complexity: O(1).
func (w *Window) Cols() int { return w.c }

// At reads element (i, j) of the view or returns ErrOutOfRange.
// Complexity: O(1).
func (w *Window) At(i, j int) (float64, error) {
	if i < 0 || i >= w.r || j < 0 || j >= w.c {
		return 0, fmt.Errorf("Window.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return w.base.data[(w.r0+i)*w.base.c+(w.c0+j)], nil
}

// Set writes element (i, j) through the view into the base buffer.
// Complexity: O(1).
func (w *Window) Set(i, j int, v float64) error {
	if i < 0 || i >= w.r || j < 0 || j >= w.c {
		return fmt.Errorf("Window.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("Window.Set(%d,%d): %w", i, j, ErrNaNInf)
	}
	w.base.data[(w.r0+i)*w.base.c+(w.c0+j)] = v

	return nil
}
