// Package numeric provides core linear algebra primitives for array-based
// computations. Dense is a concrete, row-major implementation of the
// Matrix interface, storing big.Rat elements in a flat slice for
// locality, the same layout the teacher's float64 Dense uses.
package numeric

import (
	"fmt"
	"math/big"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of exact rationals.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int        // number of rows and columns
	data []*big.Rat // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zero.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice, each entry its own *big.Rat.
// Stage 3 (Finalize): return new Dense or ErrBadShape.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	// Allocate flat slice, one fresh zero Rat per cell (no shared aliasing)
	data := make([]*big.Rat, rows*cols)
	for i := range data {
		data[i] = new(big.Rat)
	}

	// Return initialized Dense
	return &Dense{r: rows, c: cols, data: data}, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i].SetInt64(1)
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Dense) Rows() int {
	return m.r // return stored row count
}

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Dense) Cols() int {
	return m.c // return stored column count
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Stage 1 (Validate): check 0 ≤ row < r and 0 ≤ col < c.
// Stage 2 (Execute): compute and return linear index.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	// Validate row index
	if row < 0 || row >= m.r {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}
	// Validate column index
	if col < 0 || col >= m.c {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}

	// Compute flat offset
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// The returned *big.Rat is a defensive copy; mutating it does not affect m.
// Complexity: O(1).
func (m *Dense) At(row, col int) (*big.Rat, error) {
	// Compute flat index or error
	idx, err := m.indexOf(row, col)
	if err != nil {
		return nil, err
	}

	// Return a copy of the stored value
	return new(big.Rat).Set(m.data[idx]), nil
}

// Set assigns value v at (row, col). v is copied into the backing store.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v *big.Rat) error {
	// Compute flat index or error
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	// Assign a copy so later mutation of v by the caller is harmless
	m.data[idx] = new(big.Rat).Set(v)

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory for copy.
func (m *Dense) Clone() Matrix {
	// Allocate new slice for data copy
	copyData := make([]*big.Rat, len(m.data))
	// Copy each element into new slice
	for i, v := range m.data {
		copyData[i] = new(big.Rat).Set(v)
	}

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// Row returns a defensive copy of row i as a slice of *big.Rat, outer to
// inner column order. Used by the loop-nest and Farkas-tableau code that
// walks whole rows rather than individual cells.
func (m *Dense) Row(i int) ([]*big.Rat, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf("Row", i, 0, ErrOutOfRange)
	}
	out := make([]*big.Rat, m.c)
	for j := 0; j < m.c; j++ {
		out[j] = new(big.Rat).Set(m.data[i*m.c+j])
	}

	return out, nil
}

// String implements fmt.Stringer for easy debugging.
// Stage 1 (Execute): build per-row strings.
// Stage 2 (Finalize): return concatenated representation.
// Complexity: O(r*c) for string construction.
func (m *Dense) String() string {
	var s string
	for i := 0; i < m.r; i++ { // iterate over rows
		s += "["                  // open row
		for j := 0; j < m.c; j++ { // iterate over columns
			s += m.data[i*m.c+j].RatString()
			if j < m.c-1 {
				s += ", " // separate values with comma
			}
		}
		s += "]\n" // close row
	}

	return s
}
