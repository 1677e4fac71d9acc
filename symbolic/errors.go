package symbolic

import "errors"

// Sentinel errors for the symbolic comparator.
var (
	// ErrEmptyPolyhedron indicates a Comparator was built over a matrix with no columns.
	ErrEmptyPolyhedron = errors.New("symbolic: polyhedron has no variables")

	// ErrDimensionMismatch is returned by NewComparator when E's column count differs from A's.
	// A query vector of the wrong length is not an error: GreaterEqual returns false for it.
	ErrDimensionMismatch = errors.New("symbolic: query vector dimension mismatch")
)
