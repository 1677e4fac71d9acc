// Package numeric defines the core Matrix interface for exact-rational
// linear algebra.
//
// What & Why:
//
//	The Matrix interface provides a uniform abstraction over two-dimensional
//	mutable arrays of big.Rat values, so the affine-loop, dependence, and
//	scheduler packages can operate generically over any implementation
//	(currently only Dense). Exact rational arithmetic is required because
//	Farkas multipliers, schedule coefficients, and simplex pivots must be
//	provably exact: a single rounding error in a float64 pivot can certify
//	a dependence direction that is not actually implied by the polyhedron.
//
// Complexity:
//
//	Rows() and Cols() run in O(1) time.
//	At() and Set() perform bounds checking in O(1) time.
//	Clone() performs a deep copy in O(rows*cols) time.
package numeric

import "math/big"

// Matrix is a two-dimensional mutable array of exact rationals.
// Each method enforces bounds checking and returns clear errors on misuse.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (*big.Rat, error)

	// Set assigns the value v at position (i, j). v is copied, not aliased.
	Set(i, j int, v *big.Rat) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// RatInt builds a *big.Rat from an int64, a small convenience used
// throughout the affine-model packages where entries start life as plain
// integers (loop bounds, index-matrix coefficients, offsets).
func RatInt(n int64) *big.Rat {
	return new(big.Rat).SetInt64(n)
}

// IsZero reports whether r is exactly zero (nil is treated as zero, which
// simplifies callers walking over sparsely-populated rows).
func IsZero(r *big.Rat) bool {
	return r == nil || r.Sign() == 0
}
