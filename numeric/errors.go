// Package numeric: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the
// numeric package. Algorithms MUST return these sentinels and tests MUST
// check them via errors.Is rather than string comparison. Panics are
// reserved for programmer errors in option constructors (see types.go).

package numeric

import "errors"

var (
	// ErrBadShape is returned when requested matrix shape is invalid (r<=0 or c<=0).
	ErrBadShape = errors.New("numeric: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("numeric: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("numeric: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("numeric: matrix is not square")

	// ErrSingular is returned when a zero pivot is encountered during inversion/LU.
	ErrSingular = errors.New("numeric: singular matrix")

	// ErrRankDeficient indicates a matrix did not have the rank an operation required.
	ErrRankDeficient = errors.New("numeric: rank-deficient matrix")

	// ErrInfeasible indicates a simplex Phase-I pass found no feasible point.
	ErrInfeasible = errors.New("numeric: infeasible system")

	// ErrUnbounded indicates a simplex objective is unbounded on the feasible region.
	ErrUnbounded = errors.New("numeric: unbounded objective")

	// ErrNotImplemented marks an intentionally unsupported operation.
	ErrNotImplemented = errors.New("numeric: not implemented")
)
