package loopnest

import "errors"

// Sentinel errors for the loopnest package.
var (
	// ErrNonAffine indicates a SCEV/backedge expression could not be
	// represented as an integer-affine form in the visible symbols.
	ErrNonAffine = errors.New("loopnest: non-affine bound")

	// ErrNoLoops indicates an operation requiring at least one loop
	// column was invoked on a zero-depth nest.
	ErrNoLoops = errors.New("loopnest: nest has no loop columns")

	// ErrLoopReferenced indicates removeInnerMost was asked to drop a
	// loop column still referenced by an outer constraint.
	ErrLoopReferenced = errors.New("loopnest: innermost loop still referenced")

	// ErrBadRotation indicates a rotation matrix is not square with the
	// loop's current depth.
	ErrBadRotation = errors.New("loopnest: rotation matrix has wrong shape")

	// ErrInvalidLoopIndex indicates an out-of-range loop column index.
	ErrInvalidLoopIndex = errors.New("loopnest: invalid loop index")
)
