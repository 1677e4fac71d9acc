package address

import "errors"

// Sentinel errors for the address package.
var (
	// ErrDropped indicates an operation targeted an Address already marked dropped.
	ErrDropped = errors.New("address: address is dropped")

	// ErrDepthMismatch indicates rotate was asked to move from a wider
	// loop nest to a narrower one.
	ErrDepthMismatch = errors.New("address: new loop has fewer dimensions than old loop")

	// ErrShapeMismatch indicates an index/offset matrix did not match
	// the owning loop's depth or the address's axis count.
	ErrShapeMismatch = errors.New("address: matrix shape does not match loop or axis count")
)
