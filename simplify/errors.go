package simplify

import "errors"

// ErrKeyMismatch describes an Address whose signature cannot be computed,
// e.g. an inconsistent index-matrix shape. Simplify reports that case by
// wrapping the underlying matrix error; no function in this package
// returns ErrKeyMismatch.
var ErrKeyMismatch = errors.New("simplify: could not compute address signature")
