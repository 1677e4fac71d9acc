package reduction

import "errors"

// ErrNoEdges describes an Address with an empty outgoing edge chain.
// firstOutEdge reports that case with a false third result; no function in this
// package returns ErrNoEdges.
var ErrNoEdges = errors.New("reduction: address has no outgoing edges")
