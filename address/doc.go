// Package address models an affine memory reference (spec §3 "Address",
// §4.3): a base-pointer identity, an index matrix mapping loops to array
// axes, a constant offset vector, a symbolic offset matrix, a load/store
// flag and, for stores, a stored-value handle. Value-object shape and
// terse per-field comments follow `core/types.go`'s Vertex/Edge.
package address
