package dependence

import "errors"

// Sentinel errors for the dependence package.
var (
	// ErrNotMergeable indicates two Addresses do not share a base/axis shape.
	ErrNotMergeable = errors.New("dependence: addresses are not mergeable")

	// ErrEmptyPolyhedron indicates the joint polyhedron was empty after pruning.
	ErrEmptyPolyhedron = errors.New("dependence: joint polyhedron is empty")

	// ErrEdgeNotFound indicates a lookup by edge ID found no entry.
	ErrEdgeNotFound = errors.New("dependence: edge not found")
)

// Unsatisfied is the saturation-level sentinel meaning "not yet
// satisfied by any loop" (spec GLOSSARY: "255 means unsatisfied at any
// loop level; only sequential order at the innermost position
// guarantees it").
const Unsatisfied = 255
