// Package arena provides the integer-ID-keyed registries every other
// package uses instead of raw pointers: Loops, Addresses and Dependence
// Edges are cyclic structures (a loop-carried dependence points from a
// store back to an earlier load in the same loop), so cross-references
// are held as integer IDs into a central map, exactly the way
// `core.Graph` holds Vertex/Edge by string ID behind an atomic counter.
// `next == -1` terminates an intrusive chain built on top of a registry.
package arena
