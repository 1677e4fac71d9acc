// Package schednode implements the Scheduled Node (spec §3, §4.7): a
// group of Addresses co-scheduled under one representative store and
// its peer loads, holding the solved ϕ matrix, ω offset vector, an
// optional shift vector, and the node's current solved rank. Field
// shape and terse comments follow `core/types.go`'s Graph value-object
// conventions.
package schednode
