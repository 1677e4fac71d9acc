package arena

import "errors"

// Sentinel errors for arena registries.
var (
	// ErrNotFound indicates a lookup by ID found no entry.
	ErrNotFound = errors.New("arena: id not found")

	// ErrDropped indicates an operation targeted an entry marked dropped.
	ErrDropped = errors.New("arena: entry is dropped")
)

// NoNext is the terminator value for intrusive "next" chain fields,
// spec §9's "next == -1 terminates a chain".
const NoNext = -1
