package arena

import "fmt"

// ID identifies an entry in a Registry. The zero value is a valid ID
// (the first entry Add returns); callers needing a sentinel use NoNext.
type ID int

// Registry owns a set of values of type T keyed by a monotonically
// increasing ID, modeled on core.Graph's nextEdgeID counter plus its
// edges map — the central-registry-by-integer-ID pattern spec §9
// requires for every cyclic structure (Loops, Addresses, Dependence
// Edges, Scheduled Nodes).
//
// Registry is not safe for concurrent use: the optimizer runs as one
// synchronous pass per block (spec §5), so no internal locking is
// carried the way core.Graph carries it.
type Registry[T any] struct {
	next    ID
	entries map[ID]T
}

// NewRegistry returns an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[ID]T)}
}

// Add inserts v under a freshly allocated ID and returns that ID.
// Complexity: O(1) amortized.
func (r *Registry[T]) Add(v T) ID {
	id := r.next
	r.entries[id] = v
	r.next++

	return id
}

// Get returns the value stored under id.
func (r *Registry[T]) Get(id ID) (T, error) {
	v, ok := r.entries[id]
	if !ok {
		var zero T

		return zero, fmt.Errorf("Registry.Get(%d): %w", id, ErrNotFound)
	}

	return v, nil
}

// Set overwrites the value stored under id, used when T is a value type
// mutated in place (ϕ solved, satLevel raised) rather than a pointer.
func (r *Registry[T]) Set(id ID, v T) error {
	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("Registry.Set(%d): %w", id, ErrNotFound)
	}
	r.entries[id] = v

	return nil
}

// Delete removes id from the registry. Deleting an absent ID is a no-op,
// matching core's tolerant teardown style.
func (r *Registry[T]) Delete(id ID) {
	delete(r.entries, id)
}

// Len returns the number of live entries.
func (r *Registry[T]) Len() int {
	return len(r.entries)
}

// IDs returns every live ID in unspecified order. Callers that need
// program order keep their own intrusive chain; this is only for
// registry-wide sweeps (the legality annotator's per-loop bucket scan).
func (r *Registry[T]) IDs() []ID {
	ids := make([]ID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}

	return ids
}

// ForEach calls fn for every live entry; fn returning false stops iteration early.
func (r *Registry[T]) ForEach(fn func(ID, T) bool) {
	for id, v := range r.entries {
		if !fn(id, v) {
			return
		}
	}
}
