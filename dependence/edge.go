package dependence

import (
	"fmt"

	"github.com/arevlabs/polysched/arena"
)

// Edge is a Dependence Edge between an input Address u and an output
// Address v (spec §3 "Dependence Edge"). Forward is true iff, on the
// schedule being sought, v happens after u.
type Edge struct {
	// InAddr/OutAddr are arena IDs into the caller's Address registry
	// (kept as opaque handles here so this package never imports the
	// IR's value hierarchy, per spec §1's scope boundary).
	InAddr, OutAddr int64

	Forward bool

	Tableaus *FarkasPair

	// SatLevel is the loop depth at which this edge becomes guaranteed,
	// or Unsatisfied (255) if not yet satisfied by any chosen loop.
	SatLevel int

	// RevTimeEdge is the back-pointer to this edge's time-paired
	// partner, or arena.NoNext if this edge was not created in a pair
	// (spec §4.6).
	RevTimeEdge arena.ID

	// PrevIn/NextIn and PrevOut/NextOut are the intrusive per-Address
	// input/output chain links (spec §3, §9).
	PrevIn, NextIn   arena.ID
	PrevOut, NextOut arena.ID
}

// Registry owns the set of live Dependence Edges keyed by integer ID
// (spec §9: "Dependence Edges are owned by a central registry keyed by
// integer IDs").
type Registry struct {
	edges *arena.Registry[*Edge]
}

// NewRegistry returns an empty Edge Registry.
func NewRegistry() *Registry {
	return &Registry{edges: arena.NewRegistry[*Edge]()}
}

// Add inserts e and returns its new ID.
func (r *Registry) Add(e *Edge) arena.ID {
	e.SatLevel = Unsatisfied
	e.RevTimeEdge = arena.ID(arena.NoNext)
	e.PrevIn, e.NextIn = arena.ID(arena.NoNext), arena.ID(arena.NoNext)
	e.PrevOut, e.NextOut = arena.ID(arena.NoNext), arena.ID(arena.NoNext)

	return r.edges.Add(e)
}

// Get returns the Edge stored under id.
func (r *Registry) Get(id arena.ID) (*Edge, error) {
	e, err := r.edges.Get(id)
	if err != nil {
		return nil, fmt.Errorf("Registry.Get: %w", ErrEdgeNotFound)
	}

	return e, nil
}

// SatLevel returns the satisfaction level of edge id.
func (r *Registry) SatLevel(id arena.ID) (int, error) {
	e, err := r.Get(id)
	if err != nil {
		return 0, err
	}

	return e.SatLevel, nil
}

// Satisfy sets edge id's saturation level to depth, overwriting the
// current value without comparing the two; the scheduler calls this
// exactly once per edge, at the depth where it first becomes satisfied.
func (r *Registry) Satisfy(id arena.ID, depth int) error {
	e, err := r.Get(id)
	if err != nil {
		return err
	}
	e.SatLevel = depth

	return nil
}

// PairTime links two edges as time-edge partners (spec §4.6).
func (r *Registry) PairTime(a, b arena.ID) error {
	ea, err := r.Get(a)
	if err != nil {
		return err
	}
	eb, err := r.Get(b)
	if err != nil {
		return err
	}
	ea.RevTimeEdge = b
	eb.RevTimeEdge = a

	return nil
}

// InChain walks the intra-list of input edges starting at head, calling
// fn for each live edge ID in chain order. `next == arena.NoNext`
// terminates the walk (spec §9).
func (r *Registry) InChain(head arena.ID, fn func(arena.ID, *Edge) bool) {
	r.walk(head, fn, func(e *Edge) arena.ID { return e.NextIn })
}

// OutChain walks the intra-list of output edges starting at head.
func (r *Registry) OutChain(head arena.ID, fn func(arena.ID, *Edge) bool) {
	r.walk(head, fn, func(e *Edge) arena.ID { return e.NextOut })
}

func (r *Registry) walk(head arena.ID, fn func(arena.ID, *Edge) bool, next func(*Edge) arena.ID) {
	id := head
	for id != arena.ID(arena.NoNext) {
		e, err := r.Get(id)
		if err != nil {
			return
		}
		if !fn(id, e) {
			return
		}
		id = next(e)
	}
}

// Len returns the number of live edges.
func (r *Registry) Len() int { return r.edges.Len() }
