package reduction

import (
	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/arena"
	"github.com/arevlabs/polysched/dependence"
)

// Pair is a confirmed store<->load reduction cycle (spec §4.11).
type Pair struct {
	Store *address.Address
	Load  *address.Address
}

// ValueOf resolves the value handle an Address contributes to a Chain:
// a store's StoredValue field, or, for a load, whatever synthetic
// handle the front end assigned to the value it produces (out of this
// core's data model, hence caller-supplied).
type ValueOf func(*address.Address) int64

// Detect walks stores (assumed already ordered by the topological
// position of their first outgoing edge's downstream Address, per spec
// §4.11's "after edge sorting") and, for each store whose first
// outgoing edge is time-paired and targets a same-loop load reachable
// through chain exactly once, records the pair and annotates both
// Addresses via SetReassociableReduction.
func Detect(stores, loads []*address.Address, edges *dependence.Registry, chain Chain, valueOf ValueOf) []Pair {
	consumerOf := make(map[arena.ID]*address.Address)
	for _, ld := range loads {
		edges.InChain(ld.EdgeIn, func(id arena.ID, _ *dependence.Edge) bool {
			consumerOf[id] = ld

			return true
		})
	}

	var pairs []Pair
	for _, s := range stores {
		id, e, ok := firstOutEdge(s, edges)
		if !ok || e.RevTimeEdge == arena.ID(arena.NoNext) {
			continue
		}
		load, ok := consumerOf[id]
		if !ok || load.Loop != s.Loop {
			continue
		}
		if s.Loop.NumLoops() < e.SatLevel {
			continue
		}
		if reaches(chain, valueOf(s), valueOf(load)) != 1 {
			continue
		}
		s.SetReassociableReduction(load)
		load.SetReassociableReduction(s)
		pairs = append(pairs, Pair{Store: s, Load: load})
	}

	return pairs
}

// firstOutEdge returns the head edge of s's outgoing chain, if any.
func firstOutEdge(s *address.Address, edges *dependence.Registry) (arena.ID, *dependence.Edge, bool) {
	var found *dependence.Edge
	var foundID arena.ID
	edges.OutChain(s.EdgeOut, func(id arena.ID, e *dependence.Edge) bool {
		found, foundID = e, id

		return false
	})
	if found == nil {
		return arena.ID(arena.NoNext), nil, false
	}

	return foundID, found, true
}
