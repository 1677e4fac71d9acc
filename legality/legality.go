package legality

import (
	"fmt"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/arena"
	"github.com/arevlabs/polysched/dependence"
)

// Summary is a loop's legality annotation (spec §4.12).
type Summary struct {
	OrderedReductions   int
	UnorderedReductions int
	Reorderable         bool
}

// String renders the Summary for debugging and log lines (a supplement
// beyond spec.md's attribute list, in the teacher's habit of giving
// every annotation-carrying struct a Stringer).
func (s Summary) String() string {
	return fmt.Sprintf("Legality{ordered=%d unordered=%d reorderable=%t}",
		s.OrderedReductions, s.UnorderedReductions, s.Reorderable)
}

// And AND-combines s (this loop's own legality) with parent's, per spec
// §4.12's "a subloop's legality is AND-combined with its parent's".
func (s Summary) And(parent Summary) Summary {
	return Summary{
		OrderedReductions:   s.OrderedReductions,
		UnorderedReductions: s.UnorderedReductions,
		Reorderable:         s.Reorderable && parent.Reorderable,
	}
}

// Annotate produces depth's Summary by classifying every dependence
// edge saturated exactly at depth among addrs (spec §4.12: "iterate all
// dependence IDs saturated at L's level"). An edge whose store/load pair
// was marked a reassociable reduction (reduction.Detect) contributes
// "unordered"; an edge that is time-paired but not confirmed
// reassociable contributes "ordered" (carried, reassociable only with a
// fixed accumulation order); any other saturated edge flips reorderable
// to false.
func Annotate(addrs []*address.Address, edges *dependence.Registry, depth int) (Summary, error) {
	if edges == nil {
		return Summary{}, ErrNilRegistry
	}

	consumerOf := make(map[arena.ID]*address.Address)
	for _, a := range addrs {
		edges.InChain(a.EdgeIn, func(id arena.ID, _ *dependence.Edge) bool {
			consumerOf[id] = a

			return true
		})
	}

	sum := Summary{Reorderable: true}
	seen := make(map[arena.ID]bool)
	for _, a := range addrs {
		edges.OutChain(a.EdgeOut, func(id arena.ID, e *dependence.Edge) bool {
			if seen[id] || e.SatLevel != depth {
				return true
			}
			seen[id] = true

			consumer := consumerOf[id]
			switch {
			case a.ReassociableReduction() != nil && consumer != nil && consumer.ReassociableReduction() == a:
				sum.UnorderedReductions++
			case e.RevTimeEdge != arena.ID(arena.NoNext):
				sum.OrderedReductions++
			default:
				sum.Reorderable = false
			}

			return true
		})
	}

	return sum, nil
}
