package rebuild

import (
	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/arena"
	"github.com/arevlabs/polysched/dependence"
)

// BodyGraph is the dependence subgraph among one loop's body Addresses,
// restricted to edges saturated at a single depth (spec §4.10's "edges
// in L's dependency bucket").
type BodyGraph struct {
	Addrs []*address.Address
	out   [][]int
	in    [][]int
}

// BuildBodyGraph walks addrs' intrusive EdgeIn/EdgeOut chains in edges,
// keeping only the edges whose SatLevel equals depth, and resolves each
// edge's other endpoint by matching it against every other address's
// own EdgeIn chain (the registry links edges to addresses by chain
// membership, not a shared numeric-ID space).
func BuildBodyGraph(addrs []*address.Address, edges *dependence.Registry, depth int) *BodyGraph {
	n := len(addrs)
	g := &BodyGraph{Addrs: addrs, out: make([][]int, n), in: make([][]int, n)}

	consumerOf := make(map[arena.ID]int, n)
	for idx, a := range addrs {
		edges.InChain(a.EdgeIn, func(id arena.ID, _ *dependence.Edge) bool {
			consumerOf[id] = idx

			return true
		})
	}

	for idx, a := range addrs {
		edges.OutChain(a.EdgeOut, func(id arena.ID, e *dependence.Edge) bool {
			if e.SatLevel != depth {
				return true
			}
			if cons, ok := consumerOf[id]; ok && cons != idx {
				g.addEdge(idx, cons)
			}

			return true
		})
	}

	return g
}

func (g *BodyGraph) addEdge(u, v int) {
	g.out[u] = append(g.out[u], v)
	g.in[v] = append(g.in[v], u)
}

// N returns the number of addresses in the body.
func (g *BodyGraph) N() int { return len(g.Addrs) }
