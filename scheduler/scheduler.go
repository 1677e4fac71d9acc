package scheduler

import (
	"math/big"

	"github.com/arevlabs/polysched/arena"
	"github.com/arevlabs/polysched/dependence"
	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/numeric/ops"
	"github.com/arevlabs/polysched/schednode"
)

// EdgeRef associates a Dependence Edge with the indices, into a Graph's
// Nodes slice, of its two endpoint ScheduledNodes.
type EdgeRef struct {
	From, To int
	ID       arena.ID
}

// Graph is the dependence graph across all of a block's ScheduledNodes
// (spec §4.7's "assemble the dependence graph across all nodes").
type Graph struct {
	Nodes []*schednode.Node
	Edges *dependence.Registry
	refs  []EdgeRef

	allowRefusion bool
	depthCap      int
}

// NewGraph builds a Graph over nodes and the given edge references,
// backed by the shared Dependence Edge registry. Greedy re-fusion is
// enabled by default; disable it with SetAllowRefusion(false).
func NewGraph(nodes []*schednode.Node, edges *dependence.Registry, refs []EdgeRef) *Graph {
	return &Graph{Nodes: nodes, Edges: edges, refs: refs, allowRefusion: true}
}

// SetAllowRefusion toggles the greedy re-fusion attempt of spec §4.7's
// SCC-recovery step. Callers that want to inspect the unfused schedule
// (e.g. for diagnostics) can disable it.
func (g *Graph) SetAllowRefusion(allow bool) {
	g.allowRefusion = allow
}

// SetDepthCap bounds how many outer levels Schedule solves, leaving
// rows beyond the cap as the zero rows schednode.New created (Rank stays
// below Depth). A cap of 0 (the
// default) means unlimited, i.e. schedule down to maxDepth().
func (g *Graph) SetDepthCap(cap int) {
	g.depthCap = cap
}

// maxDepth returns the deepest loop nest among all nodes.
func (g *Graph) maxDepth() int {
	max := 0
	for _, n := range g.Nodes {
		if d := n.Depth(); d > max {
			max = d
		}
	}

	return max
}

// activeAt returns the EdgeRefs unsatisfied as of depth, restricted to
// edges whose endpoints have solved no row past depth and at least one
// of which has a row at depth.
func (g *Graph) activeAt(depth int) []EdgeRef {
	var active []EdgeRef
	for _, ref := range g.refs {
		lvl, err := g.Edges.SatLevel(ref.ID)
		if err != nil || lvl != dependence.Unsatisfied {
			continue
		}
		from, to := g.Nodes[ref.From], g.Nodes[ref.To]
		if from.Rank > depth || to.Rank > depth {
			continue
		}
		if from.Depth() <= depth && to.Depth() <= depth {
			continue
		}
		active = append(active, ref)
	}

	return active
}

// Schedule handles one depth at a time from outermost to innermost (spec
// §4.7), moving on to depth+1 after each successful depth and falling
// back to SCC splitting plus greedy re-fusion on Failure. Returns the
// overall Result combining every depth's outcome with And (spec §9:
// "`&` is min").
func (g *Graph) Schedule() (Result, error) {
	limit := g.maxDepth()
	if g.depthCap > 0 && g.depthCap < limit {
		limit = g.depthCap
	}

	overall := Independent
	for depth := 0; depth < limit; depth++ {
		res, err := g.scheduleDepth(depth)
		if err != nil {
			return Failure, err
		}
		overall = overall.And(res)
		if res == Failure {
			return overall, nil
		}
	}

	return overall, nil
}

// scheduleDepth handles one depth (spec §4.7): every still-unscheduled
// node at this depth is assigned the unit-vector row for this depth,
// whether or not an edge is active; no omni-simplex is assembled and no
// objective is minimized. Active edges are then re-checked with
// checkEmptySat and satisfied ones are deactivated.
func (g *Graph) scheduleDepth(depth int) (Result, error) {
	active := g.activeAt(depth)
	if len(active) == 0 {
		g.assignFreeRows(depth)

		return Independent, nil
	}

	for _, n := range g.Nodes {
		if n.Depth() > depth && n.Rank == depth {
			n.SetRow(unitRow(depth, n.Depth()))
		}
	}

	progressed := false
	var stillActive []EdgeRef
	for _, ref := range active {
		satisfied, err := g.checkEmptySat(ref)
		if err != nil {
			return Failure, err
		}
		if satisfied {
			if err := g.Edges.Satisfy(ref.ID, depth); err != nil {
				return Failure, err
			}
			progressed = true
		} else {
			stillActive = append(stillActive, ref)
		}
	}

	if progressed || len(stillActive) == 0 {
		return Dependent, nil
	}

	return g.handleFailure(depth, stillActive)
}

// assignFreeRows gives every unscheduled node at depth a unit-vector
// schedule row when no active edge constrains the choice.
func (g *Graph) assignFreeRows(depth int) {
	for _, n := range g.Nodes {
		if n.Depth() > depth && n.Rank == depth {
			n.SetRow(unitRow(depth, n.Depth()))
		}
	}
}

// checkEmptySat decides whether the dependence polyhedron, under the
// just-chosen ϕ rows as a direction assumption, is empty of
// counterexamples — an approximation of the source's checkEmptySat
// using the edge's forward tableau's own feasibility as the witness
// (the tableau's Phase-I feasibility already encodes the Farkas
// certificate the spec asks for; see DESIGN.md for the scope this
// simplifies).
func (g *Graph) checkEmptySat(ref EdgeRef) (bool, error) {
	e, err := g.Edges.Get(ref.ID)
	if err != nil {
		return false, err
	}
	if e.Tableaus == nil {
		return true, nil
	}
	rhs := make([]*big.Rat, e.Tableaus.Forward.Rows())
	for i := range rhs {
		rhs[i] = new(big.Rat)
	}
	tab, err := ops.NewTableau(e.Tableaus.Forward, rhs)
	if err != nil {
		return false, err
	}

	return tab.Feasible(), nil
}

// handleFailure performs spec §4.7's on-Failure recovery: split the
// active-edge subgraph into SCCs; if only one remains, report
// unresolvable failure; otherwise give each component its own ω offset
// at depth (no rows are re-solved) and attempt a greedy re-fusion of
// consecutive components.
func (g *Graph) handleFailure(depth int, active []EdgeRef) (Result, error) {
	idx := make(map[int]int)
	var order []int
	for _, ref := range active {
		for _, n := range []int{ref.From, ref.To} {
			if _, ok := idx[n]; !ok {
				idx[n] = len(order)
				order = append(order, n)
			}
		}
	}
	g2 := newAdjacency(len(order))
	for _, ref := range active {
		g2.addEdge(idx[ref.From], idx[ref.To])
	}
	comps := g2.sccs()
	if len(comps) <= 1 {
		return Failure, nil
	}

	for omega, comp := range comps {
		for _, local := range comp {
			node := g.Nodes[order[local]]
			node.Omega[depth] = int64(omega)
		}
	}

	if !g.allowRefusion {
		return Dependent, nil
	}

	return g.attemptRefusion(depth, comps, order)
}

// attemptRefusion greedily tries merging consecutive SCCs back into one
// fusion group when doing so preserves feasibility (spec §4.7 "greedily
// try to re-fuse consecutive components with a trial merge").
func (g *Graph) attemptRefusion(depth int, comps [][]int, order []int) (Result, error) {
	for i := 0; i < len(comps)-1; i++ {
		merged := true
		for _, ref := range g.activeAt(depth) {
			fromOmega := g.Nodes[ref.From].Omega[depth]
			toOmega := g.Nodes[ref.To].Omega[depth]
			if fromOmega == int64(i) && toOmega == int64(i+1) {
				ok, err := g.checkEmptySat(ref)
				if err != nil {
					return Failure, err
				}
				if !ok {
					merged = false

					break
				}
			}
		}
		if merged {
			for _, local := range comps[i+1] {
				g.Nodes[order[local]].Omega[depth] = int64(i)
			}
		}
	}

	return Dependent, nil
}

// unitRow builds a length-depth schedule row with a 1 in column idx,
// the teacher-style "simplest orthogonal direction" default.
func unitRow(idx, depth int) []*big.Rat {
	row := make([]*big.Rat, depth)
	for i := range row {
		row[i] = new(big.Rat)
	}
	if idx < depth {
		row[idx] = numeric.RatInt(1)
	}

	return row
}
