package schednode

import (
	"math/big"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/arena"
	"github.com/arevlabs/polysched/loopnest"
)

// Node is a ScheduledNode: one representative store Address plus a
// linked list of peer loads, the owning loop, and the schedule being
// solved for it.
type Node struct {
	// Store is the representative store Address.
	Store *address.Address

	// PeerLoads are the producer loads co-scheduled with Store.
	PeerLoads []*address.Address

	// Loop is the owning affine loop nest.
	Loop *loopnest.AffineLoop

	// Phi is the d×d schedule matrix; rows are new time dimensions,
	// outer to inner, columns are old indvars.
	Phi [][]*big.Rat

	// Omega is the fusion-order offset vector, length d+1 (one slot per
	// level from outermost to "after innermost").
	Omega []int64

	// Offsets is an optional shift vector zeroing constant dependence
	// offsets (spec §4.8), length d.
	Offsets []*big.Rat

	// Rank is r in 0..d: how many outer rows of Phi are already solved.
	Rank int

	// Next is the intrusive next-pointer in the node list.
	Next arena.ID

	// visited is a traversal mark read and written through
	// Visited/MarkVisited/ResetVisited.
	visited bool
}

// Depth returns d, the node's loop depth.
func (n *Node) Depth() int {
	if n.Loop == nil {
		return 0
	}

	return n.Loop.NumLoops()
}

// FullyScheduled reports whether Rank == Depth, i.e. every row of Phi
// has been solved (spec §3 invariant: "when r==d the ϕ ... is fully
// solved and det(ϕ) ≠ 0").
func (n *Node) FullyScheduled() bool {
	return n.Rank == n.Depth()
}

// New builds a Node with an identity-sized Phi/Omega/Offsets scaffold
// for a loop of depth d, Rank 0 (nothing solved yet).
func New(store *address.Address, loop *loopnest.AffineLoop) *Node {
	d := loop.NumLoops()
	phi := make([][]*big.Rat, d)
	for i := range phi {
		phi[i] = make([]*big.Rat, d)
		for j := range phi[i] {
			phi[i][j] = new(big.Rat)
		}
	}
	omega := make([]int64, d+1)
	offsets := make([]*big.Rat, d)
	for i := range offsets {
		offsets[i] = new(big.Rat)
	}

	return &Node{
		Store:   store,
		Loop:    loop,
		Phi:     phi,
		Omega:   omega,
		Offsets: offsets,
		Rank:    0,
		Next:    arena.ID(arena.NoNext),
	}
}

// SetRow installs the solved schedule row at r (the next unsolved row)
// and bumps Rank.
func (n *Node) SetRow(row []*big.Rat) {
	if n.Rank >= len(n.Phi) {
		return
	}
	n.Phi[n.Rank] = append([]*big.Rat(nil), row...)
	n.Rank++
}

// Visited/MarkVisited/ResetVisited read, set and clear the node's
// traversal mark; the scheduler's SCC pass keeps its own visited set.
func (n *Node) Visited() bool   { return n.visited }
func (n *Node) MarkVisited()    { n.visited = true }
func (n *Node) ResetVisited()   { n.visited = false }

// Addresses returns the store followed by its peer loads, the node's
// full address membership.
func (n *Node) Addresses() []*address.Address {
	out := make([]*address.Address, 0, 1+len(n.PeerLoads))
	out = append(out, n.Store)
	out = append(out, n.PeerLoads...)

	return out
}
