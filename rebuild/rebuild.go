package rebuild

import (
	"fmt"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/arena"
	"github.com/arevlabs/polysched/dependence"
	"github.com/arevlabs/polysched/looptree"
)

// Rebuilt is one loop's body after hoisting and topological sort (spec
// §4.10 steps 1-3).
type Rebuilt struct {
	Before []*address.Address
	Body   []*address.Address
	After  []*address.Address
}

// Rebuild classifies loop's direct Addresses as hoistable before/after
// or dependent-in-body, then topologically sorts the remaining body,
// asserting no cycle exists among edges saturated exactly at loop's
// depth (spec §4.10).
func Rebuild(loop *looptree.Loop, edges *dependence.Registry) (*Rebuilt, error) {
	depth := loopDepth(loop)

	var before, body, after []*address.Address
	for _, a := range loop.Addresses {
		switch classify(a, edges, depth) {
		case Before:
			before = append(before, a)
		case After:
			after = append(after, a)
		default:
			body = append(body, a)
		}
	}

	g := BuildBodyGraph(body, edges, depth)
	if err := AssertAcyclic(g); err != nil {
		return nil, fmt.Errorf("Rebuild: %w", err)
	}
	order, err := TopologicalSort(g)
	if err != nil {
		return nil, fmt.Errorf("Rebuild: %w", err)
	}
	sorted := make([]*address.Address, len(order))
	for i, idx := range order {
		sorted[i] = body[idx]
	}

	return &Rebuilt{Before: before, Body: sorted, After: after}, nil
}

// RebuildTree walks tree from the innermost loops outward, rebuilding
// every loop's body (spec §4.10's "per loop L from the innermost
// outward").
func RebuildTree(tree *looptree.Tree, edges *dependence.Registry) (map[*looptree.Loop]*Rebuilt, error) {
	out := make(map[*looptree.Loop]*Rebuilt)
	var walk func(l *looptree.Loop) error
	walk = func(l *looptree.Loop) error {
		for _, c := range l.Children() {
			if err := walk(c); err != nil {
				return err
			}
		}
		r, err := Rebuild(l, edges)
		if err != nil {
			return err
		}
		out[l] = r

		return nil
	}
	if err := walk(tree.Root); err != nil {
		return nil, err
	}

	return out, nil
}

// loopDepth counts loop's ancestors, the trie depth assigned to it by
// looptree.Build.
func loopDepth(l *looptree.Loop) int {
	d := 0
	for p := l.Parent; p != nil; p = p.Parent {
		d++
	}

	return d
}

// classify decides whether a loops's direct Address a is hoistable
// relative to depth (spec §4.10 step 1-2): independent iff none of its
// in/out dependence edges are saturated exactly at depth; an
// independent Address with a forward outgoing edge is pushed after the
// loop's exit (its value is consumed later), otherwise it is pushed
// before the loop's entry.
func classify(a *address.Address, edges *dependence.Registry, depth int) Placement {
	independent, hasForwardOut := scanEdges(a, edges, depth)
	if !independent {
		return InBody
	}
	if hasForwardOut {
		return After
	}

	return Before
}

// scanEdges inspects a's in/out dependence-edge chains, reporting
// whether none is saturated exactly at depth (independent) and whether
// any outgoing edge is Forward (consumed later in program order).
func scanEdges(a *address.Address, edges *dependence.Registry, depth int) (independent, hasForwardOut bool) {
	independent = true
	edges.InChain(a.EdgeIn, func(_ arena.ID, e *dependence.Edge) bool {
		if e.SatLevel == depth {
			independent = false
		}

		return true
	})
	edges.OutChain(a.EdgeOut, func(_ arena.ID, e *dependence.Edge) bool {
		if e.SatLevel == depth {
			independent = false
		}
		if e.Forward {
			hasForwardOut = true
		}

		return true
	})

	return independent, hasForwardOut
}
