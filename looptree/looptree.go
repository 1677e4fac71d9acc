package looptree

import (
	"fmt"
	"math/big"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/loopnest"
	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/numeric/ops"
	"github.com/arevlabs/polysched/schednode"
)

// Loop is one node of the post-schedule loop tree: a rotated Affine
// Loop plus its children (keyed by the next fusion-ω component) and the
// Addresses that live directly in its body (spec §4.9).
type Loop struct {
	Affine *loopnest.AffineLoop

	// Key is the fusion-ω component that selects this Loop from its
	// parent; the root Loop has Key 0 and no Parent.
	Key    int64
	Parent *Loop

	children    map[int64]*Loop
	childOrder  []int64
	Addresses   []*address.Address
}

// Tree is the rebuilt loop nest for a whole block (spec §4.9's "build
// the post-schedule tree of loops").
type Tree struct {
	Root *Loop
}

func newLoop(key int64, parent *Loop, affine *loopnest.AffineLoop) *Loop {
	return &Loop{
		Affine:   affine,
		Key:      key,
		Parent:   parent,
		children: make(map[int64]*Loop),
	}
}

// Children returns the Loop's children in first-seen order, the
// deterministic order the trie walk encountered their fusion-ω prefix.
func (l *Loop) Children() []*Loop {
	out := make([]*Loop, 0, len(l.childOrder))
	for _, k := range l.childOrder {
		out = append(out, l.children[k])
	}

	return out
}

func (l *Loop) child(key int64, affine *loopnest.AffineLoop) *Loop {
	if c, ok := l.children[key]; ok {
		return c
	}
	c := newLoop(key, l, affine)
	l.children[key] = c
	l.childOrder = append(l.childOrder, key)

	return c
}

// Build assembles the post-schedule Tree from a set of fully scheduled
// nodes (spec §4.9): for each node, `(ϕ⁻¹, denom) = scaledInverse(ϕ)` is
// computed, the node's fusion-ω vector is walked one component per trie
// level, a fresh rotated Loop is created for any prefix not seen before,
// and the node's addresses are rotated and inserted under the innermost
// matching Loop.
func Build(nodes []*schednode.Node) (*Tree, error) {
	root := newLoop(0, nil, nil)

	for _, n := range nodes {
		if !n.FullyScheduled() {
			continue
		}
		phiMat, err := matrixOf(n.Phi)
		if err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
		phiInv, denom, err := ops.ScaledInverse(phiMat)
		if err != nil {
			return nil, fmt.Errorf("Build: %w", ErrSingularSchedule)
		}
		rotated, err := n.Loop.Rotate(n.Phi)
		if err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}

		depth := n.Depth()
		if depth == 0 {
			return nil, fmt.Errorf("Build: %w", ErrNoFusionPrefix)
		}

		cur := root
		for i := 0; i < depth; i++ {
			key := int64(0)
			if i < len(n.Omega) {
				key = n.Omega[i]
			}
			cur = cur.child(key, rotated)
		}

		omegaRat := int64SliceToRat(n.Omega)
		for _, addr := range n.Addresses() {
			if err := addr.Rotate(rotated, phiInv, denom, omegaRat, n.Offsets); err != nil {
				return nil, fmt.Errorf("Build: %w", err)
			}
			cur.Addresses = append(cur.Addresses, addr)
		}
	}

	return &Tree{Root: root}, nil
}

func matrixOf(rows [][]*big.Rat) (numeric.Matrix, error) {
	d := len(rows)
	m, err := numeric.NewDense(d, d)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				v = new(big.Rat)
			}
			if err := m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func int64SliceToRat(v []int64) []*big.Rat {
	out := make([]*big.Rat, len(v))
	for i, x := range v {
		out[i] = numeric.RatInt(x)
	}

	return out
}
