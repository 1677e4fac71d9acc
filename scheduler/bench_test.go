package scheduler_test

import (
	"math/big"
	"testing"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/dependence"
	"github.com/arevlabs/polysched/loopnest"
	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/schednode"
	"github.com/arevlabs/polysched/scheduler"
)

// BenchmarkGraph_Schedule_Independent100 measures one depth-by-depth
// scheduling pass over 100 mutually independent single-loop stores, the cheap
// path where every node takes the unit-stride "no active edge" branch
// (spec §4.7). Complexity: O(n) nodes times O(1) work per node per
// depth, since there are no edges to re-check.
func BenchmarkGraph_Schedule_Independent100(b *testing.B) {
	loop, err := loopnest.NewAffineLoop([]string{"N"}, 1, [][]*big.Rat{
		{new(big.Rat), numeric.RatInt(-1), numeric.RatInt(16)},
	})
	if err != nil {
		b.Fatal(err)
	}
	loop = loop.AddZeroLowerBounds()

	idx, err := numeric.NewDense(1, 1)
	if err != nil {
		b.Fatal(err)
	}
	if err := idx.Set(0, 0, numeric.RatInt(1)); err != nil {
		b.Fatal(err)
	}
	offsets := []*big.Rat{new(big.Rat)}

	nodes := make([]*schednode.Node, 100)
	for i := range nodes {
		store, err := address.New(address.BaseHandle(i), loop, address.Store, idx, offsets, nil)
		if err != nil {
			b.Fatal(err)
		}
		nodes[i] = schednode.New(store, loop)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, n := range nodes {
			n.Rank = 0
		}
		g := scheduler.NewGraph(nodes, dependence.NewRegistry(), nil)
		if _, err := g.Schedule(); err != nil {
			b.Fatal(err)
		}
	}
}
