package rebuild_test

import (
	"math/big"
	"testing"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/dependence"
	"github.com/arevlabs/polysched/loopnest"
	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/rebuild"
)

// BenchmarkTopologicalSort_Chain100 measures TopologicalSort over a
// single-loop chain of 100 Addresses, each depending on the previous
// one at depth 0 — the linear-chain shape BuildBodyGraph produces for
// a tightly ordered loop body. Complexity: O(n) vertices plus O(n)
// chain edges, one DFS visit per vertex.
func BenchmarkTopologicalSort_Chain100(b *testing.B) {
	loop, err := loopnest.NewAffineLoop([]string{"N"}, 1, [][]*big.Rat{
		{new(big.Rat), numeric.RatInt(-1), numeric.RatInt(128)},
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

	const n = 100
	addrs := make([]*address.Address, n)
	reg := dependence.NewRegistry()
	for i := 0; i < n; i++ {
		a, err := address.New(address.BaseHandle(i), loop, address.Store, idx, offsets, nil)
		if err != nil {
			b.Fatal(err)
		}
		addrs[i] = a
	}
	for i := 0; i < n-1; i++ {
		id := reg.Add(&dependence.Edge{Forward: true})
		if err := reg.Satisfy(id, 0); err != nil {
			b.Fatal(err)
		}
		addrs[i].EdgeOut, addrs[i+1].EdgeIn = id, id
	}

	g := rebuild.BuildBodyGraph(addrs, reg, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rebuild.TopologicalSort(g); err != nil {
			b.Fatal(err)
		}
	}
}
