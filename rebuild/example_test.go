package rebuild_test

import (
	"fmt"
	"math/big"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/dependence"
	"github.com/arevlabs/polysched/loopnest"
	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/rebuild"
)

// ExampleTopologicalSort builds a three-Address chain a0 -> a1 -> a2,
// both edges saturated at depth 0, and recovers the only valid
// linearization: producers before consumers.
func ExampleTopologicalSort() {
	loop, err := loopnest.NewAffineLoop([]string{"N"}, 1, [][]*big.Rat{
		{new(big.Rat), numeric.RatInt(-1), numeric.RatInt(16)},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	loop = loop.AddZeroLowerBounds()

	idx, _ := numeric.NewDense(1, 1)
	_ = idx.Set(0, 0, numeric.RatInt(1))
	offsets := []*big.Rat{new(big.Rat)}

	a0, _ := address.New(0, loop, address.Store, idx, offsets, nil)
	a1, _ := address.New(1, loop, address.Store, idx, offsets, nil)
	a2, _ := address.New(2, loop, address.Load, idx, offsets, nil)

	reg := dependence.NewRegistry()
	id01 := reg.Add(&dependence.Edge{Forward: true})
	id12 := reg.Add(&dependence.Edge{Forward: true})
	_ = reg.Satisfy(id01, 0)
	_ = reg.Satisfy(id12, 0)
	a0.EdgeOut, a1.EdgeIn = id01, id01
	a1.EdgeOut, a2.EdgeIn = id12, id12

	g := rebuild.BuildBodyGraph([]*address.Address{a0, a1, a2}, reg, 0)
	order, err := rebuild.TopologicalSort(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(order)

	// Output:
	// [0 1 2]
}
