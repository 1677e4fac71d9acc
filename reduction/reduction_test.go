package reduction

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/arena"
	"github.com/arevlabs/polysched/dependence"
	"github.com/arevlabs/polysched/loopnest"
	"github.com/arevlabs/polysched/numeric"
)

func loop1(t *testing.T) *loopnest.AffineLoop {
	t.Helper()
	rows := [][]*big.Rat{{new(big.Rat), numeric.RatInt(-1), numeric.RatInt(16)}}
	l, err := loopnest.NewAffineLoop([]string{"N"}, 1, rows)
	require.NoError(t, err)

	return l.AddZeroLowerBounds()
}

func addr1(t *testing.T, l *loopnest.AffineLoop, kind address.Kind, stored int64) *address.Address {
	t.Helper()
	idx, err := numeric.NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, idx.Set(0, 0, numeric.RatInt(1)))
	a, err := address.New(1, l, kind, idx, []*big.Rat{new(big.Rat)}, nil)
	require.NoError(t, err)
	a.StoredValue = stored

	return a
}

func TestReaches_DirectHop(t *testing.T) {
	require.Equal(t, 1, reaches(Chain{}, 5, 5))
}

func TestReaches_ThroughChain(t *testing.T) {
	chain := Chain{
		10: {Op: OpAdd, Operands: []int64{20, 5}},
	}
	require.Equal(t, 1, reaches(chain, 10, 5))
	require.Equal(t, 0, reaches(chain, 10, 99))
}

func TestDetect_FindsFmaReduction(t *testing.T) {
	l := loop1(t)
	s := addr1(t, l, address.Store, 100)
	ld := addr1(t, l, address.Load, 0)

	reg := dependence.NewRegistry()
	edgeID := reg.Add(&dependence.Edge{Forward: true})
	require.NoError(t, reg.Satisfy(edgeID, 1))
	e, err := reg.Get(edgeID)
	require.NoError(t, err)
	e.RevTimeEdge = arena.ID(1)

	s.EdgeOut = edgeID
	ld.EdgeIn = edgeID

	chain := Chain{100: {Op: OpFMA, Operands: []int64{200, 300, 50}}}
	valueOf := func(a *address.Address) int64 {
		if a == ld {
			return 50
		}

		return a.StoredValue
	}

	pairs := Detect([]*address.Address{s}, []*address.Address{ld}, reg, chain, valueOf)
	require.Len(t, pairs, 1)
	require.Equal(t, s, pairs[0].Store)
	require.Equal(t, ld, pairs[0].Load)
	require.Equal(t, ld, s.ReassociableReduction())
	require.Equal(t, s, ld.ReassociableReduction())
}

func TestDetect_NoPairWithoutTimeEdge(t *testing.T) {
	l := loop1(t)
	s := addr1(t, l, address.Store, 100)
	ld := addr1(t, l, address.Load, 0)

	reg := dependence.NewRegistry()
	edgeID := reg.Add(&dependence.Edge{Forward: true})
	s.EdgeOut = edgeID
	ld.EdgeIn = edgeID

	chain := Chain{}
	valueOf := func(a *address.Address) int64 { return a.StoredValue }

	pairs := Detect([]*address.Address{s}, []*address.Address{ld}, reg, chain, valueOf)
	require.Empty(t, pairs)
}
