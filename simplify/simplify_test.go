package simplify

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/loopnest"
	"github.com/arevlabs/polysched/numeric"
)

func loop(t *testing.T) *loopnest.AffineLoop {
	t.Helper()
	rows := [][]*big.Rat{{new(big.Rat), numeric.RatInt(-1), numeric.RatInt(16)}}
	l, err := loopnest.NewAffineLoop([]string{"N"}, 1, rows)
	require.NoError(t, err)

	return l.AddZeroLowerBounds()
}

func addr(t *testing.T, l *loopnest.AffineLoop, base address.BaseHandle, kind address.Kind, stored int64) *address.Address {
	t.Helper()
	idx, err := numeric.NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, idx.Set(0, 0, numeric.RatInt(1)))
	a, err := address.New(base, l, kind, idx, []*big.Rat{new(big.Rat)}, nil)
	require.NoError(t, err)
	a.StoredValue = stored

	return a
}

func TestSimplify_StoreStoreDropsFirst(t *testing.T) {
	l := loop(t)
	s1 := addr(t, l, 1, address.Store, 10)
	s2 := addr(t, l, 1, address.Store, 20)

	res, err := Simplify([]*address.Address{s1, s2})
	require.NoError(t, err)
	require.True(t, s1.IsDropped())
	require.False(t, s2.IsDropped())
	require.Contains(t, res.Dropped, s1)
}

func TestSimplify_StoreLoadForwards(t *testing.T) {
	l := loop(t)
	s := addr(t, l, 1, address.Store, 10)
	ld := addr(t, l, 1, address.Load, 99)

	res, err := Simplify([]*address.Address{s, ld})
	require.NoError(t, err)
	require.True(t, ld.IsDropped())
	require.Equal(t, int64(10), res.Forwards[99])
}

func TestSimplify_LoadLoadDropsSecond(t *testing.T) {
	l := loop(t)
	ld1 := addr(t, l, 1, address.Load, 1)
	ld2 := addr(t, l, 1, address.Load, 2)

	res, err := Simplify([]*address.Address{ld1, ld2})
	require.NoError(t, err)
	require.False(t, ld1.IsDropped())
	require.True(t, ld2.IsDropped())
	require.Equal(t, int64(1), res.Forwards[2])
}

func TestSimplify_LoadStoreNoChange(t *testing.T) {
	l := loop(t)
	ld := addr(t, l, 1, address.Load, 1)
	s := addr(t, l, 1, address.Store, 2)

	res, err := Simplify([]*address.Address{ld, s})
	require.NoError(t, err)
	require.False(t, ld.IsDropped())
	require.False(t, s.IsDropped())
	require.Empty(t, res.Dropped)
}

func TestSimplify_EliminatesDeadTemporary(t *testing.T) {
	l := loop(t)
	s := addr(t, l, 7, address.Store, 1)

	res, err := Simplify([]*address.Address{s})
	require.NoError(t, err)
	require.True(t, s.IsDropped())
	require.Contains(t, res.EraseCandidates, address.BaseHandle(7))
}

func TestSimplify_KeepsStoreWithLiveLoad(t *testing.T) {
	l := loop(t)
	s := addr(t, l, 7, address.Store, 1)
	other, err := numeric.NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, other.Set(0, 0, numeric.RatInt(2)))
	ld, err := address.New(7, l, address.Load, other, []*big.Rat{numeric.RatInt(5)}, nil)
	require.NoError(t, err)

	res, err := Simplify([]*address.Address{s, ld})
	require.NoError(t, err)
	require.False(t, s.IsDropped())
	require.Empty(t, res.EraseCandidates)
}
