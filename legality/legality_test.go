package legality

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

func mkLoop(t *testing.T) *loopnest.AffineLoop {
	t.Helper()
	rows := [][]*big.Rat{{new(big.Rat), numeric.RatInt(-1), numeric.RatInt(16)}}
	l, err := loopnest.NewAffineLoop([]string{"N"}, 1, rows)
	require.NoError(t, err)

	return l.AddZeroLowerBounds()
}

func mkAddr(t *testing.T, l *loopnest.AffineLoop, kind address.Kind) *address.Address {
	t.Helper()
	idx, err := numeric.NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, idx.Set(0, 0, numeric.RatInt(1)))
	a, err := address.New(1, l, kind, idx, []*big.Rat{new(big.Rat)}, nil)
	require.NoError(t, err)

	return a
}

func TestAnnotate_NilRegistry(t *testing.T) {
	_, err := Annotate(nil, nil, 0)
	require.ErrorIs(t, err, ErrNilRegistry)
}

func TestAnnotate_UnorderedReduction(t *testing.T) {
	l := mkLoop(t)
	s := mkAddr(t, l, address.Store)
	ld := mkAddr(t, l, address.Load)
	s.SetReassociableReduction(ld)
	ld.SetReassociableReduction(s)

	reg := dependence.NewRegistry()
	id := reg.Add(&dependence.Edge{})
	require.NoError(t, reg.Satisfy(id, 0))
	s.EdgeOut, ld.EdgeIn = id, id

	sum, err := Annotate([]*address.Address{s, ld}, reg, 0)
	require.NoError(t, err)
	require.Equal(t, 1, sum.UnorderedReductions)
	require.Equal(t, 0, sum.OrderedReductions)
	require.True(t, sum.Reorderable)
}

func TestAnnotate_PlainDependenceFlipsReorderable(t *testing.T) {
	l := mkLoop(t)
	s := mkAddr(t, l, address.Store)
	ld := mkAddr(t, l, address.Load)

	reg := dependence.NewRegistry()
	id := reg.Add(&dependence.Edge{})
	require.NoError(t, reg.Satisfy(id, 0))
	s.EdgeOut, ld.EdgeIn = id, id

	sum, err := Annotate([]*address.Address{s, ld}, reg, 0)
	require.NoError(t, err)
	require.False(t, sum.Reorderable)
	require.Zero(t, sum.UnorderedReductions)
}

func TestAnnotate_OrderedReduction(t *testing.T) {
	l := mkLoop(t)
	s := mkAddr(t, l, address.Store)
	ld := mkAddr(t, l, address.Load)

	reg := dependence.NewRegistry()
	id := reg.Add(&dependence.Edge{})
	require.NoError(t, reg.Satisfy(id, 0))
	e, err := reg.Get(id)
	require.NoError(t, err)
	e.RevTimeEdge = arena.ID(99)
	s.EdgeOut, ld.EdgeIn = id, id

	sum, err := Annotate([]*address.Address{s, ld}, reg, 0)
	require.NoError(t, err)
	require.Equal(t, 1, sum.OrderedReductions)
	require.True(t, sum.Reorderable)
}

func TestSummary_And(t *testing.T) {
	child := Summary{Reorderable: true}
	parent := Summary{Reorderable: false}
	combined := child.And(parent)
	require.False(t, combined.Reorderable)
}

func TestSummary_String(t *testing.T) {
	s := Summary{OrderedReductions: 1, UnorderedReductions: 2, Reorderable: true}
	require.Contains(t, s.String(), "ordered=1")
}
