package scheduler

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/arena"
	"github.com/arevlabs/polysched/dependence"
	"github.com/arevlabs/polysched/loopnest"
	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/schednode"
)

func loopOfDepth(t *testing.T, n int) *loopnest.AffineLoop {
	t.Helper()
	rows := make([][]*big.Rat, 0, n)
	for i := 0; i < n; i++ {
		row := make([]*big.Rat, n+2)
		for j := range row {
			row[j] = new(big.Rat)
		}
		row[1+i] = numeric.RatInt(-1)
		row[n+1] = numeric.RatInt(16)
		rows = append(rows, row)
	}
	l, err := loopnest.NewAffineLoop([]string{"N"}, n, rows)
	require.NoError(t, err)

	return l.AddZeroLowerBounds()
}

func identity(t *testing.T, n int) numeric.Matrix {
	t.Helper()
	m, err := numeric.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, m.Set(i, i, numeric.RatInt(1)))
	}

	return m
}

func newNode(t *testing.T, n int) *schednode.Node {
	t.Helper()
	loop := loopOfDepth(t, n)
	idx := identity(t, n)
	offsets := make([]*big.Rat, n)
	for i := range offsets {
		offsets[i] = new(big.Rat)
	}
	store, err := address.New(1, loop, address.Store, idx, offsets, nil)
	require.NoError(t, err)

	return schednode.New(store, loop)
}

func TestGraph_Schedule_NoEdges(t *testing.T) {
	n1 := newNode(t, 1)
	n2 := newNode(t, 1)
	g := NewGraph([]*schednode.Node{n1, n2}, dependence.NewRegistry(), nil)

	res, err := g.Schedule()
	require.NoError(t, err)
	require.Equal(t, Independent, res)
	require.True(t, n1.FullyScheduled())
	require.True(t, n2.FullyScheduled())
}

func TestGraph_Schedule_WithEdge(t *testing.T) {
	n1 := newNode(t, 1)
	n2 := newNode(t, 1)

	reg := dependence.NewRegistry()
	poly, err := dependence.Build(n1.Store, n2.Store)
	require.NoError(t, err)
	fp, err := dependence.BuildFarkas(poly)
	require.NoError(t, err)
	id := reg.Add(&dependence.Edge{InAddr: 1, OutAddr: 2, Forward: true, Tableaus: fp})

	g := NewGraph([]*schednode.Node{n1, n2}, reg, []EdgeRef{{From: 0, To: 1, ID: id}})
	res, err := g.Schedule()
	require.NoError(t, err)
	require.NotEqual(t, Failure, res)
}

func TestResult_AndOr(t *testing.T) {
	require.Equal(t, Failure, Failure.And(Independent))
	require.Equal(t, Independent, Failure.Or(Independent))
	require.Equal(t, "Dependent", Dependent.String())
}

func TestAdjacency_SCCs(t *testing.T) {
	g := newAdjacency(3)
	g.addEdge(0, 1)
	g.addEdge(1, 0)
	g.addEdge(1, 2)

	comps := g.sccs()
	require.Len(t, comps, 2)

	var sawPair, sawSingle bool
	for _, c := range comps {
		if len(c) == 2 {
			sawPair = true
		}
		if len(c) == 1 {
			sawSingle = true
		}
	}
	require.True(t, sawPair)
	require.True(t, sawSingle)
}

func TestEdgeRef_Fields(t *testing.T) {
	ref := EdgeRef{From: 0, To: 1, ID: arena.ID(0)}
	require.Equal(t, 0, ref.From)
	require.Equal(t, 1, ref.To)
}
