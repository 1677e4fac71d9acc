package pipeline

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/dependence"
	"github.com/arevlabs/polysched/loopnest"
	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/schednode"
	"github.com/arevlabs/polysched/scheduler"
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

func newNode(t *testing.T, n int, base address.BaseHandle, kind address.Kind) *schednode.Node {
	t.Helper()
	loop := loopOfDepth(t, n)
	idx := identity(t, n)
	offsets := make([]*big.Rat, n)
	for i := range offsets {
		offsets[i] = new(big.Rat)
	}
	store, err := address.New(base, loop, kind, idx, offsets, nil)
	require.NoError(t, err)

	return schednode.New(store, loop)
}

func TestRun_NoNodes(t *testing.T) {
	_, err := Run(nil, dependence.NewRegistry(), nil, nil, nil)
	require.ErrorIs(t, err, ErrNoNodes)
}

func TestRun_NoEdges(t *testing.T) {
	n1 := newNode(t, 1, 1, address.Store)
	n2 := newNode(t, 1, 2, address.Store)

	res, err := Run([]*schednode.Node{n1, n2}, dependence.NewRegistry(), nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, scheduler.Independent, res.Schedule)
	require.NotNil(t, res.Tree)
	require.NotEmpty(t, res.Loops)
	for _, lr := range res.Loops {
		require.NotNil(t, lr.Rebuilt)
		require.NotNil(t, lr.Simplified)
	}
}

func TestRun_WithEdge(t *testing.T) {
	n1 := newNode(t, 1, 1, address.Store)
	n2 := newNode(t, 1, 1, address.Store)

	reg := dependence.NewRegistry()
	poly, err := dependence.Build(n1.Store, n2.Store)
	require.NoError(t, err)
	fp, err := dependence.BuildFarkas(poly)
	require.NoError(t, err)
	id := reg.Add(&dependence.Edge{InAddr: 1, OutAddr: 2, Forward: true, Tableaus: fp})
	n1.Store.EdgeOut = id
	n2.Store.EdgeIn = id

	res, err := Run([]*schednode.Node{n1, n2}, reg, []scheduler.EdgeRef{{From: 0, To: 1, ID: id}}, nil, nil)
	require.NoError(t, err)
	require.NotEqual(t, scheduler.Failure, res.Schedule)
}

func TestRun_RespectsMaxDepthCap(t *testing.T) {
	n1 := newNode(t, 2, 1, address.Store)

	res, err := Run([]*schednode.Node{n1}, dependence.NewRegistry(), nil, nil, nil, WithMaxDepth(1))
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, 1, n1.Rank)
}

func TestWithMaxDepth_PanicsOnNegative(t *testing.T) {
	require.Panics(t, func() { WithMaxDepth(-1) })
}

func TestRun_ReductionDetectionDisabledSkipsChain(t *testing.T) {
	n1 := newNode(t, 1, 1, address.Store)
	n2 := newNode(t, 1, 2, address.Load)

	res, err := Run([]*schednode.Node{n1, n2}, dependence.NewRegistry(), nil, nil, nil, WithReductionDetection(false))
	require.NoError(t, err)
	require.Empty(t, res.Reductions)
}
