package symbolic

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arevlabs/polysched/numeric"
)

func row(vals ...int64) []*big.Rat {
	out := make([]*big.Rat, len(vals))
	for i, v := range vals {
		out[i] = numeric.RatInt(v)
	}

	return out
}

// buildXGeqZero builds the polyhedron { [1,x] : x >= 0 } in layout [1 | x].
func buildXGeqZero(t *testing.T) *Comparator {
	t.Helper()
	a, err := numeric.NewDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 1, numeric.RatInt(1)))
	cmp, err := NewComparator(a, nil)
	require.NoError(t, err)

	return cmp
}

func TestComparator_GreaterEqual_Trivial(t *testing.T) {
	cmp := buildXGeqZero(t)
	// q = [0, 1] means "x >= 0", which is exactly the defining row.
	require.True(t, cmp.GreaterEqual(row(0, 1)))
}

func TestComparator_GreaterEqual_NotProvable(t *testing.T) {
	cmp := buildXGeqZero(t)
	// "x <= 0" i.e. q = [0,-1] is not a Farkas consequence of x >= 0.
	require.False(t, cmp.GreaterEqual(row(0, -1)))
}

func TestComparator_Equal(t *testing.T) {
	// Polyhedron with equality x = 0: A is a single all-zero (trivially
	// true) row, E = [0,1].
	a, err := numeric.NewDense(1, 2)
	require.NoError(t, err)
	e, err := numeric.NewDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, e.Set(0, 1, numeric.RatInt(1)))

	cmp, err := NewComparator(a, e)
	require.NoError(t, err)
	require.True(t, cmp.Equal(row(0, 1)))
}

func TestComparator_IsEmpty_Feasible(t *testing.T) {
	cmp := buildXGeqZero(t)
	require.False(t, cmp.IsEmpty())
}

func TestComparator_IsEmpty_Infeasible(t *testing.T) {
	// x >= 0 and x <= -1 (i.e. -x - 1 >= 0) together are empty.
	a, err := numeric.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 1, numeric.RatInt(1)))
	require.NoError(t, a.Set(1, 0, numeric.RatInt(-1)))
	require.NoError(t, a.Set(1, 1, numeric.RatInt(-1)))

	cmp, err := NewComparator(a, nil)
	require.NoError(t, err)
	require.True(t, cmp.IsEmpty())
}

func TestNewComparator_EmptyRejected(t *testing.T) {
	a, err := numeric.NewDense(1, 1)
	require.NoError(t, err)
	_ = a
	_, err = NewComparator(mustMatrix(t, 1, 0), nil)
	require.Error(t, err)
}

func mustMatrix(t *testing.T, rows, cols int) numeric.Matrix {
	t.Helper()
	if cols == 0 {
		// NewDense rejects zero columns outright, so wrap a one-column
		// Dense in a stand-in that reports zero columns; NewComparator
		// checks Cols()==0 before touching rows.
		d, err := numeric.NewDense(rows, 1)
		require.NoError(t, err)

		return &zeroColMatrix{d}
	}
	d, err := numeric.NewDense(rows, cols)
	require.NoError(t, err)

	return d
}

// zeroColMatrix wraps a Dense and reports zero columns, letting the test
// exercise NewComparator's empty-polyhedron guard without requiring
// numeric.NewDense to accept a zero-column shape.
type zeroColMatrix struct {
	*numeric.Dense
}

func (z *zeroColMatrix) Cols() int { return 0 }
