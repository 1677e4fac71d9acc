package loopnest

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

// simpleLoop builds `for i in 0..N { }` as [1|N|i]: N - i >= 0 and i >= 0.
func simpleLoop(t *testing.T) *AffineLoop {
	t.Helper()
	l, err := NewAffineLoop([]string{"N"}, 1, [][]*big.Rat{
		row(0, 1, -1), // N - i >= 0
	})
	require.NoError(t, err)

	return l.AddZeroLowerBounds()
}

func TestNewAffineLoop_BadShape(t *testing.T) {
	_, err := NewAffineLoop([]string{"N"}, 1, [][]*big.Rat{row(0, 1)})
	require.ErrorIs(t, err, numeric.ErrBadShape)
}

func TestFromBackedgeCounts(t *testing.T) {
	l, err := FromBackedgeCounts([]string{"N"}, [][]*big.Rat{row(0, 1)})
	require.NoError(t, err)
	require.Equal(t, 1, l.NumLoops())
}

func TestFromBackedgeCounts_NonAffine(t *testing.T) {
	_, err := FromBackedgeCounts([]string{"N"}, [][]*big.Rat{nil})
	require.ErrorIs(t, err, ErrNonAffine)
}

func TestAddZeroLowerBounds(t *testing.T) {
	l := simpleLoop(t)
	require.Len(t, l.Rows(), 2)
}

func TestRotate_Identity(t *testing.T) {
	l := simpleLoop(t)
	identity := [][]*big.Rat{row(1)}
	rotated, err := l.Rotate(identity)
	require.NoError(t, err)
	require.Equal(t, l.Rows(), rotated.Rows())
}

func TestRotate_BadShape(t *testing.T) {
	l := simpleLoop(t)
	_, err := l.Rotate([][]*big.Rat{row(1), row(1)})
	require.ErrorIs(t, err, ErrBadRotation)
}

func TestRemoveInnerMost(t *testing.T) {
	l := simpleLoop(t)
	out, err := l.RemoveInnerMost()
	require.NoError(t, err)
	require.Equal(t, 0, out.NumLoops())
}

func TestPeelOuter_Zero(t *testing.T) {
	l := simpleLoop(t)
	out, err := l.PeelOuter(0)
	require.NoError(t, err)
	require.Equal(t, l.NumLoops(), out.NumLoops())
}

func TestPeelOuter_All(t *testing.T) {
	l := simpleLoop(t)
	out, err := l.PeelOuter(1)
	require.NoError(t, err)
	require.Equal(t, 0, out.NumLoops())
	require.Len(t, out.Symbols(), 2)
}

func TestRemoveLoop(t *testing.T) {
	l := simpleLoop(t)
	out, err := l.RemoveLoop(0)
	require.NoError(t, err)
	require.Equal(t, 0, out.NumLoops())
}

func TestPruneBounds_RemovesRedundant(t *testing.T) {
	// i >= 0 twice: the duplicate is redundant.
	l, err := NewAffineLoop(nil, 1, [][]*big.Rat{row(0, 1), row(0, 1)})
	require.NoError(t, err)
	out, err := l.PruneBounds()
	require.NoError(t, err)
	require.Len(t, out.Rows(), 1)
}

func TestPrintBound(t *testing.T) {
	l := simpleLoop(t)
	s, err := l.PrintBound(0, -1)
	require.NoError(t, err)
	require.Contains(t, s, "i_0")
}

func TestPrintBound_InvalidIndex(t *testing.T) {
	l := simpleLoop(t)
	_, err := l.PrintBound(5, 1)
	require.ErrorIs(t, err, ErrInvalidLoopIndex)
}
