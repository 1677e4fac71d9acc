package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arevlabs/polysched/numeric"
)

func TestScaledInverse_NonSquare(t *testing.T) {
	m, err := numeric.NewDense(2, 3)
	require.NoError(t, err)
	_, _, err = ScaledInverse(m)
	require.ErrorIs(t, err, numeric.ErrNonSquare)
}

func TestScaledInverse_Singular(t *testing.T) {
	m, err := numeric.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, numeric.RatInt(1)))
	require.NoError(t, m.Set(0, 1, numeric.RatInt(2)))
	require.NoError(t, m.Set(1, 0, numeric.RatInt(2)))
	require.NoError(t, m.Set(1, 1, numeric.RatInt(4)))

	_, _, err = ScaledInverse(m)
	require.ErrorIs(t, err, numeric.ErrSingular)
}

func TestScaledInverse_Identity(t *testing.T) {
	m, err := numeric.Identity(2)
	require.NoError(t, err)

	scaled, denom, err := ScaledInverse(m)
	require.NoError(t, err)
	require.Equal(t, int64(1), denom.Int64())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, err := scaled.At(i, j)
			require.NoError(t, err)
			if i == j {
				require.Equal(t, numeric.RatInt(1), v)
			} else {
				require.True(t, numeric.IsZero(v))
			}
		}
	}
}

func TestScaledInverse_TwoByTwo(t *testing.T) {
	// [[2,0],[0,2]]^-1 = [[0.5,0],[0,0.5]] -> scaled by denom=2 -> identity*1
	m, err := numeric.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, numeric.RatInt(2)))
	require.NoError(t, m.Set(1, 1, numeric.RatInt(2)))

	scaled, denom, err := ScaledInverse(m)
	require.NoError(t, err)
	require.Equal(t, int64(2), denom.Int64())
	v, err := scaled.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, numeric.RatInt(1), v)
}
