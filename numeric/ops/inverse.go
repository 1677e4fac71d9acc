// Package ops provides advanced linear-algebra operations for the
// polysched/numeric package.
// ScaledInverse computes the inverse of a square integer matrix via
// Gauss-Jordan elimination over exact rationals, then rescales every
// entry by the least common denominator so the result can be carried as
// an integer matrix plus a single denominator — exactly the
// `scaledInverse(M) -> (M⁻¹_scaled, denom)` contract spec §6 hands the
// scheduler core (used by §4.9 to rotate each Address by ϕ⁻¹).
package ops

import (
	"fmt"
	"math/big"

	"github.com/arevlabs/polysched/numeric"
)

// ScaledInverse returns (scaled, denom) such that scaled = denom · M⁻¹,
// where every entry of scaled is an integer-valued *big.Rat. Returns
// numeric.ErrSingular if M is not invertible.
//
// Blueprint:
//
//	Stage 1 (Validate): ensure m is square.
//	Stage 2 (Prepare): build an augmented [M | I] working copy.
//	Stage 3 (Execute): Gauss-Jordan reduce the left block to identity,
//	  carrying the right block to M⁻¹ (replaces the teacher's
//	  LU-then-substitute two-pass scheme with a single augmented pass,
//	  which is the more common route once pivoting must search for a
//	  non-zero entry rather than assume one, as exact-rational pivots do).
//	Stage 4 (Execute): find the LCM of every entry's denominator and
//	  rescale the whole matrix by it.
//	Stage 5 (Finalize): return the integer-valued scaled matrix and denom.
//
// Complexity: O(n³) time, O(n²) memory, where n = m.Rows().
func ScaledInverse(m numeric.Matrix) (numeric.Matrix, *big.Int, error) {
	// Stage 1: validate
	rows, cols := m.Rows(), m.Cols()
	if rows != cols {
		return nil, nil, fmt.Errorf("ScaledInverse: non-square %dx%d: %w", rows, cols, numeric.ErrNonSquare)
	}
	n := rows

	// Stage 2: augmented [M | I]
	aug := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		row := make([]*big.Rat, 2*n)
		src, err := rowOf(m, i)
		if err != nil {
			return nil, nil, fmt.Errorf("ScaledInverse: %w", err)
		}
		copy(row, src)
		for j := 0; j < n; j++ {
			row[n+j] = new(big.Rat)
		}
		row[n+i].SetInt64(1)
		aug[i] = row
	}

	// Stage 3: Gauss-Jordan elimination
	for col := 0; col < n; col++ {
		pivotRow := -1
		for r := col; r < n; r++ {
			if aug[r][col].Sign() != 0 {
				pivotRow = r
				break
			}
		}
		if pivotRow == -1 {
			return nil, nil, fmt.Errorf("ScaledInverse: zero pivot at column %d: %w", col, numeric.ErrSingular)
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		pivot := aug[col][col]
		for c := 0; c < 2*n; c++ {
			aug[col][c] = new(big.Rat).Quo(aug[col][c], pivot)
		}
		for r := 0; r < n; r++ {
			if r == col || aug[r][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(aug[r][col])
			for c := 0; c < 2*n; c++ {
				aug[r][c] = new(big.Rat).Sub(aug[r][c], new(big.Rat).Mul(factor, aug[col][c]))
			}
		}
	}

	// Stage 4: find common denominator across the right (inverse) block
	denom := big.NewInt(1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			denom = lcmBig(denom, aug[i][n+j].Denom())
		}
	}

	// Stage 5: scale and assemble
	out, err := numeric.NewDense(n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("ScaledInverse: %w", err)
	}
	denomRat := new(big.Rat).SetInt(denom)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			scaled := new(big.Rat).Mul(aug[i][n+j], denomRat)
			_ = out.Set(i, j, scaled)
		}
	}

	return out, denom, nil
}

func lcmBig(a, b *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int).Set(b)
	}
	if b.Sign() == 0 {
		return new(big.Int).Set(a)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	out := new(big.Int).Div(a, g)
	out.Mul(out, b)

	return out.Abs(out)
}
