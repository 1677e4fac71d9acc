// Package ops provides advanced linear-algebra operations for the
// polysched/numeric package: Hermite normal form, scaled inverse, and
// orthogonal null-space extraction over exact rationals.
package ops

import (
	"fmt"
	"math/big"

	"github.com/arevlabs/polysched/numeric"
)

// HermiteNormalForm row-reduces A (m×n, integer-valued rational entries)
// via elementary integer row combinations into column Hermite form H, and
// returns rank(A). Spec §4.1 calls this "compute U·A = [H; 0] in column
// Hermite form once"; every caller here only needs H and the rank, so the
// transform U itself is not materialized.
//
// Blueprint:
//
//	Stage 1 (Validate): reject an empty matrix.
//	Stage 2 (Prepare): copy A into a working row-major rational buffer.
//	Stage 3 (Execute): for each pivot column, repeatedly apply Euclid's
//	  algorithm across the rows at or below the current pivot row until
//	  at most one non-zero entry survives in that column, then advance.
//	Stage 4 (Finalize): count non-zero pivot rows as the rank and return H.
//
// Complexity: O(m²·n) row operations in the worst case, O(m*n) memory.
func HermiteNormalForm(a numeric.Matrix) (h numeric.Matrix, rank int, err error) {
	// Stage 1: validate
	rows, cols := a.Rows(), a.Cols()
	if rows == 0 || cols == 0 {
		return nil, 0, fmt.Errorf("HermiteNormalForm: empty matrix: %w", numeric.ErrBadShape)
	}

	// Stage 2: working copy as []*big.Rat rows
	work := make([][]*big.Rat, rows)
	for i := 0; i < rows; i++ {
		row, rowErr := rowOf(a, i)
		if rowErr != nil {
			return nil, 0, fmt.Errorf("HermiteNormalForm: %w", rowErr)
		}
		work[i] = row
	}

	// Stage 3: column-by-column Euclidean elimination
	pivotRow := 0
	for col := 0; col < cols && pivotRow < rows; col++ {
		for {
			// Find the row (from pivotRow down) with the smallest
			// non-zero |value| in this column; that row becomes the
			// Euclidean divisor for everything below it.
			best := -1
			for r := pivotRow; r < rows; r++ {
				if work[r][col].Sign() == 0 {
					continue
				}
				if best == -1 || absLess(work[r][col], work[best][col]) {
					best = r
				}
			}
			if best == -1 {
				break // column is already all-zero from pivotRow down
			}
			work[pivotRow], work[best] = work[best], work[pivotRow]

			reduced := false
			for r := pivotRow + 1; r < rows; r++ {
				if work[r][col].Sign() == 0 {
					continue
				}
				q := floorDiv(work[r][col], work[pivotRow][col])
				if q.Sign() == 0 {
					continue
				}
				subtractScaledRow(work[r], work[pivotRow], q)
				reduced = true
			}
			if !reduced {
				break
			}
		}
		if work[pivotRow][col].Sign() != 0 {
			pivotRow++
		}
	}

	// Stage 4: assemble result and rank
	out, allocErr := numeric.NewDense(rows, cols)
	if allocErr != nil {
		return nil, 0, fmt.Errorf("HermiteNormalForm: %w", allocErr)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			_ = out.Set(i, j, work[i][j])
		}
	}

	return out, pivotRow, nil
}

// rowOf pulls a full row of a into a fresh []*big.Rat slice.
func rowOf(a numeric.Matrix, i int) ([]*big.Rat, error) {
	cols := a.Cols()
	row := make([]*big.Rat, cols)
	for j := 0; j < cols; j++ {
		v, err := a.At(i, j)
		if err != nil {
			return nil, err
		}
		row[j] = v
	}

	return row, nil
}

// absLess reports whether |a| < |b| for two rationals.
func absLess(a, b *big.Rat) bool {
	aa := new(big.Rat).Abs(a)
	bb := new(big.Rat).Abs(b)

	return aa.Cmp(bb) < 0
}

// floorDiv returns floor(a/b) as a *big.Rat holding an integer value.
func floorDiv(a, b *big.Rat) *big.Rat {
	q := new(big.Rat).Quo(a, b)
	num := new(big.Int).Quo(q.Num(), q.Denom())
	rem := new(big.Int).Rem(q.Num(), q.Denom())
	if rem.Sign() != 0 && (q.Num().Sign() < 0) != (q.Denom().Sign() < 0) {
		num.Sub(num, big.NewInt(1))
	}

	return new(big.Rat).SetInt(num)
}

// subtractScaledRow performs row -= q*pivot in place.
func subtractScaledRow(row, pivot []*big.Rat, q *big.Rat) {
	for j := range row {
		scaled := new(big.Rat).Mul(q, pivot[j])
		row[j] = new(big.Rat).Sub(row[j], scaled)
	}
}
