// Package ops provides advanced linear-algebra operations for the
// polysched/numeric package.
// OrthogonalNullSpace computes an orthogonal basis for the null space of a
// matrix via rational row-echelon kernel extraction followed by a
// Gram-Schmidt pass (replacing the teacher's Householder-QR
// orthogonalization, adapted from float64 reflections to exact rational
// projections since the result must be Farkas-verifiable).
// dependence.Build passes the transposed joint index matrix Jᵀ, so the
// result is J's left null space — the "time" dimensions spec §4.4 folds
// into the dependence polyhedron.
package ops

import (
	"fmt"
	"math/big"

	"github.com/arevlabs/polysched/numeric"
)

// OrthogonalNullSpace returns N, a t×n matrix whose rows form an
// orthogonal (not necessarily orthonormal) basis of { v ∈ Qⁿ : j·v = 0 },
// where j is m×n (as called from dependence.Build: m = r array axes,
// n = d_x+d_y stacked loop dims of the transposed joint index matrix).
// t = n - rank(j); when that is 0 the result is a single all-zero 1×n row.
//
// Blueprint:
//
//	Stage 1 (Validate): reject an empty matrix.
//	Stage 2 (Execute): row-reduce j to RREF, tracking pivot columns.
//	Stage 3 (Execute): for every free column, build one kernel basis
//	  vector by back-substituting the pivot rows.
//	Stage 4 (Execute): Gram-Schmidt orthogonalize the kernel basis.
//	Stage 5 (Finalize): assemble the t×n result matrix.
//
// Complexity: O(m²n) for RREF, O(t²n) for Gram-Schmidt.
func OrthogonalNullSpace(j numeric.Matrix) (numeric.Matrix, error) {
	// Stage 1: validate
	rows, cols := j.Rows(), j.Cols()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("OrthogonalNullSpace: empty matrix: %w", numeric.ErrBadShape)
	}

	// Stage 2: RREF with pivot tracking
	work := make([][]*big.Rat, rows)
	for i := 0; i < rows; i++ {
		row, err := rowOf(j, i)
		if err != nil {
			return nil, fmt.Errorf("OrthogonalNullSpace: %w", err)
		}
		work[i] = row
	}
	pivotCol := make([]int, 0, rows) // pivotCol[r] = column of row r's pivot
	pivotOfCol := make(map[int]int)  // column -> pivot row index
	pr := 0
	for col := 0; col < cols && pr < rows; col++ {
		best := -1
		for r := pr; r < rows; r++ {
			if work[r][col].Sign() != 0 {
				best = r
				break
			}
		}
		if best == -1 {
			continue
		}
		work[pr], work[best] = work[best], work[pr]
		pivot := work[pr][col]
		for c := 0; c < cols; c++ {
			work[pr][c] = new(big.Rat).Quo(work[pr][c], pivot)
		}
		for r := 0; r < rows; r++ {
			if r == pr || work[r][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(work[r][col])
			for c := 0; c < cols; c++ {
				work[r][c] = new(big.Rat).Sub(work[r][c], new(big.Rat).Mul(factor, work[pr][c]))
			}
		}
		pivotCol = append(pivotCol, col)
		pivotOfCol[col] = pr
		pr++
	}
	rank := pr

	// Stage 3: one kernel basis vector per free column
	isPivot := make([]bool, cols)
	for _, c := range pivotCol {
		isPivot[c] = true
	}
	var basis [][]*big.Rat
	for free := 0; free < cols; free++ {
		if isPivot[free] {
			continue
		}
		v := make([]*big.Rat, cols)
		for c := range v {
			v[c] = new(big.Rat)
		}
		v[free].SetInt64(1)
		for _, pc := range pivotCol {
			r := pivotOfCol[pc]
			// pivot variable = -coefficient of the free column in its row
			v[pc] = new(big.Rat).Neg(work[r][free])
		}
		basis = append(basis, v)
	}

	// Stage 4: Gram-Schmidt orthogonalization over Q (exact rationals)
	ortho := make([][]*big.Rat, 0, len(basis))
	for _, v := range basis {
		w := append([]*big.Rat(nil), v...)
		for _, u := range ortho {
			w = subtractProjection(w, u)
		}
		if !allZero(w) {
			ortho = append(ortho, w)
		}
	}

	// Stage 5: assemble result
	t := len(ortho)
	if t == 0 {
		// Full column rank: null space is trivial. numeric.NewDense cannot
		// build a 0-row matrix, so return a single all-zero row.
		return numeric.NewDense(1, cols)
	}
	out, err := numeric.NewDense(t, cols)
	if err != nil {
		return nil, fmt.Errorf("OrthogonalNullSpace: %w", err)
	}
	for i, row := range ortho {
		for c, v := range row {
			_ = out.Set(i, c, v)
		}
	}
	_ = rank // rank is implied by t = cols - rank; exposed via t itself

	return out, nil
}

// NullStep returns ||v||² for a null-space row vector, the "null step"
// granularity spec §4.4 records per time dimension.
func NullStep(v []*big.Rat) *big.Rat {
	sum := new(big.Rat)
	for _, x := range v {
		sum.Add(sum, new(big.Rat).Mul(x, x))
	}

	return sum
}

func dot(a, b []*big.Rat) *big.Rat {
	sum := new(big.Rat)
	for i := range a {
		sum.Add(sum, new(big.Rat).Mul(a[i], b[i]))
	}

	return sum
}

// subtractProjection returns w minus its projection onto u.
func subtractProjection(w, u []*big.Rat) []*big.Rat {
	uu := dot(u, u)
	if uu.Sign() == 0 {
		return w
	}
	coef := new(big.Rat).Quo(dot(w, u), uu)
	out := make([]*big.Rat, len(w))
	for i := range w {
		out[i] = new(big.Rat).Sub(w[i], new(big.Rat).Mul(coef, u[i]))
	}

	return out
}

func allZero(v []*big.Rat) bool {
	for _, x := range v {
		if x.Sign() != 0 {
			return false
		}
	}

	return true
}
