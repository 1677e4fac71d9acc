// Package ops provides advanced linear-algebra operations for the
// polysched/numeric package.
// Simplex implements a two-phase primal simplex over exact rationals plus
// a lexicographic-minimization driver, the `simplex.lexMin(k)` black-box
// service spec §6 names. The scheduler package uses only the Phase-I
// feasibility result.
package ops

import (
	"fmt"
	"math/big"

	"github.com/arevlabs/polysched/numeric"
)

// Status is the outcome of a simplex solve.
type Status int

const (
	// StatusOptimal indicates a finite optimum was found.
	StatusOptimal Status = iota
	// StatusInfeasible indicates the constraint system has no non-negative solution.
	StatusInfeasible
	// StatusUnbounded indicates the objective is unbounded on the feasible region.
	StatusUnbounded
)

// String renders the Status for debugging and test failure messages.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	default:
		return "Unknown"
	}
}

// Tableau holds a standard-form system A·x = b, x ≥ 0, and is reused
// across a sequence of lexicographic objectives so each stage's basis
// carries forward into the next (spec §4.7's "ω columns are then
// minimized, then ϕ" cascade).
type Tableau struct {
	a        [][]*big.Rat // m x n constraint matrix, mutated by pivoting
	b        []*big.Rat   // m right-hand sides, mutated by pivoting
	basis    []int        // basis[i] = column index basic in row i
	n        int          // number of structural variables (columns of the caller's A)
	opts     numeric.SimplexOptions
	feasible bool
}

// NewTableau builds a Tableau for A·x = b, x ≥ 0 and runs Phase I to find
// an initial basic feasible solution via artificial variables. If no
// feasible point exists, the returned Tableau has status Infeasible and
// LexMin on it always reports StatusInfeasible without pivoting further.
//
// Blueprint:
//
//	Stage 1 (Validate): dimensions of a and b must agree.
//	Stage 2 (Prepare): negate rows with b_i<0 so all b_i ≥ 0.
//	Stage 3 (Prepare): append one artificial column per row, seed the
//	  basis with the artificials.
//	Stage 4 (Execute): minimize the sum of artificials with the simplex
//	  pivot loop; Phase I succeeds iff that minimum is exactly zero.
//	Stage 5 (Finalize): drop artificial columns from the live tableau,
//	  replacing any artificial left in the basis at value 0 via a
//	  same-row pivot into a structural column when one exists.
func NewTableau(a numeric.Matrix, b []*big.Rat, opts ...numeric.SimplexOption) (*Tableau, error) {
	// Stage 1: validate
	m, n := a.Rows(), a.Cols()
	if len(b) != m {
		return nil, fmt.Errorf("NewTableau: rhs length %d != rows %d: %w", len(b), m, numeric.ErrDimensionMismatch)
	}
	so := numeric.NewSimplexOptions(opts...)

	// Stage 2/3: build [A | I_artificial] with non-negative b
	rows := make([][]*big.Rat, m)
	rhs := make([]*big.Rat, m)
	for i := 0; i < m; i++ {
		row, err := rowOf(a, i)
		if err != nil {
			return nil, fmt.Errorf("NewTableau: %w", err)
		}
		bi := new(big.Rat).Set(b[i])
		if bi.Sign() < 0 {
			for j := range row {
				row[j] = new(big.Rat).Neg(row[j])
			}
			bi.Neg(bi)
		}
		full := make([]*big.Rat, n+m)
		copy(full, row)
		for k := 0; k < m; k++ {
			full[n+k] = new(big.Rat)
		}
		full[n+i].SetInt64(1)
		rows[i] = full
		rhs[i] = bi
	}
	basis := make([]int, m)
	for i := range basis {
		basis[i] = n + i
	}

	t := &Tableau{a: rows, b: rhs, basis: basis, n: n, opts: so}

	// Stage 4: Phase I objective = minimize sum of artificial columns
	phase1Obj := make([]*big.Rat, n+m)
	for j := 0; j < n; j++ {
		phase1Obj[j] = new(big.Rat)
	}
	for j := n; j < n+m; j++ {
		phase1Obj[j] = numeric.RatInt(1)
	}
	_, status := t.minimize(phase1Obj)
	if status == StatusUnbounded {
		// Phase I is bounded below by zero by construction; an unbounded
		// report here signals a malformed tableau rather than true
		// unboundedness, treated conservatively as infeasible.
		t.feasible = false
		return t, nil
	}
	// The Phase I optimum is the total value of the artificials still
	// basic; objectiveValue only sees structural columns.
	obj := new(big.Rat)
	for i, bcol := range t.basis {
		if bcol >= n {
			obj.Add(obj, t.b[i])
		}
	}
	if obj.Sign() != 0 {
		t.feasible = false
		return t, nil
	}
	t.feasible = true

	// Stage 5: evict any artificial left basic at zero value
	for i, bcol := range t.basis {
		if bcol < n {
			continue
		}
		for j := 0; j < n; j++ {
			if t.a[i][j].Sign() != 0 {
				t.pivot(i, j)
				break
			}
		}
	}

	// Drop artificial columns now that Phase I is done; they can never
	// usefully re-enter the basis in Phase II.
	for i := range t.a {
		t.a[i] = t.a[i][:n]
	}

	return t, nil
}

// Feasible reports whether Phase I found a non-negative solution.
func (t *Tableau) Feasible() bool {
	return t.feasible
}

// LexMin minimizes the ordered list of objective row vectors lexicographically:
// objectives[0] is minimized first; its optimal value is then frozen as an
// equality constraint before objectives[1] is minimized, and so on. Each
// objective vector must have length n (the structural variable count).
// Returns the final solution vector (length n) and the terminal Status.
func (t *Tableau) LexMin(objectives [][]*big.Rat) ([]*big.Rat, Status, error) {
	if !t.feasible {
		return nil, StatusInfeasible, nil
	}
	for _, obj := range objectives {
		if len(obj) != t.n {
			return nil, StatusInfeasible, fmt.Errorf("LexMin: objective length %d != %d: %w", len(obj), t.n, numeric.ErrDimensionMismatch)
		}
	}

	for _, obj := range objectives {
		_, status := t.minimize(obj)
		if status != StatusOptimal {
			return nil, status, nil
		}
		// Freeze this level's achieved value as an equality row so the
		// next objective is minimized over the same-optimal slice,
		// the textbook lexicographic-simplex technique.
		val := t.objectiveValue(obj)
		t.freeze(obj, val)
	}

	return t.solution(), StatusOptimal, nil
}

// solution reads off the current basic feasible solution for the n
// structural variables.
func (t *Tableau) solution() []*big.Rat {
	x := make([]*big.Rat, t.n)
	for j := range x {
		x[j] = new(big.Rat)
	}
	for i, col := range t.basis {
		if col < t.n {
			x[col] = new(big.Rat).Set(t.b[i])
		}
	}

	return x
}

// objectiveValue evaluates obj·x for the current basic solution.
func (t *Tableau) objectiveValue(obj []*big.Rat) *big.Rat {
	x := t.solution()
	sum := new(big.Rat)
	for j, c := range obj {
		if j < len(x) {
			sum.Add(sum, new(big.Rat).Mul(c, x[j]))
		}
	}

	return sum
}

// freeze appends a new equality row obj·x = val and pivots it into the
// basis on a fresh slack so future pivoting cannot regress this level's
// optimum, the standard way to chain lexicographic simplex stages.
func (t *Tableau) freeze(obj []*big.Rat, val *big.Rat) {
	cols := len(t.a[0])
	newCol := cols // index of the new artificial-style equality slack
	row := make([]*big.Rat, cols+1)
	for j := 0; j < t.n; j++ {
		row[j] = new(big.Rat).Set(obj[j])
	}
	for j := t.n; j < cols; j++ {
		row[j] = new(big.Rat)
	}
	row[newCol] = numeric.RatInt(1)
	for i := range t.a {
		t.a[i] = append(t.a[i], new(big.Rat))
	}
	t.a = append(t.a, row)
	t.b = append(t.b, new(big.Rat).Set(val))
	t.basis = append(t.basis, newCol)
}

// minimize runs the primal simplex pivot loop against objective obj
// (minimization), returning the achieved value and terminal status.
// Reduced costs are computed directly from the current tableau (which is
// already expressed in terms of the current basis), so no separate
// objective row needs to be carried between calls.
func (t *Tableau) minimize(obj []*big.Rat) (*big.Rat, Status) {
	cols := len(t.a[0])
	maxIter := t.opts.MaxPivots
	if maxIter <= 0 {
		maxIter = 200 + 50*cols
	}
	// Reduced-cost row z, recomputed from scratch against obj each call:
	// z_j = obj_j - sum_i obj[basis[i]] * a[i][j].
	for iter := 0; iter < maxIter; iter++ {
		z := t.reducedCosts(obj, cols)

		enter := -1
		if t.opts.UseBland {
			for j := 0; j < cols; j++ {
				if z[j].Sign() < 0 {
					enter = j
					break
				}
			}
		} else {
			best := new(big.Rat)
			for j := 0; j < cols; j++ {
				if z[j].Cmp(best) < 0 {
					best = z[j]
					enter = j
				}
			}
		}
		if enter == -1 {
			return t.objectiveValue(obj), StatusOptimal
		}

		leave, ratio := -1, (*big.Rat)(nil)
		for i := range t.a {
			if t.a[i][enter].Sign() <= 0 {
				continue
			}
			r := new(big.Rat).Quo(t.b[i], t.a[i][enter])
			if ratio == nil || r.Cmp(ratio) < 0 || (r.Cmp(ratio) == 0 && (leave == -1 || t.basis[i] < t.basis[leave])) {
				ratio, leave = r, i
			}
		}
		if leave == -1 {
			return nil, StatusUnbounded
		}
		t.pivot(leave, enter)
	}

	// Exceeding the pivot budget under Bland's rule would be a proof of a
	// malformed model; report it the same as numerical non-termination.
	return nil, StatusInfeasible
}

// reducedCosts computes z_j = obj_j - c_B·a[:,j] for every column.
func (t *Tableau) reducedCosts(obj []*big.Rat, cols int) []*big.Rat {
	z := make([]*big.Rat, cols)
	for j := 0; j < cols; j++ {
		z[j] = objAt(obj, j)
	}
	for i, bcol := range t.basis {
		cb := objAt(obj, bcol)
		if cb.Sign() == 0 {
			continue
		}
		for j := 0; j < cols; j++ {
			z[j] = new(big.Rat).Sub(z[j], new(big.Rat).Mul(cb, t.a[i][j]))
		}
	}

	return z
}

func objAt(obj []*big.Rat, j int) *big.Rat {
	if j < len(obj) {
		return new(big.Rat).Set(obj[j])
	}

	return new(big.Rat)
}

// pivot performs a Gauss-Jordan pivot on (row, col), updating the basis.
func (t *Tableau) pivot(row, col int) {
	pivotVal := t.a[row][col]
	cols := len(t.a[row])
	for c := 0; c < cols; c++ {
		t.a[row][c] = new(big.Rat).Quo(t.a[row][c], pivotVal)
	}
	t.b[row] = new(big.Rat).Quo(t.b[row], pivotVal)

	for r := range t.a {
		if r == row || t.a[r][col].Sign() == 0 {
			continue
		}
		factor := new(big.Rat).Set(t.a[r][col])
		for c := 0; c < cols; c++ {
			t.a[r][c] = new(big.Rat).Sub(t.a[r][c], new(big.Rat).Mul(factor, t.a[row][c]))
		}
		t.b[r] = new(big.Rat).Sub(t.b[r], new(big.Rat).Mul(factor, t.b[row]))
	}
	t.basis[row] = col
}
