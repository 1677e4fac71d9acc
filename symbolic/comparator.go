package symbolic

import (
	"fmt"
	"math/big"

	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/numeric/ops"
)

// Comparator decides facts about a fixed polyhedron { x : A·x ≥ 0, E·x = 0 }
// where column 0 of both A and E is understood to multiply the constant 1.
// It is built once per query polyhedron and reused across many queries
// (spec §4.1: "constructed once per query polyhedron and reused").
type Comparator struct {
	n int // number of columns (variables, including the constant column)

	// farkasRows is the transposed-and-augmented system used to answer
	// every query: a non-negative y (one per row of A) plus a signed
	// split z⁺,z⁻ (one pair per row of E) such that
	// y·A + (z⁺-z⁻)·E = q is exactly Farkas' certificate that q is a
	// valid consequence of the polyhedron's defining inequalities.
	farkasRows [][]*big.Rat // n rows (one per polyhedron column), each of length len(y)+len(z+)+len(z-)
	numY       int
	numZ       int
}

// NewComparator builds a Comparator for { A·x ≥ 0 } optionally narrowed by
// { E·x = 0 }. A and E must share the same column count; E may be nil.
//
// Blueprint:
//
//	Stage 1 (Validate): reject a zero-column polyhedron.
//	Stage 2 (Prepare): transpose A (and E, signed-split) into the Farkas
//	  system columns every query solves against.
func NewComparator(a numeric.Matrix, e numeric.Matrix) (*Comparator, error) {
	if a.Cols() == 0 {
		return nil, ErrEmptyPolyhedron
	}
	n := a.Cols()
	if e != nil && e.Cols() != n {
		return nil, fmt.Errorf("NewComparator: %w", ErrDimensionMismatch)
	}

	numY := a.Rows()
	numE := 0
	if e != nil {
		numE = e.Rows()
	}
	numZ := numE // z+ and z- each contribute numE columns

	rows := make([][]*big.Rat, n)
	for j := 0; j < n; j++ {
		row := make([]*big.Rat, numY+2*numZ)
		for i := 0; i < numY; i++ {
			v, err := a.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("NewComparator: %w", err)
			}
			row[i] = v
		}
		for i := 0; i < numE; i++ {
			v, err := e.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("NewComparator: %w", err)
			}
			row[numY+i] = new(big.Rat).Set(v)
			row[numY+numE+i] = new(big.Rat).Neg(v)
		}
		rows[j] = row
	}

	return &Comparator{n: n, farkasRows: rows, numY: numY, numZ: numZ}, nil
}

// GreaterEqual reports whether q·x ≥ 0 is Farkas-provable on the
// polyhedron: is there y ≥ 0 (and free z split into z⁺,z⁻ ≥ 0) with
// y·A + z·E = q? Returns false (not-known-true) on any ambiguity,
// including when Phase I itself cannot certify feasibility, per spec
// §4.1's explicit "acceptable to return false" failure mode.
func (c *Comparator) GreaterEqual(q []*big.Rat) bool {
	if len(q) != c.n {
		return false
	}

	cols := c.numY + 2*c.numZ
	mat, err := numeric.NewDense(c.n, cols)
	if err != nil {
		return false
	}
	for j := 0; j < c.n; j++ {
		for k := 0; k < cols; k++ {
			if err := mat.Set(j, k, c.farkasRows[j][k]); err != nil {
				return false
			}
		}
	}

	tab, err := ops.NewTableau(mat, q)
	if err != nil {
		return false
	}

	return tab.Feasible()
}

// Equal reports whether q·x = 0 is valid on the polyhedron.
func (c *Comparator) Equal(q []*big.Rat) bool {
	return c.GreaterEqual(q) && c.GreaterEqual(negate(q))
}

// Less reports whether q·x < 0 is valid, i.e. -q·x - 1 ≥ 0 over the
// integers.
func (c *Comparator) Less(q []*big.Rat) bool {
	return c.GreaterEqual(shiftConstant(negate(q), -1))
}

// LessEqual reports whether q·x ≤ 0 is valid, i.e. -q·x ≥ 0.
func (c *Comparator) LessEqual(q []*big.Rat) bool {
	return c.GreaterEqual(negate(q))
}

// Greater reports whether q·x > 0 is valid, i.e. q·x - 1 ≥ 0 over the
// integers.
func (c *Comparator) Greater(q []*big.Rat) bool {
	return c.GreaterEqual(shiftConstant(q, -1))
}

// EqualNegative reports whether q1·x = -q2·x is valid, i.e. (q1+q2)·x = 0.
func (c *Comparator) EqualNegative(q1, q2 []*big.Rat) bool {
	if len(q1) != len(q2) {
		return false
	}
	sum := make([]*big.Rat, len(q1))
	for i := range q1 {
		sum[i] = new(big.Rat).Add(q1[i], q2[i])
	}

	return c.Equal(sum)
}

// IsEmpty reports whether the polyhedron admits no point at all: by
// Farkas' lemma this holds iff the contradiction "-1 ≥ 0" (on the
// constant column, zero elsewhere) is itself a valid consequence.
func (c *Comparator) IsEmpty() bool {
	q := make([]*big.Rat, c.n)
	for i := range q {
		q[i] = new(big.Rat)
	}
	q[0] = numeric.RatInt(-1)

	return c.GreaterEqual(q)
}

func negate(q []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(q))
	for i, v := range q {
		out[i] = new(big.Rat).Neg(v)
	}

	return out
}

// shiftConstant returns a copy of q with delta added to the constant
// (index 0) column, used to turn a non-strict Farkas query into a
// strict one over the integers (q·x ≥ 0 becomes q·x + delta ≥ 0, i.e.
// q·x > 0 when delta = -1).
func shiftConstant(q []*big.Rat, delta int64) []*big.Rat {
	out := make([]*big.Rat, len(q))
	copy(out, q)
	if len(out) > 0 {
		out[0] = new(big.Rat).Add(out[0], numeric.RatInt(delta))
	}

	return out
}
