package loopnest

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/symbolic"
)

// AffineLoop owns an integer constraint matrix `A·[1;s;i] ≥ 0` plus its
// dynamic-symbol list (spec §3 "Affine Loop Nest"). Rows are stored
// outer-to-inner for loop columns; column layout is
// [ 1 | s_1..s_k | i_1..i_d ].
type AffineLoop struct {
	symbols []string       // dynamic symbols, k entries
	numLoops int           // d, the number of loop columns
	rows    [][]*big.Rat   // m rows, each length 1+k+d
	nonNeg  []bool         // len d; true once addZeroLowerBounds has run for that column
}

// NewAffineLoop builds an AffineLoop from explicit rows, each of length
// 1+len(symbols)+numLoops.
func NewAffineLoop(symbols []string, numLoops int, rows [][]*big.Rat) (*AffineLoop, error) {
	width := 1 + len(symbols) + numLoops
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("NewAffineLoop: row %d has width %d, want %d: %w", i, len(r), width, numeric.ErrBadShape)
		}
	}
	cp := make([][]*big.Rat, len(rows))
	for i, r := range rows {
		cp[i] = cloneRow(r)
	}

	return &AffineLoop{
		symbols:  append([]string(nil), symbols...),
		numLoops: numLoops,
		rows:     cp,
		nonNeg:   make([]bool, numLoops),
	}, nil
}

// FromBackedgeCounts builds a nest from one backedge-taken affine
// expression per loop, outermost first: for loop i the row
// `BT_i − i_i ≥ 0` is added, where BT_i is given as an affine form over
// [1 | symbols]. A nil entry means the corresponding SCEV was
// non-affine or unbounded, and the whole construction is declined (spec
// §4.2 "fail gracefully ... if any SCEV is non-affine").
func FromBackedgeCounts(symbols []string, backedgeTaken [][]*big.Rat) (*AffineLoop, error) {
	d := len(backedgeTaken)
	width := 1 + len(symbols)
	rows := make([][]*big.Rat, 0, d)
	for i, bt := range backedgeTaken {
		if bt == nil || len(bt) != width {
			return nil, fmt.Errorf("FromBackedgeCounts: loop %d: %w", i, ErrNonAffine)
		}
		row := make([]*big.Rat, width+d)
		copy(row, bt)
		for j := width; j < width+d; j++ {
			row[j] = new(big.Rat)
		}
		row[width+i] = numeric.RatInt(-1)
		rows = append(rows, row)
	}

	return NewAffineLoop(symbols, d, rows)
}

// NumLoops returns d, the current loop-column count.
func (l *AffineLoop) NumLoops() int { return l.numLoops }

// Symbols returns the current dynamic-symbol list.
func (l *AffineLoop) Symbols() []string { return append([]string(nil), l.symbols...) }

// Rows returns a defensive copy of the constraint matrix's rows.
func (l *AffineLoop) Rows() [][]*big.Rat {
	out := make([][]*big.Rat, len(l.rows))
	for i, r := range l.rows {
		out[i] = cloneRow(r)
	}

	return out
}

// width returns 1+k+d, the current column count.
func (l *AffineLoop) width() int { return 1 + len(l.symbols) + l.numLoops }

// Matrix materializes the constraint matrix as a numeric.Dense.
func (l *AffineLoop) Matrix() (numeric.Matrix, error) {
	if len(l.rows) == 0 {
		return numeric.NewDense(1, l.width())
	}
	m, err := numeric.NewDense(len(l.rows), l.width())
	if err != nil {
		return nil, err
	}
	for i, r := range l.rows {
		for j, v := range r {
			if err := m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// Rotate right-multiplies the loop-column block of every row by the
// unimodular matrix r (d×d): a new loop coordinate system i = R·i′.
// Returns a new AffineLoop whose non-negativity flags are copied
// unchanged from l; the caller is responsible for re-checking
// non-negativity of the rotated nest.
func (l *AffineLoop) Rotate(r [][]*big.Rat) (*AffineLoop, error) {
	d := l.numLoops
	if len(r) != d {
		return nil, fmt.Errorf("Rotate: %w", ErrBadRotation)
	}
	for _, row := range r {
		if len(row) != d {
			return nil, fmt.Errorf("Rotate: %w", ErrBadRotation)
		}
	}

	k := len(l.symbols)
	newRows := make([][]*big.Rat, len(l.rows))
	for ri, row := range l.rows {
		out := make([]*big.Rat, l.width())
		copy(out[:1+k], row[:1+k])
		for c := 0; c < d; c++ {
			sum := new(big.Rat)
			for rr := 0; rr < d; rr++ {
				sum.Add(sum, new(big.Rat).Mul(row[1+k+rr], r[rr][c]))
			}
			out[1+k+c] = sum
		}
		newRows[ri] = out
	}

	return &AffineLoop{symbols: append([]string(nil), l.symbols...), numLoops: d, rows: newRows, nonNeg: append([]bool(nil), l.nonNeg...)}, nil
}

// RemoveLoop eliminates loop column v (0-based, outer-to-inner) via
// Fourier-Motzkin elimination: every row with a positive coefficient on
// v is paired with every row with a negative coefficient, the pair
// combined to cancel v, and the resulting row's entries are gcd-rescaled
// (spec §4.2). All-zero results are dropped; pruneBounds runs
// afterwards.
func (l *AffineLoop) RemoveLoop(v int) (*AffineLoop, error) {
	if v < 0 || v >= l.numLoops {
		return nil, fmt.Errorf("RemoveLoop: %w", ErrInvalidLoopIndex)
	}
	k := len(l.symbols)
	col := 1 + k + v

	var pos, neg, zero [][]*big.Rat
	for _, row := range l.rows {
		switch row[col].Sign() {
		case 1:
			pos = append(pos, row)
		case -1:
			neg = append(neg, row)
		default:
			zero = append(zero, row)
		}
	}
	if l.nonNeg[v] {
		// implicit i_v >= 0 participates as an extra positive-coefficient row
		implicit := make([]*big.Rat, l.width())
		for i := range implicit {
			implicit[i] = new(big.Rat)
		}
		implicit[col].SetInt64(1)
		pos = append(pos, implicit)
	}

	combined := make([][]*big.Rat, 0, len(pos)*len(neg)+len(zero))
	for _, zr := range zero {
		combined = append(combined, dropColumn(zr, col))
	}
	for _, p := range pos {
		for _, n := range neg {
			pc := new(big.Rat).Set(p[col])
			nc := new(big.Rat).Abs(n[col])
			// p*nc + n*pc cancels column v: p_v*nc - n_v*pc where n_v=-nc
			combinedRow := make([]*big.Rat, l.width())
			for j := range combinedRow {
				left := new(big.Rat).Mul(p[j], nc)
				right := new(big.Rat).Mul(n[j], pc)
				combinedRow[j] = new(big.Rat).Add(left, right)
			}
			combined = append(combined, dropColumn(combinedRow, col))
		}
	}

	var finalRows [][]*big.Rat
	for _, row := range combined {
		g := numeric.GCDRow(row)
		if g.Cmp(big.NewInt(1)) != 0 && g.Sign() != 0 {
			gr := new(big.Rat).SetInt(g)
			scaled := make([]*big.Rat, len(row))
			allZero := true
			for j, x := range row {
				scaled[j] = new(big.Rat).Quo(x, gr)
				if scaled[j].Sign() != 0 {
					allZero = false
				}
			}
			if !allZero {
				finalRows = append(finalRows, scaled)
			}
		} else if !rowIsZero(row) {
			finalRows = append(finalRows, row)
		}
	}

	newSymbols := append([]string(nil), l.symbols...)
	newNonNeg := make([]bool, 0, l.numLoops-1)
	for j := 0; j < l.numLoops; j++ {
		if j != v {
			newNonNeg = append(newNonNeg, l.nonNeg[j])
		}
	}

	out := &AffineLoop{symbols: newSymbols, numLoops: l.numLoops - 1, rows: finalRows, nonNeg: newNonNeg}

	return out.PruneBounds()
}

// PeelOuter removes the n outermost loops, turning each peeled loop's
// indvar into a new dynamic symbol (its maximum value) that replaces it
// wherever it appeared with a non-zero coefficient (spec §4.2).
func (l *AffineLoop) PeelOuter(n int) (*AffineLoop, error) {
	if n < 0 || n > l.numLoops {
		return nil, fmt.Errorf("PeelOuter: %w", ErrInvalidLoopIndex)
	}
	if n == 0 {
		return l, nil
	}
	k := len(l.symbols)
	newSymbols := append([]string(nil), l.symbols...)
	for i := 0; i < n; i++ {
		newSymbols = append(newSymbols, fmt.Sprintf("peel_outer_%d_of_%d", i, n))
	}
	remaining := l.numLoops - n

	var newRows [][]*big.Rat
	for _, row := range l.rows {
		retainedNonZero := false
		for c := 0; c < remaining; c++ {
			if row[1+k+n+c].Sign() != 0 {
				retainedNonZero = true
				break
			}
		}
		if !retainedNonZero {
			continue // constrains only peeled (now parametric) loops; drop
		}
		out := make([]*big.Rat, 1+len(newSymbols)+remaining)
		copy(out[:1+k], row[:1+k])
		for i := 0; i < n; i++ {
			out[1+k+i] = new(big.Rat).Set(row[1+k+i])
		}
		for c := 0; c < remaining; c++ {
			out[1+len(newSymbols)+c] = row[1+k+n+c]
		}
		newRows = append(newRows, out)
	}

	return &AffineLoop{symbols: newSymbols, numLoops: remaining, rows: newRows, nonNeg: append([]bool(nil), l.nonNeg[n:]...)}, nil
}

// RemoveInnerMost drops the last loop column along with every row that
// has a non-zero entry there. Precondition (caller-enforced per spec
// §4.2): no outer constraint references the innermost indvar.
func (l *AffineLoop) RemoveInnerMost() (*AffineLoop, error) {
	if l.numLoops == 0 {
		return nil, ErrNoLoops
	}
	col := l.width() - 1

	var newRows [][]*big.Rat
	for _, row := range l.rows {
		if row[col].Sign() != 0 {
			continue
		}
		newRows = append(newRows, dropColumn(row, col))
	}

	return &AffineLoop{symbols: append([]string(nil), l.symbols...), numLoops: l.numLoops - 1, rows: newRows, nonNeg: append([]bool(nil), l.nonNeg[:l.numLoops-1]...)}, nil
}

// PruneBounds removes every row that a Comparator over the remaining
// rows already proves (spec §4.2 "remove redundant rows via C1").
// Idempotent and preserves the solution set: a row is only dropped when
// the rows NOT under test already imply it.
func (l *AffineLoop) PruneBounds() (*AffineLoop, error) {
	if len(l.rows) == 0 {
		return l, nil
	}
	keep := make([]bool, len(l.rows))
	for i := range keep {
		keep[i] = true
	}
	for i := range l.rows {
		others := make([][]*big.Rat, 0, len(l.rows)-1)
		for j, row := range l.rows {
			if j != i && keep[j] {
				others = append(others, row)
			}
		}
		if len(others) == 0 {
			continue
		}
		m, err := rowsToMatrix(others, l.width())
		if err != nil {
			return nil, fmt.Errorf("PruneBounds: %w", err)
		}
		cmp, err := symbolic.NewComparator(m, nil)
		if err != nil {
			return nil, fmt.Errorf("PruneBounds: %w", err)
		}
		if cmp.GreaterEqual(l.rows[i]) {
			keep[i] = false
		}
	}

	var pruned [][]*big.Rat
	for i, k := range keep {
		if k {
			pruned = append(pruned, l.rows[i])
		}
	}

	return &AffineLoop{symbols: append([]string(nil), l.symbols...), numLoops: l.numLoops, rows: pruned, nonNeg: append([]bool(nil), l.nonNeg...)}, nil
}

// AddZeroLowerBounds appends `i_j ≥ 0` rows for every loop column not
// already marked non-negative, and marks them so (spec §4.2).
func (l *AffineLoop) AddZeroLowerBounds() *AffineLoop {
	out := &AffineLoop{symbols: append([]string(nil), l.symbols...), numLoops: l.numLoops, rows: l.Rows(), nonNeg: append([]bool(nil), l.nonNeg...)}
	k := len(l.symbols)
	for j := 0; j < l.numLoops; j++ {
		if out.nonNeg[j] {
			continue
		}
		row := make([]*big.Rat, out.width())
		for i := range row {
			row[i] = new(big.Rat)
		}
		row[1+k+j].SetInt64(1)
		out.rows = append(out.rows, row)
		out.nonNeg[j] = true
	}

	return out
}

// PrintBound renders every row whose coefficient at loop column idx,
// multiplied by sign, is positive, as `[coef]*i_idx (<=|>=) expression`.
func (l *AffineLoop) PrintBound(idx int, sign int) (string, error) {
	if idx < 0 || idx >= l.numLoops {
		return "", fmt.Errorf("PrintBound: %w", ErrInvalidLoopIndex)
	}
	k := len(l.symbols)
	col := 1 + k + idx
	cmpOp := "<="
	if sign < 0 {
		cmpOp = ">="
	}

	var b strings.Builder
	for _, row := range l.rows {
		coefSigned := new(big.Rat).Mul(row[col], numeric.RatInt(int64(sign)))
		if coefSigned.Sign() <= 0 {
			continue
		}
		fmt.Fprintf(&b, "%s*i_%d %s %s\n", row[col].RatString(), idx, cmpOp, exprString(row, col, l.symbols))
	}

	return b.String(), nil
}

func exprString(row []*big.Rat, skipCol int, symbols []string) string {
	var parts []string
	if row[0].Sign() != 0 {
		parts = append(parts, row[0].RatString())
	}
	for i, name := range symbols {
		c := row[1+i]
		if c.Sign() != 0 {
			parts = append(parts, fmt.Sprintf("%s*%s", c.RatString(), name))
		}
	}
	for i := 1 + len(symbols); i < len(row); i++ {
		if i == skipCol {
			continue
		}
		if row[i].Sign() != 0 {
			parts = append(parts, fmt.Sprintf("%s*i_%d", row[i].RatString(), i-1-len(symbols)))
		}
	}
	if len(parts) == 0 {
		return "0"
	}

	return strings.Join(parts, " + ")
}

func cloneRow(r []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(r))
	for i, v := range r {
		out[i] = new(big.Rat).Set(v)
	}

	return out
}

func dropColumn(row []*big.Rat, col int) []*big.Rat {
	out := make([]*big.Rat, 0, len(row)-1)
	for i, v := range row {
		if i != col {
			out = append(out, v)
		}
	}

	return out
}

func rowIsZero(row []*big.Rat) bool {
	for _, v := range row {
		if v.Sign() != 0 {
			return false
		}
	}

	return true
}

func rowsToMatrix(rows [][]*big.Rat, width int) (numeric.Matrix, error) {
	m, err := numeric.NewDense(len(rows), width)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		for j, v := range row {
			if err := m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
