package dependence

import (
	"fmt"
	"math/big"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/numeric"
	"github.com/arevlabs/polysched/numeric/ops"
	"github.com/arevlabs/polysched/symbolic"
)

// Polyhedron is the joint domain for two Addresses x,y sharing a base
// (spec §3 "Dependence Polyhedron"). Variables are ordered
// `[ 1 | S | i_x | i_y | t ]` where S is the merged dynamic-symbol list
// and t are the time (null-space) dimensions.
type Polyhedron struct {
	Symbols []string // merged S, x's order preserved

	DX, DY int // loop depths of x and y
	T      int // time dimension count

	// A is the inequality block: the two loop domains rewritten into the
	// joint layout plus the `t ≥ 0` facets.
	A numeric.Matrix

	// E is the equality block: index-matrix equality plus the
	// null-space tie t = N·(i_x − i_y).
	E numeric.Matrix

	// NullSteps holds ||N_i||² per time dimension (spec §4.4's "null step").
	NullSteps []*big.Rat
}

// Width returns 1+len(Symbols)+DX+DY+T, the joint layout's column count.
func (p *Polyhedron) Width() int {
	return 1 + len(p.Symbols) + p.DX + p.DY + p.T
}

// Build constructs the joint Dependence Polyhedron for x, y (spec §4.4).
// Returns ErrNotMergeable if the two Addresses don't share a base/shape,
// ErrEmptyPolyhedron if the result is empty after pruning (the accesses
// never alias on any reachable iteration).
func Build(x, y *address.Address) (*Polyhedron, error) {
	if !address.Mergeable(x, y) {
		return nil, ErrNotMergeable
	}

	xSymbols := x.Loop.Symbols()
	ySymbols := y.Loop.Symbols()
	symbols, yRemap := mergeSymbols(xSymbols, ySymbols)
	k := len(symbols)
	dx, dy := x.Loop.NumLoops(), y.Loop.NumLoops()
	r := x.Axes()

	// J = [C_x; C_y] is (dx+dy)×r; it is stored transposed (r×(dx+dy))
	// so that its null-space rows run over the dx+dy loop rows.
	jRows := dx + dy
	j, err := numeric.NewDense(r, jRows)
	if err != nil {
		return nil, err
	}
	if err := copyIndexBlock(j, x.IndexMatrix(), 0); err != nil {
		return nil, err
	}
	if err := copyIndexBlock(j, y.IndexMatrix(), dx); err != nil {
		return nil, err
	}
	n, err := ops.OrthogonalNullSpace(j)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	t := n.Rows()
	nullSteps := make([]*big.Rat, t)
	for i := 0; i < t; i++ {
		row, err := rowOf(n, i)
		if err != nil {
			return nil, err
		}
		nullSteps[i] = ops.NullStep(row)
	}

	width := 1 + k + dx + dy + t

	var aRows [][]*big.Rat
	xRows := x.Loop.Rows()
	for _, row := range xRows {
		aRows = append(aRows, rewriteLoopRow(row, xSymbols, nil, 1+k, width))
	}
	yRows := y.Loop.Rows()
	for _, row := range yRows {
		aRows = append(aRows, rewriteLoopRow(row, ySymbols, yRemap, 1+k+dx, width))
	}
	for i := 0; i < t; i++ {
		facet := make([]*big.Rat, width)
		for c := range facet {
			facet[c] = new(big.Rat)
		}
		facet[1+k+dx+dy+i].SetInt64(1)
		aRows = append(aRows, facet)
	}
	a, err := rowsToDense(aRows, width)
	if err != nil {
		return nil, err
	}

	var eRows [][]*big.Rat
	for axis := 0; axis < r; axis++ {
		row := make([]*big.Rat, width)
		for c := range row {
			row[c] = new(big.Rat)
		}
		for loopCol := 0; loopCol < dx; loopCol++ {
			v, err := x.IndexMatrix().At(loopCol, axis)
			if err != nil {
				return nil, err
			}
			row[1+k+loopCol] = v
		}
		for loopCol := 0; loopCol < dy; loopCol++ {
			v, err := y.IndexMatrix().At(loopCol, axis)
			if err != nil {
				return nil, err
			}
			row[1+k+dx+loopCol] = new(big.Rat).Neg(v)
		}
		if x.OffsetMatrix() != nil {
			for sym := 0; sym < x.OffsetMatrix().Cols(); sym++ {
				v, err := x.OffsetMatrix().At(axis, sym)
				if err != nil {
					return nil, err
				}
				symIdx := symbolIndex(symbols, xSymbols[sym])
				row[1+symIdx] = new(big.Rat).Add(row[1+symIdx], v)
			}
		}
		if y.OffsetMatrix() != nil {
			for sym := 0; sym < y.OffsetMatrix().Cols(); sym++ {
				v, err := y.OffsetMatrix().At(axis, sym)
				if err != nil {
					return nil, err
				}
				symIdx := yRemap[sym]
				row[1+symIdx] = new(big.Rat).Sub(row[1+symIdx], v)
			}
		}
		xOff := x.Offset()
		yOff := y.Offset()
		row[0] = new(big.Rat).Sub(xOff[axis], yOff[axis])
		eRows = append(eRows, row)
	}
	for i := 0; i < t; i++ {
		row := make([]*big.Rat, width)
		for c := range row {
			row[c] = new(big.Rat)
		}
		nrow, err := rowOf(n, i)
		if err != nil {
			return nil, err
		}
		// t_i = N_i . (i_x - i_y): since J stacks [C_x; C_y] over axes,
		// N_i is itself indexed over the jRows = dx+dy loop rows.
		for loopCol := 0; loopCol < dx; loopCol++ {
			row[1+k+loopCol] = new(big.Rat).Neg(nrow[loopCol])
		}
		for loopCol := 0; loopCol < dy; loopCol++ {
			row[1+k+dx+loopCol] = nrow[dx+loopCol]
		}
		row[1+k+dx+dy+i] = numeric.RatInt(1)
		eRows = append(eRows, row)
	}
	e, err := rowsToDense(eRows, width)
	if err != nil {
		return nil, err
	}

	poly := &Polyhedron{Symbols: symbols, DX: dx, DY: dy, T: t, A: a, E: e, NullSteps: nullSteps}

	pruned, err := pruneInequalities(poly)
	if err != nil {
		return nil, err
	}
	poly.A = pruned

	cmp, err := symbolic.NewComparator(poly.A, poly.E)
	if err != nil {
		return nil, err
	}
	if cmp.IsEmpty() {
		return nil, ErrEmptyPolyhedron
	}

	return poly, nil
}

// mergeSymbols unions x's and y's symbol lists, preserving x's order,
// and returns the column remap for y's symbols into the merged list.
func mergeSymbols(xSymbols, ySymbols []string) (merged []string, yRemap []int) {
	merged = append([]string(nil), xSymbols...)
	index := make(map[string]int, len(merged))
	for i, s := range merged {
		index[s] = i
	}
	yRemap = make([]int, len(ySymbols))
	for i, s := range ySymbols {
		if idx, ok := index[s]; ok {
			yRemap[i] = idx

			continue
		}
		index[s] = len(merged)
		yRemap[i] = len(merged)
		merged = append(merged, s)
	}

	return merged, yRemap
}

func symbolIndex(symbols []string, name string) int {
	for i, s := range symbols {
		if s == name {
			return i
		}
	}

	return -1
}

// rewriteLoopRow re-expresses a loop-domain row [1|symbols|loopvars] in
// the joint layout [1|S|i_x|i_y|t] (total column count `width`), placing
// the loop variables at offset loopOffset and remapping symbol columns
// via remap (nil means identity, used for x whose symbol order seeds
// the merge).
func rewriteLoopRow(row []*big.Rat, localSymbols []string, remap []int, loopOffset int, width int) []*big.Rat {
	k := len(localSymbols)
	numLoops := len(row) - 1 - k
	out := make([]*big.Rat, width)
	for i := range out {
		out[i] = new(big.Rat)
	}
	out[0] = new(big.Rat).Set(row[0])
	for i := 0; i < k; i++ {
		dest := i + 1
		if remap != nil {
			dest = remap[i] + 1
		}
		out[dest] = new(big.Rat).Add(out[dest], row[1+i])
	}
	for i := 0; i < numLoops; i++ {
		out[loopOffset+i] = new(big.Rat).Set(row[1+k+i])
	}

	return out
}

// copyIndexBlock writes src transposed into dst: src row i lands in dst
// column rowOffset+i.
func copyIndexBlock(dst numeric.Matrix, src numeric.Matrix, rowOffset int) error {
	for i := 0; i < src.Rows(); i++ {
		for j := 0; j < src.Cols(); j++ {
			v, err := src.At(i, j)
			if err != nil {
				return err
			}
			if err := dst.Set(j, rowOffset+i, v); err != nil {
				return err
			}
		}
	}

	return nil
}

func rowOf(m numeric.Matrix, i int) ([]*big.Rat, error) {
	cols := m.Cols()
	row := make([]*big.Rat, cols)
	for j := 0; j < cols; j++ {
		v, err := m.At(i, j)
		if err != nil {
			return nil, err
		}
		row[j] = v
	}

	return row, nil
}

func rowsToDense(rows [][]*big.Rat, width int) (numeric.Matrix, error) {
	if len(rows) == 0 {
		return numeric.NewDense(1, width)
	}
	m, err := numeric.NewDense(len(rows), width)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		for j := 0; j < width && j < len(row); j++ {
			if err := m.Set(i, j, row[j]); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// pruneInequalities drops rows of poly.A that the remaining rows
// already imply (spec §4.4 step 4, reusing C1's pruneBounds machinery).
func pruneInequalities(poly *Polyhedron) (numeric.Matrix, error) {
	rows := poly.A.Rows()
	var kept [][]*big.Rat
	all := make([][]*big.Rat, rows)
	for i := 0; i < rows; i++ {
		row, err := rowOf(poly.A, i)
		if err != nil {
			return nil, err
		}
		all[i] = row
	}
	dropped := make([]bool, len(all))
	for i := range all {
		var others [][]*big.Rat
		for j, row := range all {
			if j != i && !dropped[j] {
				others = append(others, row)
			}
		}
		if len(others) == 0 {
			kept = append(kept, all[i])

			continue
		}
		m, err := rowsToDense(others, poly.Width())
		if err != nil {
			return nil, err
		}
		cmp, err := symbolic.NewComparator(m, nil)
		if err != nil {
			return nil, err
		}
		if !cmp.GreaterEqual(all[i]) {
			kept = append(kept, all[i])
		} else {
			dropped[i] = true
		}
	}

	return rowsToDense(kept, poly.Width())
}
