package dependence

import (
	"math/big"

	"github.com/arevlabs/polysched/numeric"
)

// FarkasPair holds the two Farkas-dual simplex tableaus built from a
// Polyhedron (spec §4.5). Variable layout of both tableaus is
// `[ λ₀ | λ_ineq | λ_eq⁺ | λ_eq⁻ | ω_x | ω_y | ϕ_x | ϕ_y | w | u ]`.
type FarkasPair struct {
	Forward  numeric.Matrix
	Backward numeric.Matrix

	// Column offsets into either tableau, shared by both.
	Lambda0    int
	LambdaIneq int // numIneq columns
	LambdaEqP  int // numEq columns
	LambdaEqM  int // numEq columns
	OmegaX     int
	OmegaY     int
	PhiX       int // DX columns
	PhiY       int // DY columns
	W          int
	U          int // len(Symbols) columns

	NumIneq, NumEq int
}

// BuildFarkas assembles the forward and backward tableaus for poly
// (spec §4.5). Forward encodes
// `λ₀ + λ·A − ϕ_y·i_y + ϕ_x·i_x − (ω_y−ω_x) − (w+u·S) = 0` on every
// variable column of `[1|S|i_x|i_y]` (time columns are not constrained
// directly: they were already tied to i_x,i_y by the polyhedron's
// equality block). Backward flips the sign of every ϕ/ω entry.
func BuildFarkas(poly *Polyhedron) (*FarkasPair, error) {
	numIneq := poly.A.Rows()
	numEq := poly.E.Rows()
	k := len(poly.Symbols)
	dx, dy := poly.DX, poly.DY

	fp := &FarkasPair{
		Lambda0:    0,
		LambdaIneq: 1,
		LambdaEqP:  1 + numIneq,
		LambdaEqM:  1 + numIneq + numEq,
		OmegaX:     1 + numIneq + 2*numEq,
		OmegaY:     1 + numIneq + 2*numEq + 1,
		PhiX:       1 + numIneq + 2*numEq + 2,
		PhiY:       1 + numIneq + 2*numEq + 2 + dx,
		W:          1 + numIneq + 2*numEq + 2 + dx + dy,
		U:          1 + numIneq + 2*numEq + 2 + dx + dy + 1,
		NumIneq:    numIneq,
		NumEq:      numEq,
	}
	cols := fp.U + k
	rows := 1 + k + dx + dy

	fwd, err := numeric.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	bwd, err := numeric.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}

	for c := 0; c < rows; c++ {
		if c == 0 {
			if err := fwd.Set(c, fp.Lambda0, numeric.RatInt(1)); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.Lambda0, numeric.RatInt(1)); err != nil {
				return nil, err
			}
		}
		for i := 0; i < numIneq; i++ {
			v, err := poly.A.At(i, c)
			if err != nil {
				return nil, err
			}
			if err := fwd.Set(c, fp.LambdaIneq+i, v); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.LambdaIneq+i, v); err != nil {
				return nil, err
			}
		}
		for i := 0; i < numEq; i++ {
			v, err := poly.E.At(i, c)
			if err != nil {
				return nil, err
			}
			neg := new(big.Rat).Neg(v)
			if err := fwd.Set(c, fp.LambdaEqP+i, v); err != nil {
				return nil, err
			}
			if err := fwd.Set(c, fp.LambdaEqM+i, neg); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.LambdaEqP+i, v); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.LambdaEqM+i, neg); err != nil {
				return nil, err
			}
		}

		if c >= 1 && c < 1+k {
			sym := c - 1
			if err := fwd.Set(c, fp.U+sym, numeric.RatInt(-1)); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.U+sym, numeric.RatInt(-1)); err != nil {
				return nil, err
			}
		}
		if c == 0 {
			if err := fwd.Set(c, fp.W, numeric.RatInt(-1)); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.W, numeric.RatInt(-1)); err != nil {
				return nil, err
			}
			if err := fwd.Set(c, fp.OmegaX, numeric.RatInt(1)); err != nil {
				return nil, err
			}
			if err := fwd.Set(c, fp.OmegaY, numeric.RatInt(-1)); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.OmegaX, numeric.RatInt(-1)); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.OmegaY, numeric.RatInt(1)); err != nil {
				return nil, err
			}
		}
		if c >= 1+k && c < 1+k+dx {
			col := c - (1 + k)
			if err := fwd.Set(c, fp.PhiX+col, numeric.RatInt(1)); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.PhiX+col, numeric.RatInt(-1)); err != nil {
				return nil, err
			}
		}
		if c >= 1+k+dx && c < 1+k+dx+dy {
			col := c - (1 + k + dx)
			if err := fwd.Set(c, fp.PhiY+col, numeric.RatInt(-1)); err != nil {
				return nil, err
			}
			if err := bwd.Set(c, fp.PhiY+col, numeric.RatInt(1)); err != nil {
				return nil, err
			}
		}
	}

	fp.Forward = fwd
	fp.Backward = bwd

	return fp, nil
}
