package address

import (
	"fmt"
	"math/big"

	"github.com/arevlabs/polysched/arena"
	"github.com/arevlabs/polysched/loopnest"
	"github.com/arevlabs/polysched/numeric"
)

// Kind distinguishes a load Address from a store Address.
type Kind int

const (
	// Load marks an Address that reads memory.
	Load Kind = iota
	// Store marks an Address that writes memory.
	Store
)

// BaseHandle is an opaque base-pointer identity: two Addresses are
// candidates for dependence analysis iff their BaseHandle values are
// equal (spec §4.3 "pointer identity or SCEV equality of base").
type BaseHandle int64

// Address is an affine memory reference: `C·i + O·(1;S) + o` for an
// owning loop L with d = L.NumLoops() loops and r array axes.
type Address struct {
	// Base is the owning array/pointer identity.
	Base BaseHandle

	// Loop is the owning affine loop nest, shared (not copied).
	Loop *loopnest.AffineLoop

	// Kind is Load or Store.
	Kind Kind

	// StoredValue is an opaque handle to the value written; unused for loads.
	StoredValue int64

	// Align is the element alignment in bytes.
	Align int

	index     numeric.Matrix // d x r
	offset    []*big.Rat     // length r
	symOffset numeric.Matrix // r x k
	axes      int            // r

	// offsetOmega is recomputed by Rotate per spec §4.3.
	offsetOmega []*big.Rat

	// fusionOmega is the per-address copy of the owning node's fusion
	// order, shifted in lockstep by PeelLoops (a SUPPLEMENTED detail:
	// spec names "shift fusion-ω left by n" as part of peelLoops without
	// specifying which type owns the vector being shifted; keeping one
	// here lets PeelLoops be total without reaching into a ScheduledNode).
	fusionOmega []int64

	// EdgeIn/EdgeOut are head-of-chain indices into the Dependence Edge
	// registry (spec §9's "central registry keyed by integer IDs").
	EdgeIn  arena.ID
	EdgeOut arena.ID

	dropped bool

	// reassocPartner is this Address's reduction partner once
	// reduction.Detect confirms a reassociable store<->load cycle (spec
	// §4.11: "mark s.reassociableReduction = ℓ and ℓ.reassociableReduction = s").
	reassocPartner *Address
}

// New builds an Address over loop L with index matrix c (d×r), constant
// offset o (length r) and symbolic offset matrix sym (r×k).
func New(base BaseHandle, loop *loopnest.AffineLoop, kind Kind, c numeric.Matrix, o []*big.Rat, sym numeric.Matrix) (*Address, error) {
	d := loop.NumLoops()
	r := len(o)
	if c.Rows() != d || c.Cols() != r {
		return nil, fmt.Errorf("New: index matrix %dx%d, want %dx%d: %w", c.Rows(), c.Cols(), d, r, ErrShapeMismatch)
	}
	if sym != nil && sym.Rows() != r {
		return nil, fmt.Errorf("New: symbolic offset matrix has %d rows, want %d: %w", sym.Rows(), r, ErrShapeMismatch)
	}

	return &Address{
		Base:        base,
		Loop:        loop,
		Kind:        kind,
		index:       c,
		offset:      cloneVec(o),
		symOffset:   sym,
		axes:        r,
		offsetOmega: make([]*big.Rat, 0),
		EdgeIn:      arena.ID(arena.NoNext),
		EdgeOut:     arena.ID(arena.NoNext),
	}, nil
}

// IndexMatrix returns the d×r index matrix view.
func (a *Address) IndexMatrix() numeric.Matrix { return a.index }

// Offset returns a defensive copy of the constant offset vector.
func (a *Address) Offset() []*big.Rat { return cloneVec(a.offset) }

// OffsetMatrix returns the r×k symbolic offset matrix view.
func (a *Address) OffsetMatrix() numeric.Matrix { return a.symOffset }

// Axes returns r, the number of array axes.
func (a *Address) Axes() int { return a.axes }

// GetOffsetOmega returns the address's offsetOmega vector, populated by Rotate.
func (a *Address) GetOffsetOmega() []*big.Rat { return cloneVec(a.offsetOmega) }

// ReassociableReduction returns this Address's reduction partner, or
// nil if reduction.Detect has not paired it with one.
func (a *Address) ReassociableReduction() *Address { return a.reassocPartner }

// SetReassociableReduction pairs a and other as a reduction cycle (spec
// §4.11); callers set it symmetrically on both sides.
func (a *Address) SetReassociableReduction(other *Address) { a.reassocPartner = other }

// IsDropped reports whether Drop has been called on this Address.
func (a *Address) IsDropped() bool { return a.dropped }

// Drop marks the Address dropped; edge iterators must skip it
// afterwards (spec §4.3 and §7's "dropped/invalid Address access").
func (a *Address) Drop() { a.dropped = true }

// Rotate mutates the Address in place for a newly solved schedule:
// C ← C·ϕ⁻¹[0:oldDepth,:], offsetOmega ← O(·,0) − C·ω − oldC·offsets,
// per spec §4.3. phiInv/denom come from numeric/ops.ScaledInverse;
// entries of the new index matrix are divided by denom.
func (a *Address) Rotate(newLoop *loopnest.AffineLoop, phiInv numeric.Matrix, denom *big.Int, omega []*big.Rat, offsets []*big.Rat) error {
	oldDepth := a.Loop.NumLoops()
	if newLoop.NumLoops() < oldDepth {
		return fmt.Errorf("Rotate: %w", ErrDepthMismatch)
	}
	if phiInv.Rows() < oldDepth {
		return fmt.Errorf("Rotate: %w", ErrShapeMismatch)
	}

	denomRat := new(big.Rat).SetInt(denom)
	newIndex, err := numeric.NewDense(oldDepth, a.axes)
	if err != nil {
		return err
	}
	for row := 0; row < oldDepth; row++ {
		for col := 0; col < a.axes; col++ {
			sum := new(big.Rat)
			for k := 0; k < oldDepth; k++ {
				cv, err := a.index.At(k, col)
				if err != nil {
					return err
				}
				pv, err := phiInv.At(row, k)
				if err != nil {
					return err
				}
				sum.Add(sum, new(big.Rat).Mul(cv, pv))
			}
			sum.Quo(sum, denomRat)
			if err := newIndex.Set(row, col, sum); err != nil {
				return err
			}
		}
	}

	newOffsetOmega := make([]*big.Rat, a.axes)
	for col := 0; col < a.axes; col++ {
		base := new(big.Rat)
		if a.symOffset != nil && a.symOffset.Cols() > 0 {
			v, err := a.symOffset.At(col, 0)
			if err != nil {
				return err
			}
			base = v
		}
		cOmega := new(big.Rat)
		for row := 0; row < oldDepth && row < len(omega); row++ {
			cv, err := a.index.At(row, col)
			if err != nil {
				return err
			}
			cOmega.Add(cOmega, new(big.Rat).Mul(cv, omega[row]))
		}
		cOffsets := new(big.Rat)
		for row := 0; row < oldDepth && row < len(offsets); row++ {
			cv, err := a.index.At(row, col)
			if err != nil {
				return err
			}
			cOffsets.Add(cOffsets, new(big.Rat).Mul(cv, offsets[row]))
		}
		newOffsetOmega[col] = new(big.Rat).Sub(new(big.Rat).Sub(base, cOmega), cOffsets)
	}

	a.index = newIndex
	a.offsetOmega = newOffsetOmega
	a.Loop = newLoop

	return nil
}

// PeelLoops drops the n outermost loop columns from the index matrix
// and shifts the address's fusion-order vector left by n, preserving
// offsets (spec §4.3).
func (a *Address) PeelLoops(n int) error {
	if n < 0 || n > a.index.Rows() {
		return fmt.Errorf("PeelLoops: %w", ErrShapeMismatch)
	}
	newIndex, err := numeric.NewDense(a.index.Rows()-n, a.axes)
	if err != nil {
		return err
	}
	for row := n; row < a.index.Rows(); row++ {
		for col := 0; col < a.axes; col++ {
			v, err := a.index.At(row, col)
			if err != nil {
				return err
			}
			if err := newIndex.Set(row-n, col, v); err != nil {
				return err
			}
		}
	}
	a.index = newIndex
	if n <= len(a.fusionOmega) {
		a.fusionOmega = append([]int64(nil), a.fusionOmega[n:]...)
	} else {
		a.fusionOmega = nil
	}

	return nil
}

// FusionOmega returns a defensive copy of the address's fusion-order vector.
func (a *Address) FusionOmega() []int64 { return append([]int64(nil), a.fusionOmega...) }

// SetFusionOmega installs the address's fusion-order vector.
func (a *Address) SetFusionOmega(omega []int64) { a.fusionOmega = append([]int64(nil), omega...) }

// Reload returns a fresh Load Address sharing this (store) Address's
// index matrix, offset, symbols and loop (spec §4.3).
func (a *Address) Reload() *Address {
	return &Address{
		Base:        a.Base,
		Loop:        a.Loop,
		Kind:        Load,
		index:       a.index.Clone(),
		offset:      cloneVec(a.offset),
		symOffset:   a.symOffset,
		axes:        a.axes,
		offsetOmega: cloneVec(a.offsetOmega),
		fusionOmega: append([]int64(nil), a.fusionOmega...),
		EdgeIn:      arena.ID(arena.NoNext),
		EdgeOut:     arena.ID(arena.NoNext),
	}
}

// Mergeable reports whether x and y are dependence-analysis candidates:
// same base pointer and matching array-axis counts (spec §4.3
// `sizesMatch`; per-axis stride-expression equality is a front-end
// SCEV fact out of this core's scope, see spec §1).
func Mergeable(x, y *Address) bool {
	return x.Base == y.Base && x.axes == y.axes
}

func cloneVec(v []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(v))
	for i, r := range v {
		out[i] = new(big.Rat).Set(r)
	}

	return out
}
