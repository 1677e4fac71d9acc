package address

// AddrChain is the skip-aware iterator handed to downstream passes over
// a loop body's Addresses (spec §6: "to downstream passes: ... an
// AddrChain"), modeled on the teacher's adjacency-list iteration
// helpers (`core/methods_adjacent.go`'s `Neighbors`): a thin read view
// over already-collected Addresses rather than a second storage layer.
// Next automatically skips any Address marked dropped, so callers never
// need their own IsDropped check.
type AddrChain struct {
	addrs   []*Address
	pos     int
	skipped int
}

// NewAddrChain wraps addrs for skip-aware iteration. addrs is not
// copied; callers should not mutate it concurrently with iteration.
func NewAddrChain(addrs []*Address) *AddrChain {
	return &AddrChain{addrs: addrs}
}

// Next returns the next non-dropped Address and advances the chain, or
// (nil, false) once every remaining Address has been consumed or
// skipped.
func (c *AddrChain) Next() (*Address, bool) {
	for c.pos < len(c.addrs) {
		a := c.addrs[c.pos]
		c.pos++
		if a.IsDropped() {
			c.skipped++

			continue
		}

		return a, true
	}

	return nil, false
}

// Dropped reports how many Addresses Next has skipped so far because
// Simplify (or an earlier pass) had already marked them dropped.
func (c *AddrChain) Dropped() int { return c.skipped }

// Reset rewinds the chain to its start, for a second pass over the same
// body.
func (c *AddrChain) Reset() {
	c.pos = 0
	c.skipped = 0
}
