package looptree

import "errors"

// ErrNoFusionPrefix is returned when Build is asked to place a node that
// carries no fusion-ω tuple at all (zero-depth nodes belong at the root
// and never reach the trie walk).
var ErrNoFusionPrefix = errors.New("looptree: node has no fusion-ω prefix")

// ErrSingularSchedule is returned when a node's solved ϕ has no inverse,
// which spec §3's invariant ("when r==d, det(ϕ) ≠ 0") says cannot happen
// for a fully scheduled node.
var ErrSingularSchedule = errors.New("looptree: scheduled ϕ is not invertible")
