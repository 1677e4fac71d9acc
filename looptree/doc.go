// Package looptree builds the post-schedule loop tree from a block's
// ScheduledNodes (spec §4.9): each node's solved ϕ is scaled-inverted,
// then nodes are walked by fusion-ω prefix into a depth-indexed trie of
// Loop objects, each new prefix creating a rotated Loop (Affine Loop
// copy) and each Address being rotated into its innermost matching
// Loop. Grounded on `builder/api.go`'s single-orchestrator pattern: one
// public entry point, `Build`, drives the whole walk deterministically.
package looptree
