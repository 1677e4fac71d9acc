// Package simplify implements the Addr Simplifier pass (spec §4.10): it
// walks a loop's topologically sorted body and, for consecutive
// Addresses on the same base with identical index matrices and
// offsets, applies the store/store, store/load, load/load, load/store
// action table, forwarding stored values into loads and dropping
// shadowed stores and redundant re-loads. It also removes stores to
// temporaries that are never loaded after simplification. Dropping an
// Address reuses address.Address.Drop, the same flip-a-liveness-flag
// idiom the core data model uses instead of physically deleting slice
// elements.
package simplify
