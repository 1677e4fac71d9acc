// Package symbolic decides membership facts against a fixed symbolic
// polyhedron: `a·x ≥ 0`, `a·x = b·x`, `a·x + c ≤ 0`, uniformly, via
// Farkas' lemma plus a Phase-I simplex feasibility check, the way
// `matrix/ops/inverse.go`'s triangular-solve shape and the package's
// three-stage Blueprint comment style both come from the teacher's
// `ops` package. A Comparator is built once per query polyhedron (the
// inequality block `A`, an optional equality block `E`) and reused for
// every subsequent query, exactly as spec §4.1 requires.
package symbolic
