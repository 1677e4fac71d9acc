// Package numeric provides the exact-rational Matrix type, gcd helpers and
// simplex options that the scheduler core's linear-algebra services build
// on. Hermite normal form, orthogonal null space, a scaled matrix inverse,
// and a two-phase Farkas simplex with lexicographic minimization live in
// the numeric/ops subpackage.
//
// Every routine here operates on big.Rat entries rather than float64.
// The scheduler's correctness property — the chosen ϕ rows must give
// ϕ_out·i_out − ϕ_in·i_in ≥ 1 on the dependence polyhedron, Farkas-verified —
// is an exact integer/rational statement; a float64 pivot could silently
// certify a dependence that does not actually hold. This is the one place
// the package departs from the teacher's float64 Dense matrix, and is
// recorded in SPEC_FULL.md's DOMAIN STACK section.
package numeric
