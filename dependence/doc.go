// Package dependence builds the Dependence Polyhedron for a pair of
// Addresses sharing a base pointer (spec §4.4) and owns the Dependence
// Edge registry (spec §3 "Dependence Edge", §9's central-registry-by-ID
// rule): each Edge holds a forward flag, a saturation level, the two
// Farkas tableaus, and intrusive per-Address chain links. Modeled on
// `core/adjacency_list.go`'s registry-of-adjacency style and
// `matrix/ops/qr.go`'s null-space construction, now over exact rationals.
package dependence
