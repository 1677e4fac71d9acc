// Package loopnest implements the Affine Loop model: an integer
// constraint matrix `A·[1; s; i] ≥ 0` plus a dynamic-symbol list,
// supporting rotation, peeling, Fourier-Motzkin loop removal, bound
// pruning and emptiness checks (spec §4.2). The matrix is stored
// row-major flat, the same layout `matrix/dense.go` uses, and mutating
// operations follow the teacher's numbered-Stage Blueprint comment
// style from `dfs/topological.go`.
package loopnest
