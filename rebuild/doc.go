// Package rebuild implements the Graph Rebuilder / Top-Sort pass (spec
// §4.10): per loop, from innermost outward, loop-independent Addresses
// are hoisted before or after the loop body, and the remaining body is
// linearized by a reverse-post-order topological sort with a debug
// assertion that the dependence edges carried at the loop's own depth
// form no cycle. The three-color (White/Gray/Black) DFS idiom and the
// "reverse post-order = topological order" construction are kept from
// the teacher's `dfs` package; the graph walked is now the per-loop
// Address body instead of a `core.Graph`.
package rebuild
