// Package scheduler implements the Pluto-style Loop-Block Scheduler
// (spec §4.7): level by level from outermost to innermost it gives every
// ScheduledNode the unit-vector schedule row for that level and checks
// each active dependence with a simplex feasibility test, falling back
// to SCC-based graph splitting and greedy re-fusion when no active
// dependence is satisfied. No ILP objective is minimized and no bounding
// function is computed. The
// level-by-level iterative structure is modeled on `flow/dinic.go`'s
// phase loop; SCC splitting is Kosaraju-Sharir, grounded on the pack's
// `fkuehnel-golang-cfg/go-code/scc.go` rather than the teacher (lvlath
// has no SCC routine of its own).
package scheduler
