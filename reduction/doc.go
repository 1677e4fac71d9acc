// Package reduction implements the Reduction Detector pass (spec
// §4.11): after a store's outgoing edges are sorted by the topological
// position of their downstream Address, each store's first outgoing
// edge is inspected; if it is time-paired (RevTimeEdge ≥ 0), points to a
// load in the same loop that is hoistable at the store's depth, and the
// value chain from the stored operand back to that load consists
// solely of reassociable operations reaching the load exactly once, the
// store and load are annotated as a reduction pair. Grounded on the
// dependence package's intrusive chain-walk idiom (edge.RevTimeEdge,
// Registry.OutChain).
package reduction
