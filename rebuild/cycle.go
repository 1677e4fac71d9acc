package rebuild

import "fmt"

// AssertAcyclic is the debug assertion of spec §4.10 step 3: the
// dependence edges saturated at a loop's own depth must never form a
// cycle (a correctly scheduled program can't carry a same-depth cycle).
// It reuses TopologicalSort purely for its cycle-detecting back-edge
// check and discards the ordering.
func AssertAcyclic(g *BodyGraph) error {
	if _, err := TopologicalSort(g); err != nil {
		return fmt.Errorf("AssertAcyclic: %w", ErrSameDepthCycle)
	}

	return nil
}
