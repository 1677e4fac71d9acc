package rebuild

import "errors"

// White, Gray and Black are the DFS visitation states of a body index,
// in the teacher's three-color idiom.
const (
	White = iota
	Gray
	Black
)

var (
	// ErrCycleDetected is returned when the topological sort of a loop
	// body encounters a back-edge.
	ErrCycleDetected = errors.New("rebuild: cycle detected in loop body")

	// ErrSameDepthCycle is the debug assertion failure of spec §4.10 step
	// 3: a cycle exists purely among dependence edges saturated at the
	// loop's own depth, which a correct schedule must never produce.
	ErrSameDepthCycle = errors.New("rebuild: cycle among same-depth dependences")
)

// Placement classifies a loop-independent Address relative to its
// owning loop (spec §4.10 step 2).
type Placement int

const (
	// InBody means the Address stays inside the loop (dependent on it).
	InBody Placement = iota
	// Before means the Address is hoisted above the loop's entry.
	Before
	// After means the Address is hoisted below the loop's exit.
	After
)
