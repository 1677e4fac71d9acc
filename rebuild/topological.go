package rebuild

import (
	"context"
	"fmt"
)

// TopoOption configures optional behavior for TopologicalSort, mirroring
// the teacher's `dfs.TopoOption` (`dfs/topological.go`).
type TopoOption func(*topoOptions)

// topoOptions holds settings for TopologicalSort; currently only
// cancellation, same as the teacher's topoOptions.
type topoOptions struct {
	ctx context.Context
}

func defaultTopoOptions() topoOptions {
	return topoOptions{ctx: context.Background()}
}

// WithCancelContext returns a TopoOption that sets the cancellation
// context checked before visiting each body index. Passing a nil
// context has no effect.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(o *topoOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// TopologicalSort computes a reverse-post-order linearization of g's
// body indices, the teacher's three-color DFS idiom adapted from
// `core.Graph` vertex IDs to body-array indices (spec §4.10 step 3:
// "the remaining body is sorted in reverse post-order"). Pass
// WithCancelContext(ctx) to abort a large body's sort early.
func TopologicalSort(g *BodyGraph, options ...TopoOption) ([]int, error) {
	opts := defaultTopoOptions()
	for _, opt := range options {
		opt(&opts)
	}

	state := make([]int, g.N())
	order := make([]int, 0, g.N())

	var visit func(int) error
	visit = func(u int) error {
		select {
		case <-opts.ctx.Done():
			return opts.ctx.Err()
		default:
		}

		state[u] = Gray
		for _, v := range g.out[u] {
			switch state[v] {
			case White:
				if err := visit(v); err != nil {
					return err
				}
			case Gray:
				return fmt.Errorf("TopologicalSort: %w", ErrCycleDetected)
			}
		}
		state[u] = Black
		order = append(order, u)

		return nil
	}

	for u := 0; u < g.N(); u++ {
		if state[u] == White {
			if err := visit(u); err != nil {
				return nil, err
			}
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}
