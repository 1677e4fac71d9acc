package pipeline

import (
	"fmt"

	"github.com/arevlabs/polysched/address"
	"github.com/arevlabs/polysched/dependence"
	"github.com/arevlabs/polysched/legality"
	"github.com/arevlabs/polysched/looptree"
	"github.com/arevlabs/polysched/rebuild"
	"github.com/arevlabs/polysched/reduction"
	"github.com/arevlabs/polysched/schednode"
	"github.com/arevlabs/polysched/scheduler"
	"github.com/arevlabs/polysched/simplify"
)

// LoopResult bundles one Loop's rebuilt body, simplification outcome
// and legality annotation (spec §4.9-§4.12).
type LoopResult struct {
	Loop       *looptree.Loop
	Rebuilt    *rebuild.Rebuilt
	Simplified *simplify.Result
	Legality   legality.Summary
}

// Result is the full outcome of a Run: the scheduler's combined
// Result, the rebuilt loop tree, a per-loop LoopResult, and any
// reassociable reduction pairs found across the whole tree.
type Result struct {
	Schedule   scheduler.Result
	Tree       *looptree.Tree
	Loops      map[*looptree.Loop]*LoopResult
	Reductions []reduction.Pair
}

// Run wires the Loop-Block Scheduler (C7) through the Loop Tree
// Builder (C8), Graph Rebuilder (C9), Addr Simplifier (C10), Reduction
// Detector (C11) and Legality Annotator (C12), in that fixed order
// (spec §4.7-§4.12). chain/valueOf feed the Reduction Detector; pass a
// nil chain to skip it regardless of WithReductionDetection.
func Run(
	nodes []*schednode.Node,
	edges *dependence.Registry,
	refs []scheduler.EdgeRef,
	chain reduction.Chain,
	valueOf reduction.ValueOf,
	opts ...Option,
) (*Result, error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}
	cfg := newConfig(opts...)

	g := scheduler.NewGraph(nodes, edges, refs)
	g.SetAllowRefusion(cfg.allowRefusion)
	g.SetDepthCap(cfg.maxDepth)
	sres, err := g.Schedule()
	if err != nil {
		return nil, fmt.Errorf("Run: schedule: %w", err)
	}
	if sres == scheduler.Failure {
		return nil, fmt.Errorf("Run: %w", ErrScheduleFailed)
	}

	tree, err := looptree.Build(nodes)
	if err != nil {
		return nil, fmt.Errorf("Run: tree: %w", err)
	}

	rebuilt, err := rebuild.RebuildTree(tree, edges)
	if err != nil {
		return nil, fmt.Errorf("Run: rebuild: %w", err)
	}

	loops := make(map[*looptree.Loop]*LoopResult)
	var allStores, allLoads []*address.Address
	if err := walkLoops(tree.Root, func(l *looptree.Loop, depth int) error {
		rb := rebuilt[l]
		if rb == nil {
			rb = &rebuild.Rebuilt{}
		}
		sr, err := simplify.Simplify(rb.Body)
		if err != nil {
			return fmt.Errorf("simplify loop at depth %d: %w", depth, err)
		}
		loops[l] = &LoopResult{Loop: l, Rebuilt: rb, Simplified: sr}

		// Simplify may have dropped stores/loads in rb.Body; AddrChain
		// skips them automatically so the Reduction Detector never sees
		// a dead Address (spec §6's "to downstream passes ... an AddrChain").
		chain := address.NewAddrChain(rb.Body)
		for a, ok := chain.Next(); ok; a, ok = chain.Next() {
			if a.Kind == address.Store {
				allStores = append(allStores, a)
			} else {
				allLoads = append(allLoads, a)
			}
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	var pairs []reduction.Pair
	if cfg.detectReductions && chain != nil {
		pairs = reduction.Detect(allStores, allLoads, edges, chain, valueOf)
	}

	if err := walkLoops(tree.Root, func(l *looptree.Loop, depth int) error {
		sum, err := legality.Annotate(l.Addresses, edges, depth)
		if err != nil {
			return fmt.Errorf("legality at depth %d: %w", depth, err)
		}
		if l.Parent != nil {
			if parentResult, ok := loops[l.Parent]; ok {
				sum = sum.And(parentResult.Legality)
			}
		}
		loops[l].Legality = sum

		return nil
	}); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	return &Result{Schedule: sres, Tree: tree, Loops: loops, Reductions: pairs}, nil
}

// walkLoops visits every Loop in tree order (parent before children),
// threading depth (the loop's distance from the root) to each visitor.
// Legality depends on the parent's Summary having already been
// computed, so this must run outermost-first, the mirror image of
// rebuild's innermost-first walk.
func walkLoops(root *looptree.Loop, visit func(l *looptree.Loop, depth int) error) error {
	var walk func(l *looptree.Loop, depth int) error
	walk = func(l *looptree.Loop, depth int) error {
		if l.Affine != nil {
			if err := visit(l, depth); err != nil {
				return err
			}
		}
		for _, c := range l.Children() {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}

		return nil
	}

	return walk(root, 0)
}
