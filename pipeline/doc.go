// Package pipeline is the single public entry point that wires the
// Loop-Block Scheduler, Loop Tree Builder, Graph Rebuilder, Addr
// Simplifier, Reduction Detector and Legality Annotator into one
// deterministic pass over a scheduled block (spec §4.7-§4.12).
//
// The design mirrors the teacher's builder package: one orchestrator
// (Run) that resolves a functional-options config, then threads a
// fixed stage order through it, wrapping every stage error with its
// own context at the boundary rather than inside each stage.
package pipeline
