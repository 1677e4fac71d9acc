package pipeline

// Option customizes a Run invocation by mutating a config before the
// pipeline executes. Following the teacher's option-constructor
// contract, constructors validate and panic on meaningless inputs;
// Run itself never panics.
type Option func(cfg *config)

// config holds the resolved pipeline parameters.
type config struct {
	maxDepth         int
	allowRefusion    bool
	detectReductions bool
}

// newConfig returns defaults (no depth cap, re-fusion and reduction
// detection both enabled) with opts applied in order.
func newConfig(opts ...Option) *config {
	cfg := &config{
		maxDepth:         0,
		allowRefusion:    true,
		detectReductions: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithMaxDepth caps how many outer loop levels the scheduler solves.
// Panics if n < 0; n == 0 means unlimited (the default).
func WithMaxDepth(n int) Option {
	if n < 0 {
		panic("pipeline: WithMaxDepth(n<0)")
	}

	return func(cfg *config) {
		cfg.maxDepth = n
	}
}

// WithRefusion toggles the scheduler's greedy re-fusion of SCCs split
// out of a failed depth (spec §4.7). Disabling it is useful when a
// caller wants to inspect the raw split schedule.
func WithRefusion(allow bool) Option {
	return func(cfg *config) {
		cfg.allowRefusion = allow
	}
}

// WithReductionDetection toggles the Reduction Detector stage (spec
// §4.11). Disabling it skips reassociable-reduction annotation, so the
// edges Detect would have paired (all of them time-paired) count as
// "ordered" rather than "unordered" in the resulting Legality Summary;
// other saturated edges are classified as before.
func WithReductionDetection(enabled bool) Option {
	return func(cfg *config) {
		cfg.detectReductions = enabled
	}
}
