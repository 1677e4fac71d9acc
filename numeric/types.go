// Package numeric defines configuration options for the simplex routines.
package numeric

// SimplexOptions configures the two-phase simplex used by Lambda-feasibility
// queries (symbolic package) and by the per-edge feasibility check
// (scheduler package).
//   - MaxPivots:  upper bound on simplex pivots before giving up as
//     degenerate/cycling; 0 means "use a dimension-derived default".
//   - UseBland:   force Bland's anti-cycling pivot rule instead of the
//     (faster, usually safe) most-negative-reduced-cost rule.
//
// Use NewSimplexOptions to create with default values and overrides.
type SimplexOptions struct {
	MaxPivots int  // pivot budget before declaring non-termination
	UseBland  bool // Bland's rule forces termination at the cost of speed
}

// SimplexOption configures a SimplexOptions instance.
type SimplexOption func(*SimplexOptions)

// WithMaxPivots returns a SimplexOption that sets the pivot budget.
func WithMaxPivots(n int) SimplexOption {
	return func(o *SimplexOptions) { o.MaxPivots = n }
}

// WithBlandRule returns a SimplexOption that forces Bland's pivot rule.
func WithBlandRule(use bool) SimplexOption {
	return func(o *SimplexOptions) { o.UseBland = use }
}

// NewSimplexOptions constructs a SimplexOptions with given options applied.
// Defaults: MaxPivots=0 (dimension-derived), UseBland=false.
func NewSimplexOptions(opts ...SimplexOption) SimplexOptions {
	so := SimplexOptions{
		MaxPivots: 0,
		UseBland:  false,
	}
	for _, opt := range opts {
		opt(&so)
	}

	return so
}
