package legality

import "errors"

// ErrNilRegistry is returned when Annotate is called without a
// Dependence Edge registry to read saturation levels from.
var ErrNilRegistry = errors.New("legality: nil edge registry")
