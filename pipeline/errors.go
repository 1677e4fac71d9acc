package pipeline

import "errors"

// ErrNoNodes is returned when Run is called with an empty node set;
// there is nothing to schedule.
var ErrNoNodes = errors.New("pipeline: no scheduled nodes")

// ErrScheduleFailed is returned when the Loop-Block Scheduler could not
// resolve a legal schedule for every depth (spec §4.7: overall Result
// of Failure).
var ErrScheduleFailed = errors.New("pipeline: scheduling failed")
