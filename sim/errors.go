package sim

import "fmt"

// InvalidParameterError reports a configuration value that fails validation.
// It is always detected before any replication starts running.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// SchedulerInvariantError reports an event scheduled strictly behind the
// simulation clock. This is an internal defect in an event handler, not a
// user error: the offending replication aborts and the event data is
// surfaced to the caller. Results from other replications remain valid.
type SchedulerInvariantError struct {
	EventKind string
	EventTime float64
	Clock     float64
}

func (e *SchedulerInvariantError) Error() string {
	return fmt.Sprintf("scheduler invariant violated: %s event at t=%g scheduled behind clock t=%g",
		e.EventKind, e.EventTime, e.Clock)
}
