package metrics

import "sync/atomic"

// Counters tracks delivery outcomes across all activations. The flag-write
// failure counter in particular makes the residual duplicate-risk window
// measurable instead of a swallowed catch.
type Counters struct {
	IntentsResolved      atomic.Int64
	Admitted             atomic.Int64
	DuplicatesSuppressed atomic.Int64
	DispatchSuccess      atomic.Int64
	DispatchFailure      atomic.Int64
	FlagWriteFailures    atomic.Int64
	StaleTokensCleared   atomic.Int64
}

func NewCounters() *Counters {
	return &Counters{}
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	IntentsResolved      int64
	Admitted             int64
	DuplicatesSuppressed int64
	DispatchSuccess      int64
	DispatchFailure      int64
	FlagWriteFailures    int64
	StaleTokensCleared   int64
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		IntentsResolved:      c.IntentsResolved.Load(),
		Admitted:             c.Admitted.Load(),
		DuplicatesSuppressed: c.DuplicatesSuppressed.Load(),
		DispatchSuccess:      c.DispatchSuccess.Load(),
		DispatchFailure:      c.DispatchFailure.Load(),
		FlagWriteFailures:    c.FlagWriteFailures.Load(),
		StaleTokensCleared:   c.StaleTokensCleared.Load(),
	}
}

// Fields flattens the snapshot for structured logging.
func (s Snapshot) Fields() map[string]interface{} {
	return map[string]interface{}{
		"intents_resolved":      s.IntentsResolved,
		"admitted":              s.Admitted,
		"duplicates_suppressed": s.DuplicatesSuppressed,
		"dispatch_success":      s.DispatchSuccess,
		"dispatch_failure":      s.DispatchFailure,
		"flag_write_failures":   s.FlagWriteFailures,
		"stale_tokens_cleared":  s.StaleTokensCleared,
	}
}
