package scan

import "context"

// Repository defines the narrow slice of the document store this service
// touches on scan requests: the conditional dedup-flag writes. Each mark is a
// test-and-set against the currently persisted flag value, not against any
// event snapshot, and doubles as the admission decision for a milestone.
type Repository interface {
	// MarkExpertsNotified flips experts_notified false→true for the request.
	// Returns true only when this call performed the transition; false when
	// the flag was already set (or the record is unknown), with no write done.
	MarkExpertsNotified(ctx context.Context, requestID string) (bool, error)

	// MarkUserNotifiedCompleted is the same contract for the
	// user_notified_completed flag.
	MarkUserNotifiedCompleted(ctx context.Context, requestID string) (bool, error)
}
