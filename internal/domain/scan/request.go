package scan

import "time"

// Status is the review-workflow state of a scan request. Values outside the
// named constants are legal in the store and carry no notification milestone.
type Status string

const (
	StatusPending       Status = "pending"
	StatusPendingReview Status = "pending_review"
	StatusReviewed      Status = "reviewed"
	StatusCompleted     Status = "completed"
)

// AwaitsExpertReview reports whether the status puts the request in front of
// the expert queue.
func (s Status) AwaitsExpertReview() bool {
	return s == StatusPending || s == StatusPendingReview
}

// ReviewFinished reports whether the status marks the review as done from the
// requesting farmer's point of view.
func (s Status) ReviewFinished() bool {
	return s == StatusReviewed || s == StatusCompleted
}

// Request represents a leaf-scan review request.
// Corresponds to the 'scan_requests' collection owned by the document store;
// this service only ever mutates the two notified flags, and only false→true.
type Request struct {
	ID         string
	Status     Status
	UserID     string // submitting farmer's account ID; may be empty
	UserName   string // display name of the farmer; may be empty
	ExpertName string // display name of the reviewing expert; may be empty

	// Dedup flags. Monotonic: once true they are never reset.
	ExpertsNotified       bool
	UserNotifiedCompleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
