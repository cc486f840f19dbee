// internal/domain/notification/intent.go
package notification

// Kind names a notification-worthy milestone of a scan request.
type Kind string

const (
	KindExpertReviewRequested Kind = "EXPERT_REVIEW_REQUESTED"
	KindUserReviewCompleted   Kind = "USER_REVIEW_COMPLETED"
)

// RecipientClass identifies who a milestone notification is addressed to.
type RecipientClass string

const (
	RecipientExperts RecipientClass = "EXPERTS" // every expert account
	RecipientUser    RecipientClass = "USER"    // the request's submitting farmer
)

// Data map keys and values carried by every notification payload.
const (
	DataKeyType       = "type"
	DataKeyRequestID  = "requestId"
	DataKeyUserName   = "userName"
	DataKeyExpertName = "expertName"

	TypeScanRequestCreated   = "scan_request_created"
	TypeScanRequestCompleted = "scan_request_completed"
)

// Payload is the wire-neutral content of a notification.
type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// Intent is the transient decision that a milestone was just reached and a
// notification should be attempted. Zero or one intent exists per change
// event; admission (the dedup-flag test-and-set) happens downstream.
type Intent struct {
	Kind      Kind
	RequestID string
	UserID    string // set only for KindUserReviewCompleted
	Payload   Payload
}

// Recipients derives the recipient class from the milestone kind.
func (i *Intent) Recipients() RecipientClass {
	if i.Kind == KindUserReviewCompleted {
		return RecipientUser
	}
	return RecipientExperts
}
