// internal/domain/notification/resolver.go
package notification

import (
	"fmt"

	"scan_review_notifier/internal/domain/scan"
)

// Placeholder names used when the record carries no display name. Missing
// names only degrade the message text, they never block the intent.
const (
	defaultUserName   = "A farmer"
	defaultExpertName = "An expert"
)

// ResolveCreated decides whether a freshly created scan request reaches the
// expert-review-requested milestone. A creation with no status at all is
// treated as "pending". Returns nil when no notification is due.
func ResolveCreated(after *scan.Request) *Intent {
	status := after.Status
	if status == "" {
		status = scan.StatusPending
	}
	if !status.AwaitsExpertReview() {
		return nil
	}
	if after.ExpertsNotified {
		return nil
	}
	return expertReviewIntent(after.ID, after.UserName)
}

// ResolveUpdated decides whether an update event reaches a milestone.
// A no-change update (same status before and after) never produces an
// intent, regardless of the status value. The expert milestone fires only
// when the status moved into the pending set from outside it, so a
// pending→pending_review shuffle does not re-trigger it.
func ResolveUpdated(before, after *scan.Request) *Intent {
	if before == nil || before.Status == after.Status {
		return nil
	}

	if after.Status.AwaitsExpertReview() {
		if before.Status.AwaitsExpertReview() {
			return nil
		}
		if after.ExpertsNotified {
			return nil
		}
		userName := after.UserName
		if userName == "" {
			userName = before.UserName
		}
		return expertReviewIntent(after.ID, userName)
	}

	if after.Status.ReviewFinished() {
		if after.UserNotifiedCompleted {
			return nil
		}
		userID := after.UserID
		if userID == "" {
			userID = before.UserID
		}
		if userID == "" {
			// Nobody to notify; not an error.
			return nil
		}
		return reviewCompletedIntent(after.ID, userID, after.ExpertName)
	}

	return nil
}

func expertReviewIntent(requestID, userName string) *Intent {
	if userName == "" {
		userName = defaultUserName
	}
	return &Intent{
		Kind:      KindExpertReviewRequested,
		RequestID: requestID,
		Payload: Payload{
			Title: "New review request",
			Body:  fmt.Sprintf("%s submitted a leaf scan for expert review.", userName),
			Data: map[string]string{
				DataKeyType:      TypeScanRequestCreated,
				DataKeyRequestID: requestID,
				DataKeyUserName:  userName,
			},
		},
	}
}

func reviewCompletedIntent(requestID, userID, expertName string) *Intent {
	if expertName == "" {
		expertName = defaultExpertName
	}
	return &Intent{
		Kind:      KindUserReviewCompleted,
		RequestID: requestID,
		UserID:    userID,
		Payload: Payload{
			Title: "Your review is ready",
			Body:  fmt.Sprintf("%s has completed the analysis of your leaf scan.", expertName),
			Data: map[string]string{
				DataKeyType:       TypeScanRequestCompleted,
				DataKeyRequestID:  requestID,
				DataKeyExpertName: expertName,
			},
		},
	}
}
