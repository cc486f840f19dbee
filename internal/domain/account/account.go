package account

import "time"

// Role distinguishes the two user populations of the review workflow.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleExpert Role = "expert"
)

// Account represents a user of the scan-review application.
// Corresponds to the 'accounts' collection owned by the document store.
type Account struct {
	ID       string
	Role     Role
	FCMToken string // push delivery address; empty means no registered device

	// EnableNotifications is a tri-state preference: nil (never set) and true
	// both mean enabled, only an explicit false suppresses delivery.
	EnableNotifications *bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotificationsEnabled resolves the tri-state preference.
func (a *Account) NotificationsEnabled() bool {
	return a.EnableNotifications == nil || *a.EnableNotifications
}
