package account

import "context"

// Repository defines the operations this service needs on user accounts:
// lookups for recipient resolution and merge-style partial writes that touch
// a single field each, never the whole record.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Account, error)
	ListByRole(ctx context.Context, role Role) ([]*Account, error)

	// SetFCMToken merge-writes the device token of an existing account.
	SetFCMToken(ctx context.Context, id string, token string) error

	// ClearFCMTokenByValue removes a token wherever it is still registered.
	// Used when the push transport reports the token as dead; clearing a
	// token that no account holds anymore is a no-op, not an error.
	ClearFCMTokenByValue(ctx context.Context, token string) error

	// SetNotificationsEnabled merge-writes the delivery preference.
	SetNotificationsEnabled(ctx context.Context, id string, enabled bool) error
}
