// internal/infra/database/postgres_scan_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresScanRepository struct {
	db *sql.DB
}

func NewPostgresScanRepository(db *sql.DB) *PostgresScanRepository {
	return &PostgresScanRepository{db: db}
}

// MarkExpertsNotified performs the atomic test-and-set on the
// experts_notified flag. The WHERE clause re-checks the currently persisted
// flag value, so a redelivered or racing event whose snapshot still shows
// the flag unset loses here: zero rows affected, no write, not admitted.
func (r *PostgresScanRepository) MarkExpertsNotified(ctx context.Context, requestID string) (bool, error) {
	return r.markFlag(ctx, "experts_notified", requestID)
}

// MarkUserNotifiedCompleted is the same conditional write for the
// user_notified_completed flag.
func (r *PostgresScanRepository) MarkUserNotifiedCompleted(ctx context.Context, requestID string) (bool, error) {
	return r.markFlag(ctx, "user_notified_completed", requestID)
}

func (r *PostgresScanRepository) markFlag(ctx context.Context, column, requestID string) (bool, error) {
	// column comes from the two callers above, never from input.
	query := fmt.Sprintf(`UPDATE scan_requests
               SET %s = TRUE, updated_at = NOW()
               WHERE id = $1 AND %s = FALSE`, column, column)

	res, err := r.db.ExecContext(ctx, query, requestID)
	if err != nil {
		return false, fmt.Errorf("error marking %s for request %s: %w", column, requestID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected for %s on request %s: %w", column, requestID, err)
	}
	return affected == 1, nil
}
