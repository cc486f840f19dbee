// internal/infra/database/postgres_account_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"scan_review_notifier/internal/domain/account"
)

// Custom errors specific to the account repository.
var ErrAccountNotFound = fmt.Errorf("account not found")

type PostgresAccountRepository struct {
	db *sql.DB
}

func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	query := `SELECT id, role, fcm_token, enable_notifications, created_at, updated_at
               FROM accounts WHERE id = $1`
	a, err := scanAccountRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("error getting account by ID: %w", err)
	}
	return a, nil
}

func (r *PostgresAccountRepository) ListByRole(ctx context.Context, role account.Role) ([]*account.Account, error) {
	query := `SELECT id, role, fcm_token, enable_notifications, created_at, updated_at
               FROM accounts WHERE role = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts by role: %w", err)
	}
	defer rows.Close()

	accounts := make([]*account.Account, 0)
	for rows.Next() {
		a, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// SetFCMToken merge-writes only the token column of an existing account.
func (r *PostgresAccountRepository) SetFCMToken(ctx context.Context, id string, token string) error {
	query := `UPDATE accounts SET fcm_token = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, token)
	if err != nil {
		return fmt.Errorf("error setting fcm token for account %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for token update on account %s: %w", id, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// ClearFCMTokenByValue drops a dead token from whichever account still holds
// it. Zero affected rows is fine: another cleanup or a re-registration may
// have gotten there first.
func (r *PostgresAccountRepository) ClearFCMTokenByValue(ctx context.Context, token string) error {
	query := `UPDATE accounts SET fcm_token = NULL, updated_at = NOW() WHERE fcm_token = $1`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("error clearing dead fcm token: %w", err)
	}
	return nil
}

// SetNotificationsEnabled merge-writes only the preference column.
func (r *PostgresAccountRepository) SetNotificationsEnabled(ctx context.Context, id string, enabled bool) error {
	query := `UPDATE accounts SET enable_notifications = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, enabled)
	if err != nil {
		return fmt.Errorf("error setting notification preference for account %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for preference update on account %s: %w", id, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccountRow(row scanner) (*account.Account, error) {
	a := &account.Account{}
	var token sql.NullString
	var enabled sql.NullBool
	if err := row.Scan(&a.ID, &a.Role, &token, &enabled, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if token.Valid {
		a.FCMToken = token.String
	}
	if enabled.Valid {
		a.EnableNotifications = &enabled.Bool
	}
	return a, nil
}
