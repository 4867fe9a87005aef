package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// CreateUser inserts a new account and returns its ID. A taken username
// yields ErrDuplicate.
func (t *Tx) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO account (username, password_hash)
		VALUES (?, ?)
	`, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("user %q: %w", username, ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert user %s: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user %s: %w", username, err)
	}
	return id, nil
}

// FindUserByUsername retrieves an account by username. It returns nil when
// no such account exists.
func (t *Tx) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, username, password_hash
		FROM account WHERE username = ?
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user %s: %w", username, err)
	}
	return &u, nil
}
