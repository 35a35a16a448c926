package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Insert creates a user with the identity-provider-issued ID.
//
// The webhook consumer relies on the ErrConflict translation here for
// idempotent retries: a redelivered user.created event hits the primary
// key and comes back as a conflict, not a duplicate row.
func (db *DB) Insert(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, avatar_url, resume_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.AvatarURL,
		user.ResumeURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "users.id") {
			return apperror.Conflict(fmt.Sprintf("user %s already exists", user.ID))
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.ID, err)
	}

	return nil
}

// UpdateProfile updates name/email/avatar only. The resume_url column is
// deliberately absent from the SET list — provider updates must never
// clobber an uploaded resume.
func (db *DB) UpdateProfile(ctx context.Context, id, name, email, avatarURL string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, avatar_url = ?, updated_at = ?
		 WHERE id = ?`,
		name, email, avatarURL, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}

// UpdateResume overwrites the stored resume URL.
func (db *DB) UpdateResume(ctx context.Context, id, resumeURL string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET resume_url = ?, updated_at = ? WHERE id = ?`,
		resumeURL, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating resume for user %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}

// Delete removes the user row. Applications referencing the user stay —
// orphans are filtered on read, never cascaded.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM users WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}

// GetUserByID retrieves a user by the provider-issued ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, avatar_url, resume_url, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.AvatarURL,
		&u.ResumeURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &u, nil
}
