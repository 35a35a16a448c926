package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/repository"
)

// compile-time check that *DB implements repository.CompanyRepository
var _ repository.CompanyRepository = (*DB)(nil)

// CreateCompany inserts a new recruiter account. The UNIQUE constraint on
// email is the write-time uniqueness guarantee; a violation surfaces as a
// domain conflict, not a driver error.
func (db *DB) CreateCompany(ctx context.Context, company *model.Company) error {
	company.ID = xid.New().String()
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO companies (id, name, email, password_hash, logo_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		company.ID,
		company.Name,
		company.Email,
		company.PasswordHash,
		company.LogoURL,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "companies.email") {
			return apperror.Conflict("a company with this email already exists")
		}
		return fmt.Errorf("sqlite: inserting company: %w", err)
	}

	return nil
}

// GetCompanyByID retrieves a company by its ID.
func (db *DB) GetCompanyByID(ctx context.Context, id string) (*model.Company, error) {
	return db.getCompany(ctx, `WHERE id = ?`, id, "company", id)
}

// GetCompanyByEmail retrieves a company by its (unique) email.
// Used by login — the NotFound error is indistinguishable from a wrong
// password at the API boundary.
func (db *DB) GetCompanyByEmail(ctx context.Context, email string) (*model.Company, error) {
	return db.getCompany(ctx, `WHERE email = ?`, email, "company", email)
}

func (db *DB) getCompany(ctx context.Context, where string, arg any, resource, key string) (*model.Company, error) {
	var c model.Company

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, logo_url, created_at, updated_at
		 FROM companies `+where,
		arg,
	).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.PasswordHash,
		&c.LogoURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound(resource, key)
		}
		return nil, fmt.Errorf("sqlite: getting %s %s: %w", resource, key, err)
	}

	return &c, nil
}
