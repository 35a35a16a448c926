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

// compile-time check that *DB implements repository.ApplicationRepository
var _ repository.ApplicationRepository = (*DB)(nil)

// CreateApplication inserts a new application.
//
// The UNIQUE (user_id, job_id) constraint is the authoritative duplicate
// guard: even if two instances race past the HasApplied pre-check, exactly
// one INSERT wins and the loser gets a domain conflict.
func (db *DB) CreateApplication(ctx context.Context, app *model.Application) error {
	app.ID = xid.New().String()
	if app.Status == "" {
		app.Status = model.StatusPending
	}
	app.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO applications (id, user_id, job_id, company_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		app.ID,
		app.UserID,
		app.JobID,
		app.CompanyID,
		string(app.Status),
		app.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "applications.user_id") {
			return apperror.Conflict("Already Applied")
		}
		return fmt.Errorf("sqlite: inserting application: %w", err)
	}

	return nil
}

// GetApplicationByID retrieves an application by ID.
func (db *DB) GetApplicationByID(ctx context.Context, id string) (*model.Application, error) {
	var a model.Application
	var status string

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, job_id, company_id, status, created_at
		 FROM applications WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.UserID, &a.JobID, &a.CompanyID, &status, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("application", id)
		}
		return nil, fmt.Errorf("sqlite: getting application %s: %w", id, err)
	}

	a.Status = model.ApplicationStatus(status)
	return &a, nil
}

// HasApplied reports whether the user already applied to the job. This is
// only the fast path — CreateApplication remains correct without it.
func (db *DB) HasApplied(ctx context.Context, userID, jobID string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE user_id = ? AND job_id = ?`,
		userID, jobID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking existing application: %w", err)
	}
	return count > 0, nil
}

// ListUserApplications returns the user's applications with the referenced
// job and company expanded, newest first.
//
// INNER JOINs do the defensive filtering required here: an application
// whose job or company row has been hard-deleted simply produces no row,
// instead of faulting the whole listing.
func (db *DB) ListUserApplications(ctx context.Context, userID string) ([]model.UserApplication, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT a.id, a.user_id, a.job_id, a.company_id, a.status, a.created_at,
		        j.id, j.title, j.location, j.category, j.level, j.salary,
		        c.id, c.name, c.email, c.logo_url
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN companies c ON c.id = a.company_id
		 WHERE a.user_id = ?
		 ORDER BY a.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing user applications: %w", err)
	}
	defer rows.Close()

	apps := []model.UserApplication{}
	for rows.Next() {
		var ua model.UserApplication
		var status string
		if err := rows.Scan(
			&ua.ID, &ua.UserID, &ua.JobID, &ua.CompanyID, &status, &ua.CreatedAt,
			&ua.Job.ID, &ua.Job.Title, &ua.Job.Location, &ua.Job.Category, &ua.Job.Level, &ua.Job.Salary,
			&ua.Company.ID, &ua.Company.Name, &ua.Company.Email, &ua.Company.LogoURL,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user application row: %w", err)
		}
		ua.Status = model.ApplicationStatus(status)
		apps = append(apps, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user applications: %w", err)
	}

	return apps, nil
}

// ListCompanyApplicants returns applications across all of the company's
// jobs with the applying user and the job expanded, newest first. Rows
// whose user has been deleted by a provider webhook are filtered out by
// the JOIN.
func (db *DB) ListCompanyApplicants(ctx context.Context, companyID string) ([]model.CompanyApplicant, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT a.id, a.user_id, a.job_id, a.company_id, a.status, a.created_at,
		        u.id, u.name, u.email, u.avatar_url, u.resume_url,
		        j.id, j.title, j.location, j.category, j.level, j.salary
		 FROM applications a
		 JOIN users u ON u.id = a.user_id
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.company_id = ?
		 ORDER BY a.created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing company applicants: %w", err)
	}
	defer rows.Close()

	apps := []model.CompanyApplicant{}
	for rows.Next() {
		var ca model.CompanyApplicant
		var status string
		if err := rows.Scan(
			&ca.ID, &ca.UserID, &ca.JobID, &ca.CompanyID, &status, &ca.CreatedAt,
			&ca.User.ID, &ca.User.Name, &ca.User.Email, &ca.User.AvatarURL, &ca.User.ResumeURL,
			&ca.Job.ID, &ca.Job.Title, &ca.Job.Location, &ca.Job.Category, &ca.Job.Level, &ca.Job.Salary,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning applicant row: %w", err)
		}
		ca.Status = model.ApplicationStatus(status)
		apps = append(apps, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating applicants: %w", err)
	}

	return apps, nil
}

// UpdateApplicationStatus transitions a PENDING application to the given
// status. The "AND status = 'Pending'" guard makes the state check atomic
// with the write — two concurrent transitions cannot both succeed, and a
// transition out of a terminal state affects zero rows.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE applications SET status = ? WHERE id = ? AND status = ?`,
		string(status), id, string(model.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating application %s status: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Either the application doesn't exist or it already left Pending.
		// Distinguish so the caller can answer 404 vs "illegal transition".
		if _, err := db.GetApplicationByID(ctx, id); err != nil {
			return err
		}
		return apperror.InvalidState("application is no longer pending")
	}

	return nil
}
