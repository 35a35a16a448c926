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

// compile-time check that *DB implements repository.JobRepository
var _ repository.JobRepository = (*DB)(nil)

const jobWithCompanyColumns = `
	j.id, j.company_id, j.title, j.description, j.location, j.category,
	j.level, j.salary, j.visible, j.created_at,
	c.id, c.name, c.email, c.logo_url`

// CreateJob inserts a new posting.
func (db *DB) CreateJob(ctx context.Context, job *model.Job) error {
	job.ID = xid.New().String()
	job.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO jobs (id, company_id, title, description, location, category, level, salary, visible, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID,
		job.CompanyID,
		job.Title,
		job.Description,
		job.Location,
		job.Category,
		job.Level,
		job.Salary,
		job.Visible,
		job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting job: %w", err)
	}

	return nil
}

// GetJobByID retrieves a job by ID regardless of visibility, without
// company expansion. This is the internal lookup used for ownership checks
// and application creation.
func (db *DB) GetJobByID(ctx context.Context, id string) (*model.Job, error) {
	var j model.Job

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, company_id, title, description, location, category, level, salary, visible, created_at
		 FROM jobs WHERE id = ?`,
		id,
	).Scan(
		&j.ID,
		&j.CompanyID,
		&j.Title,
		&j.Description,
		&j.Location,
		&j.Category,
		&j.Level,
		&j.Salary,
		&j.Visible,
		&j.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("job", id)
		}
		return nil, fmt.Errorf("sqlite: getting job %s: %w", id, err)
	}

	return &j, nil
}

// GetVisibleJobByID retrieves a visible job with its company expanded.
// A hidden job returns ErrNotFound — the public API must not reveal that
// it exists.
func (db *DB) GetVisibleJobByID(ctx context.Context, id string) (*model.Job, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+jobWithCompanyColumns+`
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE j.id = ? AND j.visible = 1`,
		id,
	)

	j, err := scanJobWithCompany(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("job", id)
		}
		return nil, fmt.Errorf("sqlite: getting visible job %s: %w", id, err)
	}

	return j, nil
}

// ListVisibleJobs returns every visible job with its company expanded,
// newest first. The filter applies case-insensitive substring matches on
// title and location (SQLite LIKE is case-insensitive for ASCII).
//
// This is a full snapshot by design — the public listing has no pagination
// cursor.
func (db *DB) ListVisibleJobs(ctx context.Context, filter repository.JobFilter) ([]model.Job, error) {
	query := `SELECT ` + jobWithCompanyColumns + `
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE j.visible = 1`
	args := []any{}

	if filter.Title != "" {
		query += ` AND j.title LIKE ?`
		args = append(args, "%"+filter.Title+"%")
	}
	if filter.Location != "" {
		query += ` AND j.location LIKE ?`
		args = append(args, "%"+filter.Location+"%")
	}
	query += ` ORDER BY j.created_at DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing visible jobs: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		j, err := scanJobWithCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning job row: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating jobs: %w", err)
	}

	return jobs, nil
}

// ListCompanyJobs returns every job owned by the company, hidden ones
// included, newest first.
func (db *DB) ListCompanyJobs(ctx context.Context, companyID string) ([]model.Job, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, company_id, title, description, location, category, level, salary, visible, created_at
		 FROM jobs
		 WHERE company_id = ?
		 ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing company jobs: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(
			&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location,
			&j.Category, &j.Level, &j.Salary, &j.Visible, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating jobs: %w", err)
	}

	return jobs, nil
}

// SetJobVisibility sets the visible flag to the given value. Setting the
// current value is a no-op success (idempotent).
func (db *DB) SetJobVisibility(ctx context.Context, jobID string, visible bool) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE jobs SET visible = ? WHERE id = ?`,
		visible, jobID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting visibility for job %s: %w", jobID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("job", jobID)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJobWithCompany(s scanner) (*model.Job, error) {
	var j model.Job
	var c model.CompanySummary

	err := s.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location,
		&j.Category, &j.Level, &j.Salary, &j.Visible, &j.CreatedAt,
		&c.ID, &c.Name, &c.Email, &c.LogoURL,
	)
	if err != nil {
		return nil, err
	}

	j.Company = &c
	return &j, nil
}
