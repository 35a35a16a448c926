// Package repository defines the storage interfaces the service layer
// programs against. The sqlite subpackage is the only implementation;
// tests substitute in-memory databases or hand-written mocks.
package repository

import (
	"context"

	"github.com/hirehive/hirehive/internal/model"
)

// JobFilter narrows public job listings. Empty fields match everything;
// non-empty fields are case-insensitive substring matches.
type JobFilter struct {
	Title    string
	Location string
}

// UserRepository stores job seeker records. All writes except UpdateResume
// originate from identity provider webhooks.
type UserRepository interface {
	// Insert creates a user with the provider-issued ID.
	// Returns apperror.ErrConflict if the ID already exists.
	Insert(ctx context.Context, user *model.User) error
	// UpdateProfile updates name/email/avatar only — never the resume.
	// Returns apperror.ErrNotFound if the user does not exist.
	UpdateProfile(ctx context.Context, id, name, email, avatarURL string) error
	// UpdateResume overwrites the stored resume URL.
	UpdateResume(ctx context.Context, id, resumeURL string) error
	// Delete removes the user. Returns apperror.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// CompanyRepository stores recruiter accounts.
type CompanyRepository interface {
	// CreateCompany inserts a new company. Returns apperror.ErrConflict if
	// the email is already registered.
	CreateCompany(ctx context.Context, company *model.Company) error
	GetCompanyByID(ctx context.Context, id string) (*model.Company, error)
	GetCompanyByEmail(ctx context.Context, email string) (*model.Company, error)
}

// JobRepository stores job postings. Jobs are never deleted — visibility
// is the only lifecycle bit.
type JobRepository interface {
	CreateJob(ctx context.Context, job *model.Job) error
	GetJobByID(ctx context.Context, id string) (*model.Job, error)
	// GetVisibleJobByID returns a visible job with its company expanded.
	// Hidden jobs are indistinguishable from absent ones (ErrNotFound).
	GetVisibleJobByID(ctx context.Context, id string) (*model.Job, error)
	// ListVisibleJobs returns all visible jobs, company expanded,
	// newest first.
	ListVisibleJobs(ctx context.Context, filter JobFilter) ([]model.Job, error)
	// ListCompanyJobs returns all jobs owned by the company regardless of
	// visibility, newest first.
	ListCompanyJobs(ctx context.Context, companyID string) ([]model.Job, error)
	// SetJobVisibility sets the flag to the given value (idempotent).
	SetJobVisibility(ctx context.Context, jobID string, visible bool) error
}

// ApplicationRepository stores job applications. The (user_id, job_id)
// UNIQUE constraint in storage is the authoritative duplicate guard.
type ApplicationRepository interface {
	// CreateApplication inserts a new application.
	// Returns apperror.ErrConflict if the user already applied to the job.
	CreateApplication(ctx context.Context, app *model.Application) error
	GetApplicationByID(ctx context.Context, id string) (*model.Application, error)
	// HasApplied is the fast-path duplicate pre-check; the UNIQUE
	// constraint remains the source of truth.
	HasApplied(ctx context.Context, userID, jobID string) (bool, error)
	// ListUserApplications returns the user's applications with job and
	// company expanded. Rows whose job or company is gone are filtered
	// out, not surfaced as errors.
	ListUserApplications(ctx context.Context, userID string) ([]model.UserApplication, error)
	// ListCompanyApplicants returns applications across all of the
	// company's jobs with user and job expanded, newest first.
	ListCompanyApplicants(ctx context.Context, companyID string) ([]model.CompanyApplicant, error)
	// UpdateApplicationStatus transitions a pending application to the
	// given status. Returns apperror.ErrInvalidState if the application is
	// no longer pending (checked atomically in the same statement).
	UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) error
}
