package service

import (
	"context"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/repository"
)

// ApplicationService handles applying to openings and reviewing applicants.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
}

func NewApplicationService(applications repository.ApplicationRepository, jobs repository.JobRepository) *ApplicationService {
	return &ApplicationService{applications: applications, jobs: jobs}
}

// Apply submits one application for the user to the given opening. The
// HasApplied pre-check is a fast path only; two racing submissions are
// decided by the unique (user, job) constraint in the store, and both
// surface the same conflict error.
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID string) (*model.Application, error) {
	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	applied, err := s.applications.HasApplied(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, apperror.Conflict("Already Applied")
	}

	app := &model.Application{
		UserID:    userID,
		JobID:     jobID,
		CompanyID: job.CompanyID,
	}
	if err := s.applications.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListForUser returns the user's applications with job and company
// snapshots attached.
func (s *ApplicationService) ListForUser(ctx context.Context, userID string) ([]model.UserApplication, error) {
	return s.applications.ListUserApplications(ctx, userID)
}

// ListApplicants returns every application to the recruiter's openings,
// with applicant and job snapshots attached.
func (s *ApplicationService) ListApplicants(ctx context.Context, companyID string) ([]model.CompanyApplicant, error) {
	return s.applications.ListCompanyApplicants(ctx, companyID)
}

// SetStatus moves one application from Pending to Accepted or Rejected.
// Only the company that owns the application may decide it, and decided
// applications stay decided.
func (s *ApplicationService) SetStatus(ctx context.Context, companyID, applicationID, status string) (*model.Application, error) {
	next, ok := model.ParseStatus(status)
	if !ok {
		return nil, apperror.ValidationFailed("status", "status must be Accepted or Rejected")
	}
	if next == model.StatusPending {
		return nil, apperror.ValidationFailed("status", "status must be Accepted or Rejected")
	}

	app, err := s.applications.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.CompanyID != companyID {
		return nil, apperror.Forbidden("application belongs to another company")
	}
	if !app.Status.CanTransitionTo(next) {
		return nil, apperror.InvalidState("application is no longer pending")
	}

	// The conditional update re-checks the Pending precondition, so a
	// concurrent decision between the read above and this write still
	// loses cleanly.
	if err := s.applications.UpdateApplicationStatus(ctx, applicationID, next); err != nil {
		return nil, err
	}
	app.Status = next
	return app, nil
}
