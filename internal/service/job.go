package service

import (
	"context"
	"strings"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/repository"
)

// JobService handles posting openings and the public catalogue.
type JobService struct {
	jobs repository.JobRepository
}

func NewJobService(jobs repository.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

// PostJob creates a new opening for the recruiter's company. New jobs are
// visible immediately.
func (s *JobService) PostJob(ctx context.Context, companyID string, job *model.Job) (*model.Job, error) {
	job.Title = strings.TrimSpace(job.Title)
	job.Location = strings.TrimSpace(job.Location)
	job.Category = strings.TrimSpace(job.Category)
	job.Level = strings.TrimSpace(job.Level)

	if job.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if job.Location == "" {
		return nil, apperror.ValidationFailed("location", "location is required")
	}
	if job.Category == "" {
		return nil, apperror.ValidationFailed("category", "category is required")
	}
	if job.Level == "" {
		return nil, apperror.ValidationFailed("level", "level is required")
	}
	if job.Salary < 0 {
		return nil, apperror.ValidationFailed("salary", "salary must not be negative")
	}

	job.CompanyID = companyID
	job.Visible = true
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ListPublic returns all visible openings, newest first, each with its
// company snapshot attached.
func (s *JobService) ListPublic(ctx context.Context, filter repository.JobFilter) ([]model.Job, error) {
	return s.jobs.ListVisibleJobs(ctx, filter)
}

// GetPublic fetches one opening for the public detail page. Hidden jobs are
// indistinguishable from unknown ones.
func (s *JobService) GetPublic(ctx context.Context, id string) (*model.Job, error) {
	return s.jobs.GetVisibleJobByID(ctx, id)
}

// ListCompany returns the recruiter's own openings, hidden ones included.
func (s *JobService) ListCompany(ctx context.Context, companyID string) ([]model.Job, error) {
	return s.jobs.ListCompanyJobs(ctx, companyID)
}

// SetVisibility shows or hides one of the recruiter's own openings.
// Openings are never deleted; hiding is how a filled role leaves the
// catalogue while its applications stay reviewable.
func (s *JobService) SetVisibility(ctx context.Context, companyID, jobID string, visible bool) (*model.Job, error) {
	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != companyID {
		return nil, apperror.Forbidden("job belongs to another company")
	}

	if err := s.jobs.SetJobVisibility(ctx, jobID, visible); err != nil {
		return nil, err
	}
	job.Visible = visible
	return job, nil
}
