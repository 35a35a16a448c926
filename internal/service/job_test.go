package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/repository"
)

func TestPostJob(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	company := createTestCompany(t, db, "acme")

	job := postTestJob(t, svc, company.ID, "Backend Engineer")

	if job.ID == "" {
		t.Error("PostJob() did not assign an ID")
	}
	if job.CompanyID != company.ID {
		t.Errorf("CompanyID = %q, want %q", job.CompanyID, company.ID)
	}
	if !job.Visible {
		t.Error("new jobs must be visible")
	}
}

func TestPostJob_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	company := createTestCompany(t, db, "acme")

	base := func() *model.Job {
		return &model.Job{
			Title:    "Backend Engineer",
			Location: "Remote",
			Category: "Programming",
			Level:    "Senior",
			Salary:   90000,
		}
	}

	tests := []struct {
		name   string
		mutate func(*model.Job)
	}{
		{"missing title", func(j *model.Job) { j.Title = "  " }},
		{"missing location", func(j *model.Job) { j.Location = "" }},
		{"missing category", func(j *model.Job) { j.Category = "" }},
		{"missing level", func(j *model.Job) { j.Level = "" }},
		{"negative salary", func(j *model.Job) { j.Salary = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := base()
			tt.mutate(job)
			_, err := svc.PostJob(context.Background(), company.ID, job)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestListPublic_ExcludesHidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	company := createTestCompany(t, db, "acme")

	shown := postTestJob(t, svc, company.ID, "Shown Role")
	hidden := postTestJob(t, svc, company.ID, "Hidden Role")
	if _, err := svc.SetVisibility(context.Background(), company.ID, hidden.ID, false); err != nil {
		t.Fatalf("SetVisibility() error = %v", err)
	}

	jobs, err := svc.ListPublic(context.Background(), repository.JobFilter{})
	if err != nil {
		t.Fatalf("ListPublic() error = %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	if jobs[0].ID != shown.ID {
		t.Errorf("listed job = %q, want %q", jobs[0].ID, shown.ID)
	}
	if jobs[0].Company == nil || jobs[0].Company.Name != "acme" {
		t.Errorf("company snapshot missing or wrong: %+v", jobs[0].Company)
	}
}

// Hidden jobs must be indistinguishable from unknown ones on the public
// detail endpoint.
func TestGetPublic_Hidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	company := createTestCompany(t, db, "acme")

	job := postTestJob(t, svc, company.ID, "Backend Engineer")
	if _, err := svc.SetVisibility(context.Background(), company.ID, job.ID, false); err != nil {
		t.Fatalf("SetVisibility() error = %v", err)
	}

	_, err := svc.GetPublic(context.Background(), job.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("hidden job: error = %v, want ErrNotFound", err)
	}
	_, err = svc.GetPublic(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown job: error = %v, want ErrNotFound", err)
	}
}

func TestListCompany_IncludesHidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	company := createTestCompany(t, db, "acme")

	postTestJob(t, svc, company.ID, "Shown Role")
	hidden := postTestJob(t, svc, company.ID, "Hidden Role")
	if _, err := svc.SetVisibility(context.Background(), company.ID, hidden.ID, false); err != nil {
		t.Fatalf("SetVisibility() error = %v", err)
	}

	jobs, err := svc.ListCompany(context.Background(), company.ID)
	if err != nil {
		t.Fatalf("ListCompany() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Errorf("got %d jobs, want 2 (hidden included)", len(jobs))
	}
}

func TestSetVisibility_Forbidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	owner := createTestCompany(t, db, "owner")
	intruder := createTestCompany(t, db, "intruder")

	job := postTestJob(t, svc, owner.ID, "Backend Engineer")

	_, err := svc.SetVisibility(context.Background(), intruder.ID, job.ID, false)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}

	// And the flag is untouched.
	got, err := svc.GetPublic(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetPublic() error = %v", err)
	}
	if !got.Visible {
		t.Error("visibility changed by a non-owner")
	}
}
