package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/hirehive/hirehive/internal/auth"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/repository/sqlite"
)

// Service tests run against a real in-memory SQLite database so the
// storage-level constraints (unique email, unique application pair,
// conditional status update) participate instead of being mocked away.

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	if err != nil {
		t.Fatalf("failed to create token service: %v", err)
	}
	return tokens
}

// fakeUploader records uploads and hands back deterministic URLs. Setting
// err makes every upload fail, simulating an object store outage.
type fakeUploader struct {
	err     error
	uploads int
	folders []string
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	f.folders = append(f.folders, folder)
	return fmt.Sprintf("https://cdn.example.com/%s/file-%d", folder, f.uploads), nil
}

var companySeq int

func createTestCompany(t *testing.T, db *sqlite.DB, name string) *model.Company {
	t.Helper()
	companySeq++
	c := &model.Company{
		Name:         name,
		Email:        fmt.Sprintf("%s-%d@example.com", name, companySeq),
		PasswordHash: "x",
	}
	if err := db.CreateCompany(context.Background(), c); err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}
	return c
}

func postTestJob(t *testing.T, s *JobService, companyID, title string) *model.Job {
	t.Helper()
	job, err := s.PostJob(context.Background(), companyID, &model.Job{
		Title:       title,
		Description: "Build things.",
		Location:    "Remote",
		Category:    "Programming",
		Level:       "Senior",
		Salary:      90000,
	})
	if err != nil {
		t.Fatalf("failed to post test job: %v", err)
	}
	return job
}

func insertTestUser(t *testing.T, db *sqlite.DB, id string) *model.User {
	t.Helper()
	u := &model.User{ID: id, Name: "Test Seeker", Email: id + "@example.com"}
	if err := db.Insert(context.Background(), u); err != nil {
		t.Fatalf("failed to insert test user: %v", err)
	}
	return u
}
