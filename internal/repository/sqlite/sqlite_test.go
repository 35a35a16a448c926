package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/hirehive/hirehive/internal/model"
)

// newTestDB opens a fresh in-memory database per test — fast, isolated,
// destroyed on close. t.Cleanup handles the close even in subtests.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var companySeq int

// createTestCompany inserts a company with a unique email.
func createTestCompany(t *testing.T, db *DB, name string) *model.Company {
	t.Helper()
	companySeq++
	c := &model.Company{
		Name:         name,
		Email:        fmt.Sprintf("%s-%d@example.com", name, companySeq),
		PasswordHash: "$2a$04$fakefakefakefakefakefake",
		LogoURL:      "https://cdn.example.com/logo.png",
	}
	if err := db.CreateCompany(context.Background(), c); err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}
	return c
}

func createTestJob(t *testing.T, db *DB, companyID, title string) *model.Job {
	t.Helper()
	j := &model.Job{
		CompanyID:   companyID,
		Title:       title,
		Description: "<p>exciting role</p>",
		Location:    "Remote",
		Category:    "Programming",
		Level:       "Senior",
		Salary:      90000,
		Visible:     true,
	}
	if err := db.CreateJob(context.Background(), j); err != nil {
		t.Fatalf("failed to create test job: %v", err)
	}
	return j
}

func createTestUser(t *testing.T, db *DB, id string) *model.User {
	t.Helper()
	u := &model.User{
		ID:        id,
		Name:      "Test Seeker",
		Email:     id + "@example.com",
		AvatarURL: "https://img.example.com/a.png",
	}
	if err := db.Insert(context.Background(), u); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
