package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/model"
)

func TestCreateCompany(t *testing.T) {
	db := newTestDB(t)

	c := &model.Company{
		Name:         "Acme",
		Email:        "jobs@acme.test",
		PasswordHash: "hash",
	}
	if err := db.CreateCompany(context.Background(), c); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	if c.ID == "" {
		t.Error("CreateCompany() did not set company.ID")
	}
	if c.CreatedAt.IsZero() {
		t.Error("CreateCompany() did not set company.CreatedAt")
	}
}

func TestCreateCompany_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	first := &model.Company{Name: "Acme", Email: "jobs@acme.test", PasswordHash: "h"}
	if err := db.CreateCompany(context.Background(), first); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	second := &model.Company{Name: "Other", Email: "jobs@acme.test", PasswordHash: "h"}
	err := db.CreateCompany(context.Background(), second)
	if err == nil {
		t.Fatal("CreateCompany() should reject a duplicate email")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestGetCompanyByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestCompany(t, db, "Acme")

	found, err := db.GetCompanyByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetCompanyByID() error = %v", err)
	}
	if found.Name != "Acme" {
		t.Errorf("Name = %q, want %q", found.Name, "Acme")
	}
	if found.PasswordHash != created.PasswordHash {
		t.Error("PasswordHash not round-tripped")
	}
}

func TestGetCompanyByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetCompanyByID(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetCompanyByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestCompany(t, db, "Acme")

	found, err := db.GetCompanyByEmail(context.Background(), created.Email)
	if err != nil {
		t.Fatalf("GetCompanyByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}

	if _, err := db.GetCompanyByEmail(context.Background(), "nobody@nowhere.test"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown email: error = %v, want ErrNotFound", err)
	}
}
