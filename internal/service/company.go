// Package service implements the business logic between the HTTP handlers
// and the repositories. Services validate input, enforce ownership and
// state rules, and translate everything else into domain errors.
package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/auth"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/repository"
	"github.com/hirehive/hirehive/internal/storage"
)

// CompanyService handles recruiter account registration and login.
type CompanyService struct {
	companies repository.CompanyRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	uploader  storage.Uploader
}

func NewCompanyService(companies repository.CompanyRepository, passwords *auth.PasswordService, tokens *auth.TokenService, uploader storage.Uploader) *CompanyService {
	return &CompanyService{
		companies: companies,
		passwords: passwords,
		tokens:    tokens,
		uploader:  uploader,
	}
}

// AuthResult is what a successful register or login returns: the account
// plus a fresh session token.
type AuthResult struct {
	Company *model.Company
	Token   string
}

// Register creates a recruiter account. The logo is mandatory: it is
// uploaded first, so a storage failure aborts registration before any row
// is written.
func (s *CompanyService) Register(ctx context.Context, name, email, password string, logo io.Reader) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "email is invalid")
	}
	if len(password) < 8 {
		return nil, apperror.ValidationFailed("password", "password must be at least 8 characters")
	}
	if logo == nil {
		return nil, apperror.ValidationFailed("image", "company logo is required")
	}

	logoURL, err := s.uploader.Upload(ctx, logo, storage.FolderLogos)
	if err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	company := &model.Company{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		LogoURL:      logoURL,
	}
	if err := s.companies.CreateCompany(ctx, company); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(company.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Company: company, Token: token}, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both come back as the same unauthorized error so the
// response doesn't reveal which accounts exist.
func (s *CompanyService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("email", "email and password are required")
	}

	company, err := s.companies.GetCompanyByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := s.passwords.Verify(company.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Generate(company.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Company: company, Token: token}, nil
}

// GetByID fetches the authenticated recruiter's own account.
func (s *CompanyService) GetByID(ctx context.Context, id string) (*model.Company, error) {
	return s.companies.GetCompanyByID(ctx, id)
}
