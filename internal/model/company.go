package model

import "time"

// Company represents a recruiter-side tenant account that owns Jobs.
//
// Unlike User, the Company ID is generated locally (xid) and the account is
// created by self-service registration with an email/password credential.
// Email uniqueness is enforced by the companies table.
//
// PasswordHash carries `json:"-"` so a Company can be serialized into API
// responses directly without ever leaking the credential.
type Company struct {
	ID           string    `json:"id"        db:"id"`
	Name         string    `json:"name"      db:"name"`
	Email        string    `json:"email"     db:"email"` // unique
	PasswordHash string    `json:"-"         db:"password_hash"`
	LogoURL      string    `json:"logoUrl"   db:"logo_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CompanySummary is the public view of a Company, embedded in job listings
// and application expansions.
type CompanySummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	LogoURL string `json:"logoUrl"`
}

// Summary returns the public view of the company.
func (c *Company) Summary() CompanySummary {
	return CompanySummary{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		LogoURL: c.LogoURL,
	}
}
