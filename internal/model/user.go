// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a job seeker account.
//
// The ID is issued by the external identity provider and is the primary key
// as-is — we never generate user IDs locally, and the only writes to this
// entity come from the provider's lifecycle webhooks (plus the resume URL,
// which the user sets through an authenticated upload).
//
// ResumeURL is an empty string until the user uploads a resume. We use the
// zero value rather than a nullable pointer — simpler to work with and safe
// to serialize.
type User struct {
	ID        string    `json:"id"        db:"id"` // identity-provider-issued, immutable
	Name      string    `json:"name"      db:"name"`
	Email     string    `json:"email"     db:"email"`
	AvatarURL string    `json:"avatarUrl" db:"avatar_url"`
	ResumeURL string    `json:"resumeUrl" db:"resume_url"` // empty until uploaded
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the slice of User exposed when expanding applications for
// a recruiter — enough to review a candidate, nothing more.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
	ResumeURL string `json:"resumeUrl"`
}

// Summary returns the recruiter-facing view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		ResumeURL: u.ResumeURL,
	}
}
