package model

import "time"

// ApplicationStatus is the closed set of states a JobApplication can be in.
//
// The transition table is deliberately tiny:
//
//	Pending → Accepted
//	Pending → Rejected
//
// Accepted and Rejected are terminal — there is no way back. Representing
// the status as a typed enumeration (instead of a free-form string) means
// illegal values are caught at the service boundary, and illegal
// transitions are a single CanTransitionTo check.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

// ParseStatus converts a wire string into an ApplicationStatus.
// Returns ("", false) for anything outside the closed set.
func ParseStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(s) {
	case StatusPending, StatusAccepted, StatusRejected:
		return ApplicationStatus(s), true
	}
	return "", false
}

// Terminal reports whether the status permits no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo reports whether the transition s → next is legal.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	return s == StatusPending && (next == StatusAccepted || next == StatusRejected)
}

// Application is a User's application to a Job.
//
// CompanyID is a denormalized copy of the Job's owner at application time —
// it lets the recruiter dashboard and the ownership check run without
// joining through jobs, and it stays correct even though jobs are never
// reassigned between companies.
//
// The (UserID, JobID) pair is unique: a user can apply to a given job at
// most once, enforced by a storage-level constraint.
type Application struct {
	ID        string            `json:"id"        db:"id"`
	UserID    string            `json:"userId"    db:"user_id"`
	JobID     string            `json:"jobId"     db:"job_id"`
	CompanyID string            `json:"companyId" db:"company_id"`
	Status    ApplicationStatus `json:"status"    db:"status"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
}

// UserApplication is an Application expanded with the referenced Job and
// Company, as shown on the seeker's dashboard.
type UserApplication struct {
	Application
	Job     JobSummary     `json:"job"`
	Company CompanySummary `json:"company"`
}

// CompanyApplicant is an Application expanded with the applying User and
// the Job it targets, as shown on the recruiter's dashboard.
type CompanyApplicant struct {
	Application
	User UserSummary `json:"user"`
	Job  JobSummary  `json:"job"`
}
