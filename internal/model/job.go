package model

import "time"

// Job is a posting owned by a Company.
//
// There is no hard delete: "removing" a job means setting Visible to false,
// which hides it from public listings while keeping it (and its
// applications) in the owner's dashboard.
//
// Company is populated only on reads that expand the owning company
// (public listings, job detail); it is nil everywhere else and omitted
// from JSON when nil.
type Job struct {
	ID          string    `json:"id"          db:"id"`
	CompanyID   string    `json:"companyId"   db:"company_id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"` // rich text, stored verbatim
	Location    string    `json:"location"    db:"location"`
	Category    string    `json:"category"    db:"category"`
	Level       string    `json:"level"       db:"level"`
	Salary      int64     `json:"salary"      db:"salary"`
	Visible     bool      `json:"visible"     db:"visible"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`

	Company *CompanySummary `json:"company,omitempty"`
}

// JobSummary is the compact view of a Job embedded in application
// expansions.
type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Category string `json:"category"`
	Level    string `json:"level"`
	Salary   int64  `json:"salary"`
}

// Summary returns the compact view of the job.
func (j *Job) Summary() JobSummary {
	return JobSummary{
		ID:       j.ID,
		Title:    j.Title,
		Location: j.Location,
		Category: j.Category,
		Level:    j.Level,
		Salary:   j.Salary,
	}
}
