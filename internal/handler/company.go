package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/auth"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/service"
)

// maxFormMemory caps the multipart form size buffered in memory; bigger
// parts spill to temp files.
const maxFormMemory = 1 << 20

// maxUploadBody caps the whole multipart request body: the 5 MiB file
// ceiling plus headroom for the other form fields.
const maxUploadBody = service.MaxResumeSize + 1<<20

// CompanyHandler serves the recruiter-side endpoints: account lifecycle,
// job management and applicant review.
type CompanyHandler struct {
	companies    *service.CompanyService
	jobs         *service.JobService
	applications *service.ApplicationService
	logger       *slog.Logger
}

func NewCompanyHandler(companies *service.CompanyService, jobs *service.JobService, applications *service.ApplicationService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{
		companies:    companies,
		jobs:         jobs,
		applications: applications,
		logger:       logger,
	}
}

// authResponse answers register and login: the account plus a session
// token for the "token" header.
type authResponse struct {
	Success bool           `json:"success"`
	Company *model.Company `json:"company"`
	Token   string         `json:"token"`
}

// Register handles POST /api/company/register. The body is multipart: text
// fields name/email/password plus the logo under "image".
func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("body", "expected multipart form data"))
		return
	}

	logo, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("image", "company logo is required"))
		return
	}
	defer logo.Close()

	res, err := h.companies.Register(r.Context(),
		r.FormValue("name"),
		r.FormValue("email"),
		r.FormValue("password"),
		logo,
	)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Success: true, Company: res.Company, Token: res.Token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/company/login.
func (h *CompanyHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	res, err := h.companies.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Success: true, Company: res.Company, Token: res.Token})
}

type companyResponse struct {
	Success bool           `json:"success"`
	Company *model.Company `json:"company"`
}

// Profile handles GET /api/company/company: the authenticated recruiter's
// own account.
func (h *CompanyHandler) Profile(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyIDFromContext(r.Context())

	company, err := h.companies.GetByID(r.Context(), companyID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, companyResponse{Success: true, Company: company})
}

type postJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Salary      int64  `json:"salary"`
}

type jobResponse struct {
	Success bool       `json:"success"`
	Job     *model.Job `json:"job"`
}

// PostJob handles POST /api/company/post-job.
func (h *CompanyHandler) PostJob(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyIDFromContext(r.Context())

	var req postJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	job, err := h.jobs.PostJob(r.Context(), companyID, &model.Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Level:       req.Level,
		Salary:      req.Salary,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, jobResponse{Success: true, Job: job})
}

type jobListResponse struct {
	Success bool        `json:"success"`
	Jobs    []model.Job `json:"jobs"`
}

// ListJobs handles GET /api/company/list-jobs: every job the company has
// posted, hidden ones included.
func (h *CompanyHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyIDFromContext(r.Context())

	jobs, err := h.jobs.ListCompany(r.Context(), companyID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, jobListResponse{Success: true, Jobs: jobs})
}

type changeVisibilityRequest struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

// ChangeVisibility handles POST /api/company/change-visibility. The target
// state is explicit in the request, so retries are idempotent instead of
// toggling back and forth.
func (h *CompanyHandler) ChangeVisibility(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyIDFromContext(r.Context())

	var req changeVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if req.ID == "" {
		writeError(w, h.logger, apperror.ValidationFailed("id", "job id is required"))
		return
	}

	job, err := h.jobs.SetVisibility(r.Context(), companyID, req.ID, req.Visible)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, jobResponse{Success: true, Job: job})
}

type applicantsResponse struct {
	Success    bool                     `json:"success"`
	Applicants []model.CompanyApplicant `json:"applicants"`
}

// Applicants handles GET /api/company/applicants: every application across
// the company's jobs, applicant and job expanded.
func (h *CompanyHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyIDFromContext(r.Context())

	applicants, err := h.applications.ListApplicants(r.Context(), companyID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, applicantsResponse{Success: true, Applicants: applicants})
}

type changeStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ChangeStatus handles POST /api/company/change-status: decide a pending
// application.
func (h *CompanyHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyIDFromContext(r.Context())

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if req.ID == "" {
		writeError(w, h.logger, apperror.ValidationFailed("id", "application id is required"))
		return
	}

	if _, err := h.applications.SetStatus(r.Context(), companyID, req.ID, req.Status); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Status Changed"})
}
