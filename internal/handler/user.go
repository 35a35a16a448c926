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

// UserHandler serves the job seeker endpoints. All of them require a
// provider-issued bearer token; the user ID comes from the token subject,
// never from the request body.
type UserHandler struct {
	users        *service.UserService
	applications *service.ApplicationService
	logger       *slog.Logger
}

func NewUserHandler(users *service.UserService, applications *service.ApplicationService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, applications: applications, logger: logger}
}

type userResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
}

// Profile handles GET /api/users/user.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}

type applyRequest struct {
	JobID string `json:"jobId"`
}

// Apply handles POST /api/users/apply.
func (h *UserHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if req.JobID == "" {
		writeError(w, h.logger, apperror.ValidationFailed("jobId", "job id is required"))
		return
	}

	if _, err := h.applications.Apply(r.Context(), userID, req.JobID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Applied Successfully"})
}

type applicationsResponse struct {
	Success      bool                    `json:"success"`
	Applications []model.UserApplication `json:"applications"`
}

// Applications handles GET /api/users/applications: the seeker's own
// applications with job and company expanded.
func (h *UserHandler) Applications(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	apps, err := h.applications.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, applicationsResponse{Success: true, Applications: apps})
}

// UpdateResume handles POST /api/users/update-resume. Multipart with the
// file under "resume"; the body is capped at the wire so an oversized
// upload never buffers fully.
func (h *UserHandler) UpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("body", "expected multipart form data"))
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("resume", "resume file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if _, err := h.users.UpdateResume(r.Context(), userID, file, header.Size, contentType); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Resume Updated"})
}
