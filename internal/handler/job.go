package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hirehive/hirehive/internal/repository"
	"github.com/hirehive/hirehive/internal/service"
)

// JobHandler serves the public job catalogue. No authentication: anyone
// can browse openings.
type JobHandler struct {
	jobs   *service.JobService
	logger *slog.Logger
}

func NewJobHandler(jobs *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

// List handles GET /api/jobs. Optional query parameters "title" and
// "location" narrow the listing with case-insensitive substring matches.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.JobFilter{
		Title:    r.URL.Query().Get("title"),
		Location: r.URL.Query().Get("location"),
	}

	jobs, err := h.jobs.ListPublic(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, jobListResponse{Success: true, Jobs: jobs})
}

// Get handles GET /api/jobs/{id}. Hidden jobs answer 404 exactly like
// unknown ones.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.jobs.GetPublic(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, jobResponse{Success: true, Job: job})
}
