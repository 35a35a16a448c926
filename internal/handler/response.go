// Package handler implements the HTTP endpoints. Handlers decode requests,
// call services, and encode responses — every business decision lives one
// layer down.
//
// RESPONSE CONVENTION:
// Every JSON body carries a "success" boolean the SPA branches on. Business
// rejections the user is expected to see (duplicate application, deciding a
// decided application) are answered 200 with success:false rather than an
// HTTP error status; transport and auth failures use real status codes.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hirehive/hirehive/internal/apperror"
)

// messageResponse is the minimal body: just the success flag and a
// human-readable message.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone; all we can do is log.
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError translates a domain error into the wire convention.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: appErr.Message})
		case errors.Is(err, apperror.ErrUnauthorized):
			writeJSON(w, http.StatusUnauthorized, messageResponse{Message: appErr.Message})
		case errors.Is(err, apperror.ErrForbidden):
			writeJSON(w, http.StatusForbidden, messageResponse{Message: appErr.Message})
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, messageResponse{Message: appErr.Message})
		case errors.Is(err, apperror.ErrConflict), errors.Is(err, apperror.ErrInvalidState):
			// Business rejections the SPA shows inline.
			writeJSON(w, http.StatusOK, messageResponse{Message: appErr.Message})
		case errors.Is(err, apperror.ErrExternal):
			logger.Error("external service failure", "error", err)
			writeJSON(w, http.StatusInternalServerError, messageResponse{Message: appErr.Message})
		default:
			logger.Error("unhandled domain error", "error", err)
			writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
		}
		return
	}

	// Anything that isn't a domain error is a bug or an infrastructure
	// fault; never leak its text to the client.
	logger.Error("internal error", "error", err)
	writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
}
