package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/hirehive/hirehive/internal/service"
	"github.com/hirehive/hirehive/internal/webhook"
)

// maxWebhookBody caps the event payload; provider events are small JSON
// documents.
const maxWebhookBody = 1 << 20

// Verifier checks the signature headers against the raw request body.
// Satisfied by *svix.Webhook; tests substitute their own.
type Verifier interface {
	Verify(payload []byte, headers http.Header) error
}

// WebhookHandler receives identity provider lifecycle events.
//
// SECURITY: the endpoint is unauthenticated by design — the provider can't
// log in. Authenticity comes from the svix signature over the raw body, so
// verification runs before a single byte is parsed.
type WebhookHandler struct {
	verifier Verifier
	sync     *service.SyncService
	logger   *slog.Logger
}

func NewWebhookHandler(verifier Verifier, sync *service.SyncService, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, sync: sync, logger: logger}
}

// Handle processes POST /webhooks.
//
// Status codes steer the provider's retry loop: 401 for a bad signature
// (misconfiguration, retrying won't help but must not be mistaken for
// success), 200 for anything verified — including payloads we can't parse,
// which are logged and acknowledged so the provider doesn't redeliver junk
// forever — and 500 only for local faults where a retry can succeed.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.verifier.Verify(body, r.Header); err != nil {
		h.logger.Warn("webhook signature verification failed", "error", err)
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "invalid webhook signature"})
		return
	}

	evt, err := webhook.ParseEvent(body)
	if err != nil {
		h.logger.Error("discarding unparseable webhook payload", "error", err)
		writeJSON(w, http.StatusOK, messageResponse{Success: false, Message: "unparseable payload"})
		return
	}

	if err := h.sync.HandleEvent(r.Context(), evt); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "ok"})
}
