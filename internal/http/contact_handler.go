package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/contact"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/session"
)

type ContactHandler struct {
	service  *contact.Service
	sessions *session.Manager
	timeout  time.Duration
}

func NewContactHandler(service *contact.Service, sessions *session.Manager, timeout time.Duration) *ContactHandler {
	return &ContactHandler{service: service, sessions: sessions, timeout: timeout}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req contact.Request
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s, err := h.sessions.Get(ctx, getSessionID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	res, err := h.service.Submit(ctx, requestLanguage(r, s), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if res.Outcome != contact.OutcomeSent {
		status = http.StatusAccepted
	}
	respondJSON(w, status, res)
}
