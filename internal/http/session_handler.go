package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/session"
)

type SessionHandler struct {
	sessions *session.Manager
	timeout  time.Duration
}

func NewSessionHandler(sessions *session.Manager, timeout time.Duration) *SessionHandler {
	return &SessionHandler{sessions: sessions, timeout: timeout}
}

type LanguageRequestDTO struct {
	Language domain.Language `json:"language"`
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s, err := h.sessions.Get(ctx, getSessionID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h.respond(w, r, s)
}

func (h *SessionHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LanguageRequestDTO
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !req.Language.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid_language", "language must be en or am")
		return
	}

	s, err := h.sessions.Update(ctx, getSessionID(r.Context()), func(s *session.Session) error {
		s.Language = req.Language
		return nil
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h.respond(w, r, s)
}

func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, s *session.Session) {
	lang := requestLanguage(r, s)
	respondJSON(w, http.StatusOK, SessionResponse{
		ID:       s.ID,
		Language: lang,
		Checkout: toCheckoutResponse(s, lang),
	})
}
