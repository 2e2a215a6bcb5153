package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/session"
)

type CheckoutHandler struct {
	sessions *session.Manager
	workflow *checkout.Workflow
	timeout  time.Duration
}

func NewCheckoutHandler(sessions *session.Manager, workflow *checkout.Workflow, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		workflow: workflow,
		timeout:  timeout,
	}
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s, err := h.sessions.Get(ctx, getSessionID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCheckoutResponse(s, requestLanguage(r, s)))
}

func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(s *session.Session) error {
		return h.workflow.Open(&s.Checkout, s.Cart)
	})
}

func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(s *session.Session) error {
		return h.workflow.Cancel(&s.Checkout)
	})
}

func (h *CheckoutHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var info domain.CustomerInfo
	if err := decodeJSON(r, &info, false); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.transition(w, r, func(s *session.Session) error {
		return h.workflow.UpdateCustomer(&s.Checkout, info)
	})
}

func (h *CheckoutHandler) transition(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s, err := h.sessions.Update(ctx, getSessionID(r.Context()), fn)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCheckoutResponse(s, requestLanguage(r, s)))
}

// Submit accepts an optional customer body, applied before submitting.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var info *domain.CustomerInfo
	if err := decodeJSON(r, &info, true); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := getSessionID(r.Context())
	// Typed-in details are kept even when the submission is rejected.
	if info != nil {
		_, err := h.sessions.Update(ctx, id, func(s *session.Session) error {
			return h.workflow.UpdateCustomer(&s.Checkout, *info)
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
	}

	var result *checkout.Result
	s, err := h.sessions.Update(ctx, id, func(s *session.Session) error {
		res, err := h.workflow.Submit(ctx, &s.Checkout, s.Cart)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Outcome != checkout.OutcomePlaced {
		status = http.StatusAccepted
	}
	respondJSON(w, status, SubmitResponse{
		Outcome:      result.Outcome,
		Order:        result.Order,
		Notification: result.Notification,
		Checkout:     toCheckoutResponse(s, requestLanguage(r, s)),
	})
}
