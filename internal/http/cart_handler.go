package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/catalog"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/session"
)

type CartHandler struct {
	sessions *session.Manager
	catalog  catalog.Provider
	timeout  time.Duration
}

func NewCartHandler(sessions *session.Manager, provider catalog.Provider, timeout time.Duration) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  provider,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s, err := h.sessions.Get(ctx, getSessionID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(s.Cart, requestLanguage(r, s)))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := catalog.FindProduct(ctx, h.catalog, req.ProductID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var notice domain.Notification
	s, err := h.sessions.Update(ctx, getSessionID(r.Context()), func(s *session.Session) error {
		notice = s.Cart.AddItem(product)
		return nil
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := toCartResponse(s.Cart, requestLanguage(r, s))
	resp.Notification = &notice
	respondJSON(w, http.StatusCreated, resp)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity is required")
		return
	}

	s, err := h.sessions.Update(ctx, getSessionID(r.Context()), func(s *session.Session) error {
		s.Cart.SetQuantity(productID, *req.Quantity)
		return nil
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(s.Cart, requestLanguage(r, s)))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	s, err := h.sessions.Update(ctx, getSessionID(r.Context()), func(s *session.Session) error {
		s.Cart.RemoveItem(productID)
		return nil
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(s.Cart, requestLanguage(r, s)))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s, err := h.sessions.Update(ctx, getSessionID(r.Context()), func(s *session.Session) error {
		s.Cart.Clear()
		return nil
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(s.Cart, requestLanguage(r, s)))
}
