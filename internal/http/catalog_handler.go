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

type CatalogHandler struct {
	catalog  catalog.Provider
	sessions *session.Manager
	timeout  time.Duration
}

func NewCatalogHandler(provider catalog.Provider, sessions *session.Manager, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog:  provider,
		sessions: sessions,
		timeout:  timeout,
	}
}

func (h *CatalogHandler) language(ctx context.Context, r *http.Request) domain.Language {
	var s *session.Session
	if id := getSessionID(r.Context()); id != "" && h.sessions != nil {
		if loaded, err := h.sessions.Get(ctx, id); err == nil {
			s = loaded
		}
	}
	return requestLanguage(r, s)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := domain.Category(r.URL.Query().Get("category"))
	if category != "" && !category.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid_category", "category must be one of majlis, sofas, beds, curtains")
		return
	}

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	products = catalog.FilterByCategory(products, category)

	lang := h.language(ctx, r)
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p, lang))
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Language: lang, Products: out})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := catalog.FindProduct(ctx, h.catalog, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(p, h.language(ctx, r)))
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]domain.Category{"categories": categories})
}
