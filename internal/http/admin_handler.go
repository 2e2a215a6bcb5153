package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/admin"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

type AdminHandler struct {
	service *admin.Service
	timeout time.Duration
}

func NewAdminHandler(service *admin.Service, timeout time.Duration) *AdminHandler {
	return &AdminHandler{service: service, timeout: timeout}
}

// NoticeResponse wraps a written record with the notice to show for it.
type NoticeResponse struct {
	Data         interface{}         `json:"data,omitempty"`
	Notification domain.Notification `json:"notification"`
}

type StatusRequestDTO struct {
	Status domain.OrderStatus `json:"status"`
}

type AdminStatusResponse struct {
	Mode         string               `json:"mode"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

func (h *AdminHandler) Status(w http.ResponseWriter, _ *http.Request) {
	live, notice := h.service.Status()
	mode := "live"
	if !live {
		mode = "demo"
	}
	respondJSON(w, http.StatusOK, AdminStatusResponse{Mode: mode, Notification: notice})
}

func list[T any](h *AdminHandler, key string, fn func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		rows, err := fn(ctx)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if rows == nil {
			rows = []T{}
		}
		respondJSON(w, http.StatusOK, map[string][]T{key: rows})
	}
}

func (h *AdminHandler) ListCategories() http.HandlerFunc {
	return list(h, "categories", h.service.ListCategories)
}

func (h *AdminHandler) ListProducts() http.HandlerFunc {
	return list(h, "products", h.service.ListProducts)
}

func (h *AdminHandler) ListItems() http.HandlerFunc {
	return list(h, "items", h.service.ListItems)
}

func (h *AdminHandler) ListContacts() http.HandlerFunc {
	return list(h, "contacts", h.service.ListContacts)
}

func (h *AdminHandler) ListOrders() http.HandlerFunc {
	return list(h, "orders", h.service.ListOrders)
}

// write decodes the body into In and runs fn. status is used on success.
func write[In any, Out any](h *AdminHandler, status int, fn func(ctx context.Context, id string, in In) (Out, domain.Notification, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		var in In
		if err := decodeJSON(r, &in, false); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}

		out, notice, err := fn(ctx, chi.URLParam(r, "id"), in)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, status, NoticeResponse{Data: out, Notification: notice})
	}
}

func (h *AdminHandler) remove(fn func(ctx context.Context, id string) (domain.Notification, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		notice, err := fn(ctx, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, NoticeResponse{Notification: notice})
	}
}

func (h *AdminHandler) CreateCategory() http.HandlerFunc {
	return write(h, http.StatusCreated, func(ctx context.Context, _ string, in admin.CategoryInput) (domain.ProductCategory, domain.Notification, error) {
		return h.service.CreateCategory(ctx, in)
	})
}

func (h *AdminHandler) UpdateCategory() http.HandlerFunc {
	return write(h, http.StatusOK, h.service.UpdateCategory)
}

func (h *AdminHandler) DeleteCategory() http.HandlerFunc {
	return h.remove(h.service.DeleteCategory)
}

func (h *AdminHandler) CreateProduct() http.HandlerFunc {
	return write(h, http.StatusCreated, func(ctx context.Context, _ string, in admin.ProductInput) (domain.Product, domain.Notification, error) {
		return h.service.CreateProduct(ctx, in)
	})
}

func (h *AdminHandler) UpdateProduct() http.HandlerFunc {
	return write(h, http.StatusOK, h.service.UpdateProduct)
}

func (h *AdminHandler) DeleteProduct() http.HandlerFunc {
	return h.remove(h.service.DeleteProduct)
}

func (h *AdminHandler) CreateItem() http.HandlerFunc {
	return write(h, http.StatusCreated, func(ctx context.Context, _ string, in admin.ItemInput) (domain.Item, domain.Notification, error) {
		return h.service.CreateItem(ctx, in)
	})
}

func (h *AdminHandler) UpdateItem() http.HandlerFunc {
	return write(h, http.StatusOK, h.service.UpdateItem)
}

func (h *AdminHandler) DeleteItem() http.HandlerFunc {
	return h.remove(h.service.DeleteItem)
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.service.GetOrder(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return write(h, http.StatusOK, func(ctx context.Context, id string, in StatusRequestDTO) (domain.Order, domain.Notification, error) {
		return h.service.UpdateOrderStatus(ctx, id, in.Status)
	})
}
