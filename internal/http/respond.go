package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/admin"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/catalog"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/contact"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/repository"
)

type ErrorResponse struct {
	Error        string               `json:"error"`
	Code         string               `json:"code,omitempty"`
	Details      string               `json:"details,omitempty"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func respondNotice(w http.ResponseWriter, status int, code, message string, n domain.Notification) {
	respondJSON(w, status, ErrorResponse{
		Error:        message,
		Code:         code,
		Notification: &n,
	})
}

// respondServiceError maps errors from the service packages to HTTP.
func respondServiceError(w http.ResponseWriter, err error) {
	var (
		checkoutErr *checkout.ValidationError
		contactErr  *contact.ValidationError
		adminErr    *admin.ValidationError
		demoErr     *admin.DemoModeError
		opErr       *admin.OperationError
	)

	switch {
	case errors.As(err, &checkoutErr):
		code := "validation_failed"
		if errors.Is(err, checkout.ErrEmptyCart) {
			code = "empty_cart"
		}
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(), Code: code, Details: checkoutErr.Field, Notification: &checkoutErr.Notification,
		})
	case errors.As(err, &contactErr):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(), Code: "validation_failed", Details: contactErr.Field, Notification: &contactErr.Notification,
		})
	case errors.As(err, &adminErr):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(), Code: "validation_failed", Details: adminErr.Field, Notification: &adminErr.Notification,
		})
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrItemNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, repository.ErrDuplicateCategory), errors.Is(err, repository.ErrDuplicateID):
		respondError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.As(err, &demoErr):
		respondNotice(w, http.StatusServiceUnavailable, "demo_mode", err.Error(), demoErr.Notification)
	case errors.As(err, &opErr):
		respondNotice(w, http.StatusInternalServerError, "internal_error", "internal server error", opErr.Notification)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeJSON reads the body into v. An empty body leaves v untouched when
// optional is set.
func decodeJSON(r *http.Request, v interface{}, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
