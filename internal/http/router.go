package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/admin"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/catalog"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/contact"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/i18n"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/session"
)

type RouterConfig struct {
	Mode               string
	Catalog            catalog.Provider
	Sessions           *session.Manager
	Checkout           *checkout.Workflow
	Contact            *contact.Service
	Admin              *admin.Service
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	SessionTTL         time.Duration
	CORSAllowedOrigins []string
	ServiceName        string
}

type StatusResponse struct {
	Mode     string `json:"mode"`
	Currency string `json:"currency"`
}

func NewRouter(cfg RouterConfig) http.Handler {
	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.Sessions, cfg.RequestTimeout)
	sessionHandler := NewSessionHandler(cfg.Sessions, cfg.RequestTimeout)
	cartHandler := NewCartHandler(cfg.Sessions, cfg.Catalog, cfg.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(cfg.Sessions, cfg.Checkout, cfg.RequestTimeout)
	contactHandler := NewContactHandler(cfg.Contact, cfg.Sessions, cfg.RequestTimeout)
	adminHandler := NewAdminHandler(cfg.Admin, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(limitBody(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, StatusResponse{Mode: cfg.Mode, Currency: i18n.Currency.String()})
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.SessionTTL))

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/products", catalogHandler.ListProducts)
				r.Get("/products/{id}", catalogHandler.GetProduct)
				r.Get("/categories", catalogHandler.ListCategories)
			})

			r.Get("/session", sessionHandler.Get)
			r.Put("/session/language", sessionHandler.SetLanguage)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", checkoutHandler.Get)
				r.Post("/open", checkoutHandler.Open)
				r.Put("/customer", checkoutHandler.UpdateCustomer)
				r.Post("/submit", checkoutHandler.Submit)
				r.Post("/cancel", checkoutHandler.Cancel)
			})

			r.Post("/contact", contactHandler.Submit)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/status", adminHandler.Status)

			r.Get("/categories", adminHandler.ListCategories())
			r.Post("/categories", adminHandler.CreateCategory())
			r.Put("/categories/{id}", adminHandler.UpdateCategory())
			r.Delete("/categories/{id}", adminHandler.DeleteCategory())

			r.Get("/products", adminHandler.ListProducts())
			r.Post("/products", adminHandler.CreateProduct())
			r.Put("/products/{id}", adminHandler.UpdateProduct())
			r.Delete("/products/{id}", adminHandler.DeleteProduct())

			r.Get("/items", adminHandler.ListItems())
			r.Post("/items", adminHandler.CreateItem())
			r.Put("/items/{id}", adminHandler.UpdateItem())
			r.Delete("/items/{id}", adminHandler.DeleteItem())

			r.Get("/contacts", adminHandler.ListContacts())

			r.Get("/orders", adminHandler.ListOrders())
			r.Get("/orders/{id}", adminHandler.GetOrder)
			r.Patch("/orders/{id}/status", adminHandler.UpdateOrderStatus())
		})
	})

	return otelhttp.NewHandler(r, cfg.ServiceName)
}

func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
