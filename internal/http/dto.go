package http

import (
	"net/http"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/cart"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/i18n"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/session"
)

type ProductResponse struct {
	domain.Product
	DisplayName        string `json:"display_name"`
	DisplayDescription string `json:"display_description"`
	PriceDisplay       string `json:"price_display"`
}

type ProductsResponse struct {
	Language domain.Language   `json:"language"`
	Products []ProductResponse `json:"products"`
}

func toProductResponse(p domain.Product, lang domain.Language) ProductResponse {
	return ProductResponse{
		Product:            p,
		DisplayName:        p.LocalizedName(lang),
		DisplayDescription: p.LocalizedDescription(lang),
		PriceDisplay:       i18n.FormatPrice(p.Price),
	}
}

type CartLineResponse struct {
	domain.CartLine
	DisplayName     string  `json:"display_name"`
	Subtotal        float64 `json:"subtotal"`
	SubtotalDisplay string  `json:"subtotal_display"`
}

type CartResponse struct {
	Items        []CartLineResponse   `json:"items"`
	Count        int                  `json:"count"`
	Total        float64              `json:"total"`
	TotalDisplay string               `json:"total_display"`
	Currency     string               `json:"currency"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

func toCartResponse(c *cart.Cart, lang domain.Language) CartResponse {
	lines := c.Lines()
	items := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		sub, _ := cart.Subtotal(l).Float64()
		name := l.Name
		if lang == domain.LanguageAmharic && l.NameAm != "" {
			name = l.NameAm
		}
		items = append(items, CartLineResponse{
			CartLine:        l,
			DisplayName:     name,
			Subtotal:        sub,
			SubtotalDisplay: i18n.FormatPrice(sub),
		})
	}
	total := c.Total()
	return CartResponse{
		Items:        items,
		Count:        c.Count(),
		Total:        total,
		TotalDisplay: i18n.FormatPrice(total),
		Currency:     i18n.Currency.String(),
	}
}

type CheckoutResponse struct {
	State    checkout.State      `json:"state"`
	Customer domain.CustomerInfo `json:"customer"`
	Cart     CartResponse        `json:"cart"`
}

func toCheckoutResponse(s *session.Session, lang domain.Language) CheckoutResponse {
	return CheckoutResponse{
		State:    s.Checkout.Current(),
		Customer: s.Checkout.Customer,
		Cart:     toCartResponse(s.Cart, lang),
	}
}

type SubmitResponse struct {
	Outcome      checkout.Outcome    `json:"outcome"`
	Order        domain.Order        `json:"order"`
	Notification domain.Notification `json:"notification"`
	Checkout     CheckoutResponse    `json:"checkout"`
}

type SessionResponse struct {
	ID       string           `json:"id"`
	Language domain.Language  `json:"language"`
	Checkout CheckoutResponse `json:"checkout"`
}

// requestLanguage resolves ?lang, then the session's choice, then
// Accept-Language.
func requestLanguage(r *http.Request, s *session.Session) domain.Language {
	var chosen string
	if s != nil {
		chosen = string(s.Language)
	}
	return i18n.Negotiate(r.URL.Query().Get("lang"), chosen, r.Header.Get("Accept-Language"))
}
