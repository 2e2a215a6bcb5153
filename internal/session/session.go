// Package session keeps per-visitor storefront state: language, cart and
// checkout form. Sessions are keyed by the id in the visitor's cookie.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/cart"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string
	// Language is empty until the visitor picks one.
	Language  domain.Language
	Cart      *cart.Cart
	Checkout  checkout.Form
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Cart:      cart.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lang is the chosen language or English.
func (s *Session) Lang() domain.Language {
	return s.Language.OrDefault()
}

// Store persists sessions. Implementations expire idle sessions after their
// configured TTL.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// record is the stored shape of a session.
type record struct {
	ID        string            `json:"id" bson:"_id"`
	Language  domain.Language   `json:"language" bson:"language"`
	Lines     []domain.CartLine `json:"lines" bson:"lines"`
	Checkout  checkout.Form     `json:"checkout" bson:"checkout"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
	ExpiresAt time.Time         `json:"expires_at" bson:"expires_at"`
}

func toRecord(s *Session, ttl time.Duration) record {
	var lines []domain.CartLine
	if s.Cart != nil {
		lines = s.Cart.Lines()
	}
	return record{
		ID:        s.ID,
		Language:  s.Language,
		Lines:     lines,
		Checkout:  s.Checkout,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		ExpiresAt: s.UpdatedAt.Add(ttl),
	}
}

func (r record) session() *Session {
	lang := r.Language
	if !lang.IsValid() {
		lang = ""
	}
	return &Session{
		ID:        r.ID,
		Language:  lang,
		Cart:      cart.FromLines(r.Lines),
		Checkout:  r.Checkout,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
