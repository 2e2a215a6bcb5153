package backend

import (
	"context"
	"log/slog"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/circuitbreaker"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/contact"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

type orderWriter interface {
	CreateOrder(ctx context.Context, order domain.Order) error
}

type contactWriter interface {
	SaveContact(ctx context.Context, c domain.Contact) error
}

// OrderSink writes orders to the database through a circuit breaker.
type OrderSink struct {
	repo    orderWriter
	breaker *circuitbreaker.Breaker[struct{}]
}

func NewOrderSink(repo orderWriter, log *slog.Logger) *OrderSink {
	return &OrderSink{
		repo:    repo,
		breaker: circuitbreaker.New[struct{}](circuitbreaker.DefaultSettings("orders", log)),
	}
}

func (s *OrderSink) IsAvailable() bool { return true }

func (s *OrderSink) Submit(ctx context.Context, order domain.Order) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.repo.CreateOrder(ctx, order)
	})
	return err
}

type ContactSink struct {
	repo    contactWriter
	breaker *circuitbreaker.Breaker[struct{}]
}

func NewContactSink(repo contactWriter, log *slog.Logger) *ContactSink {
	return &ContactSink{
		repo:    repo,
		breaker: circuitbreaker.New[struct{}](circuitbreaker.DefaultSettings("contacts", log)),
	}
}

func (s *ContactSink) IsAvailable() bool { return true }

func (s *ContactSink) SaveContact(ctx context.Context, c domain.Contact) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.repo.SaveContact(ctx, c)
	})
	return err
}

// DemoOrderSink accepts nothing.
type DemoOrderSink struct{}

func (DemoOrderSink) IsAvailable() bool { return false }

func (DemoOrderSink) Submit(context.Context, domain.Order) error {
	return checkout.ErrNotConfigured
}

type DemoContactSink struct{}

func (DemoContactSink) IsAvailable() bool { return false }

func (DemoContactSink) SaveContact(context.Context, domain.Contact) error {
	return contact.ErrNotConfigured
}
