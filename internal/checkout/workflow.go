// Package checkout turns a session cart and customer details into a
// submitted order. Every path out of a submission clears the cart and
// closes the form, whatever the order sink did with the order.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/cart"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

type State string

const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateSubmitting State = "submitting"
)

// Form is the per-session checkout state.
type Form struct {
	State    State               `json:"state" bson:"state"`
	Customer domain.CustomerInfo `json:"customer" bson:"customer"`
}

// Current treats the zero value as idle.
func (f *Form) Current() State {
	if f.State == "" {
		return StateIdle
	}
	return f.State
}

// OrderSink persists submitted orders.
// Consumers define this interface, not the storage implementation.
type OrderSink interface {
	IsAvailable() bool
	Submit(ctx context.Context, order domain.Order) error
}

type Outcome string

const (
	OutcomePlaced  Outcome = "placed"
	OutcomeDemo    Outcome = "demo"
	OutcomeOffline Outcome = "offline"
)

type Result struct {
	Outcome      Outcome             `json:"outcome"`
	Order        domain.Order        `json:"order"`
	Notification domain.Notification `json:"notification"`
}

var (
	noticePlaced = domain.Notify("Order Placed",
		"Your order has been placed successfully! We'll contact you soon.")
	noticeDemo = domain.Notify("Order Received (Demo Mode)",
		"Thank you for your order! In demo mode, orders are not saved. Please configure the database to enable full functionality.")
	noticeOffline = domain.Notify("Order Received (Offline Mode)",
		"Thank you for your order! There was a connection issue, but we've noted your order details.")
)

type Workflow struct {
	sink          OrderSink
	log           *slog.Logger
	now           func() time.Time
	newID         func() string
	currency      string
	submitTimeout time.Duration
	tracer        trace.Tracer
}

type Option func(*Workflow)

func WithLogger(l *slog.Logger) Option {
	return func(w *Workflow) { w.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(w *Workflow) { w.newID = newID }
}

func WithCurrency(code string) Option {
	return func(w *Workflow) { w.currency = code }
}

// WithSubmitTimeout bounds the sink call. The caller's cancellation does
// not reach the sink.
func WithSubmitTimeout(d time.Duration) Option {
	return func(w *Workflow) { w.submitTimeout = d }
}

func NewWorkflow(sink OrderSink, opts ...Option) *Workflow {
	w := &Workflow{
		sink:          sink,
		log:           slog.Default(),
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
		currency:      "ETB",
		submitTimeout: 10 * time.Second,
		tracer:        otel.Tracer("github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open shows the checkout form. An empty cart cannot be checked out.
func (w *Workflow) Open(form *Form, c *cart.Cart) error {
	if c.IsEmpty() {
		return emptyCartError()
	}
	if form.Current() == StateSubmitting {
		return ErrIllegalTransition
	}
	form.State = StateCollecting
	return nil
}

// UpdateCustomer stores the typed-in details. They are validated on Submit.
func (w *Workflow) UpdateCustomer(form *Form, info domain.CustomerInfo) error {
	if form.Current() != StateCollecting {
		return ErrIllegalTransition
	}
	form.Customer = info
	return nil
}

// Cancel closes the form and keeps whatever the customer typed.
func (w *Workflow) Cancel(form *Form) error {
	if form.Current() != StateCollecting {
		return ErrIllegalTransition
	}
	form.State = StateIdle
	return nil
}

// Submit places the order. A returned error is always a *ValidationError or
// ErrIllegalTransition and leaves the form collecting. Sink failures are not
// returned: they select the outcome and the user is told something
// reassuring either way.
func (w *Workflow) Submit(ctx context.Context, form *Form, c *cart.Cart) (*Result, error) {
	if form.Current() != StateCollecting {
		return nil, ErrIllegalTransition
	}

	ctx, span := w.tracer.Start(ctx, "checkout.Submit")
	defer span.End()

	if c.IsEmpty() {
		span.SetStatus(codes.Error, "empty cart")
		return nil, emptyCartError()
	}
	customer := form.Customer.Normalize()
	if err := ValidateCustomer(customer); err != nil {
		span.SetStatus(codes.Error, "invalid customer info")
		return nil, err
	}

	form.State = StateSubmitting

	lines := c.Lines()
	order := domain.Order{
		ID:          w.newID(),
		Customer:    customer,
		Items:       lines,
		TotalAmount: cart.Total(lines),
		Currency:    w.currency,
		Status:      domain.OrderStatusPending,
		CreatedAt:   w.now().UTC(),
	}

	outcome := w.hand(ctx, order)
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Float64("order.total", order.TotalAmount),
		attribute.Int("order.lines", len(order.Items)),
		attribute.String("checkout.outcome", string(outcome)),
	)

	c.Clear()
	form.Customer = domain.CustomerInfo{}
	form.State = StateIdle

	return &Result{Outcome: outcome, Order: order, Notification: notice(outcome)}, nil
}

func (w *Workflow) hand(ctx context.Context, order domain.Order) Outcome {
	if w.sink == nil || !w.sink.IsAvailable() {
		w.log.InfoContext(ctx, "order acknowledged in demo mode", "order_id", order.ID, "total", order.TotalAmount)
		return OutcomeDemo
	}

	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.submitTimeout)
	defer cancel()

	err := w.sink.Submit(sinkCtx, order)
	switch {
	case err == nil:
		w.log.InfoContext(ctx, "order placed", "order_id", order.ID, "total", order.TotalAmount, "lines", len(order.Items))
		return OutcomePlaced
	case errors.Is(err, ErrNotConfigured):
		w.log.InfoContext(ctx, "order acknowledged in demo mode", "order_id", order.ID, "total", order.TotalAmount)
		return OutcomeDemo
	default:
		trace.SpanFromContext(ctx).RecordError(err)
		w.log.ErrorContext(ctx, "order sink failed, order not recorded",
			"order_id", order.ID,
			"customer_email", order.Customer.Email,
			"total", order.TotalAmount,
			"error", err)
		return OutcomeOffline
	}
}

func notice(o Outcome) domain.Notification {
	switch o {
	case OutcomePlaced:
		return noticePlaced
	case OutcomeDemo:
		return noticeDemo
	default:
		return noticeOffline
	}
}
