// Package contact handles the storefront's "get in touch" form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

var (
	ErrValidation    = errors.New("contact validation failed")
	ErrNotConfigured = errors.New("contact sink not configured")
)

type Sink interface {
	IsAvailable() bool
	SaveContact(ctx context.Context, c domain.Contact) error
}

type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeDemo    Outcome = "demo"
	OutcomeOffline Outcome = "offline"
)

type Result struct {
	Outcome      Outcome             `json:"outcome"`
	Notification domain.Notification `json:"notification"`
}

type ValidationError struct {
	Field        string
	Reason       string
	Notification domain.Notification
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type Service struct {
	sink    Sink
	log     *slog.Logger
	now     func() time.Time
	timeout time.Duration
}

func NewService(sink Sink, log *slog.Logger) *Service {
	return &Service{sink: sink, log: log, now: time.Now, timeout: 10 * time.Second}
}

// Submit stores the message. Like checkout, a missing or failing backend
// never surfaces as an error; only invalid input does.
func (s *Service) Submit(ctx context.Context, lang domain.Language, req Request) (*Result, error) {
	req = Request{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	if s.sink == nil || !s.sink.IsAvailable() {
		return demoResult(), nil
	}

	c := domain.Contact{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Language:  lang.OrDefault(),
		CreatedAt: s.now().UTC(),
	}

	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	err := s.sink.SaveContact(sinkCtx, c)
	switch {
	case err == nil:
		return &Result{
			Outcome:      OutcomeSent,
			Notification: domain.Notify("Message Sent", "Thank you for your message. We'll get back to you soon!"),
		}, nil
	case errors.Is(err, ErrNotConfigured):
		return demoResult(), nil
	default:
		s.log.ErrorContext(ctx, "failed to save contact message", "contact_id", c.ID, "email", c.Email, "error", err)
		return &Result{
			Outcome:      OutcomeOffline,
			Notification: domain.Notify("Message Received (Offline Mode)", "Thank you for your message! There was a connection issue, but we've noted your inquiry."),
		}, nil
	}
}

func demoResult() *Result {
	return &Result{
		Outcome:      OutcomeDemo,
		Notification: domain.Notify("Message Received (Demo Mode)", "Thank you for your message! In demo mode, messages are not saved. Please configure the database to enable full functionality."),
	}
}

func validate(req Request) error {
	missing := func(field, label string) error {
		return &ValidationError{
			Field:        field,
			Reason:       "is required",
			Notification: domain.Alert("Missing Information", "Please enter your "+label+"."),
		}
	}
	switch {
	case req.Name == "":
		return missing("name", "name")
	case req.Email == "":
		return missing("email", "email address")
	case !domain.ValidEmail(req.Email):
		return &ValidationError{
			Field:        "email",
			Reason:       "is not a valid email address",
			Notification: domain.Alert("Invalid Email", "Please enter a valid email address."),
		}
	case req.Message == "":
		return missing("message", "message")
	}
	return nil
}
