package admin

import (
	"errors"
	"fmt"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

var (
	ErrDemoMode   = errors.New("admin writes need a configured database")
	ErrValidation = errors.New("admin validation failed")
)

// DemoModeError carries the notice shown when a write is refused in demo
// mode.
type DemoModeError struct {
	Notification domain.Notification
}

func (e *DemoModeError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDemoMode, e.Notification.Description)
}

func (e *DemoModeError) Unwrap() error {
	return ErrDemoMode
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

func invalid(field, reason string) error {
	return &ValidationError{
		Field:        field,
		Reason:       reason,
		Notification: domain.Alert("Error", fmt.Sprintf("%s %s.", field, reason)),
	}
}

// OperationError wraps a store failure with the notice to show for it.
type OperationError struct {
	Notification domain.Notification
	Err          error
}

func (e *OperationError) Error() string {
	return e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
