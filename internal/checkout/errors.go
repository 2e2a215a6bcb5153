package checkout

import (
	"errors"
	"fmt"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

var (
	ErrValidation        = errors.New("checkout validation failed")
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrIllegalTransition = errors.New("illegal transition of checkout state")

	// ErrNotConfigured is returned by order sinks that have no backend.
	ErrNotConfigured = errors.New("order sink not configured")
)

// ValidationError is returned before anything is handed to the order sink.
// It matches ErrValidation, and ErrEmptyCart when the cart was empty.
type ValidationError struct {
	Field        string
	Reason       string
	Notification domain.Notification
	cause        error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrValidation, e.cause}
	}
	return []error{ErrValidation}
}

func emptyCartError() *ValidationError {
	return &ValidationError{
		Reason:       "cart is empty",
		Notification: domain.Alert("Empty Cart", "Please add items to your cart before checkout."),
		cause:        ErrEmptyCart,
	}
}

func missingField(field, label string) *ValidationError {
	return &ValidationError{
		Field:        field,
		Reason:       "is required",
		Notification: domain.Alert("Missing Information", fmt.Sprintf("Please enter your %s.", label)),
	}
}

func invalidEmail() *ValidationError {
	return &ValidationError{
		Field:        "email",
		Reason:       "is not a valid email address",
		Notification: domain.Alert("Invalid Email", "Please enter a valid email address."),
	}
}

// ValidateCustomer checks the four required fields in form order.
func ValidateCustomer(info domain.CustomerInfo) error {
	switch {
	case domain.Blank(info.Name):
		return missingField("name", "full name")
	case domain.Blank(info.Email):
		return missingField("email", "email address")
	case !domain.ValidEmail(info.Email):
		return invalidEmail()
	case domain.Blank(info.Phone):
		return missingField("phone", "phone number")
	case domain.Blank(info.Address):
		return missingField("address", "delivery address")
	}
	return nil
}
