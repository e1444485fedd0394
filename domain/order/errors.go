/*
Package order - order subdomain error definitions

Design:
1. Sentinel errors support type-safe errors.Is() checks.
2. Constructors capture the stack at creation so logs point at the
   place the error was raised, not where it was handled.
3. No HTTP status codes or other transport concepts here.
*/
package order

import (
	"errors"

	"huerto/domain/shared"
)

var (
	// ErrOrderNotFound means the order id did not resolve.
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification means another transaction changed the
	// order between load and save. Callers should reload and retry.
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrInvalidStatus means the supplied status string is not one of
	// the five enumerated values.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrEmptyOrderItems means the order was created with no line items.
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity means a line item quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrMissingTotal means the caller did not supply the order total.
	// The total is caller-provided and never recomputed from line items.
	ErrMissingTotal = errors.New("order total is required")

	// ErrNegativeAmount means a monetary field is below zero.
	ErrNegativeAmount = errors.New("monetary amounts must not be negative")
)

// NewOrderNotFoundError builds an order-not-found error with stack.
// The result satisfies errors.Is(err, ErrOrderNotFound) and
// errors.Is(err, shared.ErrNotFound).
func NewOrderNotFoundError(orderID string) error {
	return &orderError{
		sentinel: ErrOrderNotFound,
		class:    shared.ErrNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError builds an optimistic-lock clash error.
func NewConcurrentModificationError(orderID string) error {
	return &orderError{
		sentinel: ErrConcurrentModification,
		class:    shared.ErrConflict,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidStatusError builds an unrecognized-status error.
func NewInvalidStatusError(status string) error {
	return &orderError{
		sentinel: ErrInvalidStatus,
		class:    shared.ErrInvalidInput,
		message:  "invalid order status: " + status,
		stack:    shared.CaptureStack(3),
	}
}

func newValidationError(sentinel error, message string) error {
	return &orderError{
		sentinel: sentinel,
		class:    shared.ErrInvalidInput,
		message:  message,
		stack:    shared.CaptureStack(4),
	}
}

// orderError carries a subdomain sentinel, the shared taxonomy class
// and the creation stack. It implements error, Unwrap and shared.Stacker.
type orderError struct {
	sentinel error
	class    error
	message  string
	stack    []uintptr
}

func (e *orderError) Error() string {
	return e.message
}

// Unwrap exposes both the subdomain sentinel and the shared class,
// so errors.Is matches either.
func (e *orderError) Unwrap() []error {
	return []error{e.sentinel, e.class}
}

// Stack implements shared.Stacker.
func (e *orderError) Stack() []string {
	return shared.FormatStack(e.stack)
}
