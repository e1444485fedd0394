package product

import (
	"errors"

	"huerto/domain/shared"
)

// ErrProductNotFound means the product id did not resolve.
var ErrProductNotFound = errors.New("product not found")

// NewProductNotFoundError builds a product-not-found error with stack.
// The result satisfies errors.Is(err, ErrProductNotFound) and
// errors.Is(err, shared.ErrNotFound).
func NewProductNotFoundError(productID string) error {
	return &productError{
		sentinel: ErrProductNotFound,
		class:    shared.ErrNotFound,
		message:  "product not found: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

type productError struct {
	sentinel error
	class    error
	message  string
	stack    []uintptr
}

func (e *productError) Error() string {
	return e.message
}

func (e *productError) Unwrap() []error {
	return []error{e.sentinel, e.class}
}

// Stack implements shared.Stacker.
func (e *productError) Stack() []string {
	return shared.FormatStack(e.stack)
}
