package sale

import (
	"errors"

	"huerto/domain/shared"
)

// ErrSaleNotFound means the sale id did not resolve.
var ErrSaleNotFound = errors.New("sale not found")

// NewSaleNotFoundError builds a sale-not-found error with stack.
// The result satisfies errors.Is(err, ErrSaleNotFound) and
// errors.Is(err, shared.ErrNotFound).
func NewSaleNotFoundError(saleID string) error {
	return &saleError{
		sentinel: ErrSaleNotFound,
		class:    shared.ErrNotFound,
		message:  "sale not found: " + saleID,
		stack:    shared.CaptureStack(3),
	}
}

type saleError struct {
	sentinel error
	class    error
	message  string
	stack    []uintptr
}

func (e *saleError) Error() string {
	return e.message
}

func (e *saleError) Unwrap() []error {
	return []error{e.sentinel, e.class}
}

// Stack implements shared.Stacker.
func (e *saleError) Stack() []string {
	return shared.FormatStack(e.stack)
}
