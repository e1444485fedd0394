/*
Package shared holds the building blocks common to every subdomain:
the Money value object, the caller Principal, the error taxonomy and
the unit-of-work contract.

Error design:
1. Sentinel errors classify failures for errors.Is() checks.
2. DomainError captures the call stack at creation and formats it lazily.
3. Domain errors carry no transport concepts (no HTTP status codes).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors. Subdomain packages wrap these so callers can classify
// a failure without depending on the concrete error value.
var (
	// ErrInvalidInput marks malformed input: empty cart, missing total,
	// unrecognized status string.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks an id that does not resolve to an entity.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a concurrent-modification clash detected by the
	// optimistic-lock check. Callers may retry with fresh state.
	ErrConflict = errors.New("conflict")
)

// DomainError is a structured error carrying business context and the
// stack of its creation point.
type DomainError struct {
	// Err is the underlying sentinel, exposed through Unwrap.
	Err error

	// Entity names the aggregate the error belongs to ("order", "product").
	Entity string

	// Field optionally names the offending field for validation errors.
	Field string

	// Message is the human-readable description.
	Message string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand, one frame per element.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack captures the current call stack. skip is the number of
// frames to drop (usually 3: Callers, CaptureStack, the constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders stack frames, filtering runtime internals.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError builds a "does not resolve" error for an entity id.
func NewNotFoundError(entity, id string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found: " + id,
		stack:   CaptureStack(3),
	}
}

// NewValidationError builds a malformed-input error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewConflictError builds a concurrent-modification error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that carry their creation stack.
// The API layer uses it to log the origin of a failure.
type Stacker interface {
	Stack() []string
}
