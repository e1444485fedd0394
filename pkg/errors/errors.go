// Package errors defines application-level error codes and the mapping
// from domain errors to them. HTTP status mapping lives in the API
// layer; this package stays transport-agnostic apart from code names.
package errors

import (
	"errors"
	"fmt"

	ordererrors "huerto/domain/order"
	producterrors "huerto/domain/product"
	saleerrors "huerto/domain/sale"
	"huerto/domain/shared"
)

// ErrorCode classifies an application failure.
type ErrorCode string

const (
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	CodeOrderNotFound      ErrorCode = "ORDER_NOT_FOUND"
	CodeProductNotFound    ErrorCode = "PRODUCT_NOT_FOUND"
	CodeSaleNotFound       ErrorCode = "SALE_NOT_FOUND"
	CodeInvalidOrderStatus ErrorCode = "INVALID_ORDER_STATUS"
	CodeConcurrentModify   ErrorCode = "CONCURRENT_MODIFICATION"
)

// AppError is the application-facing error: a code plus a message safe
// to show to callers, wrapping the underlying cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError keeping the cause in the chain.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func Validation(message string) *AppError   { return New(CodeValidation, message) }
func NotFound(message string) *AppError     { return New(CodeNotFound, message) }
func Conflict(message string) *AppError     { return New(CodeConflict, message) }
func Internal(message string) *AppError     { return New(CodeInternal, message) }
func Unauthorized(message string) *AppError { return New(CodeUnauthorized, message) }

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError maps a domain error to an AppError. Sentinels give a
// specific business code where one exists; otherwise the shared
// taxonomy class decides, and anything unclassified becomes an
// internal error with the original message kept only in the chain.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ordererrors.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, err.Error())
	case errors.Is(err, producterrors.ErrProductNotFound):
		return Wrap(err, CodeProductNotFound, err.Error())
	case errors.Is(err, saleerrors.ErrSaleNotFound):
		return Wrap(err, CodeSaleNotFound, err.Error())
	case errors.Is(err, ordererrors.ErrInvalidStatus):
		return Wrap(err, CodeInvalidOrderStatus, err.Error())
	case errors.Is(err, ordererrors.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModify, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
