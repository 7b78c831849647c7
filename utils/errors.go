package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries a stable code next to the message shown to the user.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Error codes
const (
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidInput    = "INVALID_INPUT"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrForbidden       = "FORBIDDEN"
	ErrConflict        = "CONFLICT"
	ErrQuotaExceeded   = "QUOTA_EXCEEDED"
	ErrPaymentRequired = "PAYMENT_REQUIRED"
	ErrInternal        = "INTERNAL"
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func NotFound(message string) error     { return NewAppError(ErrNotFound, message, nil) }
func InvalidInput(message string) error { return NewAppError(ErrInvalidInput, message, nil) }
func Unauthorized(message string) error { return NewAppError(ErrUnauthorized, message, nil) }
func Forbidden(message string) error    { return NewAppError(ErrForbidden, message, nil) }
func Conflict(message string) error     { return NewAppError(ErrConflict, message, nil) }

// Internal wraps a storage or provider failure.
func Internal(message string, cause error) error {
	return NewAppError(ErrInternal, message, cause)
}

// IsErrorCode reports whether err (or anything it wraps) is an AppError with code.
func IsErrorCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus maps an error to the status code sent to the client.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrQuotaExceeded:
		return http.StatusTooManyRequests
	case ErrPaymentRequired:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text the client renders. Internal causes never leak.
func PublicMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code == ErrInternal {
		return "Something went wrong, please try again"
	}
	return appErr.Message
}

// QuotaExceeded reports a consumed daily allowance.
func QuotaExceeded(message string) error { return NewAppError(ErrQuotaExceeded, message, nil) }

// PaymentRequired reports a missing paid credit.
func PaymentRequired(message string) error { return NewAppError(ErrPaymentRequired, message, nil) }
