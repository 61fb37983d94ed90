package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. Handlers map kinds to HTTP status codes,
// callers never retry anything but KindUnavailable.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindNotFound          Kind = "not_found"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindIllegalTransition Kind = "illegal_transition"
	KindUnavailable       Kind = "unavailable"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string
	Details any
	cause   error
}

func (e BusinessError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.cause)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.cause
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Validation(code, message string, fields map[string]string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

func Conflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func NotFoundErr(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func UnauthorizedErr(code, message string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code, Message: message}
}

func Forbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func IllegalTransition(from, to string) error {
	return BusinessError{
		Kind:    KindIllegalTransition,
		Code:    "illegal_status_transition",
		Message: fmt.Sprintf("Cannot move a booking from %s to %s.", from, to),
	}
}

// Unavailable wraps a storage or dependency failure.
func Unavailable(code string, cause error) error {
	return BusinessError{
		Kind:    KindUnavailable,
		Code:    code,
		Message: "Service temporarily unavailable, try again later.",
		cause:   cause,
	}
}

// WithDetails attaches a structured payload rendered next to the message.
func WithDetails(err error, details any) error {
	var be BusinessError
	if errors.As(err, &be) {
		be.Details = details
		return be
	}
	return err
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
