package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by how the caller should recover from it.
type Kind int

const (
	// KindValidation covers malformed or locally rejectable input; no
	// remote state changed and no refresh is needed.
	KindValidation Kind = iota
	// KindConflict means a seat is no longer available; the caller must
	// refetch the day's allocations and let a human re-decide.
	KindConflict
	// KindTransient covers network and server failures unrelated to seat
	// state; local state is preserved and the action can be retried.
	KindTransient
	// KindNotFound covers missing entities such as an absent active
	// layout; renders as an empty state, not a hard failure.
	KindNotFound
)

// Error is the single error type crossing service boundaries. Every
// remote failure is converted to one of the four kinds before it
// reaches a controller.
type Error struct {
	Kind    Kind
	Message string
	Details interface{}
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus maps the error kind to its wire status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(message string, details interface{}) *Error {
	return &Error{Kind: KindConflict, Message: message, Details: details}
}

func Transient(message string, cause error) *Error {
	return &Error{Kind: KindTransient, Message: message, cause: cause}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }
func IsTransient(err error) bool  { return IsKind(err, KindTransient) }
func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }

// From wraps an arbitrary error as one of the four kinds, passing
// through errors that are already classified.
func From(err error, fallbackMessage string) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Transient(fallbackMessage, err)
}
