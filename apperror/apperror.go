package apperror

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies a failure so the HTTP layer can pick a status code.
type Kind int

const (
	KindStorage Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuthorization
	KindState
	KindAuthentication
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuthorization:
		return "authorization"
	case KindState:
		return "state"
	case KindAuthentication:
		return "authentication"
	default:
		return "storage"
	}
}

// Error is the typed failure returned by the services.
type Error struct {
	Kind    Kind
	Message string
	// Details lists every individual violation of a validation error.
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to the response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindState:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	case KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to show to a client. Storage errors never
// leak their cause.
func (e *Error) PublicMessage() string {
	if e.Kind == KindStorage {
		return "Internal server error"
	}
	return e.Message
}

func Validation(details ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: strings.Join(details, ", "),
		Details: details,
	}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func State(message string) *Error {
	return &Error{Kind: KindState, Message: message}
}

// Unauthenticated reports missing or bad credentials.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Storage wraps an infrastructure failure. Typed errors pass through
// unchanged so a rollback never hides the business reason.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{Kind: KindStorage, Message: "storage failure", Err: err}
}

// KindOf returns the kind of err, KindStorage for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// From returns the typed error inside err, wrapping untyped errors as
// storage failures.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindStorage, Message: "storage failure", Err: err}
}
