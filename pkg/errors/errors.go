package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds separate locally detected failures from collaborator outcomes.
const (
	KindValidation     = "validation"
	KindTransport      = "transport"
	KindRejected       = "rejected"
	KindSessionExpired = "session_expired"
	KindInternal       = "internal"
)

// Error represents a typed workflow error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so predefined values work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code, kind string, status int, message string) *Error {
	return &Error{Code: code, Kind: kind, Status: status, Message: message}
}

// Wrap attaches context to an existing error, keeping the kind of the template.
func Wrap(err error, template *Error, message string) *Error {
	clone := Clone(template, message)
	clone.Err = err
	return clone
}

// Predefined errors for common scenarios.
var (
	ErrValidation     = New("VALIDATION_ERROR", KindValidation, http.StatusBadRequest, "validation failed")
	ErrTransport      = New("TRANSPORT_ERROR", KindTransport, http.StatusBadGateway, "classroom api unreachable")
	ErrRejected       = New("REJECTED", KindRejected, http.StatusBadGateway, "request rejected")
	ErrBadRequest     = New("BAD_REQUEST", KindRejected, http.StatusBadRequest, "bad request")
	ErrUnauthorized   = New("UNAUTHORIZED", KindRejected, http.StatusUnauthorized, "unauthorized")
	ErrForbidden      = New("FORBIDDEN", KindRejected, http.StatusForbidden, "forbidden")
	ErrNotFound       = New("NOT_FOUND", KindRejected, http.StatusNotFound, "resource not found")
	ErrConflict       = New("CONFLICT", KindRejected, http.StatusConflict, "conflict")
	ErrUnprocessable  = New("UNPROCESSABLE", KindRejected, http.StatusUnprocessableEntity, "unprocessable entity")
	ErrSessionExpired = New("SESSION_EXPIRED", KindSessionExpired, http.StatusUnauthorized, "session expired")
	ErrInternal       = New("INTERNAL_ERROR", KindInternal, http.StatusInternalServerError, "internal server error")
)

// FromStatus converts a collaborator non-success status into a rejected error.
// The collaborator's message is kept verbatim when present.
func FromStatus(status int, message string) *Error {
	message = strings.TrimSpace(message)
	var template *Error
	switch status {
	case http.StatusBadRequest:
		template = ErrBadRequest
	case http.StatusUnauthorized:
		template = ErrUnauthorized
	case http.StatusForbidden:
		template = ErrForbidden
	case http.StatusNotFound:
		template = ErrNotFound
	case http.StatusConflict:
		template = ErrConflict
	case http.StatusUnprocessableEntity:
		template = ErrUnprocessable
	default:
		clone := Clone(ErrRejected, message)
		clone.Status = status
		return clone
	}
	return Clone(template, message)
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IsValidation reports locally detected bad input.
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// IsTransport reports an unreachable collaborator.
func IsTransport(err error) bool { return IsKind(err, KindTransport) }

// IsRejected reports a non-success answer from the collaborator.
func IsRejected(err error) bool { return IsKind(err, KindRejected) }

// IsSessionExpired reports a credential that no longer resolves to an identity.
func IsSessionExpired(err error) bool { return IsKind(err, KindSessionExpired) }
