// Package apperr defines the failure kinds the HTTP layer knows how to
// report. Services classify collaborator errors into one of these kinds
// instead of matching on message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindBadRequest
	KindNotFound
	KindUnauthorized
	KindAuthFailed
	KindNotConfigured
	KindConnectionFailed
	KindUpstream
	KindStorage
)

// Error carries a kind, a user-facing message and the wrapped cause.
// Details holds extra JSON fields merged into the error response body
// (e.g. the list of invalid recipient addresses).
type Error struct {
	Kind    Kind
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error under the given kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithDetails attaches extra response fields and returns the same error.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

// KindOf extracts the kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// StatusCode maps a kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized, KindAuthFailed:
		return http.StatusUnauthorized
	default:
		// NotConfigured, ConnectionFailed, Upstream, Storage and anything
		// unclassified are server-side failures.
		return http.StatusInternalServerError
	}
}
