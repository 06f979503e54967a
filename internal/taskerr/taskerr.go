// Package taskerr defines the closed set of failures that can cross the
// gateway boundary.
package taskerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies one of the four failure variants.
type Kind int

const (
	// KindRequest covers transport failures and unclassified non-2xx responses.
	KindRequest Kind = iota

	// KindValidation covers local schema failures and server 422 responses.
	KindValidation

	// KindNotFound covers server 404 responses.
	KindNotFound

	// KindForbidden covers server 403 responses.
	KindForbidden
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "RequestError"
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindForbidden:
		return "ForbiddenError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// StatusCode returns the fixed HTTP status associated with the kind.
func (k Kind) StatusCode() int {
	switch k {
	case KindRequest:
		return http.StatusBadRequest
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

func (k Kind) defaultMessage() string {
	switch k {
	case KindValidation:
		return "Validation failed"
	case KindNotFound:
		return "Resource not found"
	case KindForbidden:
		return "Forbidden"
	}
	return "Request failed"
}

// Sentinels for errors.Is matching by kind.
var (
	ErrRequest    = &Error{Kind: KindRequest, Message: KindRequest.defaultMessage()}
	ErrValidation = &Error{Kind: KindValidation, Message: KindValidation.defaultMessage()}
	ErrNotFound   = &Error{Kind: KindNotFound, Message: KindNotFound.defaultMessage()}
	ErrForbidden  = &Error{Kind: KindForbidden, Message: KindForbidden.defaultMessage()}
)

// Error is a domain error. Values are never mutated after construction.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
}

func newError(kind Kind, message, detail string) *Error {
	if message == "" {
		message = kind.defaultMessage()
	}
	return &Error{Kind: kind, Message: message, Detail: detail}
}

// Request creates a KindRequest error.
func Request(message, detail string) *Error { return newError(KindRequest, message, detail) }

// Validation creates a KindValidation error.
func Validation(message, detail string) *Error { return newError(KindValidation, message, detail) }

// NotFound creates a KindNotFound error.
func NotFound(message, detail string) *Error { return newError(KindNotFound, message, detail) }

// Forbidden creates a KindForbidden error.
func Forbidden(message, detail string) *Error { return newError(KindForbidden, message, detail) }

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// StatusCode returns the status code fixed by the error's kind.
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// Is reports whether target is a domain error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// As extracts a domain error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Coerce returns err unchanged if it already is a domain error. Anything else
// becomes a KindRequest error whose message is prefix followed by the cause
// and whose detail preserves the underlying message.
func Coerce(err error, prefix string) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	msg := err.Error()
	if prefix != "" {
		return Request(prefix+": "+msg, msg)
	}
	return Request(msg, msg)
}

// KindForStatus classifies a non-2xx status. allowed lists the kinds the
// calling operation can map to; a status not covered by allowed is KindRequest.
func KindForStatus(status int, allowed ...Kind) Kind {
	for _, kind := range allowed {
		if kind != KindRequest && kind.StatusCode() == status {
			return kind
		}
	}
	return KindRequest
}

// FromStatus builds the error for a non-2xx status, classified by KindForStatus.
func FromStatus(status int, message, detail string, allowed ...Kind) *Error {
	return newError(KindForStatus(status, allowed...), message, detail)
}
