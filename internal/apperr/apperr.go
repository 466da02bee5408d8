// Package apperr defines the error taxonomy shared by the taxonomy and
// ledger services. Handlers map each kind to an HTTP status code; services
// return these instead of bare errors whenever the caller can act on the
// distinction.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindUnknown is any error not carrying a taxonomy kind.
	KindUnknown Kind = iota
	// KindNotFound: the referenced entity does not exist.
	KindNotFound
	// KindValidation: the request is malformed or violates an invariant;
	// no state was mutated.
	KindValidation
	// KindConflict: the request conflicts with existing state (duplicate
	// name, insufficient balance, existing wallet); no state was mutated.
	KindConflict
	// KindGateway: an external provider call failed.
	KindGateway
	// KindUnauthorized: the requester lacks the privilege for the operation.
	KindUnauthorized
)

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound returns a KindNotFound error with a formatted message.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Validation returns a KindValidation error with a formatted message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Conflict returns a KindConflict error with a formatted message.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Unauthorized returns a KindUnauthorized error with a formatted message.
func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

// Gateway wraps a provider error with a KindGateway classification.
func Gateway(msg string, err error) *Error {
	return &Error{Kind: KindGateway, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err, or KindUnknown if err carries none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}
