// Package apperr defines the closed set of error kinds the API can
// produce and their mapping to HTTP statuses and client-safe messages.
// Every layer classifies failures into one of these kinds; handlers and
// middleware never branch on third-party error types directly.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies a class of failure.
type Kind int

const (
	// KindInternal covers unclassified failures. Details are logged,
	// never sent to the client.
	KindInternal Kind = iota
	// KindTokenMissing: the Authorization header is absent or has no
	// bearer credential.
	KindTokenMissing
	// KindTokenMalformed: the token string is not a parseable JWT.
	KindTokenMalformed
	// KindTokenInvalidSignature: the signature does not verify against
	// the configured public key, or the algorithm is not the pinned one.
	KindTokenInvalidSignature
	// KindTokenExpired: the token's exp claim is in the past.
	KindTokenExpired
	// KindWrongTokenType: a refresh token was presented where an access
	// token is required, or vice versa.
	KindWrongTokenType
	// KindInvalidPassword: credential verification failed at login.
	KindInvalidPassword
	// KindNotFound: the requested row does not exist.
	KindNotFound
	// KindUserDisabled: the subject exists but is_active is false.
	KindUserDisabled
	// KindInsufficientPrivilege: an authenticated non-admin hit an
	// admin-only route.
	KindInsufficientPrivilege
	// KindUnprocessable: the request body failed validation.
	KindUnprocessable
	// KindConflict: a unique or foreign-key constraint was violated.
	KindConflict
)

// statuses maps each kind to its HTTP status. TokenMalformed maps to
// 500, matching the contract existing clients rely on.
var statuses = map[Kind]int{
	KindInternal:              http.StatusInternalServerError,
	KindTokenMissing:          http.StatusUnauthorized,
	KindTokenMalformed:        http.StatusInternalServerError,
	KindTokenInvalidSignature: http.StatusForbidden,
	KindTokenExpired:          http.StatusForbidden,
	KindWrongTokenType:        http.StatusBadRequest,
	KindInvalidPassword:       http.StatusUnauthorized,
	KindNotFound:              http.StatusNotFound,
	KindUserDisabled:          http.StatusForbidden,
	KindInsufficientPrivilege: http.StatusUnauthorized,
	KindUnprocessable:         http.StatusUnprocessableEntity,
	KindConflict:              http.StatusConflict,
}

// Error carries a kind, a client-safe message, and an optional wrapped
// cause. The cause is for logs only and never reaches the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New builds an Error of the given kind with a client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality, so errors.Is(err, apperr.New(kind, ""))
// and sentinel comparisons work across wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf extracts the kind from err, or KindInternal if err was never
// classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status returns the HTTP status code for err.
func Status(err error) int {
	return statuses[KindOf(err)]
}

// Message returns the client-safe message for err. Unclassified errors
// collapse to a generic message so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
