// Package apperror defines the tagged failures returned by the application services.
// Transport code switches on Kind to pick a status code.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind uint8

const (
	KindInternal Kind = iota
	KindMissingToken
	KindInvalidToken
	KindTokenExpired
	KindInvalidCredentials
	KindConflict
	KindValidation
	KindNotFound
	KindForbidden
	KindStoreUnavailable
)

var kindNames = map[Kind]string{
	KindInternal:           "internal",
	KindMissingToken:       "missing_token",
	KindInvalidToken:       "invalid_token",
	KindTokenExpired:       "token_expired",
	KindInvalidCredentials: "invalid_credentials",
	KindConflict:           "conflict",
	KindValidation:         "validation_failed",
	KindNotFound:           "not_found",
	KindForbidden:          "forbidden",
	KindStoreUnavailable:   "store_unavailable",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// HTTPStatus maps a kind to the response status the transport layer uses.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindMissingToken, KindInvalidToken, KindTokenExpired, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure with a kind and a caller-safe message. Err holds the underlying cause,
// which is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err, apperror.NotFound("")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func MissingToken() *Error {
	return New(KindMissingToken, "missing or malformed authorization header")
}

func InvalidToken(cause error) *Error {
	return &Error{Kind: KindInvalidToken, Message: "invalid token", Err: cause}
}

func TokenExpired() *Error {
	return New(KindTokenExpired, "token expired")
}

// InvalidCredentials carries one message for both unknown email and wrong password.
func InvalidCredentials() *Error {
	return New(KindInvalidCredentials, "invalid email or password")
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// StoreUnavailable hides cause from the caller behind a generic message.
func StoreUnavailable(cause error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: "internal server error", Err: cause}
}
