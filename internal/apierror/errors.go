// Package apierror defines client-facing errors returned by the service layer.
package apierror

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an APIError; the transport maps each kind to a status.
type Kind string

const (
	KindValidation      Kind = "validation_error"
	KindConflict        Kind = "conflict"
	KindUnauthorized    Kind = "unauthorized"
	KindUnauthenticated Kind = "unauthenticated"
	KindNotFound        Kind = "not_found"
	KindInternal        Kind = "internal"
)

// Machine-readable codes that refine a Kind.
const (
	CodeTokenExpired = "token_expired"
	CodeInvalidToken = "invalid_token"
)

// APIError is an error safe to show to clients.
// Err keeps the underlying cause for logging; it is never serialized.
type APIError struct {
	Kind    Kind
	Code    string
	Message string
	Details []string
	Err     error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Details) > 0 {
		fmt.Fprintf(&b, " %v", e.Details)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// As extracts an *APIError from err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for anything that is not an APIError.
func KindOf(err error) Kind {
	if apiErr, ok := As(err); ok {
		return apiErr.Kind
	}
	return KindInternal
}

func newError(kind Kind, msg string, details ...string) *APIError {
	return &APIError{Kind: kind, Code: string(kind), Message: msg, Details: details}
}

func NewErrMissingFields(msg string, fields ...string) *APIError {
	return newError(KindValidation, msg, fields...)
}

func NewErrPasswordPolicy(violations []string) *APIError {
	return newError(KindValidation, "Password validation failed", violations...)
}

func NewErrInvalidFields(details ...string) *APIError {
	return newError(KindValidation, "Validation failed", details...)
}

// NewErrRejectedByStore reports a row the store refused on a field constraint.
// The cause is kept for logs only.
func NewErrRejectedByStore(cause error) *APIError {
	e := newError(KindValidation, "Validation failed", "One or more fields have invalid values.")
	e.Err = cause
	return e
}

func NewErrInvalidArgument(msg string) *APIError {
	return newError(KindValidation, msg)
}

func NewErrEmailIsTaken(email string) *APIError {
	e := newError(KindConflict, "User with this email already exists")
	e.Err = fmt.Errorf("email %q is already taken", email)
	return e
}

func NewErrUserNotFound() *APIError {
	return newError(KindNotFound, "User not found")
}

func NewErrTaskNotFound(id string) *APIError {
	return newError(KindNotFound, "Task not found", fmt.Sprintf("No task found with id: %s", id))
}

func NewErrInvalidCredentials() *APIError {
	return newError(KindUnauthorized, "Invalid credentials")
}

func NewErrInvalidRefreshToken(cause error) *APIError {
	e := newError(KindUnauthorized, "Invalid refresh token")
	e.Err = cause
	return e
}

func NewErrMissingAuthorizationToken() *APIError {
	return newError(KindUnauthenticated, "Not authenticated")
}

func NewErrInvalidAuthorizationToken(cause error) *APIError {
	e := newError(KindUnauthenticated, "Invalid token")
	e.Code = CodeInvalidToken
	e.Err = cause
	return e
}

func NewErrAuthorizationTokenExpired(cause error) *APIError {
	e := newError(KindUnauthenticated, "Token expired")
	e.Code = CodeTokenExpired
	e.Err = cause
	return e
}

func NewErrAssetNotFound(key string) *APIError {
	e := newError(KindNotFound, "Asset not found")
	e.Err = fmt.Errorf("asset %q does not exist", key)
	return e
}

func NewErrRouteNotFound() *APIError {
	return newError(KindNotFound, "Route not found")
}

func NewErrInternalServerError(cause error) *APIError {
	e := newError(KindInternal, "Internal server error")
	e.Err = cause
	return e
}
