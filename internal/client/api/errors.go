package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks network-level failures: the request never
	// produced an HTTP response.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks a rejected credential: an expired or revoked
	// token, or a failed refresh.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks a missing resource (deleted reminder, bad id).
	ErrNotFound = errors.New("not found")
)

// AuthErrorKind distinguishes the two explicit auth failures a form needs
// to display differently.
type AuthErrorKind string

const (
	KindInvalidCredentials   AuthErrorKind = "invalid_credentials"
	KindRegistrationRejected AuthErrorKind = "registration_rejected"
)

// AuthError carries the server's own message for a rejected login or
// registration, verbatim, for display to the user.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Kind, e.Message)
}

// ValidationError carries the server's field-validation message for a
// rejected reminder create/update, verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
