// Package apperr holds the error taxonomy shared by the stores, services and
// HTTP layer. Callers match with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCode        = errors.New("verification code does not match")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrTooManyAttempts    = errors.New("too many verification attempts")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account is not verified")
	ErrResetNotRequested  = errors.New("password reset was not requested")
	ErrUnavailable        = errors.New("product is not available")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// ErrStoreFailure marks any underlying persistence error. Its message is
	// the only thing clients ever see of such failures.
	ErrStoreFailure = errors.New("internal server error")
)

// Store wraps a persistence error so it matches ErrStoreFailure while keeping
// the cause for logs.
func Store(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}

var domainErrors = []error{
	ErrNotFound,
	ErrConflict,
	ErrInvalidCode,
	ErrCodeExpired,
	ErrInvalidCredentials,
	ErrNotVerified,
	ErrResetNotRequested,
	ErrUnavailable,
	ErrUnauthenticated,
	ErrTooManyAttempts,
}

// IsDomain reports whether err is a client-visible rejection rather than an
// unexpected failure.
func IsDomain(err error) bool {
	if errors.Is(err, ErrStoreFailure) {
		return false
	}
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}

// HTTPStatus maps an error to the response status of the API.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrStoreFailure):
		return http.StatusInternalServerError
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case IsDomain(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to put in a response body.
func Message(err error) string {
	if !IsDomain(err) {
		return ErrStoreFailure.Error()
	}
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return userMessages[d]
		}
	}
	return ErrStoreFailure.Error()
}

var userMessages = map[error]string{
	ErrNotFound:           "Not found",
	ErrConflict:           "Username is not available, please try another email",
	ErrInvalidCode:        "Verification code does not match",
	ErrCodeExpired:        "Verification code has expired, request a new one",
	ErrTooManyAttempts:    "Too many attempts, try again later",
	ErrInvalidCredentials: "The password does not match",
	ErrNotVerified:        "Please verify your account",
	ErrResetNotRequested:  "You have to send a request to change the password",
	ErrUnavailable:        "The item isn't available",
	ErrUnauthenticated:    "Unauthenticated",
}
