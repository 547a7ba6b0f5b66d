package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", ErrNotFound, http.StatusUnauthorized},
		{"wrapped invalid code", fmt.Errorf("verify: %w", ErrInvalidCode), http.StatusUnauthorized},
		{"unavailable", ErrUnavailable, http.StatusUnauthorized},
		{"too many attempts", ErrTooManyAttempts, http.StatusTooManyRequests},
		{"store", Store(errors.New("connection refused")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestStore_KeepsCauseAndHidesIt(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := Store(cause)

	assert.ErrorIs(t, err, ErrStoreFailure)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsDomain(err))
	assert.Equal(t, "internal server error", Message(err))
	assert.Same(t, err, Store(err))
	assert.Nil(t, Store(nil))
}

func TestMessage_Domain(t *testing.T) {
	assert.Equal(t, "Please verify your account", Message(fmt.Errorf("login: %w", ErrNotVerified)))
	assert.Equal(t, "The item isn't available", Message(ErrUnavailable))
}
