// Package services holds the business rules: the account verification state
// machine, token issuing, order reservation and the inventory queries.
package services

import (
	"context"
	"strings"
	"time"
)

// Mailer delivers verification codes.
type Mailer interface {
	Send(to, subject, body string) error
}

// Revoker stores revoked token ids and per-account cut-off times.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	RevokeAccount(ctx context.Context, accountID uint, at time.Time) error
	AccountCutoff(ctx context.Context, accountID uint) (time.Time, error)
}

// AttemptCounter tracks wrong verification code submissions per email.
type AttemptCounter interface {
	Failures(ctx context.Context, email string) (int64, error)
	Fail(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
