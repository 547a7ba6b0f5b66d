package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/models"
)

// Claims is the payload of an access token.
type Claims struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	// IssuedAtMs compares against account cut-offs; iat only has seconds.
	IssuedAtMs int64 `json:"iat_ms"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret  []byte
	ttl     time.Duration
	revoker Revoker
	now     func() time.Time
}

// NewTokenService signs with HS256. A zero ttl issues tokens without expiry.
// revoker may be nil, which disables revocation checks.
func NewTokenService(secret string, ttl time.Duration, revoker Revoker) *TokenService {
	return &TokenService{
		secret:  []byte(secret),
		ttl:     ttl,
		revoker: revoker,
		now:     time.Now,
	}
}

func (ts *TokenService) Issue(a *models.Account) (string, error) {
	now := ts.now()
	claims := Claims{
		ID:         a.ID,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Email:      a.Email,
		IssuedAtMs: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  fmt.Sprint(a.ID),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ts.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ts.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
}

// Validate checks signature, expiry and revocation. Every rejection is
// apperr.ErrUnauthenticated; a failing revocation store is a store failure.
func (ts *TokenService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.secret, nil
	}, jwt.WithTimeFunc(ts.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}
	if ts.revoker == nil {
		return claims, nil
	}

	revoked, err := ts.revoker.IsRevoked(ctx, claims.RegisteredClaims.ID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", apperr.ErrUnauthenticated)
	}
	cutoff, err := ts.revoker.AccountCutoff(ctx, claims.ID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if !cutoff.IsZero() && claims.IssuedAtMs < cutoff.UnixMilli() {
		return nil, fmt.Errorf("%w: token issued before credential change", apperr.ErrUnauthenticated)
	}
	return claims, nil
}

// Revoke blacklists one token until it would have expired anyway.
func (ts *TokenService) Revoke(ctx context.Context, c *Claims) error {
	if ts.revoker == nil {
		return nil
	}
	var ttl time.Duration
	if c.ExpiresAt != nil {
		ttl = c.ExpiresAt.Sub(ts.now())
		if ttl <= 0 {
			return nil
		}
	}
	return apperr.Store(ts.revoker.Revoke(ctx, c.RegisteredClaims.ID, ttl))
}

// RevokeAccount invalidates every token issued to the account so far.
func (ts *TokenService) RevokeAccount(ctx context.Context, accountID uint) error {
	if ts.revoker == nil {
		return nil
	}
	return apperr.Store(ts.revoker.RevokeAccount(ctx, accountID, ts.now()))
}
