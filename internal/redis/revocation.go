package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList remembers logged-out token ids and per-account cut-off
// times. Entries expire on their own once no token they could match is
// still valid.
type RevocationList struct {
	rdb *redis.Client
	// token lifetime; zero keeps cut-offs forever
	cutoffTTL time.Duration
}

func NewRevocationList(rdb *redis.Client, cutoffTTL time.Duration) *RevocationList {
	return &RevocationList{rdb: rdb, cutoffTTL: cutoffTTL}
}

func tokenKey(jti string) string { return fmt.Sprintf("revoked:jti:%s", jti) }

func accountKey(id uint) string { return fmt.Sprintf("revoked:account:%d", id) }

// Revoke marks jti as revoked for ttl. A non-positive ttl keeps it forever.
func (r *RevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.rdb.Set(ctx, tokenKey(jti), 1, ttl).Err()
}

func (r *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, tokenKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RevokeAccount invalidates every token of the account issued before at.
func (r *RevocationList) RevokeAccount(ctx context.Context, accountID uint, at time.Time) error {
	return r.rdb.Set(ctx, accountKey(accountID), at.UnixMilli(), r.cutoffTTL).Err()
}

// AccountCutoff returns the cut-off of the account, zero when none is set.
func (r *RevocationList) AccountCutoff(ctx context.Context, accountID uint) (time.Time, error) {
	v, err := r.rdb.Get(ctx, accountKey(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt cut-off for account %d: %w", accountID, err)
	}
	return time.UnixMilli(ms), nil
}
