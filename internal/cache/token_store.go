package cache

import (
	"context"
	"fmt"
	"time"
)

// TokenStore tracks revoked JWT IDs so that logged-out tokens stop
// authenticating before their natural expiry.
type TokenStore struct {
	redis *RedisClient
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(redis *RedisClient) *TokenStore {
	return &TokenStore{redis: redis}
}

// key returns the Redis key for a revoked token ID.
func (s *TokenStore) key(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

// Revoke marks a token ID as revoked until the token's own expiry.
// A non-positive TTL means the token is already expired and there is
// nothing to store.
func (s *TokenStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, s.key(jti), "1", ttl)
}

// IsRevoked reports whether a token ID has been revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.redis.Exists(ctx, s.key(jti))
}
