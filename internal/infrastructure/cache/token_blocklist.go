package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyRevokedToken marks a revoked JWT by its jti
const KeyRevokedToken = "auth:revoked:%s"

// TokenBlocklist records revoked access tokens until they would have expired anyway
type TokenBlocklist struct {
	client *redis.Client
}

// NewTokenBlocklist creates a new Redis-backed token blocklist
func NewTokenBlocklist(client *redis.Client) *TokenBlocklist {
	return &TokenBlocklist{client: client}
}

// Revoke blocks the token id until expiresAt
func (b *TokenBlocklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, fmt.Sprintf(KeyRevokedToken, jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked
func (b *TokenBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, fmt.Sprintf(KeyRevokedToken, jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return n > 0, nil
}
