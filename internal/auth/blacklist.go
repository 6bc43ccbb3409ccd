package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const blacklistKeyPrefix = "token:blacklist:"

// TokenBlacklist tracks revoked tokens so logout invalidates a JWT before
// its natural expiry
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// redisTokenBlacklist stores revoked tokens in redis with a TTL matching the
// token's remaining lifetime
type redisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist creates a redis-backed token blacklist
func NewRedisTokenBlacklist(client *redis.Client) TokenBlacklist {
	return &redisTokenBlacklist{client: client}
}

func (b *redisTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to revoke
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err()
}

func (b *redisTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NoopBlacklist never revokes anything. Used when redis is not configured.
type NoopBlacklist struct{}

// Revoke does nothing
func (NoopBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error { return nil }

// IsRevoked always reports false
func (NoopBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) { return false, nil }
