package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jobtrack/jobtrack-api/pkg/database"
)

// RedisTokenBlacklist is the Redis-backed refresh token revocation
// store. Entries expire together with the token they revoke.
type RedisTokenBlacklist struct {
	redis *database.Redis
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// NewRedisTokenBlacklist creates a Redis-backed token blacklist
func NewRedisTokenBlacklist(redis *database.Redis) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{redis: redis}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:token:%s", token)
}

// Add records a token in the blacklist until its natural expiry
func (s *RedisTokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.redis.Client.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// Contains checks whether a token has been revoked
func (s *RedisTokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	exists, err := s.redis.Client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}
