package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const denylistKeyPrefix = "auth:denylist:"

// redisTokenDenylist implements adapter.TokenDenylist with expiring keys.
type redisTokenDenylist struct {
	client *redis.Client
}

// NewRedisTokenDenylist creates a denylist backed by Redis.
func NewRedisTokenDenylist(client *redis.Client) adapter.TokenDenylist {
	return &redisTokenDenylist{client: client}
}

// Revoke stores the token ID until ttl elapses.
func (d *redisTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := d.client.Set(ctx, denylistKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token ID is on the denylist.
func (d *redisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, denylistKeyPrefix+tokenID).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check token denylist: %w", err)
}
