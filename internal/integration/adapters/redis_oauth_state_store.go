package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const oauthStateKeyPrefix = "auth:oauth-state:"

// redisOAuthStateStore implements adapter.OAuthStateStore.
type redisOAuthStateStore struct {
	client *redis.Client
}

// NewRedisOAuthStateStore creates a one-time state store backed by Redis.
func NewRedisOAuthStateStore(client *redis.Client) adapter.OAuthStateStore {
	return &redisOAuthStateStore{client: client}
}

// Save stores the state for ttl.
func (s *redisOAuthStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, oauthStateKeyPrefix+state, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes the state so it cannot be replayed.
func (s *redisOAuthStateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, oauthStateKeyPrefix+state).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return false, fmt.Errorf("failed to consume oauth state: %w", err)
}
