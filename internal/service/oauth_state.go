package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prperemyshlev/pomodoro-service/pkg/database"
)

// OAuthStateStore keeps single-use OAuth state values in Redis
type OAuthStateStore struct {
	redis *database.Redis
	ttl   time.Duration
}

// NewOAuthStateStore creates a state store whose entries expire after ttl
func NewOAuthStateStore(redis *database.Redis, ttl time.Duration) *OAuthStateStore {
	return &OAuthStateStore{redis: redis, ttl: ttl}
}

// Save records a freshly issued state
func (s *OAuthStateStore) Save(ctx context.Context, state string) error {
	err := s.redis.Client.Set(ctx, stateKey(state), "1", s.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

// Consume removes state and reports whether it was issued and not yet used or expired
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}

	err := s.redis.Client.GetDel(ctx, stateKey(state)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return true, nil
}

func stateKey(state string) string {
	return fmt.Sprintf("oauth_state:%s", state)
}
