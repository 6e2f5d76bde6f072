package activity

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store tracks last-activity per bearer token in redis. It implements the
// edge-layer idle timeout: a token whose key has lapsed is treated as idle
// even while its persisted absolute expiry is still in the future. The
// server-side session is NOT revoked when that happens.
type Store struct {
	client  *redis.Client
	idleTTL time.Duration
}

// NewStore returns a redis-backed activity store.
func NewStore(client *redis.Client, idleTTL time.Duration) *Store {
	return &Store{client: client, idleTTL: idleTTL}
}

func (s *Store) key(token string) string {
	return "sessions:activity:" + token
}

// Start registers activity for a freshly issued token.
func (s *Store) Start(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key(token), 1, s.idleTTL).Err()
}

// Touch refreshes the activity window. It reports false when the key has
// already lapsed, meaning the session idled out.
func (s *Store) Touch(ctx context.Context, token string) (bool, error) {
	return s.client.Expire(ctx, s.key(token), s.idleTTL).Result()
}

// Clear drops activity state on logout.
func (s *Store) Clear(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}
