package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrStoreUnavailable = errors.New("session store unavailable")

// Store is opaque key/value persistence scoped to one browser session.
// Clear removes all given keys in a single round trip.
type Store interface {
	Get(ctx context.Context, sessionID, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, sessionID, key string, value interface{}) error
	Clear(ctx context.Context, sessionID string, keys ...string) error
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(redisURL string, ttl time.Duration) (Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{rdb: rdb, ttl: ttl}, nil
}

func sessionKey(sessionID, key string) string {
	return "session:" + sessionID + ":" + key
}

func (s *redisStore) Get(ctx context.Context, sessionID, key string, dest interface{}) (bool, error) {
	val, err := s.rdb.Get(ctx, sessionKey(sessionID, key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get session key %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal session key %q: %w", key, err)
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, sessionID, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal session key %q: %w", key, err)
	}

	return s.rdb.Set(ctx, sessionKey(sessionID, key), data, s.ttl).Err()
}

func (s *redisStore) Clear(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, sessionKey(sessionID, k))
	}

	// Single DEL so a partially cleared checkout cannot be observed.
	return s.rdb.Del(ctx, full...).Err()
}
