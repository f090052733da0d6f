package cursor

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix is prepended to every key when no prefix is given.
const DefaultRedisPrefix = "woosync:cursor:"

// RedisClient is the subset of *redis.Client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// RedisStore keeps each cursor key as a Redis string with no expiry.
type RedisStore struct {
	client    RedisClient
	keyPrefix string
	defaults  map[string]string
}

// NewRedisStore creates a RedisStore and seeds defaults with SETNX, so values
// already present are kept.
func NewRedisStore(ctx context.Context, client RedisClient, keyPrefix string, defaults map[string]string) (*RedisStore, error) {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisPrefix
	}
	s := &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		defaults:  maps.Clone(defaults),
	}

	for k, v := range defaults {
		if err := client.SetNX(ctx, s.keyPrefix+k, v, 0).Err(); err != nil {
			return nil, &PersistenceError{Op: "seed", Path: s.keyPrefix + k, Err: err}
		}
	}

	return s, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return lookupDefault(s.defaults, key)
	}
	if err != nil {
		return "", &PersistenceError{Op: "get", Path: s.keyPrefix + key, Err: err}
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return &PersistenceError{Op: "set", Path: s.keyPrefix + key, Err: err}
	}
	return nil
}
