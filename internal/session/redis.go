package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the session in Redis, which survives restarts of the
// storefront process. Absent keys read as empty values, not errors.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Token(ctx context.Context) (string, error) {
	return r.get(ctx, "token")
}

func (r *RedisStore) Role(ctx context.Context) (string, error) {
	return r.get(ctx, "role")
}

func (r *RedisStore) SetToken(ctx context.Context, token string) error {
	return r.set(ctx, "token", token)
}

func (r *RedisStore) SetRole(ctx context.Context, role string) error {
	return r.set(ctx, "role", role)
}

func (r *RedisStore) get(ctx context.Context, field string) (string, error) {
	value, err := r.client.Get(ctx, r.key(field)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s failed: %w", field, err)
	}
	return value, nil
}

func (r *RedisStore) set(ctx context.Context, field, value string) error {
	if err := r.client.Set(ctx, r.key(field), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", field, err)
	}
	return nil
}

func (r *RedisStore) key(field string) string {
	return fmt.Sprintf("%s:%s", r.prefix, field)
}
