package storage

import (
	"context"
	"time"

	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/redis"
)

// RedisStore persists checkout state in Redis with a per-key TTL so abandoned
// sessions age out on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps the shared redis client. A zero TTL keeps keys forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.client.CheckoutKey(sessionID, key))
	if err != nil {
		if redis.IsNil(err) {
			return "", false, nil
		}
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read checkout state")
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	if err := r.client.Set(ctx, r.client.CheckoutKey(sessionID, key), value, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write checkout state")
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, sessionID, key string) error {
	if err := r.client.Del(ctx, r.client.CheckoutKey(sessionID, key)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove checkout state")
	}
	return nil
}
