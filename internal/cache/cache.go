// Package cache provides a small string cache with a redis backend and an
// in-memory one for tests and local runs.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Remember returns the JSON value cached under key, or calls load, caches its
// result for ttl and returns it. Cache failures fall back to load.
func Remember[T any](ctx context.Context, c Cache, log *zap.Logger, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if raw, ok := c.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v, nil
		}
		log.Warn("discarding undecodable cache entry", zap.String("key", key))
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if b, err := json.Marshal(v); err == nil {
		if err := c.Set(ctx, key, string(b), ttl); err != nil {
			log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}
