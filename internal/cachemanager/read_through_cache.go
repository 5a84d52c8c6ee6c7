package cachemanager

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// ReadThroughCache loads missing values through fn and stores them.
// Concurrent misses for the same key share a single call to fn.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache           CacheManager[K, V]
	fn              func(ctx context.Context, input I) (V, error)
	shouldSkipCache bool
	group           singleflight.Group
}

func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	return r.load(ctx, key, input, ttl)
}

// Invalidate drops key so the next Get reloads it.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context, key K) error {
	return r.cache.Delete(ctx, key)
}

// load runs fn once per key across concurrent callers. The shared call is
// detached from any single caller's cancellation; each caller still stops
// waiting when its own ctx is done.
func (r *ReadThroughCache[K, V, I]) load(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	ch := r.group.DoChan(string(key), func() (any, error) {
		flightCtx := context.WithoutCancel(ctx)
		value, err := r.fn(flightCtx, input)
		if err != nil {
			return value, err
		}
		r.cache.Set(flightCtx, key, value, ttl)
		return value, nil
	})

	select {
	case res := <-ch:
		value, _ := res.Val.(V)
		return value, res.Err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}
