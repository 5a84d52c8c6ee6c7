package cachemanager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls atomic.Int32
	err   error
	delay time.Duration
}

func (l *countingLoader) load(_ context.Context, code string) ([]department, error) {
	l.calls.Add(1)
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if l.err != nil {
		return nil, l.err
	}
	return []department{{ID: code + "-d1", Name: "Cardiology"}}, nil
}

func newDepartmentCache(loader *countingLoader, skip bool) *ReadThroughCache[string, []department, string] {
	mgr := NewInMemoryCacheManager[string, []department]("departments", DefaultExpiration, DefaultCleanupInterval)
	return NewReadThroughCache[string, []department, string](mgr, loader.load, skip)
}

func TestReadThroughCache_Get_LoadsOnceThenHits(t *testing.T) {
	loader := &countingLoader{}
	cache := newDepartmentCache(loader, false)

	first, err := cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
	require.NoError(t, err)
	second, err := cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, int32(1), loader.calls.Load())
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	loader := &countingLoader{}
	cache := newDepartmentCache(loader, true)

	_, err := cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
	require.NoError(t, err)

	require.Equal(t, int32(2), loader.calls.Load())
}

func TestReadThroughCache_Get_ErrorIsNotCached(t *testing.T) {
	loader := &countingLoader{err: errors.New("backend down")}
	cache := newDepartmentCache(loader, false)

	_, err := cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
	require.Error(t, err)

	loader.err = nil
	got, err := cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int32(2), loader.calls.Load())
}

func TestReadThroughCache_Invalidate(t *testing.T) {
	loader := &countingLoader{}
	cache := newDepartmentCache(loader, false)

	_, err := cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(context.Background(), "hosp-1"))
	_, err = cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
	require.NoError(t, err)

	require.Equal(t, int32(2), loader.calls.Load())
}

func TestReadThroughCache_ConcurrentMissesShareLoad(t *testing.T) {
	loader := &countingLoader{delay: 50 * time.Millisecond}
	cache := newDepartmentCache(loader, false)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
			require.NoError(t, err)
			require.Len(t, got, 1)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), loader.calls.Load())
}

func TestReadThroughCache_CancelledCallerDoesNotFailJoinedCallers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	mgr := NewInMemoryCacheManager[string, []department]("departments", DefaultExpiration, DefaultCleanupInterval)
	cache := NewReadThroughCache[string, []department, string](mgr, func(ctx context.Context, code string) ([]department, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []department{{ID: code + "-d1", Name: "Cardiology"}}, nil
	}, false)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, "hosp-1", "hosp-1", time.Minute)
		firstErr <- err
	}()
	<-started

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	type result struct {
		got []department
		err error
	}
	second := make(chan result, 1)
	go func() {
		got, err := cache.Get(context.Background(), "hosp-1", "hosp-1", time.Minute)
		second <- result{got, err}
	}()
	time.Sleep(10 * time.Millisecond)
	close(release)

	res := <-second
	require.NoError(t, res.err)
	require.Equal(t, []department{{ID: "hosp-1-d1", Name: "Cardiology"}}, res.got)
	require.Equal(t, int32(1), calls.Load())
}
