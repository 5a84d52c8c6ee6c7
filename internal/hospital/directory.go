package hospital

import (
	"context"
	"time"

	"github.com/zjrosen/rounds/internal/cachemanager"
	"github.com/zjrosen/rounds/internal/registration"
)

// CachedDirectory serves the department list of one hospital from a TTL cache,
// falling back to the backend on a miss. All other calls pass through.
type CachedDirectory struct {
	API
	code  string
	ttl   time.Duration
	cache *cachemanager.ReadThroughCache[string, []registration.Department, struct{}]
}

var _ API = (*CachedDirectory)(nil)

// NewCachedDirectory wraps api. code keys the cache so tenants never share entries.
func NewCachedDirectory(api API, code string, mgr cachemanager.CacheManager[string, []registration.Department], ttl time.Duration) *CachedDirectory {
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	d := &CachedDirectory{API: api, code: code, ttl: ttl}
	d.cache = cachemanager.NewReadThroughCache[string, []registration.Department, struct{}](
		mgr,
		func(ctx context.Context, _ struct{}) ([]registration.Department, error) {
			return api.Departments(ctx)
		},
		false,
	)
	return d
}

// Departments returns the cached list, loading it on first use.
func (d *CachedDirectory) Departments(ctx context.Context) ([]registration.Department, error) {
	return d.cache.Get(ctx, departmentsKey(d.code), struct{}{}, d.ttl)
}

// Refresh drops the cached list for this hospital.
func (d *CachedDirectory) Refresh(ctx context.Context) error {
	return d.cache.Invalidate(ctx, departmentsKey(d.code))
}

func departmentsKey(code string) string {
	return "departments:" + code
}
