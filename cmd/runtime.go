package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/rounds/internal/cachemanager"
	"github.com/zjrosen/rounds/internal/config"
	"github.com/zjrosen/rounds/internal/hospital"
	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/registration"
	"github.com/zjrosen/rounds/internal/session"
	"github.com/zjrosen/rounds/internal/session/sqlite"
	"github.com/zjrosen/rounds/internal/tracing"
)

// runtime holds the long-lived dependencies built from config.
type runtime struct {
	Tracing   *tracing.Provider
	Client    *hospital.Client
	Directory *hospital.CachedDirectory
	DB        *sqlite.DB
	Sessions  session.Repository
}

// openRuntime builds the tracer, the cached backend client and the session
// store. A session store that cannot be opened is logged and left nil; the
// app then keeps the token in memory.
func openRuntime(cfg config.Config) (*runtime, error) {
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	rt := &runtime{Tracing: provider}

	client, err := hospital.NewClient(hospital.Config{
		BaseURL:      cfg.API.BaseURL,
		HospitalCode: cfg.API.HospitalCode,
		Timeout:      cfg.API.Timeout,
		Tracer:       provider.Tracer(),
	})
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, fmt.Errorf("creating hospital client: %w", err)
	}
	rt.Client = client

	departments := cachemanager.NewInMemoryCacheManager[string, []registration.Department](
		"departments", cfg.Cache.DepartmentsTTL, cachemanager.DefaultCleanupInterval)
	rt.Directory = hospital.NewCachedDirectory(client, cfg.API.HospitalCode, departments, cfg.Cache.DepartmentsTTL)

	db, err := sqlite.NewDB(cfg.Session.DBPath)
	if err != nil {
		log.ErrorErr(log.CatDB, "session store unavailable", err, "path", cfg.Session.DBPath)
	} else {
		rt.DB = db
		rt.Sessions = db.TokenRepository()
	}
	return rt, nil
}

// Close flushes traces and closes the session store.
func (r *runtime) Close(ctx context.Context) error {
	var errs []error
	if r.DB != nil {
		errs = append(errs, r.DB.Close())
	}
	if r.Tracing != nil {
		errs = append(errs, r.Tracing.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// openSessions opens only the session store, for the session subcommands.
func openSessions(cfg config.Config) (*sqlite.DB, error) {
	if cfg.Session.DBPath == "" {
		return nil, errors.New("session.db_path is not set")
	}
	db, err := sqlite.NewDB(cfg.Session.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	return db, nil
}
