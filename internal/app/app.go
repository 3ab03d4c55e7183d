// Package app assembles the catalog, advisor and service from a Config.
// Both cmd/fitrec and fitrecctl build their dependencies through it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meltforce/fitrec/internal/advisor"
	"github.com/meltforce/fitrec/internal/catalog"
	"github.com/meltforce/fitrec/internal/config"
	"github.com/meltforce/fitrec/internal/recommend"
	"github.com/meltforce/fitrec/internal/storage"
)

// LoadCatalog loads the catalog from the configured source. Database
// sources are opened, read and closed again: the catalog is immutable once
// loaded.
func LoadCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)

	switch cfg.Catalog.Source {
	case config.SourceEmbedded:
		cat, err = catalog.EmbeddedSource{}.LoadCatalog(ctx)
	case config.SourceFile:
		cat, err = catalog.FileSource{Path: cfg.Catalog.Path}.LoadCatalog(ctx)
	case config.SourceSQLite:
		var db *storage.SQLite
		db, err = storage.OpenSQLite(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		cat, err = db.LoadCatalog(ctx)
	case config.SourcePostgres:
		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		var db *storage.DB
		db, err = storage.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		cat, err = db.LoadCatalog(ctx)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s catalog: %w", cfg.Catalog.Source, err)
	}

	log.Info("catalog loaded", "source", cfg.Catalog.Source, "types", len(cat.Types()), "workouts", cat.Len())
	return cat, nil
}

// NewAdvisor builds the configured advisor, wrapped in a Redis cache when
// an address is set. The returned close func releases the cache client.
func NewAdvisor(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, log *slog.Logger) (advisor.Advisor, func(), error) {
	var adv advisor.Advisor
	switch cfg.Advisor.Mode {
	case config.AdvisorRules:
		adv = advisor.NewRuleAdvisor(cat)
	case config.AdvisorProcess:
		p, err := advisor.NewProcessAdvisor(cfg.Advisor.Command, cfg.Advisor.Timeout, log)
		if err != nil {
			return nil, nil, err
		}
		adv = p
	default:
		return nil, nil, fmt.Errorf("unknown advisor mode %q", cfg.Advisor.Mode)
	}
	log.Info("advisor ready", "mode", cfg.Advisor.Mode)

	c := cfg.Advisor.Cache
	if c.RedisAddr == "" {
		return adv, func() {}, nil
	}

	rc := advisor.NewRedisCache(c.RedisAddr, c.RedisPassword, c.RedisDB)
	if err := rc.Ping(ctx); err != nil {
		// Run uncached rather than refuse to start.
		log.Warn("redis unavailable, advisor cache disabled", "addr", c.RedisAddr, "error", err)
		_ = rc.Close()
		return adv, func() {}, nil
	}
	log.Info("advisor cache enabled", "addr", c.RedisAddr, "ttl", c.TTL)

	closeCache := func() {
		if err := rc.Close(); err != nil {
			log.Warn("closing redis", "error", err)
		}
	}
	return advisor.NewCachingAdvisor(adv, rc, c.TTL, log), closeCache, nil
}

// NewService loads the catalog and advisor and returns the service over
// them, plus a func releasing whatever the advisor holds.
func NewService(ctx context.Context, cfg *config.Config, log *slog.Logger) (*recommend.Service, func(), error) {
	cat, err := LoadCatalog(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	adv, closeAdv, err := NewAdvisor(ctx, cfg, cat, log)
	if err != nil {
		return nil, nil, err
	}
	return recommend.NewService(cat, adv, log), closeAdv, nil
}
