package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/learnpath/internal/cache"
	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/graphdb"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/observability"
	"github.com/abhisek/learnpath/internal/store"
)

// deps are the collaborators shared by the path-building commands.
type deps struct {
	store    *store.Store // nil unless requested or the source is sqlite
	source   knowledge.Source
	version  string
	fallback []string
	closers  []func()
}

// Close releases everything openDeps acquired, last opened first.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// loadCatalog reads --catalog, or returns the built-in seed catalog.
func loadCatalog() (*knowledge.Catalog, error) {
	if cfg.Catalog == "" {
		return knowledge.SeedCatalog(), nil
	}
	return knowledge.LoadCatalog(cfg.Catalog)
}

// openDeps builds the configured knowledge source. withStore also opens the
// SQLite store for sources that do not need it.
func openDeps(ctx context.Context, withStore bool) (_ *deps, err error) {
	d := &deps{}
	defer func() {
		if err != nil {
			d.Close()
		}
	}()

	if withStore || cfg.Source == config.SourceSQLite {
		st, err := openStore()
		if err != nil {
			return nil, err
		}
		d.store = st
		d.closers = append(d.closers, func() { st.Close() })
	}

	var base knowledge.Source
	switch cfg.Source {
	case config.SourceMemory:
		cat, err := loadCatalog()
		if err != nil {
			return nil, err
		}
		base = cat.Graph()
		d.version, d.fallback = cat.Version, cat.FallbackModules

	case config.SourceSQLite:
		repo := d.store.ModuleRepo()
		info, err := repo.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("read stored catalog: %w", err)
		}
		if info.Modules == 0 {
			return nil, errors.New("no catalog in the database; run `learnpath catalog import` first")
		}
		base = repo
		d.version, d.fallback = info.Version, info.FallbackModules

	case config.SourceNeo4j:
		client, err := graphdb.New(ctx, cfg.Neo4j, log)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = client.Close(context.Background()) })
		meta, err := client.CatalogMeta(ctx)
		if err != nil {
			return nil, err
		}
		if meta == nil {
			return nil, errors.New("no catalog in neo4j; run `learnpath catalog import --neo4j` first")
		}
		base = graphdb.NewSource(client)
		d.version, d.fallback = meta.Version, meta.FallbackModules
	}

	d.source = d.decorate(ctx, base)
	log.Debug("knowledge source ready", "source", cfg.Source, "catalog_version", d.version)
	return d, nil
}

// decorate layers the configured caches and tracing over a store-backed
// source. The in-memory graph is only traced.
func (d *deps) decorate(ctx context.Context, src knowledge.Source) knowledge.Source {
	if cfg.Source != config.SourceMemory {
		if cfg.Redis.Addr != "" {
			rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
			if err != nil {
				log.Warn("redis unavailable, continuing without shared cache", "addr", cfg.Redis.Addr, "error", err)
			} else {
				d.closers = append(d.closers, func() { _ = rdb.Close() })
				src = cache.NewRedis(src, rdb, cache.RedisOptions{
					Prefix: "learnpath:" + d.version + ":",
					TTL:    cfg.Redis.TTL,
					Logger: log,
				})
			}
		}
		if cfg.Cache.TTL > 0 {
			src = cache.NewMemory(src, cfg.Cache.TTL)
		}
	}
	if cfg.Tracing.Enabled {
		src = observability.TraceSource(src)
	}
	return src
}

// builder returns a path builder over the source. Configured fallback
// modules win over the catalog's own.
func (d *deps) builder(l *logger.Logger, obs curriculum.Observer) (*curriculum.Builder, error) {
	fallback := d.fallback
	if cfg.Path.FallbackModules != nil {
		fallback = cfg.Path.FallbackModules
	}
	return curriculum.NewBuilder(d.source, curriculum.Options{
		DefaultGoal:     cfg.Path.DefaultGoal,
		FallbackModules: fallback,
		Logger:          l.With("component", "curriculum"),
		Observer:        obs,
	})
}

// modules lists the whole catalog, or fails when the source cannot.
func (d *deps) modules(ctx context.Context) ([]knowledge.Module, error) {
	lister, ok := d.source.(knowledge.Lister)
	if !ok {
		return nil, knowledge.ErrNotListable
	}
	return lister.AllModules(ctx)
}
