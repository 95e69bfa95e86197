package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/logger"
)

// RedisClient is the subset of the go-redis client used by Redis.
type RedisClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

// RedisOptions configures a Redis decorator.
type RedisOptions struct {
	// Prefix namespaces keys; include the catalog version so a new catalog
	// does not read stale entries.
	Prefix string
	TTL    time.Duration
	Logger *logger.Logger
}

// Redis caches knowledge source lookups in Redis so several processes share
// them. Redis failures are logged and the wrapped source is used directly.
type Redis struct {
	next   knowledge.Source
	rdb    RedisClient
	prefix string
	ttl    time.Duration
	log    *logger.Logger
}

var (
	_ knowledge.Source = (*Redis)(nil)
	_ knowledge.Lister = (*Redis)(nil)
)

// redisEntry is the JSON value stored per key.
type redisEntry struct {
	Found  bool              `json:"found,omitempty"`
	Module *knowledge.Module `json:"module,omitempty"`
	IDs    []string          `json:"ids,omitempty"`
}

// NewRedis wraps next with a Redis cache.
func NewRedis(next knowledge.Source, rdb RedisClient, opts RedisOptions) *Redis {
	r := &Redis{
		next:   next,
		rdb:    rdb,
		prefix: opts.Prefix,
		ttl:    opts.TTL,
		log:    opts.Logger,
	}
	if r.prefix == "" {
		r.prefix = "learnpath:"
	}
	if r.log == nil {
		r.log = logger.Nop()
	}
	return r
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func (r *Redis) ModuleDetails(ctx context.Context, id string) (knowledge.Module, bool, error) {
	key := r.prefix + "module:" + id
	if e, ok := r.get(ctx, key); ok {
		if !e.Found || e.Module == nil {
			return knowledge.Module{}, false, nil
		}
		return *e.Module, true, nil
	}

	mod, found, err := r.next.ModuleDetails(ctx, id)
	if err != nil {
		return knowledge.Module{}, false, err
	}
	e := redisEntry{Found: found}
	if found {
		e.Module = &mod
	}
	r.set(ctx, key, e)
	return mod, found, nil
}

func (r *Redis) Prerequisites(ctx context.Context, id string) ([]string, error) {
	return r.ids(ctx, r.prefix+"prereqs:"+id, func(ctx context.Context) ([]string, error) {
		return r.next.Prerequisites(ctx, id)
	})
}

func (r *Redis) FindModulesByGoal(ctx context.Context, goal string) ([]string, error) {
	return r.ids(ctx, r.prefix+"goal:"+goal, func(ctx context.Context) ([]string, error) {
		return r.next.FindModulesByGoal(ctx, goal)
	})
}

func (r *Redis) AllModules(ctx context.Context) ([]knowledge.Module, error) {
	return allModules(ctx, r.next)
}

func (r *Redis) ids(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if e, ok := r.get(ctx, key); ok {
		return e.IDs, nil
	}
	ids, err := load(ctx)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, redisEntry{IDs: ids})
	return ids, nil
}

func (r *Redis) get(ctx context.Context, key string) (redisEntry, bool) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			r.log.Warn("redis get failed", "key", key, "error", err)
		}
		return redisEntry{}, false
	}
	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		r.log.Warn("discarding malformed cache entry", "key", key, "error", err)
		return redisEntry{}, false
	}
	return e, true
}

func (r *Redis) set(ctx context.Context, key string, e redisEntry) {
	raw, err := json.Marshal(e)
	if err != nil {
		r.log.Warn("encode cache entry", "key", key, "error", err)
		return
	}
	if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.log.Warn("redis set failed", "key", key, "error", err)
	}
}
