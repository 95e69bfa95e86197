// Package cache provides caching decorators for knowledge sources.
package cache

import (
	"context"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/abhisek/learnpath/internal/knowledge"
)

type moduleEntry struct {
	module knowledge.Module
	found  bool
}

// Memory caches knowledge source lookups in process with a TTL. Absent modules
// are cached too; errors are not.
type Memory struct {
	next  knowledge.Source
	cache *gocache.Cache
}

var (
	_ knowledge.Source = (*Memory)(nil)
	_ knowledge.Lister = (*Memory)(nil)
)

// NewMemory wraps next with an in-process cache. Expired entries are purged
// every 2*ttl.
func NewMemory(next knowledge.Source, ttl time.Duration) *Memory {
	return &Memory{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (m *Memory) ModuleDetails(ctx context.Context, id string) (knowledge.Module, bool, error) {
	key := "module:" + id
	if v, ok := m.cache.Get(key); ok {
		e := v.(moduleEntry)
		return e.module.Clone(), e.found, nil
	}
	mod, found, err := m.next.ModuleDetails(ctx, id)
	if err != nil {
		return knowledge.Module{}, false, err
	}
	m.cache.Set(key, moduleEntry{module: mod.Clone(), found: found}, gocache.DefaultExpiration)
	return mod, found, nil
}

func (m *Memory) Prerequisites(ctx context.Context, id string) ([]string, error) {
	return m.ids(ctx, "prereqs:"+id, func(ctx context.Context) ([]string, error) {
		return m.next.Prerequisites(ctx, id)
	})
}

func (m *Memory) FindModulesByGoal(ctx context.Context, goal string) ([]string, error) {
	return m.ids(ctx, "goal:"+goal, func(ctx context.Context) ([]string, error) {
		return m.next.FindModulesByGoal(ctx, goal)
	})
}

// AllModules is not cached; listing is rare and should see fresh data.
func (m *Memory) AllModules(ctx context.Context) ([]knowledge.Module, error) {
	return allModules(ctx, m.next)
}

// Flush drops every cached entry.
func (m *Memory) Flush() {
	m.cache.Flush()
}

// Len returns the number of cached entries, including expired ones not yet purged.
func (m *Memory) Len() int {
	return m.cache.ItemCount()
}

func (m *Memory) ids(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if v, ok := m.cache.Get(key); ok {
		return slices.Clone(v.([]string)), nil
	}
	ids, err := load(ctx)
	if err != nil {
		return nil, err
	}
	m.cache.Set(key, slices.Clone(ids), gocache.DefaultExpiration)
	return ids, nil
}

func allModules(ctx context.Context, src knowledge.Source) ([]knowledge.Module, error) {
	l, ok := src.(knowledge.Lister)
	if !ok {
		return nil, knowledge.ErrNotListable
	}
	return l.AllModules(ctx)
}
