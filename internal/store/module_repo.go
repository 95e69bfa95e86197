package store

import (
	"context"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/learnpath/internal/knowledge"
)

// Attribute kinds stored in module_attributes.
const (
	attrPrerequisite = "prerequisite"
	attrTopic        = "topic"
	attrKeyword      = "keyword"
)

const (
	metaVersion  = "version"
	metaFallback = "fallback_modules"
)

// ModuleRepo stores the module catalog and serves it as a knowledge source.
type ModuleRepo struct {
	drv *entsql.Driver
}

var (
	_ knowledge.Source = (*ModuleRepo)(nil)
	_ knowledge.Lister = (*ModuleRepo)(nil)
)

// CatalogInfo describes the stored catalog.
type CatalogInfo struct {
	Version         string
	FallbackModules []string
	Modules         int
}

// ReplaceCatalog atomically replaces the stored catalog.
func (r *ModuleRepo) ReplaceCatalog(ctx context.Context, c *knowledge.Catalog) (err error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"module_attributes", "modules", "catalog_meta"} {
		query, args := sqlite.Delete(table).Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for pos, m := range c.Modules {
		query, args := sqlite.Insert("modules").
			Columns("id", "name", "description", "estimated_time_hours", "position").
			Values(m.ID, m.Name, m.Description, m.EstimatedTimeHours, pos).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("insert module %q: %w", m.ID, err)
		}
		if err := insertAttributes(ctx, tx, m); err != nil {
			return err
		}
	}

	fallback, err := json.Marshal(c.FallbackModules)
	if err != nil {
		return fmt.Errorf("encode fallback modules: %w", err)
	}
	query, args := sqlite.Insert("catalog_meta").
		Columns("key", "value").
		Values(metaVersion, c.Version).
		Values(metaFallback, string(fallback)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert catalog meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog: %w", err)
	}
	return nil
}

func insertAttributes(ctx context.Context, tx dialect.Tx, m knowledge.Module) error {
	lists := []struct {
		kind   string
		values []string
	}{
		{attrPrerequisite, m.Prerequisites},
		{attrTopic, m.Topics},
		{attrKeyword, m.Keywords},
	}
	for _, l := range lists {
		if len(l.values) == 0 {
			continue
		}
		ins := sqlite.Insert("module_attributes").Columns("module_id", "kind", "position", "value")
		for pos, v := range l.values {
			ins.Values(m.ID, l.kind, pos, v)
		}
		query, args := ins.Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("insert %s list of %q: %w", l.kind, m.ID, err)
		}
	}
	return nil
}

// Info returns the stored catalog version, fallback and module count.
// An empty store returns a zero CatalogInfo.
func (r *ModuleRepo) Info(ctx context.Context) (CatalogInfo, error) {
	var info CatalogInfo

	query, args := sqlite.Select("key", "value").From(sqlite.Table("catalog_meta")).Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return info, fmt.Errorf("query catalog meta: %w", err)
	}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			rows.Close()
			return info, fmt.Errorf("scan catalog meta: %w", err)
		}
		switch key {
		case metaVersion:
			info.Version = value
		case metaFallback:
			if err := json.Unmarshal([]byte(value), &info.FallbackModules); err != nil {
				rows.Close()
				return info, fmt.Errorf("decode fallback modules: %w", err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return info, err
	}
	rows.Close()

	count, err := r.count(ctx)
	if err != nil {
		return info, err
	}
	info.Modules = count
	return info, nil
}

// Catalog reads the whole stored catalog back.
func (r *ModuleRepo) Catalog(ctx context.Context) (*knowledge.Catalog, error) {
	info, err := r.Info(ctx)
	if err != nil {
		return nil, err
	}
	modules, err := r.AllModules(ctx)
	if err != nil {
		return nil, err
	}
	return &knowledge.Catalog{
		Version:         info.Version,
		FallbackModules: info.FallbackModules,
		Modules:         modules,
	}, nil
}

func (r *ModuleRepo) count(ctx context.Context) (int, error) {
	query, args := sqlite.Select(entsql.Count("*")).From(sqlite.Table("modules")).Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("count modules: %w", err)
	}
	defer rows.Close()
	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan module count: %w", err)
		}
	}
	return n, rows.Err()
}

// ModuleDetails implements knowledge.Source.
func (r *ModuleRepo) ModuleDetails(ctx context.Context, id string) (knowledge.Module, bool, error) {
	modules, err := r.loadModules(ctx, entsql.EQ("id", id))
	if err != nil {
		return knowledge.Module{}, false, err
	}
	if len(modules) == 0 {
		return knowledge.Module{}, false, nil
	}
	return modules[0], true, nil
}

// Prerequisites implements knowledge.Source.
func (r *ModuleRepo) Prerequisites(ctx context.Context, id string) ([]string, error) {
	attrs, err := r.loadAttributes(ctx, entsql.And(
		entsql.EQ("module_id", id),
		entsql.EQ("kind", attrPrerequisite),
	))
	if err != nil {
		return nil, err
	}
	return attrs[id][attrPrerequisite], nil
}

// FindModulesByGoal implements knowledge.Source using knowledge.MatchGoal.
func (r *ModuleRepo) FindModulesByGoal(ctx context.Context, goal string) ([]string, error) {
	modules, err := r.AllModules(ctx)
	if err != nil {
		return nil, err
	}
	return knowledge.MatchGoal(modules, goal), nil
}

// AllModules implements knowledge.Lister.
func (r *ModuleRepo) AllModules(ctx context.Context) ([]knowledge.Module, error) {
	return r.loadModules(ctx, nil)
}

// loadModules reads modules matching where (all when nil) in catalog order,
// with their attribute lists.
func (r *ModuleRepo) loadModules(ctx context.Context, where *entsql.Predicate) ([]knowledge.Module, error) {
	sel := sqlite.Select("id", "name", "description", "estimated_time_hours").
		From(sqlite.Table("modules")).
		OrderBy("position")
	if where != nil {
		sel.Where(where)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	var modules []knowledge.Module
	for rows.Next() {
		var m knowledge.Module
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.EstimatedTimeHours); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate modules: %w", err)
	}
	rows.Close()

	if len(modules) == 0 {
		return nil, nil
	}

	var attrWhere *entsql.Predicate
	if len(modules) == 1 {
		attrWhere = entsql.EQ("module_id", modules[0].ID)
	}
	attrs, err := r.loadAttributes(ctx, attrWhere)
	if err != nil {
		return nil, err
	}
	for i := range modules {
		a := attrs[modules[i].ID]
		modules[i].Prerequisites = a[attrPrerequisite]
		modules[i].Topics = a[attrTopic]
		modules[i].Keywords = a[attrKeyword]
	}
	return modules, nil
}

// loadAttributes returns module id -> kind -> ordered values.
func (r *ModuleRepo) loadAttributes(ctx context.Context, where *entsql.Predicate) (map[string]map[string][]string, error) {
	sel := sqlite.Select("module_id", "kind", "value").
		From(sqlite.Table("module_attributes")).
		OrderBy("module_id", "kind", "position")
	if where != nil {
		sel.Where(where)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query module attributes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string][]string)
	for rows.Next() {
		var moduleID, kind, value string
		if err := rows.Scan(&moduleID, &kind, &value); err != nil {
			return nil, fmt.Errorf("scan module attribute: %w", err)
		}
		if out[moduleID] == nil {
			out[moduleID] = make(map[string][]string)
		}
		out[moduleID][kind] = append(out[moduleID][kind], value)
	}
	return out, rows.Err()
}
