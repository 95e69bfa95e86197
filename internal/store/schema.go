package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sqlite is the dialect builder shared by every repository.
var sqlite = entsql.Dialect(dialect.SQLite)

// schema lists the table definitions in creation order.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS modules (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		estimated_time_hours REAL NOT NULL DEFAULT 0,
		position INTEGER NOT NULL
	)`,

	// Ordered string lists attached to a module: prerequisites, topics, keywords.
	`CREATE TABLE IF NOT EXISTS module_attributes (
		module_id TEXT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		position INTEGER NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (module_id, kind, position)
	)`,

	`CREATE TABLE IF NOT EXISTS catalog_meta (
		key TEXT NOT NULL PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS path_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		path_id TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL,
		goal TEXT NOT NULL,
		outcome TEXT NOT NULL,
		module_count INTEGER NOT NULL DEFAULT 0,
		total_hours REAL NOT NULL DEFAULT 0,
		body TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

// migrate creates any missing tables.
func migrate(ctx context.Context, drv dialect.ExecQuerier) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
