package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/learnpath/internal/curriculum"
)

// pathRepo implements PathRepo backed by the ent driver and the global sequence counter.
type pathRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var pathColumns = []string{
	"id", "sequence", "timestamp", "path_id", "user_id", "goal",
	"outcome", "module_count", "total_hours", "body",
}

func (r *pathRepo) RecordPath(ctx context.Context, userID, goal string, path *curriculum.LearningPath) (int, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	var (
		outcome = curriculum.OutcomeNothingToLearn
		pathID  string
		count   int
		hours   float64
		body    string
	)
	if path != nil {
		outcome = curriculum.OutcomeCreated
		pathID = path.ID.String()
		count = len(path.Modules)
		hours = path.TotalHours()
		goal = path.Goal
		raw, err := json.Marshal(path)
		if err != nil {
			return 0, fmt.Errorf("encode path: %w", err)
		}
		body = string(raw)
	}

	query, args := sqlite.Insert("path_events").
		Columns(pathColumns[1:]...).
		Values(seqNum, time.Now().UnixMilli(), pathID, userID, goal, outcome, count, hours, body).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("save path event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("path event id: %w", err)
	}
	return int(id), nil
}

func (r *pathRepo) QueryPaths(ctx context.Context, opts QueryOpts) ([]PathEvent, error) {
	sel := sqlite.Select(pathColumns...).From(sqlite.Table("path_events"))
	if opts.UserID != "" {
		sel.Where(entsql.EQ("user_id", opts.UserID))
	}
	query, args := applyQueryOpts(sel, opts).Query()
	return r.scan(ctx, query, args)
}

func (r *pathRepo) GetPath(ctx context.Context, id int) (*PathEvent, error) {
	query, args := sqlite.Select(pathColumns...).
		From(sqlite.Table("path_events")).
		Where(entsql.EQ("id", id)).
		Query()
	events, err := r.scan(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *pathRepo) scan(ctx context.Context, query string, args []any) ([]PathEvent, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query path events: %w", err)
	}
	defer rows.Close()

	var events []PathEvent
	for rows.Next() {
		var (
			e    PathEvent
			ts   int64
			body string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.PathID, &e.UserID, &e.Goal,
			&e.Outcome, new(int), &e.TotalHours, &body); err != nil {
			return nil, fmt.Errorf("scan path event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		if body != "" {
			var p curriculum.LearningPath
			if err := json.Unmarshal([]byte(body), &p); err != nil {
				return nil, fmt.Errorf("decode path %d: %w", e.ID, err)
			}
			e.Path = &p
			e.ModuleIDs = p.ModuleIDs()
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
