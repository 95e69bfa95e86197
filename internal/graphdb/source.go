package graphdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/abhisek/learnpath/internal/knowledge"
)

// Module nodes carry the full record as properties. The ordered prerequisite
// list is kept on the node because REQUIRES edges cannot point at ids that
// are missing from the graph.
const (
	queryModule = `MATCH (m:Module {id: $id}) RETURN m`
	queryAll    = `MATCH (m:Module) RETURN m ORDER BY m.position, m.id`
)

// Source implements knowledge.Source and knowledge.Lister over Neo4j.
type Source struct {
	client *Client
}

var (
	_ knowledge.Source = (*Source)(nil)
	_ knowledge.Lister = (*Source)(nil)
)

// NewSource returns a knowledge source reading from client.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

func (s *Source) ModuleDetails(ctx context.Context, id string) (knowledge.Module, bool, error) {
	modules, err := s.read(ctx, queryModule, map[string]any{"id": id})
	if err != nil {
		return knowledge.Module{}, false, fmt.Errorf("get module %q: %w", id, err)
	}
	if len(modules) == 0 {
		return knowledge.Module{}, false, nil
	}
	return modules[0], true, nil
}

func (s *Source) Prerequisites(ctx context.Context, id string) ([]string, error) {
	m, ok, err := s.ModuleDetails(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	return m.Prerequisites, nil
}

func (s *Source) FindModulesByGoal(ctx context.Context, goal string) ([]string, error) {
	modules, err := s.AllModules(ctx)
	if err != nil {
		return nil, err
	}
	return knowledge.MatchGoal(modules, goal), nil
}

func (s *Source) AllModules(ctx context.Context) ([]knowledge.Module, error) {
	modules, err := s.read(ctx, queryAll, nil)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

func (s *Source) read(ctx context.Context, cypher string, params map[string]any) ([]knowledge.Module, error) {
	session := s.client.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		modules := make([]knowledge.Module, 0, len(records))
		for _, rec := range records {
			v, ok := rec.Get("m")
			if !ok {
				continue
			}
			node, ok := v.(neo4j.Node)
			if !ok {
				return nil, fmt.Errorf("unexpected value %T for module node", v)
			}
			modules = append(modules, moduleFromProps(node.Props))
		}
		return modules, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]knowledge.Module), nil
}

func moduleFromProps(props map[string]any) knowledge.Module {
	m := knowledge.Module{
		ID:            stringProp(props, "id"),
		Name:          stringProp(props, "name"),
		Description:   stringProp(props, "description"),
		Prerequisites: stringsProp(props, "prerequisites"),
		Topics:        stringsProp(props, "topics"),
		Keywords:      stringsProp(props, "keywords"),
	}
	switch h := props["estimated_time_hours"].(type) {
	case float64:
		m.EstimatedTimeHours = h
	case int64:
		m.EstimatedTimeHours = float64(h)
	}
	return m
}

func moduleProps(m knowledge.Module, position int) map[string]any {
	return map[string]any{
		"id":                   m.ID,
		"name":                 m.Name,
		"description":          m.Description,
		"prerequisites":        nonNil(m.Prerequisites),
		"topics":               nonNil(m.Topics),
		"keywords":             nonNil(m.Keywords),
		"estimated_time_hours": m.EstimatedTimeHours,
		"position":             int64(position),
	}
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func stringsProp(props map[string]any, key string) []string {
	switch vals := props[key].(type) {
	case []string:
		if len(vals) == 0 {
			return nil
		}
		return vals
	case []any:
		var out []string
		for _, v := range vals {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Neo4j stores null for nil lists.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
