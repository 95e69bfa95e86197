package graphdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/abhisek/learnpath/internal/knowledge"
)

// SyncCatalog replaces the Module graph with the catalog's modules and
// REQUIRES edges in one write transaction.
func (c *Client) SyncCatalog(ctx context.Context, cat *knowledge.Catalog) error {
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	// Schema helpers are best effort; restricted users may not create them.
	if res, err := session.Run(ctx, `CREATE CONSTRAINT module_id_unique IF NOT EXISTS FOR (m:Module) REQUIRE m.id IS UNIQUE`, nil); err != nil {
		c.log.Warn("neo4j schema init failed (continuing)", "error", err)
	} else {
		_, _ = res.Consume(ctx)
	}

	ids := make([]string, len(cat.Modules))
	nodes := make([]map[string]any, len(cat.Modules))
	var edges []map[string]any
	for i, m := range cat.Modules {
		ids[i] = m.ID
		nodes[i] = moduleProps(m, i)
		for pos, pre := range m.Prerequisites {
			edges = append(edges, map[string]any{"from": m.ID, "to": pre, "position": int64(pos)})
		}
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		steps := []struct {
			cypher string
			params map[string]any
		}{
			{`MATCH (m:Module) WHERE NOT m.id IN $ids DETACH DELETE m`, map[string]any{"ids": ids}},
			{`MATCH (:Module)-[r:REQUIRES]->(:Module) DELETE r`, nil},
			{`UNWIND $nodes AS n MERGE (m:Module {id: n.id}) SET m += n`, map[string]any{"nodes": nodes}},
			{`UNWIND $edges AS e
MATCH (a:Module {id: e.from})
MATCH (b:Module {id: e.to})
MERGE (a)-[r:REQUIRES]->(b)
SET r.position = e.position`, map[string]any{"edges": edges}},
			{`MERGE (c:Catalog {name: 'default'}) SET c.version = $version, c.fallback_modules = $fallback`,
				map[string]any{"version": cat.Version, "fallback": nonNil(cat.FallbackModules)}},
		}
		for _, step := range steps {
			if step.params != nil && isEmptyList(step.params) {
				continue
			}
			res, err := tx.Run(ctx, step.cypher, step.params)
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("sync catalog: %w", err)
	}

	c.log.Info("synced catalog to neo4j", "version", cat.Version, "modules", len(cat.Modules), "edges", len(edges))
	return nil
}

// isEmptyList reports whether an UNWIND step has nothing to unwind.
func isEmptyList(params map[string]any) bool {
	for _, key := range []string{"nodes", "edges"} {
		if v, ok := params[key]; ok {
			switch list := v.(type) {
			case []map[string]any:
				return len(list) == 0
			}
		}
	}
	return false
}

// CatalogMeta is the catalog metadata stored next to the module graph.
type CatalogMeta struct {
	Version         string
	FallbackModules []string
}

// CatalogMeta returns the metadata written by the last SyncCatalog, or nil
// when the graph has never been synced.
func (c *Client) CatalogMeta(ctx context.Context) (*CatalogMeta, error) {
	session := c.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (c:Catalog {name: 'default'}) RETURN c.version AS version, c.fallback_modules AS fallback_modules`, nil)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return (*CatalogMeta)(nil), nil
		}
		props := records[0].AsMap()
		return &CatalogMeta{
			Version:         stringProp(props, "version"),
			FallbackModules: stringsProp(props, "fallback_modules"),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("read catalog meta: %w", err)
	}
	return out.(*CatalogMeta), nil
}
