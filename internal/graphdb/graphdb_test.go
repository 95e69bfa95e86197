package graphdb

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
)

func TestModuleFromProps_DriverTypes(t *testing.T) {
	// Lists come back from the driver as []any and integers as int64.
	m := moduleFromProps(map[string]any{
		"id":                   "operators",
		"name":                 "Operators",
		"prerequisites":        []any{"variables", "data_types"},
		"topics":               []any{},
		"keywords":             []any{"operator", 7},
		"estimated_time_hours": int64(2),
	})

	assert.Equal(t, "operators", m.ID)
	assert.Equal(t, []string{"variables", "data_types"}, m.Prerequisites)
	assert.Nil(t, m.Topics)
	assert.Equal(t, []string{"operator"}, m.Keywords)
	assert.Equal(t, 2.0, m.EstimatedTimeHours)
	assert.Empty(t, m.Description)
}

func TestModuleProps_NoNullLists(t *testing.T) {
	props := moduleProps(knowledge.Module{ID: "python_basics", Name: "Python Basics"}, 3)
	assert.Equal(t, []string{}, props["prerequisites"])
	assert.Equal(t, int64(3), props["position"])
}

func TestIsEmptyList(t *testing.T) {
	assert.True(t, isEmptyList(map[string]any{"edges": []map[string]any{}}))
	assert.False(t, isEmptyList(map[string]any{"nodes": []map[string]any{{"id": "a"}}}))
	assert.False(t, isEmptyList(map[string]any{"ids": []string{}}))
}

// Requires a disposable Neo4j instance; the test wipes all Module nodes.
func TestSource_Integration(t *testing.T) {
	uri := os.Getenv("LEARNPATH_TEST_NEO4J_URI")
	if uri == "" {
		t.Skip("LEARNPATH_TEST_NEO4J_URI not set")
	}
	ctx := context.Background()

	client, err := New(ctx, config.Neo4jConfig{
		URI:      uri,
		User:     os.Getenv("LEARNPATH_TEST_NEO4J_USER"),
		Password: os.Getenv("LEARNPATH_TEST_NEO4J_PASSWORD"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(ctx) })

	require.NoError(t, client.SyncCatalog(ctx, knowledge.SeedCatalog()))
	src := NewSource(client)

	meta, err := client.CatalogMeta(ctx)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, knowledge.SeedCatalog().Version, meta.Version)
	assert.Equal(t, knowledge.DefaultFallbackModules, meta.FallbackModules)

	m, ok, err := src.ModuleDetails(ctx, "control_flow")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"variables", "data_types", "operators"}, m.Prerequisites)

	_, ok, err = src.ModuleDetails(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := src.AllModules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(knowledge.SeedModules()))
	assert.Equal(t, "python_basics", all[0].ID, "catalog order is preserved")

	b, err := curriculum.NewBuilder(src, curriculum.Options{})
	require.NoError(t, err)
	path, err := b.CreateLearningPath(ctx, "u1", curriculum.Assessment{}, []string{"control_flow"})
	require.NoError(t, err)
	assert.Equal(t, []string{"variables", "data_types", "operators", "control_flow"}, path.ModuleIDs())
}

func TestNew_RequiresURI(t *testing.T) {
	_, err := New(context.Background(), config.Neo4jConfig{}, nil)
	assert.Error(t, err)
}
