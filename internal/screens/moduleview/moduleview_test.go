package moduleview

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screens"
)

func seed(t *testing.T) (*screens.Env, *knowledge.Graph) {
	t.Helper()
	g := knowledge.NewGraph(knowledge.SeedModules())
	b, err := curriculum.NewBuilder(g, curriculum.Options{})
	require.NoError(t, err)
	return &screens.Env{Ctx: context.Background(), Source: g, Builder: b}, g
}

func TestModuleView_RelatedModules(t *testing.T) {
	env, g := seed(t)
	s := New(env, g, "operators")

	keys := make([]string, 0, len(s.related.Items))
	for _, item := range s.related.Items {
		keys = append(keys, item.Key)
	}
	// prerequisites first, then dependents in catalog order
	assert.Equal(t, []string{"variables", "data_types", "control_flow", "conditionals", "loops"}, keys)
	assert.Equal(t, "requires", s.related.Items[0].Detail)
	assert.Equal(t, "unlocks", s.related.Items[2].Detail)

	view := s.View(100, 30)
	assert.Contains(t, view, "Operators")
	assert.Contains(t, view, "Related modules")
}

func TestModuleView_EnterOpensRelated(t *testing.T) {
	env, g := seed(t)
	s := New(env, g, "operators")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Variables and Assignment", push.Screen.Title())
}

func TestModuleView_PlanFromModule(t *testing.T) {
	env, g := seed(t)
	s := New(env, g, "control_flow")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Planner", push.Screen.Title())
}

func TestModuleView_UnknownModule(t *testing.T) {
	env, g := seed(t)
	s := New(env, g, "ghost")

	assert.Contains(t, s.View(80, 20), `"ghost" is not in the catalog`)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	assert.Nil(t, cmd)
}
