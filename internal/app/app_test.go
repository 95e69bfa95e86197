package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/router"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	g := knowledge.NewGraph(knowledge.SeedModules())
	b, err := curriculum.NewBuilder(g, curriculum.Options{})
	require.NoError(t, err)

	m := NewModel(context.Background(), Options{Source: g, Builder: b, Status: "v1.0.0"})
	next, _ := m.Update(m.Init()())
	return next.(Model)
}

func press(m Model, k tea.KeyPressMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func TestModel_QuitAtRoot(t *testing.T) {
	m := newTestModel(t)

	_, cmd := press(m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_EscPopsToCatalog(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(Model)
	require.Equal(t, 2, m.router.Depth())

	m, cmd = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
	next, _ = m.Update(cmd())
	assert.Equal(t, 1, next.(Model).router.Depth())
}

func TestModel_QDoesNotQuitPlanner(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(m, tea.KeyPressMsg{Code: 'p', Text: "p"})
	next, _ := m.Update(cmd())
	m = next.(Model)
	require.Equal(t, "Planner", m.router.Active().Title())

	assert.True(t, m.capturing())
	m, _ = press(m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.Equal(t, 2, m.router.Depth())
}

func TestModel_HintsFromActiveScreen(t *testing.T) {
	m := newTestModel(t)
	hints := m.hints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "Quit", hints[len(hints)-1].Description)
}

func TestRun_NilSource(t *testing.T) {
	assert.Error(t, Run(context.Background(), Options{}))
}
