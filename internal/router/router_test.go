package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	updates []tea.Msg
}

type pingMsg struct{}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates = append(s.updates, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestRouter_PushRunsInit(t *testing.T) {
	catalog := &stubScreen{title: "catalog"}
	r := New(catalog)

	detail := &stubScreen{title: "variables"}
	r.Update(PushScreenMsg{Screen: detail})

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "variables", r.Active().Title())
	assert.Equal(t, 1, detail.inits)
	assert.Zero(t, catalog.inits)
}

func TestRouter_PopKeepsRoot(t *testing.T) {
	r := New(&stubScreen{title: "catalog"})
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "planner"}})

	r.Update(PopScreenMsg{})
	r.Update(PopScreenMsg{})

	require.Equal(t, 1, r.Depth())
	assert.Equal(t, "catalog", r.Active().Title())
}

func TestRouter_ReplaceSwapsTop(t *testing.T) {
	r := New(&stubScreen{title: "catalog"})
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "planner"}})

	path := &stubScreen{title: "path"}
	r.Update(ReplaceScreenMsg{Screen: path})

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "path", r.Active().Title())
	assert.Equal(t, 1, path.inits)

	r.Update(PopScreenMsg{})
	assert.Equal(t, "catalog", r.Active().Title())
}

func TestRouter_ForwardsToActiveOnly(t *testing.T) {
	root := &stubScreen{title: "catalog"}
	r := New(root)
	top := &stubScreen{title: "detail"}
	r.Update(PushScreenMsg{Screen: top})

	r.Update(pingMsg{})

	assert.Len(t, top.updates, 1)
	assert.Empty(t, root.updates)
	assert.Equal(t, "detail", r.View(80, 24))
}

func TestRouter_CommandHelpers(t *testing.T) {
	s := &stubScreen{title: "x"}

	assert.Equal(t, PushScreenMsg{Screen: s}, Push(s)())
	assert.Equal(t, ReplaceScreenMsg{Screen: s}, Replace(s)())
	assert.Equal(t, PopScreenMsg{}, Pop()())
}
