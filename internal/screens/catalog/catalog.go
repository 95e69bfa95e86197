// Package catalog is the browser's root screen: every module in the catalog.
package catalog

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/screens"
	"github.com/abhisek/learnpath/internal/screens/moduleview"
	"github.com/abhisek/learnpath/internal/screens/planner"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

type loadedMsg struct {
	modules []knowledge.Module
	err     error
}

// Screen lists the catalog in prerequisite order.
type Screen struct {
	env     *screens.Env
	graph   *knowledge.Graph
	list    components.List
	loading bool
	err     error
}

var _ screen.Screen = (*Screen)(nil)

// New returns the catalog screen. Modules load on Init.
func New(env *screens.Env) *Screen {
	return &Screen{env: env, loading: true}
}

func (s *Screen) Init() tea.Cmd {
	return s.load
}

func (s *Screen) load() tea.Msg {
	lister, ok := s.env.Source.(knowledge.Lister)
	if !ok {
		return loadedMsg{err: knowledge.ErrNotListable}
	}
	modules, err := lister.AllModules(s.env.Ctx)
	return loadedMsg{modules: modules, err: err}
}

func (s *Screen) setModules(modules []knowledge.Module) {
	s.graph = knowledge.NewGraph(modules)
	var items []components.ListItem
	for _, id := range s.graph.TopologicalOrder() {
		m, _, _ := s.graph.ModuleDetails(s.env.Ctx, id)
		detail := fmt.Sprintf("%.1fh", m.EstimatedTimeHours)
		if len(m.Prerequisites) > 0 {
			detail += " · needs " + strings.Join(m.Prerequisites, ", ")
		}
		items = append(items, components.ListItem{Key: id, Label: m.Name, Detail: detail})
	}
	s.list = components.NewList(items)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.setModules(msg.modules)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := s.list.Selected(); ok {
				return s, router.Push(moduleview.New(s.env, s.graph, item.Key))
			}
			return s, nil
		case "p":
			if s.env.Builder != nil {
				return s, router.Push(planner.New(s.env, ""))
			}
			return s, nil
		case "r":
			s.loading = true
			return s, s.load
		}
	}
	s.list = s.list.Update(msg)
	return s, nil
}

func (s *Screen) View(width, height int) string {
	switch {
	case s.loading:
		return theme.Subtitle.Render("Loading catalog...")
	case s.err != nil:
		return theme.Fail.Render("Could not load catalog: "+s.err.Error()) + "\n\n" +
			theme.Hint.Render("Press r to retry.")
	case len(s.list.Items) == 0:
		return theme.Hint.Render("The catalog is empty.")
	}

	header := theme.Subtitle.Render(fmt.Sprintf("%d modules · starting points: %s",
		s.graph.Len(), strings.Join(s.graph.Roots(), ", ")))
	return header + "\n\n" + s.list.View(height-2)
}

func (s *Screen) Title() string {
	return "Catalog"
}

// KeyHints returns the footer hints.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "p", Description: "Plan path"},
		{Key: "q", Description: "Quit"},
	}
}
