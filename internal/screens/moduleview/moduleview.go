// Package moduleview shows one catalog module with its neighbours in the
// prerequisite graph.
package moduleview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/screens"
	"github.com/abhisek/learnpath/internal/screens/planner"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// Screen shows a module. Its list holds the prerequisites followed by the
// dependents; Enter opens the selected one.
type Screen struct {
	env     *screens.Env
	graph   *knowledge.Graph
	module  knowledge.Module
	missing bool
	related components.List
}

var _ screen.Screen = (*Screen)(nil)

// New returns a detail screen for id over graph.
func New(env *screens.Env, graph *knowledge.Graph, id string) *Screen {
	s := &Screen{env: env, graph: graph}
	m, ok, _ := graph.ModuleDetails(env.Ctx, id)
	if !ok {
		s.module = knowledge.Module{ID: id, Name: id}
		s.missing = true
		return s
	}
	s.module = m

	var items []components.ListItem
	for _, pre := range m.Prerequisites {
		items = append(items, s.item(pre, "requires"))
	}
	for _, dep := range graph.Dependents(id) {
		items = append(items, s.item(dep, "unlocks"))
	}
	s.related = components.NewList(items)
	return s
}

func (s *Screen) item(id, relation string) components.ListItem {
	label := id
	if m, ok, _ := s.graph.ModuleDetails(s.env.Ctx, id); ok {
		label = m.Name
	} else {
		relation += ", not in catalog"
	}
	return components.ListItem{Key: id, Label: label, Detail: relation}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			if item, ok := s.related.Selected(); ok {
				return s, router.Push(New(s.env, s.graph, item.Key))
			}
			return s, nil
		case "p":
			if s.env.Builder == nil || s.missing {
				return s, nil
			}
			return s, router.Push(planner.New(s.env, s.module.ID))
		}
	}
	s.related = s.related.Update(msg)
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.missing {
		return theme.Fail.Render(fmt.Sprintf("Module %q is not in the catalog.", s.module.ID))
	}

	m := s.module
	var b strings.Builder
	b.WriteString(theme.Title.Render(m.Name) + "  " + theme.Subtitle.Render(m.ID) + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%.1f hours", m.EstimatedTimeHours)) + "\n\n")

	if m.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(max(width-4, 20)).Render(m.Description) + "\n\n")
	}
	if topics := s.graph.SubTopics(m.ID); len(topics) > 0 {
		b.WriteString(theme.Label.Render("Topics") + "  " + theme.Body.Render(strings.Join(topics, ", ")) + "\n")
	}
	if len(m.Keywords) > 0 {
		b.WriteString(theme.Label.Render("Keywords") + "  " + theme.Body.Render(strings.Join(m.Keywords, ", ")) + "\n")
	}
	b.WriteString("\n")

	if len(s.related.Items) == 0 {
		b.WriteString(theme.Hint.Render("No prerequisites and nothing depends on this module."))
		return b.String()
	}
	b.WriteString(theme.Label.Render("Related modules") + "\n")
	used := strings.Count(b.String(), "\n")
	b.WriteString(s.related.View(height - used))
	return b.String()
}

func (s *Screen) Title() string {
	return s.module.Name
}

// KeyHints returns the footer hints.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Related"},
		{Key: "Enter", Description: "Open"},
		{Key: "p", Description: "Plan path here"},
		{Key: "Esc", Description: "Back"},
	}
}
