// Package app runs the interactive catalog browser.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/screens"
	"github.com/abhisek/learnpath/internal/screens/catalog"
	"github.com/abhisek/learnpath/internal/store"
	"github.com/abhisek/learnpath/internal/ui/layout"
)

// Options configures the browser.
type Options struct {
	Source  knowledge.Source
	Builder *curriculum.Builder
	Paths   store.PathRepo // optional
	UserID  string

	// Status is shown at the right of the header, e.g. the catalog version.
	Status string
}

// Model is the root Bubble Tea model.
type Model struct {
	router *router.Router
	status string
	width  int
	height int
}

// NewModel returns the root model with the catalog screen on top.
func NewModel(ctx context.Context, opts Options) Model {
	env := &screens.Env{
		Ctx:     ctx,
		Source:  opts.Source,
		Builder: opts.Builder,
		Paths:   opts.Paths,
		UserID:  opts.UserID,
	}
	return Model{
		router: router.New(catalog.New(env)),
		status: opts.Status,
	}
}

func (m Model) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m Model) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturesInput()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.router.Depth() == 1 && !m.capturing() {
				return m, tea.Quit
			}
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m Model) hints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.hints(), m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Source == nil {
		return fmt.Errorf("app: nil knowledge source")
	}
	p := tea.NewProgram(NewModel(ctx, opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
