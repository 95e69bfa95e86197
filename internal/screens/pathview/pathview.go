// Package pathview shows a built learning path.
package pathview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// Screen lists the modules of a path in order.
type Screen struct {
	path    *curriculum.LearningPath
	eventID int
	list    components.List
}

var _ screen.Screen = (*Screen)(nil)

// New returns a screen for path. eventID is the audit log id, or 0 when the
// path was not recorded.
func New(path *curriculum.LearningPath, eventID int) *Screen {
	items := make([]components.ListItem, len(path.Modules))
	for i, m := range path.Modules {
		items[i] = components.ListItem{
			Key:    m.ModuleID,
			Label:  fmt.Sprintf("%2d. %s", i+1, m.Name),
			Detail: fmt.Sprintf("%s · %.1fh", m.ModuleID, m.EstimatedTimeHours),
			Marked: m.Status == curriculum.StatusCompleted,
		}
	}
	return &Screen{path: path, eventID: eventID, list: components.NewList(items)}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.list = s.list.Update(msg)
	return s, nil
}

// hoursThrough sums module hours up to and including index i.
func (s *Screen) hoursThrough(i int) float64 {
	var total float64
	for _, m := range s.path.Modules[:i+1] {
		total += m.EstimatedTimeHours
	}
	return total
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Goal: "+s.path.Goal) + "\n")

	meta := fmt.Sprintf("%d modules · %.1f hours", len(s.path.Modules), s.path.TotalHours())
	if s.eventID > 0 {
		meta += fmt.Sprintf(" · recorded as event %d", s.eventID)
	}
	b.WriteString(theme.Subtitle.Render(meta) + "\n")

	if len(s.path.Missing) > 0 {
		b.WriteString(theme.Warn.Render("Missing from catalog: "+strings.Join(s.path.Missing, ", ")) + "\n")
	}
	if len(s.path.Unresolved) > 0 {
		b.WriteString(theme.Warn.Render("Unresolved dependencies: "+strings.Join(s.path.Unresolved, ", ")) + "\n")
	}
	b.WriteString("\n")

	if total := s.path.TotalHours(); total > 0 {
		through := s.hoursThrough(s.list.Cursor)
		bar := components.ProgressBar{
			Fraction: through / total,
			Width:    max(width/2, 10),
			Caption:  fmt.Sprintf("%.1f of %.1f hours through this module", through, total),
		}
		b.WriteString(bar.View() + "\n\n")
	}

	used := strings.Count(b.String(), "\n")
	b.WriteString(s.list.View(height - used))
	return b.String()
}

func (s *Screen) Title() string {
	return "Learning Path"
}

// KeyHints returns the footer hints.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Step"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
