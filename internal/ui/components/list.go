// Package components holds reusable widgets for the catalog browser.
package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

// ListItem is one row of a List.
type ListItem struct {
	Key    string // returned by Selected
	Label  string
	Detail string // dimmed text after the label
	Marked bool   // rendered with the Known style
}

// List is a vertical, scrollable selection list.
type List struct {
	Items  []ListItem
	Cursor int
	offset int
}

// NewList returns a List with the cursor on the first item.
func NewList(items []ListItem) List {
	return List{Items: items}
}

// Selected returns the item under the cursor.
func (l List) Selected() (ListItem, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return ListItem{}, false
	}
	return l.Items[l.Cursor], true
}

// Update moves the cursor on navigation keys.
func (l List) Update(msg tea.Msg) List {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.Items) == 0 {
		return l
	}
	switch kmsg.String() {
	case "up", "k":
		l.Cursor = max(l.Cursor-1, 0)
	case "down", "j":
		l.Cursor = min(l.Cursor+1, len(l.Items)-1)
	case "home", "g":
		l.Cursor = 0
	case "end", "G":
		l.Cursor = len(l.Items) - 1
	}
	return l
}

// View renders at most height rows, scrolling to keep the cursor visible.
func (l *List) View(height int) string {
	if len(l.Items) == 0 || height <= 0 {
		return ""
	}
	if l.Cursor < l.offset {
		l.offset = l.Cursor
	}
	if l.Cursor >= l.offset+height {
		l.offset = l.Cursor - height + 1
	}

	end := min(l.offset+height, len(l.Items))
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		item := l.Items[i]
		style := theme.Unselected
		prefix := "    "
		switch {
		case i == l.Cursor:
			style = theme.Selected
			prefix = "  ▸ "
		case item.Marked:
			style = theme.Known
		}
		line := style.Render(prefix + item.Label)
		if item.Detail != "" {
			line += "  " + theme.Subtitle.Render(item.Detail)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
