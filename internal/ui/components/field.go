package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

// Field is a labelled single-line text input.
type Field struct {
	Label string
	Model textinput.Model
}

// NewField returns an unfocused field.
func NewField(label, placeholder string, charLimit int) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return Field{Label: label, Model: ti}
}

// Focus focuses the field and returns the cursor blink command.
func (f *Field) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur removes focus.
func (f *Field) Blur() {
	f.Model.Blur()
}

// Update forwards msg to the input.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the label above the input.
func (f Field) View() string {
	label := theme.Subtitle.Render(f.Label)
	if f.Model.Focused() {
		label = theme.Label.Render(f.Label)
	}
	return label + "\n" + f.Model.View()
}

// Value returns the trimmed input.
func (f Field) Value() string {
	return strings.TrimSpace(f.Model.Value())
}

// Values splits the input on commas, dropping blanks.
func (f Field) Values() []string {
	var out []string
	for _, part := range strings.Split(f.Model.Value(), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
