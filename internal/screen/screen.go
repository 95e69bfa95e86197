// Package screen defines the contract between the browser and its screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/ui/layout"
)

// Screen is one page of the catalog browser.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the (possibly replaced) screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that consume printable keys, such as
// text entry, so global shortcuts like "q" are not intercepted.
type InputCapturer interface {
	CapturesInput() bool
}
