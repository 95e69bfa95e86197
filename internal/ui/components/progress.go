package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

// ProgressBar renders a fraction as a filled bar followed by a caption.
type ProgressBar struct {
	Fraction float64
	Width    int
	Caption  string
}

// View renders the bar.
func (p ProgressBar) View() string {
	width := max(p.Width, 4)
	filled := min(max(int(float64(width)*p.Fraction), 0), width)

	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", width-filled))
	if p.Caption == "" {
		return bar + theme.Subtitle.Render(fmt.Sprintf("  %d%%", int(p.Fraction*100)))
	}
	return bar + "  " + theme.Subtitle.Render(p.Caption)
}
