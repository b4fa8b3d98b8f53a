package components

import (
	"fmt"

	"github.com/theirongolddev/zenfin/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status carries what the bottom bar reports.
type Status struct {
	Count    int    // transactions currently loaded
	Days     int    // window in days, 0 for all time
	Advising bool   // an advice request is in flight
	Note     string // transient message, e.g. a failed save
	NoteWarn bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s Status) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	infoStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	if s.NoteWarn {
		noteStyle = noteStyle.Foreground(t.Warn)
	}

	left := hintStyle.Render(" [?]help  [q]uit")
	if s.Note != "" {
		left += hintStyle.Render("  ") + noteStyle.Render(s.Note)
	}

	window := "all time"
	if s.Days > 0 {
		window = fmt.Sprintf("%dd", s.Days)
	}
	right := fmt.Sprintf("%d entries · %s ", s.Count, window)
	if s.Advising {
		right = "advising… · " + right
	}
	rightStr := infoStyle.Render(right)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(rightStr), 0)
	return barStyle.Width(width).Render(left + barStyle.Render(fmt.Sprintf("%*s", gap, "")) + rightStr)
}
