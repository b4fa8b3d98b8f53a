package components

import (
	"fmt"

	"github.com/theirongolddev/zenfin/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ClampScore limits a health score to 0-100.
func ClampScore(score int) int {
	return max(0, min(score, 100))
}

// HealthBar renders a 0-100 health score as a colored bar followed by
// "NN/100".
func HealthBar(score, barWidth int) string {
	t := theme.Active
	score = ClampScore(score)
	color := t.ScoreColor(score)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	scoreStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(float64(score)/100) +
		spaceStyle.Render(" ") +
		scoreStyle.Render(fmt.Sprintf("%3d", score)) +
		dimStyle.Render("/100")
}

// ScoreLabel describes a health score in a word.
func ScoreLabel(score int) string {
	switch score = ClampScore(score); {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs attention"
	}
}
