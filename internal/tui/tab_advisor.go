package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/zenfin/internal/tui/components"
	"github.com/theirongolddev/zenfin/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderAdvisorTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(innerW)
	spinStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	insight := a.advisor.Insight()
	loading := a.advisor.InFlight()

	if insight == nil {
		var body string
		switch {
		case loading:
			body = spinStyle.Render(a.spinner.View()) + mutedStyle.Render(" Analyzing your finances…")
		case len(a.txs) < a.advisor.MinTransactions():
			body = mutedStyle.Render(fmt.Sprintf(
				"Add at least %d transactions to unlock your first personalized AI insight.",
				a.advisor.MinTransactions()))
		default:
			body = mutedStyle.Render("Press r to generate an insight.")
		}
		return components.ContentCard("Smart Advisor", body, cw)
	}

	var b strings.Builder

	// Health score
	score := components.ClampScore(insight.HealthScore)
	barW := max(min(innerW-10, 50), 10)
	health := components.HealthBar(score, barW) + "\n" +
		lipgloss.NewStyle().Foreground(t.ScoreColor(score)).Background(t.Surface).Render(components.ScoreLabel(score))
	b.WriteString(components.ContentCard("Financial Health", health, cw))
	b.WriteString("\n")

	// Summary
	b.WriteString(components.ContentCard("Summary", textStyle.Render(insight.Summary), cw))
	b.WriteString("\n")

	// Tips
	var tips strings.Builder
	if len(insight.Tips) == 0 {
		tips.WriteString(dimStyle.Render("No tips this time."))
	}
	numStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	tipStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(max(innerW-4, 10))
	for i, tip := range insight.Tips {
		if i > 0 {
			tips.WriteString("\n")
		}
		tips.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			numStyle.Render(fmt.Sprintf("%d. ", i+1)),
			tipStyle.Render(tip)))
	}
	b.WriteString(components.ContentCard("Tips", tips.String(), cw))
	b.WriteString("\n")

	// Footer: refresh state and fallback note
	footer := dimStyle.Render(" r refresh")
	if loading {
		footer = " " + spinStyle.Render(a.spinner.View()) + mutedStyle.Render(" Refreshing…")
	}
	if a.advisor.UsedFallback() {
		footer += dimStyle.Render("  ·  general tips")
	}
	b.WriteString(footer)

	return b.String()
}
