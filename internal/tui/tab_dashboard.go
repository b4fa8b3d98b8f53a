package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/zenfin/internal/cli"
	"github.com/theirongolddev/zenfin/internal/model"
	"github.com/theirongolddev/zenfin/internal/pipeline"
	"github.com/theirongolddev/zenfin/internal/tui/components"
	"github.com/theirongolddev/zenfin/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	stats := a.stats
	var b strings.Builder

	// Row 1: Metric cards
	balanceColor := t.Income
	if stats.TotalBalance.IsNegative() {
		balanceColor = t.Expense
	}
	window := "all time"
	if a.days > 0 {
		window = fmt.Sprintf("last %d days", a.days)
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total Balance", Value: cli.FormatINR(stats.TotalBalance), Note: window, Color: balanceColor},
		{Label: "Income", Value: cli.FormatINR(stats.TotalIncome), Note: countNote(a.view, model.Income), Color: t.Income},
		{Label: "Expenses", Value: cli.FormatINR(stats.TotalExpenses), Note: countNote(a.view, model.Expense), Color: t.Expense},
	}, cw))
	b.WriteString("\n")

	// Row 2: Spending by category + recent activity
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Spending by Category", a.categoryChart(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Recent Activity", a.recentList(components.CardInnerWidth(cw)), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Spending by Category", a.categoryChart(components.CardInnerWidth(halves[0])), halves[0]),
			components.ContentCard("Recent Activity", a.recentList(components.CardInnerWidth(halves[1])), halves[1]),
		}))
	}

	// Row 3: Monthly spending and net trend
	if len(a.months) > 0 {
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Monthly", a.monthlyChart(components.CardInnerWidth(cw)), cw))
	}

	return b.String()
}

func countNote(txs []model.Transaction, typ model.Type) string {
	n := 0
	for _, t := range txs {
		if t.Type == typ {
			n++
		}
	}
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func (a App) categoryChart(width int) string {
	t := theme.Active
	if len(a.breakdown) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("Add some expenses to see a breakdown.")
	}

	bars := make([]components.HBar, len(a.breakdown))
	for i, row := range a.breakdown {
		bars[i] = components.HBar{
			Label: row.Category,
			Value: row.Amount.InexactFloat64(),
			Text:  cli.FormatINR(row.Amount),
		}
	}
	return components.HBarChart(bars, width)
}

func (a App) recentList(width int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	recent := pipeline.Recent(a.view, a.recent)
	if len(recent) == 0 {
		return mutedStyle.Render("No transactions yet. Press n to add one.")
	}

	lines := make([]string, 0, len(recent))
	for _, tx := range recent {
		amount := cli.FormatSigned(tx)
		amountStyle := textStyle.Foreground(t.Expense)
		if tx.Type == model.Income {
			amountStyle = textStyle.Foreground(t.Income)
		}

		descW := max(width-lipgloss.Width(amount)-1, 4)
		desc := cli.Truncate(tx.Description, descW)
		meta := cli.Truncate(tx.Category+" · "+cli.FormatDate(tx.Date), descW)

		gap := max(width-lipgloss.Width(desc)-lipgloss.Width(amount), 1)
		lines = append(lines,
			textStyle.Render(desc)+textStyle.Render(strings.Repeat(" ", gap))+amountStyle.Render(amount)+"\n"+
				dimStyle.Render(meta))
	}
	return strings.Join(lines, "\n")
}

func (a App) monthlyChart(width int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	expenses := make([]float64, len(a.months))
	nets := make([]float64, len(a.months))
	labels := make([]string, len(a.months))
	for i, m := range a.months {
		expenses[i] = m.Expenses.InexactFloat64()
		nets[i] = m.Net().InexactFloat64()
		labels[i] = m.Month.Format("Jan")
	}

	last := a.months[len(a.months)-1]
	netColor := t.Income
	if last.Net().IsNegative() {
		netColor = t.Expense
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render("Expenses per month"))
	b.WriteString("\n")
	b.WriteString(components.BarChart(expenses, labels, t.Expense, width, 8))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Net trend "))
	b.WriteString(components.Sparkline(nets, netColor))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s: ", cli.FormatMonth(last.Month))))
	b.WriteString(lipgloss.NewStyle().Foreground(netColor).Background(t.Surface).Render(cli.FormatINR(last.Net())))
	return b.String()
}
