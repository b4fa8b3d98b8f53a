package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/zenfin/internal/cli"
	"github.com/theirongolddev/zenfin/internal/model"
	"github.com/theirongolddev/zenfin/internal/tui/components"
	"github.com/theirongolddev/zenfin/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// listState is the cursor and scroll position of the history list.
type listState struct {
	cursor int
	offset int
}

func (l *listState) clamp(n int) {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.offset > l.cursor {
		l.offset = l.cursor
	}
}

func (l *listState) move(delta, n int) {
	l.cursor += delta
	l.clamp(n)
}

// scrollTo keeps the cursor within a window of visible rows.
func (l *listState) scrollTo(visible int) {
	if visible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
}

// entryState holds the open "new transaction" form. The draft is a pointer
// so huh can bind to it while App is copied by value.
type entryState struct {
	form  *huh.Form
	draft *model.Draft
}

func newEntryForm(d *model.Draft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[model.Type]().
				Title("Type").
				Options(
					huh.NewOption("Expense", model.Expense),
					huh.NewOption("Income", model.Income),
				).
				Value(&d.Type),
			huh.NewInput().
				Title("Amount (₹)").
				Placeholder("0.00").
				Value(&d.Amount),
			huh.NewInput().
				Title("Description").
				Placeholder("e.g. Grocery shopping").
				Value(&d.Description),
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(model.Categories...)...).
				Height(6).
				Value(&d.Category),
			huh.NewInput().
				Title("Date").
				Placeholder(model.DateLayout).
				Value(&d.Date),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(true)
}

func (a App) formWidth() int {
	return max(min(a.contentWidth()-6, 60), 30)
}

func (a App) openEntryForm() (tea.Model, tea.Cmd) {
	draft := model.NewDraft(time.Now())
	a.entry = &entryState{draft: &draft}
	a.entry.form = newEntryForm(a.entry.draft).WithWidth(a.formWidth())
	return a, a.entry.form.Init()
}

func (a App) updateEntryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.entry = nil
		return a, nil
	}

	form, cmd := a.entry.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.entry.form = f
	}

	switch a.entry.form.State {
	case huh.StateCompleted:
		draft := *a.entry.draft
		a.entry = nil
		tx, ok := draft.Build(time.Now())
		if !ok {
			// Missing or unparseable fields drop the submission silently.
			return a, nil
		}
		return a.addTransaction(tx)
	case huh.StateAborted:
		a.entry = nil
		return a, nil
	}

	return a, cmd
}

func (a App) updateTransactionsKeys(key string) (tea.Model, tea.Cmd) {
	n := len(a.view)
	switch key {
	case "j", "down":
		a.list.move(1, n)
	case "k", "up":
		a.list.move(-1, n)
	case "g", "home":
		a.list.cursor, a.list.offset = 0, 0
	case "G", "end":
		a.list.cursor = n - 1
		a.list.clamp(n)
	case "x", "delete":
		if a.list.cursor < n {
			return a.deleteTransaction(a.view[a.list.cursor].ID)
		}
	}
	return a, nil
}

func (a App) renderTransactionsTab(cw, h int) string {
	if a.entry != nil {
		return components.ContentCard("New Transaction  (esc to cancel)", a.entry.form.View(), cw)
	}

	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	title := fmt.Sprintf("History (%d)", len(a.view))

	if len(a.view) == 0 {
		return components.ContentCard(title, mutedStyle.Render("No transactions yet. Press n to add one."), cw)
	}

	// Card chrome (border, title, header) takes 4 rows.
	visible := max(h-4, 1)
	a.list.scrollTo(visible)

	dateW := 12
	amountW := 14
	catW := 14
	if a.isCompactLayout() {
		catW = 0
	}
	descW := innerW - dateW - amountW - catW - 3
	if catW > 0 {
		descW--
	}
	descW = max(descW, 8)

	headerStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	row := func(date, desc, cat, amount string) string {
		s := fmt.Sprintf("%-*s %-*s ", dateW, date, descW, cli.Truncate(desc, descW))
		if catW > 0 {
			s += fmt.Sprintf("%-*s ", catW, cli.Truncate(cat, catW))
		}
		return s + fmt.Sprintf("%*s", amountW, amount)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(row("Date", "Description", "Category", "Amount")))

	end := min(a.list.offset+visible, len(a.view))
	for i := a.list.offset; i < end; i++ {
		tx := a.view[i]
		b.WriteString("\n")

		line := row(cli.FormatDate(tx.Date), tx.Description, tx.Category, "")
		amount := fmt.Sprintf("%*s", amountW, cli.FormatSigned(tx))

		style := rowStyle
		if i == a.list.cursor {
			style = selStyle
		}
		amountStyle := style.Foreground(t.Expense)
		if tx.Type == model.Income {
			amountStyle = style.Foreground(t.Income)
		}
		b.WriteString(style.Render(strings.TrimSuffix(line, strings.Repeat(" ", amountW))))
		b.WriteString(amountStyle.Render(amount))
	}

	return components.ContentCard(title, b.String(), cw)
}
