// Package tui provides the interactive Bubble Tea dashboard for zenfin.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/zenfin/internal/advice"
	"github.com/theirongolddev/zenfin/internal/advisor"
	"github.com/theirongolddev/zenfin/internal/config"
	"github.com/theirongolddev/zenfin/internal/model"
	"github.com/theirongolddev/zenfin/internal/pipeline"
	"github.com/theirongolddev/zenfin/internal/store"
	"github.com/theirongolddev/zenfin/internal/tui/components"
	"github.com/theirongolddev/zenfin/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// TransactionStore loads and persists the full transaction list.
type TransactionStore interface {
	Load() ([]model.Transaction, error)
	Save([]model.Transaction) error
}

// Adviser produces an insight for a transaction snapshot.
type Adviser interface {
	Advise(ctx context.Context, txs []model.Transaction) advice.Result
}

// Options configures a new App.
type Options struct {
	Store           TransactionStore
	Adviser         Adviser
	Days            int // 0 shows all time
	RecentCount     int
	MinTransactions int
	NeedSetup       bool
	// Reconfigure builds a new adviser after the setup form saves config.
	// Nil keeps the current one.
	Reconfigure func(config.Config) Adviser
}

// DataLoadedMsg is sent when the persisted transactions have been read.
// A non-nil Err means the saved list could not be read.
type DataLoadedMsg struct {
	Transactions []model.Transaction
	Err          error
}

// InsightMsg is sent when an advice request completes.
type InsightMsg struct {
	Result advice.Result
}

const (
	tabDashboard = iota
	tabTransactions
	tabAdvisor
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	store   TransactionStore
	adviser Adviser
	advisor *advisor.Advisor
	txs     []model.Transaction // newest first, all time
	loaded  bool
	// loadFailed blocks writes so an unread history is never overwritten.
	loadFailed bool

	// Pre-computed for the current window
	view      []model.Transaction
	stats     model.FinancialStats
	breakdown []model.CategoryAmount
	months    []model.MonthlyStats

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	days      int
	recent    int

	// Per-tab state
	list  listState
	entry *entryState

	// First-run setup (huh form)
	setupForm   *huh.Form
	setupVals   *SetupValues
	needSetup   bool
	reconfigure func(config.Config) Adviser

	spinner spinner.Model

	// Status bar note, e.g. a failed save
	note     string
	noteWarn bool
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	recent := opts.RecentCount
	if recent <= 0 {
		recent = 6
	}

	return App{
		store:       opts.Store,
		adviser:     opts.Adviser,
		advisor:     advisor.New(opts.MinTransactions),
		days:        opts.Days,
		recent:      recent,
		needSetup:   opts.NeedSetup,
		reconfigure: opts.Reconfigure,
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.store),
	)
}

func (a *App) recompute() {
	since := time.Time{}
	if a.days > 0 {
		since = time.Now().AddDate(0, 0, -a.days)
	}

	a.view = pipeline.FilterSince(a.txs, since)
	a.stats = pipeline.Aggregate(a.view)
	a.breakdown = pipeline.SortedBreakdown(a.stats.CategoryBreakdown)
	a.months = pipeline.AggregateMonths(a.view)

	a.list.clamp(len(a.view))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.entry != nil {
			a.entry.form = a.entry.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.entry != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Entry form intercepts all keys
		if a.entry != nil {
			return a.updateEntryForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "n":
			a.activeTab = tabTransactions
			return a.openEntryForm()
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabTransactions:
			return a.updateTransactionsKeys(key)
		case tabAdvisor:
			if key == "r" {
				return a, a.startAdvice()
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.txs = msg.Transactions
		a.loaded = true
		if msg.Err != nil {
			log.Error().Err(msg.Err).Str("component", "tui").Msg("loading transactions")
			a.txs = []model.Transaction{}
			a.loadFailed = true
			a.note = "Could not read saved data: changes will not be saved"
			a.noteWarn = true
		}
		a.recompute()

		// With setup pending there is no provider yet; the fetch runs once
		// the form closes.
		var cmds []tea.Cmd
		if !a.needSetup {
			if cmd := a.maybeAutoFetch(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else {
			a.setupVals = NewSetupValues()
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			cmds = append(cmds, a.setupForm.Init())
		}
		if len(cmds) == 0 {
			return a, nil
		}
		return a, tea.Batch(cmds...)

	case InsightMsg:
		a.advisor.Complete(msg.Result)
		return a, nil

	case spinner.TickMsg:
		if a.advisor.InFlight() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to active forms (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.entry != nil {
		return a.updateEntryForm(msg)
	}

	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabTransactions {
			a.list.move(-1, len(a.view))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabTransactions {
			a.list.move(1, len(a.view))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// ─── Mutations ──────────────────────────────────────────────────

// addTransaction prepends t, persists, and returns to the dashboard.
func (a App) addTransaction(t model.Transaction) (App, tea.Cmd) {
	a.txs = store.Append(a.txs, t)
	a.persist()
	a.recompute()
	a.list.cursor, a.list.offset = 0, 0
	a.activeTab = tabDashboard

	log.Info().
		Str("component", "tui").
		Str("id", t.ID).
		Int("count", len(a.txs)).
		Msg("transaction added")

	return a, a.maybeAutoFetch()
}

// deleteTransaction removes the transaction with id and persists.
func (a App) deleteTransaction(id string) (App, tea.Cmd) {
	before := len(a.txs)
	a.txs = store.Remove(a.txs, id)
	if len(a.txs) == before {
		return a, nil
	}
	a.persist()
	a.recompute()

	log.Info().
		Str("component", "tui").
		Str("id", id).
		Int("count", len(a.txs)).
		Msg("transaction deleted")

	return a, a.maybeAutoFetch()
}

// persist writes the full list. A failure keeps the in-memory change and
// is reported in the status bar.
func (a *App) persist() {
	if a.store == nil {
		return
	}
	if a.loadFailed {
		log.Warn().Str("component", "tui").Int("count", len(a.txs)).Msg("not saving: initial load failed")
		a.note = "Could not read saved data: changes will not be saved"
		a.noteWarn = true
		return
	}
	if err := a.store.Save(a.txs); err != nil {
		log.Error().Err(err).Str("component", "tui").Int("count", len(a.txs)).Msg("saving transactions")
		a.note = "Save failed: changes are not persisted"
		a.noteWarn = true
		return
	}
	a.note, a.noteWarn = "", false
}

// ─── Advice ─────────────────────────────────────────────────────

// maybeAutoFetch requests the first insight once enough transactions exist.
func (a App) maybeAutoFetch() tea.Cmd {
	if !a.advisor.ShouldAutoFetch(len(a.txs)) {
		return nil
	}
	return a.startAdvice()
}

// startAdvice begins a request unless one is in flight or there is no data.
func (a App) startAdvice() tea.Cmd {
	if !a.advisor.Begin(len(a.txs)) {
		return nil
	}
	snapshot := make([]model.Transaction, len(a.txs))
	copy(snapshot, a.txs)
	return tea.Batch(fetchInsightCmd(a.adviser, snapshot), a.spinner.Tick)
}

func fetchInsightCmd(adv Adviser, txs []model.Transaction) tea.Cmd {
	return func() tea.Msg {
		if adv == nil {
			return InsightMsg{Result: advice.NewClient(nil).Advise(context.Background(), txs)}
		}
		return InsightMsg{Result: adv.Advise(context.Background(), txs)}
	}
}

func loadDataCmd(s TransactionStore) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return DataLoadedMsg{Transactions: []model.Transaction{}}
		}
		txs, err := s.Load()
		return DataLoadedMsg{Transactions: txs, Err: err}
	}
}

// ─── Setup ──────────────────────────────────────────────────────

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		return a.finishSetup(true)
	case huh.StateAborted:
		return a.finishSetup(false)
	}

	return a, cmd
}

// finishSetup closes the setup form, saving it when save is set, and runs
// the auto fetch that was held back while it was open.
func (a App) finishSetup(save bool) (App, tea.Cmd) {
	if save {
		a.saveSetupConfig()
	}
	a.needSetup = false
	a.setupForm = nil
	return a, a.maybeAutoFetch()
}

// ─── Layout ─────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return ""
	}

	if a.needSetup && a.setupForm != nil {
		return a.viewSetup()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  zenfin needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"d t a", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move through history"},
			{"g G", "First / last entry"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"n", "New transaction"},
			{"x del", "Delete selected entry"},
			{"r", "Refresh insight (Advisor)"},
			{"esc", "Cancel form"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, components.Status{
		Count:    len(a.view),
		Days:     a.days,
		Advising: a.advisor.InFlight(),
		Note:     a.note,
		NoteWarn: a.noteWarn,
	})

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabDashboard:
		content = a.renderDashboardTab(cw)
	case tabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case tabAdvisor:
		content = a.renderAdvisorTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same widths RenderTabBar uses, with one separator
// column between tabs.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}
