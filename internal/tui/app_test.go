package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/zenfin/internal/advice"
	"github.com/theirongolddev/zenfin/internal/advisor"
	"github.com/theirongolddev/zenfin/internal/config"
	"github.com/theirongolddev/zenfin/internal/model"
	"github.com/theirongolddev/zenfin/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

type stubAdviser struct {
	result advice.Result
	calls  int
	seen   int
}

func (s *stubAdviser) Advise(_ context.Context, txs []model.Transaction) advice.Result {
	s.calls++
	s.seen = len(txs)
	return s.result
}

type failingStore struct {
	txs []model.Transaction
}

func (f *failingStore) Load() ([]model.Transaction, error) { return f.txs, nil }
func (f *failingStore) Save([]model.Transaction) error     { return errors.New("disk full") }

// unreadableStore fails to load and counts saves.
type unreadableStore struct {
	saves int
}

func (u *unreadableStore) Load() ([]model.Transaction, error) {
	return nil, errors.New("database is locked")
}
func (u *unreadableStore) Save([]model.Transaction) error { u.saves++; return nil }

func newTx(id string, amount int64, typ model.Type, cat string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Amount:      decimal.NewFromInt(amount),
		Category:    cat,
		Description: cat + " " + id,
		Date:        "2024-05-01",
		Type:        typ,
	}
}

func newTestApp(s TransactionStore, adv Adviser) App {
	a := NewApp(Options{Store: s, Adviser: adv, MinTransactions: 3})
	a.width, a.height = 120, 40
	return a
}

func load(t *testing.T, a App, txs []model.Transaction) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(DataLoadedMsg{Transactions: txs})
	return m.(App), cmd
}

func TestDataLoaded_AutoFetchAtThreshold(t *testing.T) {
	two := []model.Transaction{
		newTx("a", 1000, model.Income, "Salary"),
		newTx("b", 200, model.Expense, "Food & Drink"),
	}
	a, cmd := load(t, newTestApp(store.NewTransactions(store.NewMemory()), &stubAdviser{}), two)
	if cmd != nil {
		t.Error("auto fetch fired with 2 transactions")
	}
	if a.advisor.InFlight() {
		t.Error("advisor in flight with 2 transactions")
	}
	if !a.stats.TotalBalance.Equal(decimal.NewFromInt(800)) {
		t.Errorf("balance = %s, want 800", a.stats.TotalBalance)
	}

	three := append(two, newTx("c", 50, model.Expense, "Transport"))
	a, cmd = load(t, newTestApp(store.NewTransactions(store.NewMemory()), &stubAdviser{}), three)
	if cmd == nil {
		t.Fatal("auto fetch did not fire with 3 transactions")
	}
	if a.advisor.State() != advisor.Loading {
		t.Errorf("advisor state = %v, want loading", a.advisor.State())
	}
}

func TestAddTransaction_PersistsAndReturnsToDashboard(t *testing.T) {
	mem := store.NewMemory()
	s := store.NewTransactions(mem)
	a, _ := load(t, newTestApp(s, &stubAdviser{}), nil)
	a.activeTab = tabTransactions

	a, _ = a.addTransaction(newTx("x", 300, model.Expense, "Rent"))

	if a.activeTab != tabDashboard {
		t.Errorf("activeTab = %d, want dashboard", a.activeTab)
	}
	if got, _ := s.Load(); len(got) != 1 || got[0].ID != "x" {
		t.Errorf("persisted = %v, want [x]", got)
	}
	if !a.stats.TotalExpenses.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expenses = %s, want 300", a.stats.TotalExpenses)
	}
	if a.note != "" {
		t.Errorf("note = %q after successful save", a.note)
	}
}

func TestAddTransaction_NewestFirst(t *testing.T) {
	s := store.NewTransactions(store.NewMemory())
	a, _ := load(t, newTestApp(s, &stubAdviser{}), []model.Transaction{newTx("old", 1, model.Expense, "Others")})

	a, _ = a.addTransaction(newTx("new", 2, model.Expense, "Others"))

	if a.txs[0].ID != "new" || a.txs[1].ID != "old" {
		t.Errorf("order = %s,%s; want new,old", a.txs[0].ID, a.txs[1].ID)
	}
}

func TestAddTransaction_ThirdTriggersAutoFetch(t *testing.T) {
	s := store.NewTransactions(store.NewMemory())
	a, _ := load(t, newTestApp(s, &stubAdviser{}), []model.Transaction{
		newTx("a", 1000, model.Income, "Salary"),
		newTx("b", 200, model.Expense, "Food & Drink"),
	})

	a, cmd := a.addTransaction(newTx("c", 10, model.Expense, "Transport"))
	if cmd == nil || !a.advisor.InFlight() {
		t.Fatal("third transaction should start the first insight request")
	}

	a.advisor.Complete(advice.Result{Insight: model.Insight{Summary: "ok", HealthScore: 70}})

	a, cmd = a.addTransaction(newTx("d", 10, model.Expense, "Transport"))
	if cmd != nil || a.advisor.InFlight() {
		t.Error("auto fetch fired again after an insight exists")
	}
}

func TestSaveFailure_KeepsChangeAndShowsNote(t *testing.T) {
	a, _ := load(t, newTestApp(&failingStore{}, &stubAdviser{}), nil)

	a, _ = a.addTransaction(newTx("x", 300, model.Expense, "Rent"))

	if len(a.txs) != 1 {
		t.Errorf("in-memory list len = %d, want 1", len(a.txs))
	}
	if !a.noteWarn || !strings.Contains(a.note, "Save failed") {
		t.Errorf("note = %q (warn %v), want save failure", a.note, a.noteWarn)
	}
}

func TestDeleteKey_RemovesSelected(t *testing.T) {
	s := store.NewTransactions(store.NewMemory())
	a, _ := load(t, newTestApp(s, &stubAdviser{}), []model.Transaction{
		newTx("a", 1, model.Expense, "Others"),
		newTx("b", 2, model.Expense, "Others"),
	})
	a.activeTab = tabTransactions

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	a = m.(App)
	if a.list.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.list.cursor)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	a = m.(App)

	if len(a.txs) != 1 || a.txs[0].ID != "a" {
		t.Errorf("remaining = %v, want [a]", a.txs)
	}
	if got, _ := s.Load(); len(got) != 1 {
		t.Errorf("persisted len = %d, want 1", len(got))
	}
	if a.list.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", a.list.cursor)
	}
}

func TestDeleteTransaction_AbsentIDIsNoop(t *testing.T) {
	s := store.NewTransactions(store.NewMemory())
	a, _ := load(t, newTestApp(s, &stubAdviser{}), []model.Transaction{newTx("a", 1, model.Expense, "Others")})

	a, cmd := a.deleteTransaction("missing")
	if cmd != nil || len(a.txs) != 1 {
		t.Errorf("delete of absent id changed state: len %d, cmd %v", len(a.txs), cmd != nil)
	}
}

func TestRefreshKey_SuppressedWhileInFlight(t *testing.T) {
	s := store.NewTransactions(store.NewMemory())
	a, _ := load(t, newTestApp(s, &stubAdviser{}), []model.Transaction{newTx("a", 1, model.Expense, "Others")})
	a.activeTab = tabAdvisor

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	a = m.(App)
	if cmd == nil || !a.advisor.InFlight() {
		t.Fatal("r should start a manual refresh")
	}

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd != nil {
		t.Error("second r while in flight should be ignored")
	}

	m, _ = a.Update(InsightMsg{Result: advice.Result{Insight: model.Insight{Summary: "done", HealthScore: 81}}})
	a = m.(App)
	if a.advisor.InFlight() || a.advisor.Insight().Summary != "done" {
		t.Errorf("insight not applied: %+v", a.advisor.Insight())
	}
}

func TestRefreshKey_NoTransactions(t *testing.T) {
	a, _ := load(t, newTestApp(store.NewTransactions(store.NewMemory()), &stubAdviser{}), nil)
	a.activeTab = tabAdvisor

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd != nil {
		t.Error("refresh with no transactions should do nothing")
	}
}

func TestFetchInsightCmd(t *testing.T) {
	stub := &stubAdviser{result: advice.Result{Insight: model.Insight{Summary: "s"}}}
	txs := []model.Transaction{newTx("a", 1, model.Expense, "Others")}

	msg := fetchInsightCmd(stub, txs)()
	im, ok := msg.(InsightMsg)
	if !ok {
		t.Fatalf("msg = %T, want InsightMsg", msg)
	}
	if im.Result.Insight.Summary != "s" || stub.calls != 1 || stub.seen != 1 {
		t.Errorf("result %+v, calls %d, seen %d", im.Result, stub.calls, stub.seen)
	}

	fb := fetchInsightCmd(nil, txs)().(InsightMsg)
	if !fb.Result.Fallback() {
		t.Error("nil adviser should yield the fallback insight")
	}
}

func TestTabKeys(t *testing.T) {
	a, _ := load(t, newTestApp(store.NewTransactions(store.NewMemory()), &stubAdviser{}), nil)

	for key, want := range map[string]int{"t": tabTransactions, "a": tabAdvisor, "d": tabDashboard} {
		m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		if got := m.(App).activeTab; got != want {
			t.Errorf("key %q -> tab %d, want %d", key, got, want)
		}
	}
}

func TestViews_RenderEmptyStates(t *testing.T) {
	a, _ := load(t, newTestApp(store.NewTransactions(store.NewMemory()), &stubAdviser{}), nil)

	if out := a.renderDashboardTab(100); !strings.Contains(out, "Add some expenses to see a breakdown.") {
		t.Error("dashboard missing empty breakdown text")
	}
	if out := a.renderAdvisorTab(100); !strings.Contains(out, "Add at least 3 transactions to unlock your first personalized AI insight.") {
		t.Error("advisor missing empty state text")
	}
	if a.View() == "" {
		t.Error("View rendered nothing")
	}
}

func TestLoadFailure_BlocksSaves(t *testing.T) {
	u := &unreadableStore{}
	a := newTestApp(u, &stubAdviser{})

	msg := loadDataCmd(u)().(DataLoadedMsg)
	if msg.Err == nil {
		t.Fatal("DataLoadedMsg.Err = nil, want the read error")
	}
	m, _ := a.Update(msg)
	a = m.(App)
	if !a.noteWarn || !strings.Contains(a.note, "Could not read saved data") {
		t.Errorf("note = %q (warn %v), want read failure", a.note, a.noteWarn)
	}

	a, _ = a.addTransaction(newTx("x", 300, model.Expense, "Rent"))
	a, _ = a.deleteTransaction("x")

	if u.saves != 0 {
		t.Errorf("Save called %d times after failed load, want 0", u.saves)
	}
	if !a.noteWarn {
		t.Error("warning cleared after a blocked save")
	}
}

func TestFirstRun_AutoFetchWaitsForSetup(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, env := range []string{"ZENFIN_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		t.Setenv(env, "")
	}

	unconfigured := &stubAdviser{result: advice.Result{Insight: advice.Fallback(), Source: advice.SourceFallback}}
	configured := &stubAdviser{result: advice.Result{Insight: model.Insight{Summary: "real", HealthScore: 72}}}

	a := NewApp(Options{
		Store:           store.NewTransactions(store.NewMemory()),
		Adviser:         unconfigured,
		MinTransactions: 3,
		NeedSetup:       true,
		Reconfigure:     func(config.Config) Adviser { return configured },
	})
	a.width, a.height = 120, 40

	a, _ = load(t, a, []model.Transaction{
		newTx("a", 1000, model.Income, "Salary"),
		newTx("b", 200, model.Expense, "Food & Drink"),
		newTx("c", 50, model.Expense, "Transport"),
	})
	if a.advisor.State() != advisor.NoInsight {
		t.Fatalf("advisor state with setup open = %v, want no insight", a.advisor.State())
	}
	if a.setupForm == nil {
		t.Fatal("setup form not opened on first run")
	}

	a, cmd := a.finishSetup(true)
	if cmd == nil || !a.advisor.InFlight() {
		t.Fatal("closing setup should start the first insight request")
	}

	insight := fetchInsightCmd(a.adviser, a.txs)().(InsightMsg)
	m, _ := a.Update(insight)
	a = m.(App)

	if configured.calls != 1 || unconfigured.calls != 0 {
		t.Errorf("calls: configured %d, unconfigured %d; want 1, 0", configured.calls, unconfigured.calls)
	}
	if a.advisor.UsedFallback() || a.advisor.Insight().Summary != "real" {
		t.Errorf("insight = %+v, fallback %v", a.advisor.Insight(), a.advisor.UsedFallback())
	}
}

func TestFirstRun_AbortedSetupStillFetches(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	a := NewApp(Options{
		Store:           store.NewTransactions(store.NewMemory()),
		Adviser:         &stubAdviser{},
		MinTransactions: 3,
		NeedSetup:       true,
	})
	a.width, a.height = 120, 40
	a, _ = load(t, a, []model.Transaction{
		newTx("a", 1, model.Expense, "Others"),
		newTx("b", 1, model.Expense, "Others"),
		newTx("c", 1, model.Expense, "Others"),
	})

	a, cmd := a.finishSetup(false)
	if cmd == nil || !a.advisor.InFlight() {
		t.Error("aborting setup should still run the held-back fetch")
	}
	if config.Exists() {
		t.Error("aborted setup wrote a config file")
	}
}

func TestAdvisorTab_FallbackShownAsPlainContent(t *testing.T) {
	a, _ := load(t, newTestApp(store.NewTransactions(store.NewMemory()), &stubAdviser{}), nil)
	a.advisor.Complete(advice.Result{Insight: advice.Fallback(), Source: advice.SourceFallback, Err: errors.New("timeout")})

	out := a.renderAdvisorTab(100)
	if !strings.Contains(out, "Try the 50/30/20 rule") {
		t.Error("fallback tips not rendered")
	}
	for _, bad := range []string{"unavailable", "error", "failed", "timeout"} {
		if strings.Contains(strings.ToLower(out), bad) {
			t.Errorf("advisor tab mentions %q for a fallback insight", bad)
		}
	}
}
