package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/zenfin/internal/model"

	"github.com/shopspring/decimal"
)

func sample() []model.Transaction {
	return []model.Transaction{
		{ID: "b", Amount: decimal.RequireFromString("200"), Category: "Food & Drink",
			Description: "Dinner", Date: "2024-05-02", Type: model.Expense},
		{ID: "a", Amount: decimal.RequireFromString("1000.50"), Category: "Salary",
			Description: "May salary", Date: "2024-05-01", Type: model.Income},
	}
}

func assertSameTransactions(t *testing.T, got, want []model.Transaction) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Category != w.Category || g.Description != w.Description ||
			g.Date != w.Date || g.Type != w.Type || !g.Amount.Equal(w.Amount) {
			t.Errorf("[%d] = %+v, want %+v", i, g, w)
		}
	}
}

func openTemp(t *testing.T) *SQLite {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "zenfin.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_GetSet(t *testing.T) {
	db := openTemp(t)

	if _, ok, err := db.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want false, nil", ok, err)
	}

	if err := db.Set("k", "one"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Set("k", "two"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := db.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = ok %v, err %v", ok, err)
	}
	if v != "two" {
		t.Errorf("Get(k) = %q, want %q", v, "two")
	}
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zenfin.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := NewTransactions(db).Save(sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = db.Close() }()

	got, err := NewTransactions(db).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameTransactions(t, got, sample())
}

func TestTransactions_RoundTrip(t *testing.T) {
	s := NewTransactions(openTemp(t))

	if got, err := s.Load(); err != nil || got == nil || len(got) != 0 {
		t.Fatalf("Load on fresh store = %v, %v; want empty non-nil", got, err)
	}

	if err := s.Save(sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameTransactions(t, got, sample())
}

func TestTransactions_SaveEmpty(t *testing.T) {
	mem := NewMemory()
	s := NewTransactions(mem)

	if err := s.Save(nil); err != nil {
		t.Fatalf("Save(nil): %v", err)
	}
	raw, _, _ := mem.Get(StorageKey)
	if raw != "[]" {
		t.Errorf("persisted = %q, want []", raw)
	}
	if got, err := s.Load(); err != nil || len(got) != 0 {
		t.Errorf("Load = %v, %v; want empty", got, err)
	}
}

func TestTransactions_MalformedValue(t *testing.T) {
	mem := NewMemory()
	_ = mem.Set(StorageKey, "{not json")

	got, err := NewTransactions(mem).Load()
	if err != nil {
		t.Fatalf("Load(malformed) err = %v, want nil", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Load(malformed) = %v, want empty non-nil", got)
	}
}

type failingKV struct{}

var errBroken = errors.New("broken")

func (failingKV) Get(string) (string, bool, error) { return "", false, errBroken }
func (failingKV) Set(string, string) error         { return errBroken }

func TestTransactions_KVFailures(t *testing.T) {
	s := NewTransactions(failingKV{})

	if got, err := s.Load(); !errors.Is(err, errBroken) || got != nil {
		t.Errorf("Load = %v, %v; want nil, %v", got, err, errBroken)
	}
	if err := s.Save(sample()); !errors.Is(err, errBroken) {
		t.Errorf("Save err = %v, want %v", err, errBroken)
	}
}

func TestAppend(t *testing.T) {
	txs := sample()
	newest := model.Transaction{ID: "c", Amount: decimal.NewFromInt(5), Type: model.Expense}

	got := Append(txs, newest)
	if len(got) != 3 || got[0].ID != "c" || got[1].ID != "b" || got[2].ID != "a" {
		t.Errorf("Append ids = %v, want [c b a]", ids(got))
	}
	if len(txs) != 2 || txs[0].ID != "b" {
		t.Errorf("input mutated: %v", ids(txs))
	}
}

func TestRemove(t *testing.T) {
	txs := sample()

	got := Remove(txs, "b")
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Remove(b) ids = %v, want [a]", ids(got))
	}

	same := Remove(txs, "zzz")
	assertSameTransactions(t, same, txs)
}

func TestFind(t *testing.T) {
	if tx, ok := Find(sample(), "a"); !ok || tx.Category != "Salary" {
		t.Errorf("Find(a) = %+v, %v", tx, ok)
	}
	if _, ok := Find(sample(), "nope"); ok {
		t.Error("Find(nope) ok = true, want false")
	}
}

func ids(txs []model.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}
