package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/zenfin/internal/model"

	"github.com/shopspring/decimal"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"5", "₹5.00"},
		{"999.999", "₹1,000.00"},
		{"1000.5", "₹1,000.50"},
		{"100000", "₹1,00,000.00"},
		{"1234567.8", "₹12,34,567.80"},
		{"12345678", "₹1,23,45,678.00"},
		{"-800", "-₹800.00"},
		{"-150000.25", "-₹1,50,000.25"},
		{"-0.001", "₹0.00"},
	}
	for _, tt := range tests {
		got := FormatINR(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("FormatINR(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGroupIndian(t *testing.T) {
	tests := map[string]string{
		"1":          "1",
		"123":        "123",
		"1234":       "1,234",
		"12345":      "12,345",
		"123456":     "1,23,456",
		"1234567890": "1,23,45,67,890",
	}
	for in, want := range tests {
		if got := GroupIndian(in); got != want {
			t.Errorf("GroupIndian(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	in := model.Transaction{Amount: decimal.NewFromInt(1000), Type: model.Income}
	if got := FormatSigned(in); got != "+₹1,000.00" {
		t.Errorf("FormatSigned(income) = %q", got)
	}
	out := model.Transaction{Amount: decimal.NewFromInt(200), Type: model.Expense}
	if got := FormatSigned(out); got != "-₹200.00" {
		t.Errorf("FormatSigned(expense) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-05-02"); got != "May 2, 2024" {
		t.Errorf("FormatDate = %q, want May 2, 2024", got)
	}
	if got := FormatDate("someday"); got != "someday" {
		t.Errorf("FormatDate(invalid) = %q, want raw input", got)
	}
}

func TestShortIDAndTruncate(t *testing.T) {
	if got := ShortID("0b5c2f4e-91aa-4d7e-8c1a-3f8d2e6b7a90"); got != "0b5c2f4e" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID(short) = %q", got)
	}
	if got := Truncate("Groceries at the market", 10); got != "Groceries…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("Rent", 10); got != "Rent" {
		t.Errorf("Truncate(short) = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q, want empty", got)
	}
	got := []rune(RenderSparkline([]float64{-100, 0, 100}))
	if len(got) != 3 || got[0] != '▁' || got[2] != '█' {
		t.Errorf("RenderSparkline = %q, want low..high", string(got))
	}
	flat := RenderSparkline([]float64{5, 5})
	if flat != "██" {
		t.Errorf("RenderSparkline(flat) = %q", flat)
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	if got := RenderHorizontalBar(50, 100, 20); got != strings.Repeat("█", 10) {
		t.Errorf("bar = %q, want 10 blocks", got)
	}
	if got := RenderHorizontalBar(500, 100, 20); len([]rune(got)) != 20 {
		t.Errorf("overflow bar len = %d, want 20", len([]rune(got)))
	}
	if got := RenderHorizontalBar(1, 0, 20); got != "" {
		t.Errorf("bar with zero max = %q, want empty", got)
	}
}

func TestRenderTable_AlignsMultibyteCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"Rent", "₹1,000.00"},
			{"Food & Drink", "₹20.00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 6:\n%s", len(lines), out)
	}
	w := len([]rune(stripANSI(lines[0])))
	for i, l := range lines {
		if got := len([]rune(stripANSI(l))); got != w {
			t.Errorf("line %d width = %d, want %d", i, got, w)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
