package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/zenfin/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("test setup: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	if len(lines) != tallLines {
		t.Errorf("joined height = %d, want %d (tallest card)", len(lines), tallLines)
	}

	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI codes, padding would render unstyled", i)
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(100, 3)
	if len(widths) != 3 || widths[0] != 34 || widths[1] != 33 || widths[2] != 33 {
		t.Errorf("LayoutRow(100, 3) = %v, want [34 33 33]", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Balance", Value: "₹800.00"},
		{Label: "Income", Value: "₹1,000.00", Color: theme.Active.Income},
		{Label: "Expenses", Value: "₹200.00", Color: theme.Active.Expense},
	}, 90)

	if w := lipgloss.Width(row); w != 90 {
		t.Errorf("row width = %d, want 90", w)
	}
	if !strings.Contains(row, "Balance") || !strings.Contains(row, "₹1,000.00") {
		t.Error("metric row missing label or value")
	}
}

func TestHBarChart(t *testing.T) {
	theme.SetActive("terminal")
	defer theme.SetActive("flexoki-dark")

	out := HBarChart([]HBar{
		{Label: "Rent", Value: 300, Text: "₹300.00"},
		{Label: "Food & Drink", Value: 150, Text: "₹150.00"},
		{Label: "Transport", Value: 1, Text: "₹1.00"},
	}, 50)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("rows = %d, want 3", len(lines))
	}
	full := strings.Count(lines[0], "█")
	half := strings.Count(lines[1], "█")
	if full <= half || half == 0 {
		t.Errorf("bar lengths = %d, %d; want first longer than second", full, half)
	}
	if strings.Count(lines[2], "█") < 1 {
		t.Error("non-zero value should draw at least one cell")
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 50 {
			t.Errorf("row %d width = %d, want 50", i, w)
		}
	}
}

func TestFormatAxisINR(t *testing.T) {
	tests := map[float64]string{
		500:      "500",
		2000:     "2k",
		2500:     "2.5k",
		100000:   "1L",
		150000:   "1.5L",
		20000000: "2Cr",
	}
	for in, want := range tests {
		if got := FormatAxisINR(in); got != want {
			t.Errorf("FormatAxisINR(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestScoreLabel(t *testing.T) {
	tests := map[int]string{
		95:  "Excellent",
		60:  "Good",
		45:  "Fair",
		10:  "Needs attention",
		150: "Excellent",
		-5:  "Needs attention",
	}
	for in, want := range tests {
		if got := ScoreLabel(in); got != want {
			t.Errorf("ScoreLabel(%d) = %q, want %q", in, got, want)
		}
	}
}
