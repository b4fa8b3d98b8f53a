// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/zenfin/internal/model"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount in rupees with Indian digit grouping.
// e.g., 100000 -> "₹1,00,000.00", -1234.5 -> "-₹1,234.50"
func FormatINR(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	out := "₹" + GroupIndian(whole) + "." + frac
	if d.Round(2).IsNegative() {
		return "-" + out
	}
	return out
}

// GroupIndian inserts separators into a string of digits using the
// lakh/crore convention: the last three digits, then pairs.
// e.g., "12345678" -> "1,23,45,678"
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	if r := len(head) % 2; r > 0 {
		b.WriteString(head[:r])
		head = head[r:]
	}
	for len(head) > 0 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[:2])
		head = head[2:]
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// FormatSigned formats a transaction amount with "+" for income and "-" for expenses.
func FormatSigned(t model.Transaction) string {
	if t.Type == model.Income {
		return "+" + FormatINR(t.Amount)
	}
	return "-" + FormatINR(t.Amount)
}

// FormatDate renders a YYYY-MM-DD date as "Jan 2, 2006".
// Unparseable dates are returned unchanged.
func FormatDate(s string) string {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return s
	}
	return d.Format("Jan 2, 2006")
}

// FormatMonth renders a month as "Jan 2006".
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// ShortID returns the first 8 characters of an id for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
