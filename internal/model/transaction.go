// Package model defines domain types for zenfin transactions and insights.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Persisted and prompt JSON carry amounts as plain numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout is the calendar-date format used for Transaction.Date.
const DateLayout = "2006-01-02"

// Type distinguishes income from expense entries.
type Type string

const (
	Income  Type = "INCOME"
	Expense Type = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// Categories is the default category list offered by the entry form.
// Stored transactions may carry any label.
var Categories = []string{
	"Food & Drink",
	"Rent",
	"Salary",
	"Entertainment",
	"Shopping",
	"Transport",
	"Utilities",
	"Healthcare",
	"Education",
	"Investment",
	"Others",
}

// Transaction is a single recorded income or expense event.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Type        Type            `json:"type"`
}

// Time parses Date. ok is false when the stored date is not YYYY-MM-DD.
func (t Transaction) Time() (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, t.Date, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// FinancialStats is derived from the full transaction list on every read.
type FinancialStats struct {
	TotalBalance      decimal.Decimal
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	CategoryBreakdown map[string]decimal.Decimal
}

// CategoryAmount is one row of a sorted category breakdown.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// MonthlyStats holds income and expense totals for one calendar month.
type MonthlyStats struct {
	Month    time.Time // first day of the month, local time
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net returns income minus expenses for the month.
func (m MonthlyStats) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}
