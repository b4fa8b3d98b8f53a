// Package pipeline derives statistics from the transaction list.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/zenfin/internal/model"

	"github.com/shopspring/decimal"
)

// Aggregate computes totals and the expense breakdown over every transaction.
// It has no side effects; calling it twice on the same input gives equal results.
func Aggregate(txs []model.Transaction) model.FinancialStats {
	stats := model.FinancialStats{
		TotalBalance:      decimal.Zero,
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		CategoryBreakdown: make(map[string]decimal.Decimal),
	}

	for _, t := range txs {
		switch t.Type {
		case model.Income:
			stats.TotalIncome = stats.TotalIncome.Add(t.Amount)
		case model.Expense:
			stats.TotalExpenses = stats.TotalExpenses.Add(t.Amount)
			stats.CategoryBreakdown[t.Category] = stats.CategoryBreakdown[t.Category].Add(t.Amount)
		}
	}

	// Zero-amount expenses must not leave an entry behind
	for cat, amt := range stats.CategoryBreakdown {
		if amt.IsZero() {
			delete(stats.CategoryBreakdown, cat)
		}
	}

	stats.TotalBalance = stats.TotalIncome.Sub(stats.TotalExpenses)
	return stats
}

// SortedBreakdown returns the breakdown ordered by amount descending,
// then by category name.
func SortedBreakdown(breakdown map[string]decimal.Decimal) []model.CategoryAmount {
	rows := make([]model.CategoryAmount, 0, len(breakdown))
	for cat, amt := range breakdown {
		rows = append(rows, model.CategoryAmount{Category: cat, Amount: amt})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Amount.Cmp(rows[j].Amount); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// Recent returns up to n of the newest transactions.
// The store keeps transactions newest first, so this is a prefix.
func Recent(txs []model.Transaction, n int) []model.Transaction {
	if n <= 0 {
		return nil
	}
	if len(txs) <= n {
		return txs
	}
	return txs[:n]
}

// FilterSince returns transactions dated on or after since, preserving order.
// A zero since returns txs unchanged. Undated transactions are dropped.
func FilterSince(txs []model.Transaction, since time.Time) []model.Transaction {
	if since.IsZero() {
		return txs
	}
	day := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, time.Local)

	var result []model.Transaction
	for _, t := range txs {
		d, ok := t.Time()
		if !ok || d.Before(day) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// AggregateMonths computes income and expense totals per calendar month,
// oldest month first. Transactions with an unparseable date are skipped.
func AggregateMonths(txs []model.Transaction) []model.MonthlyStats {
	monthMap := make(map[string]*model.MonthlyStats)

	for _, t := range txs {
		d, ok := t.Time()
		if !ok {
			continue
		}
		key := d.Format("2006-01")
		ms, ok := monthMap[key]
		if !ok {
			ms = &model.MonthlyStats{
				Month:    time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.Local),
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			monthMap[key] = ms
		}

		switch t.Type {
		case model.Income:
			ms.Income = ms.Income.Add(t.Amount)
		case model.Expense:
			ms.Expenses = ms.Expenses.Add(t.Amount)
		}
	}

	months := make([]model.MonthlyStats, 0, len(monthMap))
	for _, ms := range monthMap {
		months = append(months, *ms)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month.Before(months[j].Month)
	})

	return months
}
