package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Draft holds raw form input for a new transaction.
type Draft struct {
	Type        Type
	Amount      string
	Description string
	Category    string
	Date        string
}

// NewDraft returns a draft with the form defaults: an expense in the first
// category, dated today.
func NewDraft(now time.Time) Draft {
	return Draft{
		Type:     Expense,
		Category: Categories[0],
		Date:     now.Format(DateLayout),
	}
}

// Build turns the draft into a Transaction with a fresh ID.
// ok is false when the amount or description is missing, the amount does
// not parse, or a type or date was given but is invalid; callers drop the
// submission without reporting an error. An empty type, category or date
// takes the form default.
func (d Draft) Build(now time.Time) (Transaction, bool) {
	desc := strings.TrimSpace(d.Description)
	if desc == "" || strings.TrimSpace(d.Amount) == "" {
		return Transaction{}, false
	}
	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return Transaction{}, false
	}

	typ := d.Type
	if typ == "" {
		typ = Expense
	}
	if !typ.Valid() {
		return Transaction{}, false
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = Categories[0]
	}
	date := strings.TrimSpace(d.Date)
	if date == "" {
		date = now.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return Transaction{}, false
	}

	return Transaction{
		ID:          uuid.NewString(),
		Amount:      amount,
		Category:    category,
		Description: desc,
		Date:        date,
		Type:        typ,
	}, true
}
