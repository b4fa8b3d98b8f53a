package model

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned by ParseAmount for anything that is not a
// plain non-negative decimal.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a user-entered amount such as "1200", "12.50" or "12,50".
// Signs, exponents, thousands separators and empty input are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	dots := 0
	digits := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
		case unicode.IsDigit(r):
			digits++
		default:
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if dots > 1 || digits == 0 {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
