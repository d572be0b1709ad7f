package decimal

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// ParseAmount accepts user-typed amounts such as "5000", "$5,000.50" or " 1,200 ".
func ParseAmount(value string) (Money, error) {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return Money{}, fmt.Errorf("amount is empty")
	}
	m, err := NewMoneyFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q", value)
	}
	return m, nil
}

// String returns the plain two-decimal representation
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as US currency with thousands separators, e.g. "$12,345.60".
func (m Money) Format() string {
	r := m.Decimal.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	whole := humanize.BigComma(r.Truncate(0).BigInt())
	cents := r.StringFixed(2)
	cents = cents[strings.LastIndexByte(cents, '.')+1:]
	return sign + "$" + whole + "." + cents
}
