package output

import (
	"time"

	money "github.com/rpgo/resilience-navigator/pkg/decimal"
	"github.com/rpgo/resilience-navigator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with thousands separators, e.g. "$12,345.60".
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.04) as a percentage ("4.00%").
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Shift(2)) }

// FormatGoalDate renders the estimated goal month, e.g. "January 2027".
func FormatGoalDate(t time.Time) string { return dateutil.FormatMonthYear(t) }
