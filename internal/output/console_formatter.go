package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/resilience-navigator/internal/domain"
)

// ConsoleFormatter provides a plain-text summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	in := report.Inputs
	res := report.Result

	fmt.Fprintln(&buf, "FINANCIAL RESILIENCE NAVIGATOR")
	fmt.Fprintln(&buf, "==============================")
	fmt.Fprintf(&buf, "Monthly Income:        %s\n", FormatCurrency(in.MonthlyIncome))
	fmt.Fprintf(&buf, "Monthly Expenses:      %s\n", FormatCurrency(in.MonthlyExpenses))
	fmt.Fprintf(&buf, "Monthly Surplus:       %s\n", FormatCurrency(res.MonthlySurplus))
	fmt.Fprintf(&buf, "Current Savings:       %s\n", FormatCurrency(in.CurrentSavings))
	fmt.Fprintf(&buf, "Current Debt:          %s\n", FormatCurrency(in.CurrentDebt))
	fmt.Fprintf(&buf, "Annual Return Rate:    %s\n", FormatRate(in.AnnualReturnRate))
	fmt.Fprintf(&buf, "Target Emergency Fund: %s (%d months of expenses)\n", FormatCurrency(res.TargetEmergencyFund), in.DesiredCoverageMonths)
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "Estimated Time to Reach Target: %d months\n", res.MonthsNeeded)
	fmt.Fprintf(&buf, "Estimated Goal Date: %s\n", FormatGoalDate(report.GoalDate))
	if mid, ok := res.MilestoneMonth(); ok {
		fmt.Fprintf(&buf, "50%% Milestone: month %d (%s)\n", mid, FormatCurrency(res.SavingsHistory[mid]))
	}
	fmt.Fprintf(&buf, "Projected Savings: %s\n", FormatCurrency(res.FinalSavings()))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, report.Guidance.Message)
	return buf.Bytes(), nil
}
