package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/rpgo/resilience-navigator/internal/domain"
	money "github.com/rpgo/resilience-navigator/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// inputForm holds the string values bound to the form fields.
type inputForm struct {
	income   string
	expenses string
	savings  string
	debt     string
	coverage int
	rate     string
}

func newInputForm(in domain.FinancialInputs) *inputForm {
	return &inputForm{
		income:   in.MonthlyIncome.StringFixed(2),
		expenses: in.MonthlyExpenses.StringFixed(2),
		savings:  in.CurrentSavings.StringFixed(2),
		debt:     in.CurrentDebt.StringFixed(2),
		coverage: in.DesiredCoverageMonths,
		rate:     in.AnnualReturnRate.Shift(2).String(),
	}
}

func validateAmount(s string) error {
	m, err := money.ParseAmount(s)
	if err != nil {
		return err
	}
	if m.IsNegative() {
		return errors.New("amount cannot be negative")
	}
	return nil
}

func validateRate(s string) error {
	r, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid rate %q", s)
	}
	if r.IsNegative() || r.GreaterThan(decimal.NewFromInt(20)) {
		return errors.New("rate must be between 0 and 20")
	}
	return nil
}

func (f *inputForm) form() *huh.Form {
	coverageOpts := make([]huh.Option[int], 0, 12)
	for m := 1; m <= 12; m++ {
		coverageOpts = append(coverageOpts, huh.NewOption(strconv.Itoa(m)+" months", m))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Monthly Income ($)").Value(&f.income).Validate(validateAmount),
			huh.NewInput().Title("Monthly Expenses ($)").Value(&f.expenses).Validate(validateAmount),
			huh.NewInput().Title("Current Savings ($)").Value(&f.savings).Validate(validateAmount),
			huh.NewInput().Title("Current Debt ($)").Value(&f.debt).Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewSelect[int]().Title("Desired Emergency Fund (Months of Expenses)").Options(coverageOpts...).Value(&f.coverage),
			huh.NewInput().Title("Expected Annual Return on Savings (%)").Value(&f.rate).Validate(validateRate),
		),
	)
}

// inputs converts the collected strings back into FinancialInputs.
func (f *inputForm) inputs() (domain.FinancialInputs, error) {
	var in domain.FinancialInputs
	amounts := []struct {
		value string
		dst   *decimal.Decimal
	}{
		{f.income, &in.MonthlyIncome},
		{f.expenses, &in.MonthlyExpenses},
		{f.savings, &in.CurrentSavings},
		{f.debt, &in.CurrentDebt},
	}
	for _, a := range amounts {
		m, err := money.ParseAmount(a.value)
		if err != nil {
			return in, err
		}
		*a.dst = m.Decimal
	}
	rate, err := decimal.NewFromString(f.rate)
	if err != nil {
		return in, fmt.Errorf("invalid rate %q", f.rate)
	}
	in.AnnualReturnRate = rate.Shift(-2)
	in.DesiredCoverageMonths = f.coverage
	return in, nil
}

func newInteractiveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Enter your figures in a form and see the projection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(cmd, opts)
			if err != nil {
				return err
			}
			projector, logger, err := newProjector(cmd, cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			f := newInputForm(cfg.Inputs)
			if err := f.form().Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
			inputs, err := f.inputs()
			if err != nil {
				return err
			}
			report, err := projector.BuildReport(inputs)
			if err != nil {
				return userError(err)
			}
			return printReport(cmd, report, "console", true)
		},
	}
}
