package domain

import (
	"github.com/shopspring/decimal"
)

// FinancialInputs holds the household figures a projection is computed from.
// Currency amounts are monthly where the name says so.
type FinancialInputs struct {
	MonthlyIncome         decimal.Decimal `yaml:"monthly_income" json:"monthly_income" toml:"monthly_income"`
	MonthlyExpenses       decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses" toml:"monthly_expenses"`
	CurrentSavings        decimal.Decimal `yaml:"current_savings" json:"current_savings" toml:"current_savings"`
	CurrentDebt           decimal.Decimal `yaml:"current_debt" json:"current_debt" toml:"current_debt"` // reported only, never simulated
	DesiredCoverageMonths int             `yaml:"desired_coverage_months" json:"desired_coverage_months" toml:"desired_coverage_months"`
	AnnualReturnRate      decimal.Decimal `yaml:"annual_return_rate" json:"annual_return_rate" toml:"annual_return_rate"` // fraction, 0.04 = 4%
}

// MonthlySurplus is income minus expenses.
func (fi FinancialInputs) MonthlySurplus() decimal.Decimal {
	return fi.MonthlyIncome.Sub(fi.MonthlyExpenses)
}

// TargetEmergencyFund is expenses times the desired coverage months.
func (fi FinancialInputs) TargetEmergencyFund() decimal.Decimal {
	return fi.MonthlyExpenses.Mul(decimal.NewFromInt(int64(fi.DesiredCoverageMonths)))
}

// Settings holds non-financial knobs for the CLI and server.
type Settings struct {
	// MaxProjectionMonths bounds projections served over HTTP; 0 selects the server default.
	MaxProjectionMonths int    `yaml:"max_projection_months" json:"max_projection_months" toml:"max_projection_months"`
	LogLevel            string `yaml:"log_level" json:"log_level" toml:"log_level"`
	ServerAddr          string `yaml:"server_addr" json:"server_addr" toml:"server_addr"`
	OutputFormat        string `yaml:"output_format" json:"output_format" toml:"output_format"`
}

// Configuration is the top-level structure of a config file.
type Configuration struct {
	Inputs   FinancialInputs `yaml:"inputs" json:"inputs" toml:"inputs"`
	Settings Settings        `yaml:"settings" json:"settings" toml:"settings"`
}
