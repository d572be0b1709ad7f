package calculation

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/rpgo/resilience-navigator/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientSurplus is returned when income does not exceed expenses,
	// so savings would never grow toward the target.
	ErrInsufficientSurplus = errors.New("monthly surplus is non-positive")
	// ErrInvalidInput is returned for inputs outside the accepted ranges.
	ErrInvalidInput = errors.New("invalid financial input")
	// ErrHorizonExceeded is returned when a projector with MaxMonths set does
	// not reach the target within that many months.
	ErrHorizonExceeded = errors.New("target not reached within projection horizon")
)

const (
	// MinCoverageMonths and MaxCoverageMonths bound the desired coverage.
	MinCoverageMonths = 1
	MaxCoverageMonths = 12

	// savings are rounded to at least this many places after each month to
	// keep decimal precision from growing with every multiplication
	balancePrecision = 12
)

// MaxAnnualReturnRate is the highest accepted annual return (20%).
var MaxAnnualReturnRate = decimal.NewFromFloat(0.20)

// Projector simulates savings growth toward an emergency-fund target.
type Projector struct {
	// MaxMonths, when positive, stops a projection after that many months
	// and makes Project fail with ErrHorizonExceeded. Zero means no limit;
	// with a positive surplus every projection terminates on its own.
	MaxMonths int
	Logger    Logger
}

// NewProjector creates an unbounded projector with a no-op logger.
func NewProjector() *Projector {
	return &Projector{Logger: NopLogger{}}
}

// SetLogger sets the logger for the projector. If nil is provided, a no-op logger is used.
func (p *Projector) SetLogger(l Logger) {
	if l == nil {
		p.Logger = NopLogger{}
		return
	}
	p.Logger = l
}

// Project runs a projection with a default projector. It has no hidden state:
// identical inputs always produce identical results.
func Project(inputs domain.FinancialInputs) (*domain.ProjectionResult, error) {
	return NewProjector().Project(inputs)
}

// MonthlyRate converts an annual return into its geometric monthly equivalent,
// (1 + annual)^(1/12) - 1.
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	if annual.IsZero() {
		return decimal.Zero
	}
	r := math.Pow(1+annual.InexactFloat64(), 1.0/12.0) - 1
	return decimal.NewFromFloat(r)
}

// Project simulates month by month until savings reach the target.
func (p *Projector) Project(inputs domain.FinancialInputs) (*domain.ProjectionResult, error) {
	seq, err := p.Trajectory(inputs)
	if err != nil {
		return nil, err
	}

	target := inputs.TargetEmergencyFund()
	history := make([]decimal.Decimal, 0, 16)
	months := 0
	for month, savings := range seq {
		months = month
		history = append(history, savings)
	}

	if history[len(history)-1].LessThan(target) {
		p.logger().Warnf("target %s not reached after %d months", target.StringFixed(2), months)
		return nil, fmt.Errorf("%w: %d months", ErrHorizonExceeded, p.MaxMonths)
	}

	p.logger().Infof("target %s reached in %d months", target.StringFixed(2), months)
	return &domain.ProjectionResult{
		MonthsNeeded:        months,
		SavingsHistory:      history,
		TargetEmergencyFund: target,
		MonthlySurplus:      inputs.MonthlySurplus(),
		MonthlyRate:         MonthlyRate(inputs.AnnualReturnRate),
	}, nil
}

// Trajectory validates the inputs and returns the lazy sequence of
// (month, savings) pairs, starting with (0, current savings). The sequence
// stops at the first month whose balance meets the target, or after MaxMonths
// when that is set. It can be ranged over any number of times.
func (p *Projector) Trajectory(inputs domain.FinancialInputs) (iter.Seq2[int, decimal.Decimal], error) {
	if err := ValidateInputs(inputs); err != nil {
		return nil, err
	}

	surplus := inputs.MonthlySurplus()
	if !surplus.IsPositive() {
		p.logger().Warnf("monthly surplus %s is non-positive, skipping projection", surplus.StringFixed(2))
		return nil, fmt.Errorf("%w: surplus is %s", ErrInsufficientSurplus, surplus.StringFixed(2))
	}

	target := inputs.TargetEmergencyFund()
	growth := decimal.NewFromInt(1).Add(MonthlyRate(inputs.AnnualReturnRate))
	start := inputs.CurrentSavings
	limit := p.MaxMonths

	// balances keep at least the scale of the surplus and the starting savings,
	// so rounding never swallows a month's deposit
	places := int32(balancePrecision)
	for _, d := range []decimal.Decimal{surplus, start} {
		if -d.Exponent() > places {
			places = -d.Exponent()
		}
	}

	p.logger().Debugf("projecting: surplus=%s target=%s growth=%s start=%s",
		surplus.StringFixed(2), target.StringFixed(2), growth.String(), start.StringFixed(2))

	return func(yield func(int, decimal.Decimal) bool) {
		savings := start
		if !yield(0, savings) {
			return
		}
		for month := 1; savings.LessThan(target) && (limit <= 0 || month <= limit); month++ {
			savings = savings.Add(surplus).Mul(growth).Round(places)
			if !yield(month, savings) {
				return
			}
		}
	}, nil
}

// ValidateInputs rejects values outside the ranges the input form allows.
func ValidateInputs(inputs domain.FinancialInputs) error {
	money := []struct {
		name  string
		value decimal.Decimal
	}{
		{"monthly income", inputs.MonthlyIncome},
		{"monthly expenses", inputs.MonthlyExpenses},
		{"current savings", inputs.CurrentSavings},
		{"current debt", inputs.CurrentDebt},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, m.name)
		}
	}
	if inputs.DesiredCoverageMonths < MinCoverageMonths || inputs.DesiredCoverageMonths > MaxCoverageMonths {
		return fmt.Errorf("%w: desired coverage months must be between %d and %d", ErrInvalidInput, MinCoverageMonths, MaxCoverageMonths)
	}
	if inputs.AnnualReturnRate.IsNegative() || inputs.AnnualReturnRate.GreaterThan(MaxAnnualReturnRate) {
		return fmt.Errorf("%w: annual return rate must be between 0 and 20%%", ErrInvalidInput)
	}
	return nil
}

func (p *Projector) logger() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}
