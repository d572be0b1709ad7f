package calculation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpgo/resilience-navigator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeInputs(income, expenses, savings float64, coverage int, rate float64) domain.FinancialInputs {
	return domain.FinancialInputs{
		MonthlyIncome:         decimal.NewFromFloat(income),
		MonthlyExpenses:       decimal.NewFromFloat(expenses),
		CurrentSavings:        decimal.NewFromFloat(savings),
		CurrentDebt:           decimal.NewFromInt(5000),
		DesiredCoverageMonths: coverage,
		AnnualReturnRate:      decimal.NewFromFloat(rate),
	}
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debugf(format string, args ...any) {
	r.lines = append(r.lines, "DEBUG "+fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Infof(format string, args ...any) {
	r.lines = append(r.lines, "INFO "+fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Warnf(format string, args ...any) {
	r.lines = append(r.lines, "WARN "+fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Errorf(format string, args ...any) {
	r.lines = append(r.lines, "ERROR "+fmt.Sprintf(format, args...))
}

func TestMonthlyRate(t *testing.T) {
	assert.True(t, MonthlyRate(decimal.Zero).IsZero())
	assert.InDelta(t, 0.0032737, MonthlyRate(decimal.NewFromFloat(0.04)).InexactFloat64(), 1e-6)

	// twelve months of the monthly rate compound back to the annual rate
	growth := decimal.NewFromInt(1).Add(MonthlyRate(decimal.NewFromFloat(0.20)))
	annual := growth.Pow(decimal.NewFromInt(12)).Sub(decimal.NewFromInt(1))
	assert.InDelta(t, 0.20, annual.InexactFloat64(), 1e-9)
}

func TestProject_FourPercentExample(t *testing.T) {
	res, err := Project(makeInputs(5000, 3000, 10000, 6, 0.04))
	require.NoError(t, err)

	assert.Equal(t, 4, res.MonthsNeeded)
	assert.True(t, res.TargetEmergencyFund.Equal(decimal.NewFromInt(18000)))
	assert.True(t, res.MonthlySurplus.Equal(decimal.NewFromInt(2000)))
	require.Len(t, res.SavingsHistory, 5)
	assert.True(t, res.SavingsHistory[0].Equal(decimal.NewFromInt(10000)))
	assert.InDelta(t, 12039.28, res.SavingsHistory[1].InexactFloat64(), 0.05)
	assert.True(t, res.SavingsHistory[3].LessThan(res.TargetEmergencyFund))
	assert.True(t, res.SavingsHistory[4].GreaterThanOrEqual(res.TargetEmergencyFund))
}

func TestProject_ZeroRateExample(t *testing.T) {
	res, err := Project(makeInputs(5000, 3000, 0, 6, 0))
	require.NoError(t, err)

	assert.Equal(t, 9, res.MonthsNeeded)
	assert.True(t, res.FinalSavings().Equal(decimal.NewFromInt(18000)), "final savings %s", res.FinalSavings())
	for month, s := range res.SavingsHistory {
		assert.True(t, s.Equal(decimal.NewFromInt(int64(2000*month))), "month %d: %s", month, s)
	}
}

func TestProject_AlreadyFunded(t *testing.T) {
	cases := []struct {
		desc    string
		savings float64
	}{
		{"exactly at target", 18000},
		{"above target", 50000},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			res, err := Project(makeInputs(5000, 3000, tc.savings, 6, 0.04))
			require.NoError(t, err)
			assert.Equal(t, 0, res.MonthsNeeded)
			require.Len(t, res.SavingsHistory, 1)
			assert.True(t, res.SavingsHistory[0].Equal(decimal.NewFromFloat(tc.savings)))
		})
	}
}

func TestProject_ZeroExpensesMeansNoTarget(t *testing.T) {
	res, err := Project(makeInputs(4000, 0, 0, 6, 0.04))
	require.NoError(t, err)
	assert.Equal(t, 0, res.MonthsNeeded)
	assert.True(t, res.TargetEmergencyFund.IsZero())
}

func TestProject_InsufficientSurplus(t *testing.T) {
	cases := []struct {
		desc     string
		income   float64
		expenses float64
	}{
		{"break even", 3000, 3000},
		{"overspending", 2000, 3000},
		{"no income", 0, 1500},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			res, err := Project(makeInputs(tc.income, tc.expenses, 10000, 6, 0.04))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInsufficientSurplus), "got %v", err)
			assert.Nil(t, res)
		})
	}
}

func TestProject_InsufficientSurplusEvenWhenFunded(t *testing.T) {
	// the surplus check comes first; an already-funded household with no surplus still fails
	_, err := Project(makeInputs(3000, 3000, 1_000_000, 6, 0.04))
	assert.ErrorIs(t, err, ErrInsufficientSurplus)
}

func TestProject_InvalidInput(t *testing.T) {
	valid := makeInputs(5000, 3000, 10000, 6, 0.04)
	cases := []struct {
		desc   string
		mutate func(*domain.FinancialInputs)
		want   string
	}{
		{"negative income", func(fi *domain.FinancialInputs) { fi.MonthlyIncome = decimal.NewFromInt(-1) }, "monthly income"},
		{"negative expenses", func(fi *domain.FinancialInputs) { fi.MonthlyExpenses = decimal.NewFromInt(-1) }, "monthly expenses"},
		{"negative savings", func(fi *domain.FinancialInputs) { fi.CurrentSavings = decimal.NewFromInt(-1) }, "current savings"},
		{"negative debt", func(fi *domain.FinancialInputs) { fi.CurrentDebt = decimal.NewFromInt(-1) }, "current debt"},
		{"coverage zero", func(fi *domain.FinancialInputs) { fi.DesiredCoverageMonths = 0 }, "coverage"},
		{"coverage thirteen", func(fi *domain.FinancialInputs) { fi.DesiredCoverageMonths = 13 }, "coverage"},
		{"negative rate", func(fi *domain.FinancialInputs) { fi.AnnualReturnRate = decimal.NewFromFloat(-0.01) }, "return rate"},
		{"rate above cap", func(fi *domain.FinancialInputs) { fi.AnnualReturnRate = decimal.NewFromFloat(0.21) }, "return rate"},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			res, err := Project(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.want)
			assert.Nil(t, res)
		})
	}
}

func TestProject_RateBoundsAccepted(t *testing.T) {
	for _, rate := range []float64{0, 0.20} {
		_, err := Project(makeInputs(5000, 3000, 0, 12, rate))
		assert.NoError(t, err, "rate %v", rate)
	}
}

func TestProject_Invariants(t *testing.T) {
	inputs := []domain.FinancialInputs{
		makeInputs(5000, 3000, 10000, 6, 0.04),
		makeInputs(5000, 3000, 0, 12, 0.20),
		makeInputs(3100, 3000, 0, 12, 0.0),
		makeInputs(3000.5, 3000, 250, 3, 0.07),
		makeInputs(12000, 1000, 0, 1, 0.01),
		makeInputs(8000, 7999, 0, 1, 0.15),
		makeInputs(3010, 3000, 0, 12, 0),
		makeInputs(3001, 3000, 0, 12, 0.04),
	}
	for i, in := range inputs {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			res, err := Project(in)
			require.NoError(t, err)

			assert.Len(t, res.SavingsHistory, res.MonthsNeeded+1)
			assert.True(t, res.SavingsHistory[0].Equal(in.CurrentSavings))
			assert.False(t, res.TargetEmergencyFund.IsNegative())
			assert.True(t, res.FinalSavings().GreaterThanOrEqual(res.TargetEmergencyFund))
			for m := 1; m < len(res.SavingsHistory); m++ {
				assert.True(t, res.SavingsHistory[m].GreaterThan(res.SavingsHistory[m-1]),
					"history not strictly increasing at month %d", m)
				if m < res.MonthsNeeded {
					assert.True(t, res.SavingsHistory[m].LessThan(res.TargetEmergencyFund),
						"target reached early at month %d", m)
				}
			}
		})
	}
}

func TestProject_LongHorizon(t *testing.T) {
	res, err := Project(makeInputs(3010, 3000, 0, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, 3600, res.MonthsNeeded)
	require.Len(t, res.SavingsHistory, 3601)
	assert.True(t, res.SavingsHistory[3599].Equal(decimal.NewFromInt(35990)))
	assert.True(t, res.FinalSavings().Equal(decimal.NewFromInt(36000)))

	res, err = Project(makeInputs(3001, 3000, 0, 12, 0.04))
	require.NoError(t, err)
	assert.Greater(t, res.MonthsNeeded, 1200)
}

func TestProject_TinySurplusStillAccumulates(t *testing.T) {
	in := domain.FinancialInputs{
		MonthlyIncome:         decimal.RequireFromString("3000.0000000000001"),
		MonthlyExpenses:       decimal.NewFromInt(3000),
		CurrentSavings:        decimal.RequireFromString("2999.999999999999"),
		DesiredCoverageMonths: 1,
		AnnualReturnRate:      decimal.Zero,
	}
	res, err := Project(in)
	require.NoError(t, err)
	assert.Equal(t, 10, res.MonthsNeeded)
	assert.True(t, res.FinalSavings().Equal(decimal.NewFromInt(3000)), "final savings %s", res.FinalSavings())
	for m := 1; m < len(res.SavingsHistory); m++ {
		assert.True(t, res.SavingsHistory[m].GreaterThan(res.SavingsHistory[m-1]), "month %d", m)
	}

	in.AnnualReturnRate = decimal.NewFromFloat(0.20)
	res, err = Project(in)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.MonthsNeeded, 10)
}

func TestProject_Idempotent(t *testing.T) {
	in := makeInputs(5000, 3000, 10000, 6, 0.04)
	a, err := Project(in)
	require.NoError(t, err)
	b, err := Project(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestProjector_HorizonExceeded(t *testing.T) {
	p := NewProjector()
	p.MaxMonths = 3
	res, err := p.Project(makeInputs(5000, 3000, 10000, 6, 0.04))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHorizonExceeded)
	assert.Nil(t, res)

	p.MaxMonths = 4
	res, err = p.Project(makeInputs(5000, 3000, 10000, 6, 0.04))
	require.NoError(t, err)
	assert.Equal(t, 4, res.MonthsNeeded)
}

func TestProjector_ZeroHorizonIsUnlimited(t *testing.T) {
	p := &Projector{}
	res, err := p.Project(makeInputs(3010, 3000, 0, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, 3600, res.MonthsNeeded)

	assert.Zero(t, NewProjector().MaxMonths)
}

func TestTrajectory_LazyAndRestartable(t *testing.T) {
	p := NewProjector()
	seq, err := p.Trajectory(makeInputs(5000, 3000, 0, 6, 0))
	require.NoError(t, err)

	var firstTwo []int
	for month := range seq {
		firstTwo = append(firstTwo, month)
		if month == 1 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, firstTwo)

	count := 0
	var last decimal.Decimal
	for _, s := range seq {
		count++
		last = s
	}
	assert.Equal(t, 10, count)
	assert.True(t, last.Equal(decimal.NewFromInt(18000)))
}

func TestTrajectory_RejectsInsufficientSurplus(t *testing.T) {
	seq, err := NewProjector().Trajectory(makeInputs(1000, 3000, 0, 6, 0))
	assert.ErrorIs(t, err, ErrInsufficientSurplus)
	assert.Nil(t, seq)
}

func TestProjector_Logging(t *testing.T) {
	rec := &recordingLogger{}
	p := NewProjector()
	p.SetLogger(rec)

	_, err := p.Project(makeInputs(2000, 3000, 0, 6, 0))
	require.Error(t, err)
	require.NotEmpty(t, rec.lines)
	assert.Contains(t, rec.lines[len(rec.lines)-1], "WARN monthly surplus -1000.00 is non-positive")

	rec.lines = nil
	_, err = p.Project(makeInputs(5000, 3000, 0, 6, 0))
	require.NoError(t, err)
	assert.Contains(t, rec.lines[len(rec.lines)-1], "INFO target 18000.00 reached in 9 months")

	p.SetLogger(nil)
	assert.IsType(t, NopLogger{}, p.Logger)
}
