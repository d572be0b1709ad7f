package chart

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/resilience-navigator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroRateResult() *domain.ProjectionResult {
	history := make([]decimal.Decimal, 10)
	for i := range history {
		history[i] = decimal.NewFromInt(int64(2000 * i))
	}
	return &domain.ProjectionResult{
		MonthsNeeded:        9,
		SavingsHistory:      history,
		TargetEmergencyFund: decimal.NewFromInt(18000),
		MonthlySurplus:      decimal.NewFromInt(2000),
	}
}

func fundedResult() *domain.ProjectionResult {
	return &domain.ProjectionResult{
		MonthsNeeded:        0,
		SavingsHistory:      []decimal.Decimal{decimal.NewFromInt(25000)},
		TargetEmergencyFund: decimal.NewFromInt(18000),
	}
}

func TestBuild_Series(t *testing.T) {
	d := Build(zeroRateResult())

	assert.Equal(t, SavingsName, d.Savings.Name)
	assert.Equal(t, "lines+markers", d.Savings.Mode)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, d.Savings.X)
	assert.Equal(t, 18000.0, d.Savings.Y[9])

	assert.Equal(t, []int{0, 9}, d.Target.X)
	assert.Equal(t, []float64{18000, 18000}, d.Target.Y)
	assert.Equal(t, "dash", d.Target.Dash)

	require.NotNil(t, d.Milestone)
	assert.Equal(t, []int{4}, d.Milestone.X)
	assert.Equal(t, []float64{8000}, d.Milestone.Y)
	assert.Equal(t, MilestoneLabel, d.Milestone.Label)
}

func TestBuild_NoMilestoneWhenAlreadyFunded(t *testing.T) {
	d := Build(fundedResult())
	assert.Nil(t, d.Milestone)
	assert.Equal(t, []int{0}, d.Savings.X)
	assert.Equal(t, []int{0, 0}, d.Target.X)
}

func TestPlotlyFigure(t *testing.T) {
	fig := PlotlyFigure(Build(zeroRateResult()))
	require.Len(t, fig.Data, 3)
	assert.Equal(t, "Savings Trajectory Over Time", fig.Layout["title"])

	raw, err := json.Marshal(fig)
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, `"name":"Savings Growth"`)
	assert.Contains(t, s, `"dash":"dash"`)
	assert.Contains(t, s, `"text":["50% Milestone"]`)
	assert.Contains(t, s, `"template":"plotly_dark"`)

	funded := PlotlyFigure(Build(fundedResult()))
	assert.Len(t, funded.Data, 2)
}

func TestRenderTerminal(t *testing.T) {
	out := RenderTerminal(Build(zeroRateResult()), 60, 10)

	assert.Contains(t, out, "Savings Trajectory Over Time")
	// nine plotted months (the milestone marker covers month 4) plus the legend marker
	assert.Equal(t, 10, strings.Count(out, string(pointRune)))
	assert.Contains(t, out, string(targetRune))
	assert.Contains(t, out, string(milestoneRune))
	assert.Contains(t, out, MilestoneLabel)
	assert.Contains(t, out, "20k")
	assert.Contains(t, out, "Months")
}

func TestRenderTerminal_SamplesLongHistories(t *testing.T) {
	history := make([]decimal.Decimal, 301)
	for i := range history {
		history[i] = decimal.NewFromInt(int64(100 * i))
	}
	res := &domain.ProjectionResult{MonthsNeeded: 300, SavingsHistory: history, TargetEmergencyFund: decimal.NewFromInt(30000)}

	out := RenderTerminal(Build(res), 40, 8)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}
	assert.Contains(t, out, "300")
}

func TestRenderTerminal_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTerminal(Data{}, 40, 8))
}

func TestChartTickStep(t *testing.T) {
	assert.Equal(t, 1.0, chartTickStep(0))
	assert.Equal(t, 2000.0, chartTickStep(9000))
	assert.Equal(t, 5000.0, chartTickStep(18000))
	assert.Equal(t, 10000.0, chartTickStep(60000))
}

func TestFormatChartLabel(t *testing.T) {
	assert.Equal(t, "18k", formatChartLabel(18000))
	assert.Equal(t, "2.5k", formatChartLabel(2500))
	assert.Equal(t, "1M", formatChartLabel(1e6))
	assert.Equal(t, "500", formatChartLabel(500))
}
