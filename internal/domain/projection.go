package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionResult is the outcome of one savings simulation.
type ProjectionResult struct {
	MonthsNeeded        int               `json:"months_needed"`
	SavingsHistory      []decimal.Decimal `json:"savings_history"` // index 0 is the starting balance
	TargetEmergencyFund decimal.Decimal   `json:"target_emergency_fund"`
	MonthlySurplus      decimal.Decimal   `json:"monthly_surplus"`
	MonthlyRate         decimal.Decimal   `json:"monthly_rate"`
}

// FinalSavings returns the last balance in the history.
func (pr *ProjectionResult) FinalSavings() decimal.Decimal {
	if len(pr.SavingsHistory) == 0 {
		return decimal.Zero
	}
	return pr.SavingsHistory[len(pr.SavingsHistory)-1]
}

// MilestoneMonth is the month index highlighted as the halfway point.
// The second return value is false when there is nothing to highlight.
func (pr *ProjectionResult) MilestoneMonth() (int, bool) {
	if pr.MonthsNeeded == 0 {
		return 0, false
	}
	return pr.MonthsNeeded / 2, true
}

// GuidanceLevel classifies how quickly the goal is reached.
type GuidanceLevel string

const (
	GuidanceOnTrack GuidanceLevel = "on_track"
	GuidanceAdjust  GuidanceLevel = "adjust"
	GuidanceReview  GuidanceLevel = "review"
)

// Guidance is the short assessment shown next to the timeline.
type Guidance struct {
	Level   GuidanceLevel `json:"level"`
	Message string        `json:"message"`
}

// ProjectionReport bundles everything a formatter needs.
type ProjectionReport struct {
	Inputs      FinancialInputs   `json:"inputs"`
	Result      *ProjectionResult `json:"result"`
	Guidance    Guidance          `json:"guidance"`
	GoalDate    time.Time         `json:"goal_date"`
	GeneratedAt time.Time         `json:"generated_at"`
}
