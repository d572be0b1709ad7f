package calculation

import (
	"github.com/rpgo/resilience-navigator/internal/domain"
	"github.com/rpgo/resilience-navigator/pkg/dateutil"
)

// InsufficientSurplusMessage is shown instead of a timeline when the budget has no surplus.
const InsufficientSurplusMessage = "Your monthly surplus is non-positive. Consider adjusting your budget!"

// AssessTimeline classifies a projected timeline.
func AssessTimeline(monthsNeeded int) domain.Guidance {
	switch {
	case monthsNeeded <= 6:
		return domain.Guidance{Level: domain.GuidanceOnTrack, Message: "Great job! You're on track to achieve your goal quickly."}
	case monthsNeeded <= 12:
		return domain.Guidance{Level: domain.GuidanceAdjust, Message: "Consider minor adjustments for faster savings."}
	default:
		return domain.Guidance{Level: domain.GuidanceReview, Message: "It may take longer than ideal - consider reviewing expenses or increasing your income."}
	}
}

// BuildReport projects the inputs and wraps the result with guidance and a goal date.
func (p *Projector) BuildReport(inputs domain.FinancialInputs) (*domain.ProjectionReport, error) {
	result, err := p.Project(inputs)
	if err != nil {
		return nil, err
	}
	now := nowFunc()
	return &domain.ProjectionReport{
		Inputs:      inputs,
		Result:      result,
		Guidance:    AssessTimeline(result.MonthsNeeded),
		GoalDate:    dateutil.AddMonths(now, result.MonthsNeeded),
		GeneratedAt: now,
	}, nil
}
