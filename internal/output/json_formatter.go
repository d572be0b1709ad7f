package output

import (
	"encoding/json"

	"github.com/rpgo/resilience-navigator/internal/domain"
)

// JSONFormatter serializes the projection report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	return json.MarshalIndent(NewReportView(report), "", "  ")
}

// ReportView is the wire shape of a report: the raw report plus
// display strings a client would otherwise have to compute.
type ReportView struct {
	*domain.ProjectionReport
	GoalMonth     string `json:"goal_month"`
	TargetDisplay string `json:"target_display"`
	Milestone     *int   `json:"milestone_month,omitempty"`
}

// NewReportView wraps a report for JSON output.
func NewReportView(report *domain.ProjectionReport) ReportView {
	v := ReportView{
		ProjectionReport: report,
		GoalMonth:        FormatGoalDate(report.GoalDate),
		TargetDisplay:    FormatCurrency(report.Result.TargetEmergencyFund),
	}
	if mid, ok := report.Result.MilestoneMonth(); ok {
		v.Milestone = &mid
	}
	return v
}
