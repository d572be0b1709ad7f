// Package chart turns a projection into the savings-trajectory chart: three
// series (savings, target line, halfway milestone) and renderers for the
// browser (Plotly figure JSON) and the terminal.
package chart

import (
	"github.com/rpgo/resilience-navigator/internal/domain"
)

const (
	SavingsColor   = "#4CAF50"
	TargetColor    = "#FF5733"
	MilestoneColor = "gold"

	SavingsName    = "Savings Growth"
	TargetName     = "Target Emergency Fund"
	MilestoneLabel = "50% Milestone"
)

// Series is one trace of the chart.
type Series struct {
	Name  string    `json:"name"`
	Mode  string    `json:"mode"`
	Color string    `json:"color"`
	Dash  string    `json:"dash,omitempty"`
	Label string    `json:"label,omitempty"`
	X     []int     `json:"x"`
	Y     []float64 `json:"y"`
}

// Data holds the three chart series. Milestone is nil when the target is
// already met at month zero.
type Data struct {
	Savings   Series  `json:"savings"`
	Target    Series  `json:"target"`
	Milestone *Series `json:"milestone,omitempty"`
}

// Build derives the chart series from a projection result.
func Build(result *domain.ProjectionResult) Data {
	months := make([]int, len(result.SavingsHistory))
	values := make([]float64, len(result.SavingsHistory))
	for i, s := range result.SavingsHistory {
		months[i] = i
		values[i] = s.InexactFloat64()
	}

	target := result.TargetEmergencyFund.InexactFloat64()
	data := Data{
		Savings: Series{
			Name:  SavingsName,
			Mode:  "lines+markers",
			Color: SavingsColor,
			X:     months,
			Y:     values,
		},
		Target: Series{
			Name:  TargetName,
			Mode:  "lines",
			Color: TargetColor,
			Dash:  "dash",
			X:     []int{0, result.MonthsNeeded},
			Y:     []float64{target, target},
		},
	}

	if mid, ok := result.MilestoneMonth(); ok {
		data.Milestone = &Series{
			Name:  MilestoneLabel,
			Mode:  "markers+text",
			Color: MilestoneColor,
			Label: MilestoneLabel,
			X:     []int{mid},
			Y:     []float64{values[mid]},
		}
	}
	return data
}
