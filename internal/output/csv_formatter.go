package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/resilience-navigator/internal/domain"
)

// CSVFormatter exports the savings history, one row per month.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Month", "Savings", "Target", "Milestone"}); err != nil {
		return nil, err
	}
	res := report.Result
	mid, hasMid := res.MilestoneMonth()
	target := res.TargetEmergencyFund.StringFixed(2)
	for i, s := range res.SavingsHistory {
		row := []string{
			strconv.Itoa(i),
			s.StringFixed(2),
			target,
			strconv.FormatBool(hasMid && i == mid),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
