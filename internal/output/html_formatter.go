package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/resilience-navigator/internal/chart"
	"github.com/rpgo/resilience-navigator/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with an embedded Plotly chart.
// Interactive adds the input form that re-submits to the service root.
type HTMLFormatter struct {
	Interactive bool
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"rate": FormatRate,
	"goal": FormatGoalDate,
	// plain percent number for the form's return-rate field
	"percent": func(rate decimal.Decimal) string { return rate.Shift(2).String() },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type htmlPage struct {
	Inputs      domain.FinancialInputs
	Report      *domain.ProjectionReport
	Figure      *chart.Figure
	Error       string
	Interactive bool
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	fig := chart.PlotlyFigure(chart.Build(report.Result))
	return h.render(htmlPage{
		Inputs:      report.Inputs,
		Report:      report,
		Figure:      &fig,
		Interactive: h.Interactive,
	})
}

// FormatMessage renders the page without a projection, showing msg in place
// of the results. Used when the inputs cannot be projected.
func (h HTMLFormatter) FormatMessage(inputs domain.FinancialInputs, msg string) ([]byte, error) {
	return h.render(htmlPage{Inputs: inputs, Error: msg, Interactive: h.Interactive})
}

func (h HTMLFormatter) render(page htmlPage) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
