package chart

// Figure is a Plotly figure: a list of traces plus a layout. It marshals to
// the JSON shape Plotly.newPlot expects.
type Figure struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

// PlotlyFigure renders the chart data as a Plotly figure.
func PlotlyFigure(d Data) Figure {
	traces := []map[string]any{
		{
			"type": "scatter",
			"name": d.Savings.Name,
			"mode": d.Savings.Mode,
			"x":    d.Savings.X,
			"y":    d.Savings.Y,
			"line": map[string]any{
				"color": d.Savings.Color,
				"width": 3,
			},
			"marker": map[string]any{"size": 8},
		},
		{
			"type": "scatter",
			"name": d.Target.Name,
			"mode": d.Target.Mode,
			"x":    d.Target.X,
			"y":    d.Target.Y,
			"line": map[string]any{
				"color": d.Target.Color,
				"dash":  d.Target.Dash,
			},
		},
	}
	if m := d.Milestone; m != nil {
		traces = append(traces, map[string]any{
			"type":         "scatter",
			"name":         m.Name,
			"mode":         m.Mode,
			"x":            m.X,
			"y":            m.Y,
			"text":         []string{m.Label},
			"textposition": "top center",
			"marker": map[string]any{
				"size":  12,
				"color": m.Color,
			},
		})
	}

	return Figure{
		Data: traces,
		Layout: map[string]any{
			"title":    "Savings Trajectory Over Time",
			"xaxis":    map[string]any{"title": "Months"},
			"yaxis":    map[string]any{"title": "Total Savings ($)"},
			"template": "plotly_dark",
			"margin":   map[string]any{"l": 40, "r": 40, "t": 40, "b": 40},
		},
	}
}
