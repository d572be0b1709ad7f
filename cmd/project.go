package cmd

import (
	"fmt"

	"github.com/rpgo/resilience-navigator/internal/chart"
	"github.com/rpgo/resilience-navigator/internal/domain"
	"github.com/rpgo/resilience-navigator/internal/output"
	"github.com/spf13/cobra"
)

const (
	chartWidth  = 72
	chartHeight = 12
)

func newProjectCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the months needed to reach the emergency fund",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProject(cmd, opts)
		},
	}
	addProjectFlags(cmd, opts)
	return cmd
}

func addProjectFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: console, json, csv, html (default from settings)")
	cmd.Flags().BoolVar(&opts.chart, "chart", false, "Draw the savings trajectory in the terminal")
}

func runProject(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfiguration(cmd, opts)
	if err != nil {
		return err
	}
	projector, logger, err := newProjector(cmd, cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	format := opts.format
	if format == "" {
		format = cfg.Settings.OutputFormat
	}
	if err := output.CheckFormat(format); err != nil {
		return err
	}

	report, err := projector.BuildReport(cfg.Inputs)
	if err != nil {
		return userError(err)
	}
	return printReport(cmd, report, format, opts.chart)
}

func printReport(cmd *cobra.Command, report *domain.ProjectionReport, format string, withChart bool) error {
	out, err := output.Render(report, format)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if _, err := w.Write(out); err != nil {
		return err
	}
	if withChart {
		fmt.Fprintln(w)
		fmt.Fprint(w, chart.RenderTerminal(chart.Build(report.Result), chartWidth, chartHeight))
	}
	return nil
}
