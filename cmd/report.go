package cmd

import (
	"fmt"

	"github.com/rpgo/resilience-navigator/internal/output"
	"github.com/spf13/cobra"
)

func newReportCmd(opts *options) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the PDF summary report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(cmd, opts)
			if err != nil {
				return err
			}
			projector, logger, err := newProjector(cmd, cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			report, err := projector.BuildReport(cfg.Inputs)
			if err != nil {
				return userError(err)
			}
			if err := output.WritePDFFile(path, report); err != nil {
				return err
			}
			logger.Infof("wrote PDF report to %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", output.ReportFileName, "PDF file to write")
	return cmd
}
