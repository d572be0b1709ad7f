package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/resilience-navigator/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web page and JSON API",
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

			if cmd.Flags().Changed("addr") {
				cfg.Settings.ServerAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Options{
				Projector: projector,
				Defaults:  cfg.Inputs,
				Logger:    logger.With("component", "server"),
				MaxMonths: cfg.Settings.MaxProjectionMonths,
			})
			return srv.Start(ctx, cfg.Settings.ServerAddr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings, :8080)")
	return cmd
}
