package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rpgo/resilience-navigator/internal/calculation"
	"github.com/rpgo/resilience-navigator/internal/config"
	"github.com/rpgo/resilience-navigator/internal/domain"
	"github.com/rpgo/resilience-navigator/internal/logging"
	money "github.com/rpgo/resilience-navigator/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// options carries the persistent flags shared by every subcommand.
type options struct {
	configFile string
	logLevel   string

	income     string
	expenses   string
	savings    string
	debt       string
	coverage   int
	returnRate float64

	// project flags, also used by the root command
	format string
	chart  bool
}

var rootCmd = newRootCmd()

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "resilience",
		Short: "Financial Resilience Navigator",
		Long: "Project how many months it takes to build an emergency fund from your\n" +
			"monthly surplus, with an optional return on savings.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProject(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "Configuration file (YAML, JSON or TOML)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.income, "income", "", "Monthly income, e.g. 5000 or $5,000")
	pf.StringVar(&opts.expenses, "expenses", "", "Monthly expenses")
	pf.StringVar(&opts.savings, "savings", "", "Current savings")
	pf.StringVar(&opts.debt, "debt", "", "Current debt (reported only)")
	pf.IntVar(&opts.coverage, "coverage", 6, "Desired emergency fund in months of expenses (1-12)")
	pf.Float64Var(&opts.returnRate, "return-rate", 4, "Expected annual return on savings in percent (0-20)")

	addProjectFlags(cmd, opts)

	cmd.AddCommand(
		newProjectCmd(opts),
		newReportCmd(opts),
		newServeCmd(opts),
		newInteractiveCmd(opts),
		newInitCmd(),
	)
	return cmd
}

// loadConfiguration reads --config (or the example configuration) and
// applies input flags on top.
func loadConfiguration(cmd *cobra.Command, opts *options) (*domain.Configuration, error) {
	parser := config.NewInputParser()

	var cfg *domain.Configuration
	if opts.configFile != "" {
		loaded, err := parser.LoadFromFile(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = parser.CreateExampleConfiguration()
		parser.ApplyEnvironment(cfg)
	}

	flags := cmd.Flags()
	amounts := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"income", opts.income, &cfg.Inputs.MonthlyIncome},
		{"expenses", opts.expenses, &cfg.Inputs.MonthlyExpenses},
		{"savings", opts.savings, &cfg.Inputs.CurrentSavings},
		{"debt", opts.debt, &cfg.Inputs.CurrentDebt},
	}
	for _, a := range amounts {
		if !flags.Changed(a.name) {
			continue
		}
		m, err := money.ParseAmount(a.value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", a.name, err)
		}
		*a.dst = m.Decimal
	}
	if flags.Changed("coverage") {
		cfg.Inputs.DesiredCoverageMonths = opts.coverage
	}
	if flags.Changed("return-rate") {
		cfg.Inputs.AnnualReturnRate = decimal.NewFromFloat(opts.returnRate).Shift(-2)
	}
	if flags.Changed("log-level") {
		cfg.Settings.LogLevel = opts.logLevel
	}

	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newProjector builds a projector wired to a zap logger on stderr.
func newProjector(cmd *cobra.Command, cfg *domain.Configuration) (*calculation.Projector, *logging.ZapLogger, error) {
	logger, err := logging.NewZapLoggerTo(cfg.Settings.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	p := calculation.NewProjector()
	p.SetLogger(logger)
	return p, logger, nil
}

// userError turns the insufficient-surplus failure into the message shown
// to users; other errors pass through.
func userError(err error) error {
	if errors.Is(err, calculation.ErrInsufficientSurplus) {
		return fmt.Errorf("%s: %w", calculation.InsufficientSurplusMessage, err)
	}
	return err
}
