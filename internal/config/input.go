package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/resilience-navigator/internal/calculation"
	"github.com/rpgo/resilience-navigator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	// EnvLogLevel overrides settings.log_level.
	EnvLogLevel = "RESILIENCE_LOG_LEVEL"
	// EnvServerAddr overrides settings.server_addr.
	EnvServerAddr = "RESILIENCE_ADDR"

	DefaultServerAddr   = ":8080"
	DefaultLogLevel     = "info"
	DefaultOutputFormat = "console"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// InputParser handles parsing of input configuration files
type InputParser struct {
	// Getenv is used for environment overrides; defaults to os.Getenv.
	Getenv func(string) string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Getenv: os.Getenv}
}

// LoadFromFile loads configuration from a YAML, JSON or TOML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		// JSON is a subset of YAML, so .json files go through the same decoder
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	ip.ApplyDefaults(&config)
	ip.ApplyEnvironment(&config)

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills unset settings.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	s := &config.Settings
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.ServerAddr == "" {
		s.ServerAddr = DefaultServerAddr
	}
	if s.OutputFormat == "" {
		s.OutputFormat = DefaultOutputFormat
	}
}

// ApplyEnvironment lets environment variables override settings.
func (ip *InputParser) ApplyEnvironment(config *domain.Configuration) {
	getenv := ip.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		config.Settings.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvServerAddr)); v != "" {
		config.Settings.ServerAddr = v
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.ValidateInputs(&config.Inputs); err != nil {
		return fmt.Errorf("inputs validation failed: %w", err)
	}
	if err := ip.validateSettings(&config.Settings); err != nil {
		return fmt.Errorf("settings validation failed: %w", err)
	}
	return nil
}

// ValidateInputs validates the financial inputs against the ranges the input form allows
func (ip *InputParser) ValidateInputs(inputs *domain.FinancialInputs) error {
	return calculation.ValidateInputs(*inputs)
}

// validateSettings validates the non-financial settings
func (ip *InputParser) validateSettings(settings *domain.Settings) error {
	if settings.MaxProjectionMonths < 0 {
		return fmt.Errorf("max projection months cannot be negative")
	}
	if !validLogLevels[strings.ToLower(settings.LogLevel)] {
		return fmt.Errorf("log level must be one of debug, info, warn, error")
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration matching the calculator defaults
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Inputs: DefaultInputs(),
		Settings: domain.Settings{
			LogLevel:            DefaultLogLevel,
			ServerAddr:          DefaultServerAddr,
			OutputFormat:        DefaultOutputFormat,
		},
	}
}

// DefaultInputs are the starting values of the input form.
func DefaultInputs() domain.FinancialInputs {
	return domain.FinancialInputs{
		MonthlyIncome:         decimal.NewFromInt(5000),
		MonthlyExpenses:       decimal.NewFromInt(3000),
		CurrentSavings:        decimal.NewFromInt(10000),
		CurrentDebt:           decimal.NewFromInt(5000),
		DesiredCoverageMonths: 6,
		AnnualReturnRate:      decimal.NewFromFloat(0.04),
	}
}
