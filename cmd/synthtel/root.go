package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/config"
	"github.com/rewired-gh/synthtel/internal/generator"
	"github.com/rewired-gh/synthtel/internal/logger"
	"github.com/rewired-gh/synthtel/internal/synth"
)

// Set by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	logLevel   string
	seed       int64
)

var rootCmd = &cobra.Command{
	Use:           "synthtel",
	Short:         "Synthetic telemetry generator",
	Long:          "synthtel fabricates plausible metrics, logs, traces and alerts for a fictitious fleet of services.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (defaults and SYNTHTEL_* environment when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logging.level")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Override generator.seed (0 keeps the configured value)")

	rootCmd.AddCommand(serveCmd, seriesCmd, scenarioCmd, versionCmd)
}

// loadConfig loads, overrides from flags, validates and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if seed != 0 {
		cfg.Generator.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	if configPath != "" {
		logger.Info("Configuration loaded from %s", configPath)
	}
	return cfg, nil
}

func newGenerator(cfg *config.Config) *generator.Generator {
	var src synth.Source
	if cfg.Generator.Seed != 0 {
		src = synth.NewSource(cfg.Generator.Seed)
		logger.Debug("Using deterministic seed %d", cfg.Generator.Seed)
	}
	cat := catalog.Default().WithServices(cfg.Generator.Services)
	return generator.New(cat, src, generator.Config{
		IntervalMinutes: cfg.Generator.IntervalMinutes,
		DefaultHours:    cfg.Generator.DefaultHours,
		MaxHours:        cfg.Generator.MaxHours,
	})
}
