package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/generator"
)

var seriesFlags struct {
	service string
	env     string
	hours   int
	anomaly bool
	output  string
}

var seriesCmd = &cobra.Command{
	Use:   "series <metric>",
	Short: "Generate one metric report and print its statistics",
	Long: `Generate a metric report for one service.

Metrics: cpu, memory, request_rate, error_rate, latency (catalog names such as
cpu_usage or latency_p95 are accepted too).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := generator.ParseReportKind(args[0])
		if err != nil {
			return err
		}
		env, err := catalog.ParseEnvironment(seriesFlags.env)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		gen := newGenerator(cfg)

		hours := seriesFlags.hours
		if hours == 0 {
			hours = cfg.Generator.DefaultHours
		}
		report, err := gen.Metric(kind, seriesFlags.service, env, hours, seriesFlags.anomaly)
		if err != nil {
			return err
		}

		switch seriesFlags.output {
		case "json":
			return writeJSON(cmd.OutOrStdout(), report)
		case "table":
			return writeReportTable(cmd.OutOrStdout(), report)
		}
		return fmt.Errorf("unknown output %q (want table or json)", seriesFlags.output)
	},
}

func init() {
	f := seriesCmd.Flags()
	f.StringVarP(&seriesFlags.service, "service", "s", "payment-api", "Service name")
	f.StringVarP(&seriesFlags.env, "env", "e", "prod", "Environment: dev, staging or prod")
	f.IntVar(&seriesFlags.hours, "hours", 0, "Window in hours (0 uses generator.default_hours)")
	f.BoolVar(&seriesFlags.anomaly, "anomaly", false, "Inject the metric's anomaly")
	f.StringVarP(&seriesFlags.output, "output", "o", "table", "Output format: table or json")
}
