package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/generator"
)

var scenarioFlags struct {
	service string
	env     string
	output  string
}

var scenarioCmd = &cobra.Command{
	Use:       "scenario <cpu_spike|database_slowdown|traffic_surge>",
	Short:     "Generate an incident scenario",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(generator.CPUSpike), string(generator.DatabaseSlowdown), string(generator.TrafficSurge)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := generator.ParseScenarioKind(args[0])
		if err != nil {
			return err
		}
		env, err := catalog.ParseEnvironment(scenarioFlags.env)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sc, err := newGenerator(cfg).Scenario(kind, scenarioFlags.service, env)
		if err != nil {
			return err
		}

		switch scenarioFlags.output {
		case "json":
			return writeJSON(cmd.OutOrStdout(), sc)
		case "table":
			return writeScenario(cmd.OutOrStdout(), sc)
		}
		return fmt.Errorf("unknown output %q (want table or json)", scenarioFlags.output)
	},
}

func init() {
	f := scenarioCmd.Flags()
	f.StringVarP(&scenarioFlags.service, "service", "s", "payment-api", "Service name")
	f.StringVarP(&scenarioFlags.env, "env", "e", "prod", "Environment: dev, staging or prod")
	f.StringVarP(&scenarioFlags.output, "output", "o", "table", "Output format: table or json")
}
