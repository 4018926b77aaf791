package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"wastecarbon-go/src/config"
	emissionmetricscalculator "wastecarbon-go/src/emission-metrics-calculator"
)

// cliState is filled by the root command before any subcommand runs.
type cliState struct {
	cfg *config.Config
}

func (s *cliState) setupCalculator() (*emissionmetricscalculator.EmissionMetricsCalculator, error) {
	return emissionmetricscalculator.SetupEmissionMetricsCalculator(
		s.cfg.Data.TransportationFile,
		s.cfg.Data.IncinerationFile,
		s.cfg.Engine.BlackCarbonPolicy,
	)
}

func NewRootCmd() *cobra.Command {
	state := &cliState{}
	cmd := &cobra.Command{
		Use:           "wastecarbon",
		Short:         "Waste transport and incineration emission calculator",
		Long:          "wastecarbon: calculate CO2, CH4, N2O and black carbon emissions of waste collection, transfer and incineration",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Logging.Level = "debug"
				cfg.Logging.Format = "console"
			}
			config.InitLogger(cfg.Logging.Level, cfg.Logging.Format)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
			state.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML config file")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newCalculateCmd(state), newValidateTablesCmd(state), newServeCmd(state))
	return cmd
}

const rootCmdExample = `  # Calculate the emissions of one request
  wastecarbon calculate --request request.json

  # Summarise one request per day read from stdin
  cat days.json | wastecarbon calculate --batch --request -

  # Check the coefficient tables
  wastecarbon validate-tables --config wastecarbon.yaml

  # Serve the HTTP API
  wastecarbon serve --addr :8080`
