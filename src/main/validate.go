package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateTablesCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-tables",
		Short: "Load both coefficient documents and report what they contain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calculator, err := state.setupCalculator()
			if err != nil {
				return err
			}
			inputManager := calculator.InputManager()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d fuel types, %d vehicle types\n",
				state.cfg.Data.TransportationFile,
				inputManager.TransportationLoader.Fuels.Len(),
				len(inputManager.TransportationLoader.VehicleTypes()),
			)
			fmt.Fprintf(out, "%s: %d technologies, %d waste categories, %d plant fuels\n",
				state.cfg.Data.IncinerationFile,
				len(inputManager.IncinerationLoader.Technologies()),
				len(inputManager.IncinerationLoader.WasteCategories()),
				inputManager.IncinerationLoader.Fuels.Len(),
			)
			if inputManager.GetGwpFactors() == nil {
				fmt.Fprintln(out, "no GWP table: reports carry raw pollutant masses only")
			}
			return nil
		},
	}
}
