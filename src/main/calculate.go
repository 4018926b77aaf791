package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wastecarbon-go/src/models"
)

func newCalculateCmd(state *cliState) *cobra.Command {
	var requestPath string
	var batch bool
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the emissions of a JSON request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readRequest(cmd, requestPath)
			if err != nil {
				return err
			}
			calculator, err := state.setupCalculator()
			if err != nil {
				return err
			}

			var result interface{}
			if batch {
				var requests []models.CalculationRequest
				if err = models.DecodeStrict(bytes.NewReader(data), &requests); err != nil {
					return fmt.Errorf("decoding batch request: %w", err)
				}
				result, err = calculator.CalculateBatch(requests)
			} else {
				result, err = calculator.CalculateEmissionsJSON(data)
			}
			if err != nil {
				return err
			}
			return writeIndentedJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&requestPath, "request", "-", "request file, or - for stdin")
	cmd.Flags().BoolVar(&batch, "batch", false, "read a JSON array of requests and print a batch summary")
	return cmd
}

func readRequest(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}
	return data, nil
}

func writeIndentedJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
