package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tripscout/scout/internal/config"
	"github.com/tripscout/scout/internal/output"
	"github.com/tripscout/scout/internal/pipeline"
)

func FlightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Search flight offers from a hint",
	}
	cmd.AddCommand(flightsSearchCmd())
	return cmd
}

func flightsSearchCmd() *cobra.Command {
	var budget float64

	cmd := &cobra.Command{
		Use:   "search <hint>",
		Short: "Search for the best flight matching a hint",
		Example: `  scout flights search "YYZ->ATH 2025-08-26 to 2025-09-01 2 pax economy nonstop <= \$1250"
  scout flights search "Toronto -> Athens 2025-08-26 to 2025-09-01" --budget 4800`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger()
			pipe := buildPipeline(cfg, logger)

			res, err := pipe.SearchFlights(cmd.Context(), strings.Join(args, " "), pipeline.Options{TotalBudget: budget})
			if err != nil {
				output.JSONError("flight search rejected", err.Error())
				return nil
			}
			return output.JSON(res)
		},
	}

	cmd.Flags().Float64Var(&budget, "budget", 0, "Total trip budget; a quarter of it caps the flight price when the hint has no cap")

	return cmd
}
