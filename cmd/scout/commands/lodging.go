package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tripscout/scout/internal/config"
	"github.com/tripscout/scout/internal/output"
	"github.com/tripscout/scout/internal/pipeline"
)

func LodgingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lodging",
		Short: "Search lodging offers from a hint",
	}
	cmd.AddCommand(lodgingSearchCmd())
	return cmd
}

func lodgingSearchCmd() *cobra.Command {
	var budget, maxNightly float64

	cmd := &cobra.Command{
		Use:   "search <hint>",
		Short: "Search for the best stay matching a hint",
		Example: `  scout lodging search "MAD hotels 2025-10-01 to 2025-10-08 2 guests 1250 total"
  scout lodging search "Madrid hotels 2025-10-01 to 2025-10-08" --max-nightly 180`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger()
			pipe := buildPipeline(cfg, logger)

			opts := pipeline.Options{TotalBudget: budget, MaxNightly: maxNightly}
			res, err := pipe.SearchLodging(cmd.Context(), strings.Join(args, " "), opts)
			if err != nil {
				output.JSONError("lodging search rejected", err.Error())
				return nil
			}
			return output.JSON(res)
		},
	}

	cmd.Flags().Float64Var(&budget, "budget", 0, "Total stay budget applied when the hint has no cap")
	cmd.Flags().Float64Var(&maxNightly, "max-nightly", 0, "Drop candidates above this nightly rate (0 = no limit)")

	return cmd
}
