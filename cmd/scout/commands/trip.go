package commands

import (
	"github.com/spf13/cobra"

	"github.com/tripscout/scout/internal/config"
	"github.com/tripscout/scout/internal/output"
	"github.com/tripscout/scout/internal/pipeline"
	"github.com/tripscout/scout/internal/planner"
)

func TripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Plan a whole trip with the LLM planner",
	}
	cmd.AddCommand(tripPlanCmd())
	return cmd
}

func tripPlanCmd() *cobra.Command {
	var trip planner.Trip

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate hints for a trip and search flights and lodging",
		Example: `  scout trip plan --to Athens --from Toronto --start 2025-08-26 --end 2025-09-01 --budget "\$4800" --travelers 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if trip.Destination == "" || trip.Departure == "" || trip.StartDate == "" || trip.EndDate == "" {
				return cmd.Help()
			}

			cfg := config.Load()
			if cfg.OpenAIKey == "" {
				output.JSONError("trip planning unavailable", "set OPENAI_API_KEY to enable the planner")
				return nil
			}

			logger := newLogger()
			pipe := buildPipeline(cfg, logger)
			pl := planner.New(cfg.OpenAIKey, cfg.OpenAIModel, logger)

			plan, err := pl.Plan(cmd.Context(), trip)
			if err != nil {
				output.JSONError("trip planning failed", err.Error())
				return nil
			}

			opts := pipeline.Options{TotalBudget: budgetAmount(trip.Budget)}
			flight, err := pipe.SearchFlights(cmd.Context(), plan.FlightHints[0], opts)
			if err != nil {
				output.JSONError("flight search rejected", err.Error())
				return nil
			}

			var lodging *pipeline.Result
			if len(plan.LodgingHints) > 0 {
				lodging, err = pipe.SearchLodging(cmd.Context(), plan.LodgingHints[0], opts)
				if err != nil {
					logger.Warn("lodging search rejected", "error", err)
					lodging = nil
				}
			}

			return output.JSON(map[string]any{
				"trip":    trip,
				"plan":    plan,
				"flight":  flight,
				"lodging": lodging,
			})
		},
	}

	cmd.Flags().StringVar(&trip.Destination, "to", "", "Destination city (required)")
	cmd.Flags().StringVar(&trip.Departure, "from", "", "Departure city (required)")
	cmd.Flags().StringVar(&trip.StartDate, "start", "", "Start date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&trip.EndDate, "end", "", "End date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&trip.Budget, "budget", "", "Total trip budget, e.g. \"$4800\"")
	cmd.Flags().StringVar(&trip.Travelers, "travelers", "2", "Number of travelers")
	cmd.Flags().StringVar(&trip.Accessibility, "accessibility", "", "Accessibility needs")
	cmd.Flags().StringVar(&trip.Interests, "interests", "", "Traveler interests")
	cmd.Flags().StringVar(&trip.Notes, "notes", "", "Free-form notes")

	return cmd
}

// budgetAmount pulls the digits out of a budget string like "$4800".
func budgetAmount(budget string) float64 {
	var n float64
	seen := false
	for _, r := range budget {
		if r >= '0' && r <= '9' {
			n = n*10 + float64(r-'0')
			seen = true
		}
	}
	if !seen {
		return 0
	}
	return n
}
