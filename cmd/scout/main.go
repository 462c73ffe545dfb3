package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripscout/scout/cmd/scout/commands"
)

func main() {
	root := &cobra.Command{
		Use:   "scout",
		Short: "Hint-driven travel search – flights, lodging, and trip planning",
		Long:  "Scout parses compact travel hints into structured queries, searches the provider, and returns the single best offer as JSON, degrading to a tagged fallback offer when the provider is unreachable.",
	}

	root.AddCommand(commands.FlightsCmd())
	root.AddCommand(commands.LodgingCmd())
	root.AddCommand(commands.TripCmd())
	root.AddCommand(commands.ServeCmd())
	root.AddCommand(commands.DoctorCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print scout version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("scout v0.1.0")
		},
	}
}
