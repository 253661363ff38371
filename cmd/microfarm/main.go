package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/microfarm/internal/cli"
	"github.com/example/microfarm/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "microfarm",
		Short:   "microfarm - production planning for recurring microgreen orders",
		Version: version.String(),
		Long: `microfarm plans microgreen production from delivery orders.
Subscriptions expand into future deliveries, and the production and
transfer schedules are derived from each item's growth parameters.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.OrderCmd())
	rootCmd.AddCommand(cli.CustomerCmd())
	rootCmd.AddCommand(cli.ItemCmd())
	rootCmd.AddCommand(cli.ScheduleCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
