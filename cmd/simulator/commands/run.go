package commands

import (
	"fmt"
	"time"

	"github.com/kendall-kelly/table-orders-api/simulator"
	"github.com/spf13/cobra"
)

var (
	// Run flags
	workers       int
	itemsPerOrder int
	pauseBetween  time.Duration
)

// runCmd seeds the catalog and runs concurrent waiter sessions
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Seed the catalog and run concurrent ordering sessions",
	Long: `Seed the catalog and run one ordering session per worker.

Examples:
  simulator run                                  # 10 workers against localhost:8080
  simulator run --workers 50 --pause 200ms       # heavier load
  simulator run --base-url http://api:8080 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulation(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	defaults := simulator.DefaultOptions()
	runCmd.Flags().IntVar(&workers, "workers", defaults.Workers, "Number of concurrent sessions")
	runCmd.Flags().IntVar(&itemsPerOrder, "items-per-order", defaults.ItemsPerOrder, "Distinct menu items per order")
	runCmd.Flags().DurationVar(&pauseBetween, "pause", defaults.Pause, "Pause between the steps of a session")
}

func runSimulation(cmd *cobra.Command) error {
	sim, err := newSimulator(simulator.Options{
		Tables:        tables,
		Menus:         menus,
		Workers:       workers,
		ItemsPerOrder: itemsPerOrder,
		Pause:         pauseBetween,
	})
	if err != nil {
		return err
	}

	report, err := sim.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("simulation failed after %d sessions: %w", report.Sessions, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sessions completed: %d\n", report.Sessions)
	for _, name := range report.SortedOutcomes() {
		fmt.Fprintf(out, "  %-18s %d\n", name, report.Outcomes[name])
	}
	return nil
}
