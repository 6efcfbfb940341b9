package commands

import (
	"fmt"

	"github.com/kendall-kelly/table-orders-api/simulator"
	"github.com/spf13/cobra"
)

// seedCmd only registers the simulated tables and menu items
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register the simulated tables and menu items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command) error {
	opts := simulator.DefaultOptions()
	opts.Tables = tables
	opts.Menus = menus

	sim, err := newSimulator(opts)
	if err != nil {
		return err
	}

	catalog, err := sim.Seed(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, id := range catalog.TableIDs {
		fmt.Fprintf(out, "table %-8s id=%d\n", simulator.TableCode(i+1), id)
	}
	for i, id := range catalog.MenuIDs {
		fmt.Fprintf(out, "menu  %-8s id=%d\n", simulator.MenuName(i+1), id)
	}
	return nil
}
