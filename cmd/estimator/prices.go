package main

import (
	"fmt"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/export"
)

func newPricesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Inspect the shared default-price table",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List promoted default prices next to the catalog base price",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				prices, err := a.prices.Prices(cmd.Context())
				if err != nil {
					return err
				}
				ids := make([]int, 0, len(prices))
				for id := range prices {
					ids = append(ids, id)
				}
				sort.Ints(ids)

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tITEM\tBASE\tDEFAULT\t")
				for _, id := range ids {
					name, base := "(unknown)", "-"
					if row, ok := catalog.SeedRow(id, catalog.DefaultFrameConfig()); ok {
						name, base = row.Name, export.Money(row.BaseUnitPrice)
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", id, name, base, export.Money(prices[id]))
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "clear ID",
			Short: "Remove a promoted price so the catalog base applies again",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid item id %q", args[0])
				}
				removed, err := a.prices.Clear(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no promoted price for item %d", id)
				}
				return nil
			},
		},
	)
	return cmd
}
