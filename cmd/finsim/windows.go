package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cadentwebb/financial-simulator/internal/marketdata"
	"github.com/cadentwebb/financial-simulator/internal/output"
)

func newWindowsCmd() *cobra.Command {
	var (
		assets []string
		months int
	)

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List the historical windows available for a set of asset classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := marketdata.NewStore()
			if err != nil {
				return fmt.Errorf("failed to load historical data: %w", err)
			}
			if len(assets) == 0 {
				assets = store.AssetIDs()
			}

			windows, err := store.Windows(assets, months)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Assets: %s\n", strings.Join(assets, ", "))
			for _, id := range assets {
				a, _ := store.Asset(id)
				mean, stdDev := a.AnnualStats()
				fmt.Fprintf(out, "  %s: %d-%d (annual mean %s, std dev %s)\n",
					id, a.FirstYear, a.LastYear, output.FormatRate(mean), output.FormatRate(stdDev))
			}
			fmt.Fprintf(out, "Windows of %d months: %d (%s through %s)\n",
				months, len(windows), windows[0].Label(), windows[len(windows)-1].Label())
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&assets, "assets", "a", nil, "asset class IDs (default: all)")
	cmd.Flags().IntVarP(&months, "months", "m", marketdata.WindowMonths, "window length in months")
	return cmd
}
