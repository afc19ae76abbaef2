package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cadentwebb/financial-simulator/internal/config"
	"github.com/cadentwebb/financial-simulator/internal/domain"
	"github.com/cadentwebb/financial-simulator/internal/marketdata"
	"github.com/cadentwebb/financial-simulator/internal/output"
	"github.com/cadentwebb/financial-simulator/internal/simulation"
)

func newSimulateCmd() *cobra.Command {
	var (
		configPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the Monte Carlo batch for every configured portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			parser := config.NewInputParser()
			file, err := parser.LoadFromFile(configPath)
			if err != nil {
				return err
			}

			store, err := marketdata.NewStore()
			if err != nil {
				return fmt.Errorf("failed to load historical data: %w", err)
			}

			formatter, err := output.NewFormatter(format)
			if err != nil {
				return err
			}

			// Ctrl-C aborts remaining runs but keeps partial results.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			engine := simulation.NewEngine(store)
			engine.SetLogger(zerologAdapter{l: logger})

			cfg := file.Simulation.Config()
			results := make([]*domain.PortfolioResult, 0, len(file.Portfolios))
			for i := range file.Portfolios {
				result, err := engine.Run(ctx, &file.Portfolios[i], cfg)
				if err != nil {
					return fmt.Errorf("portfolio %s: %w", file.Portfolios[i].Name, err)
				}
				results = append(results, result)
			}

			rendered, err := formatter.Format(results)
			if err != nil {
				return fmt.Errorf("failed to format results: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(rendered)
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the simulation config file")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json)")
	return cmd
}
