package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "finsim",
		Short: "Historical-bootstrap investment portfolio simulator",
		Long: `finsim estimates the distribution of outcomes for fixed-allocation,
contribution-driven portfolios over a 15-year horizon by replaying every
overlapping historical market window (1926-2024) with configurable noise.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newSimulateCmd())
	root.AddCommand(newWindowsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// zerologAdapter bridges zerolog into the engine's Logger interface.
type zerologAdapter struct {
	l zerolog.Logger
}

func (z zerologAdapter) Debugf(format string, args ...any) { z.l.Debug().Msgf(format, args...) }
func (z zerologAdapter) Infof(format string, args ...any)  { z.l.Info().Msgf(format, args...) }
func (z zerologAdapter) Warnf(format string, args ...any)  { z.l.Warn().Msgf(format, args...) }
func (z zerologAdapter) Errorf(format string, args ...any) { z.l.Error().Msgf(format, args...) }
