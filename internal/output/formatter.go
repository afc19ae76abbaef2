// Package output renders aggregated simulation results for the consumer on
// the other side of the engine boundary.
package output

import (
	"fmt"

	"github.com/cadentwebb/financial-simulator/internal/domain"
)

// Formatter converts portfolio results into a rendered report.
type Formatter interface {
	Name() string
	Format(results []*domain.PortfolioResult) ([]byte, error)
}

// NewFormatter returns the formatter for a format name.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: console, json)", format)
	}
}
