package output

import (
	"encoding/json"

	"github.com/cadentwebb/financial-simulator/internal/domain"
)

// JSONFormatter emits the full result structs for programmatic consumers
// (charting layers and the like).
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results []*domain.PortfolioResult) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
