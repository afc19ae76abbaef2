package domain

import (
	"fmt"
	"math"
	"sort"
)

const (
	// AllocationEpsilon is the tolerance applied when checking that target
	// allocations sum to 1.0.
	AllocationEpsilon = 0.001

	// DefaultRebalanceThreshold is the worst-asset drift that triggers a
	// quarterly rebalance when no threshold is configured.
	DefaultRebalanceThreshold = 0.05

	// MinRebalanceThreshold and MaxRebalanceThreshold bound the configurable
	// drift threshold.
	MinRebalanceThreshold = 0.01
	MaxRebalanceThreshold = 0.10
)

// Portfolio describes one candidate investment strategy: a fixed target
// allocation across asset classes, an initial lump sum, and a contribution
// schedule. Portfolios are read-only during simulation.
type Portfolio struct {
	Name string `yaml:"name" json:"name"`

	// Allocations maps asset class IDs (as known to the historical store) to
	// target allocation fractions. Fractions must sum to 1 within
	// AllocationEpsilon.
	Allocations map[string]float64 `yaml:"allocations" json:"allocations"`

	InitialLumpSum float64 `yaml:"initial_lump_sum" json:"initial_lump_sum"`

	Schedule ContributionSchedule `yaml:"contributions" json:"contributions"`

	// NoiseStdDev holds the per-asset standard deviation of the additive
	// monthly return noise. Assets without an entry use zero noise.
	NoiseStdDev map[string]float64 `yaml:"noise_std_dev" json:"noise_std_dev"`

	RebalancingEnabled bool    `yaml:"rebalancing_enabled" json:"rebalancing_enabled"`
	RebalanceThreshold float64 `yaml:"rebalance_threshold" json:"rebalance_threshold"`
}

// Assets returns the portfolio's asset class IDs in deterministic (sorted)
// order. Simulation code iterates assets in this order so that results are
// reproducible for a given seed.
func (p *Portfolio) Assets() []string {
	ids := make([]string, 0, len(p.Allocations))
	for id := range p.Allocations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks the portfolio configuration. It is called once before any
// simulation run starts; the engine assumes a validated portfolio afterwards.
func (p *Portfolio) Validate() error {
	if p.Name == "" {
		return &ConfigurationError{Field: "name", Reason: "portfolio name is required"}
	}
	if len(p.Allocations) == 0 {
		return &ConfigurationError{Field: "allocations", Reason: "at least one asset allocation is required"}
	}

	var sum float64
	for id, frac := range p.Allocations {
		if frac < 0 || frac > 1 {
			return &ConfigurationError{
				Field:  "allocations." + id,
				Reason: fmt.Sprintf("allocation fraction must be between 0 and 1, got %v", frac),
			}
		}
		sum += frac
	}
	if math.Abs(sum-1.0) > AllocationEpsilon {
		return &ConfigurationError{
			Field:  "allocations",
			Reason: fmt.Sprintf("allocation fractions must sum to 1.0 within %v, got %v", AllocationEpsilon, sum),
		}
	}

	if p.InitialLumpSum < 0 {
		return &ConfigurationError{Field: "initial_lump_sum", Reason: "initial lump sum cannot be negative"}
	}

	for id, sd := range p.NoiseStdDev {
		if sd < 0 {
			return &ConfigurationError{
				Field:  "noise_std_dev." + id,
				Reason: "noise standard deviation cannot be negative",
			}
		}
		if _, ok := p.Allocations[id]; !ok {
			return &ConfigurationError{
				Field:  "noise_std_dev." + id,
				Reason: "noise configured for an asset that has no allocation",
			}
		}
	}

	if p.RebalancingEnabled {
		if p.RebalanceThreshold < MinRebalanceThreshold || p.RebalanceThreshold > MaxRebalanceThreshold {
			return &ConfigurationError{
				Field: "rebalance_threshold",
				Reason: fmt.Sprintf("threshold must be between %v and %v, got %v",
					MinRebalanceThreshold, MaxRebalanceThreshold, p.RebalanceThreshold),
			}
		}
	}

	if err := p.Schedule.Validate(); err != nil {
		return err
	}

	return nil
}
