package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPortfolio() *Portfolio {
	return &Portfolio{
		Name: "Balanced",
		Allocations: map[string]float64{
			"SP500":    0.6,
			"TBILL_3M": 0.4,
		},
		InitialLumpSum: 50000,
		Schedule: ContributionSchedule{Segments: []ContributionSegment{
			{StartMonth: 0, MonthlyAmount: 1000},
		}},
	}
}

func TestPortfolioValidate(t *testing.T) {
	require.NoError(t, validPortfolio().Validate())
}

func TestPortfolioValidateAllocationSum(t *testing.T) {
	tests := []struct {
		name    string
		sp500   float64
		tbill   float64
		wantErr bool
	}{
		{"exact", 0.6, 0.4, false},
		{"within epsilon", 0.5995, 0.4, false},
		{"under", 0.59, 0.4, true},
		{"over", 0.65, 0.4, true},
		{"way off", 0.5, 0.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPortfolio()
			p.Allocations["SP500"] = tt.sp500
			p.Allocations["TBILL_3M"] = tt.tbill
			err := p.Validate()
			if tt.wantErr {
				var cfgErr *ConfigurationError
				require.Error(t, err)
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, "allocations", cfgErr.Field)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPortfolioValidateThreshold(t *testing.T) {
	p := validPortfolio()
	p.RebalancingEnabled = true

	p.RebalanceThreshold = 0.05
	require.NoError(t, p.Validate())

	for _, bad := range []float64{0, 0.005, 0.11, -0.05} {
		p.RebalanceThreshold = bad
		err := p.Validate()
		require.Error(t, err, "threshold %v should be rejected", bad)
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	}

	// Threshold is not checked when rebalancing is disabled.
	p.RebalancingEnabled = false
	p.RebalanceThreshold = 0
	require.NoError(t, p.Validate())
}

func TestPortfolioValidateRejections(t *testing.T) {
	p := validPortfolio()
	p.Name = ""
	require.Error(t, p.Validate())

	p = validPortfolio()
	p.Allocations = nil
	require.Error(t, p.Validate())

	p = validPortfolio()
	p.InitialLumpSum = -1
	require.Error(t, p.Validate())

	p = validPortfolio()
	p.NoiseStdDev = map[string]float64{"SP500": -0.01}
	require.Error(t, p.Validate())

	p = validPortfolio()
	p.NoiseStdDev = map[string]float64{"GOLD": 0.01}
	err := p.Validate()
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Field, "GOLD")
}

func TestPortfolioAssetsSorted(t *testing.T) {
	p := &Portfolio{Allocations: map[string]float64{
		"TBILL_3M":  0.2,
		"SP500":     0.5,
		"NASDAQ100": 0.3,
	}}
	assert.Equal(t, []string{"NASDAQ100", "SP500", "TBILL_3M"}, p.Assets())
}
