package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadentwebb/financial-simulator/internal/domain"
)

func TestIRRLumpOnly(t *testing.T) {
	// Single outflow, single terminal inflow: IRR is the annualized CAGR
	// (F/P)^(12/n) - 1.
	flows := []CashFlow{
		{Month: 0, Amount: -10000},
		{Month: 180, Amount: 28000},
	}
	r, err := IRR(flows)
	require.NoError(t, err)

	want := math.Pow(28000.0/10000.0, 12.0/180.0) - 1
	assert.InDelta(t, want, r, 1e-8)
}

func TestIRRRecoversBaselineRate(t *testing.T) {
	// The baseline is constructed by compounding at a known annual rate, so
	// discounting its cash flows at that rate gives zero NPV exactly.
	schedule := domain.ContributionSchedule{Segments: []domain.ContributionSegment{
		{StartMonth: 0, MonthlyAmount: 500},
		{StartMonth: 60, MonthlyAmount: 750},
	}}
	b := RunBaseline(10000, schedule, 0.06, 180)

	r, err := IRR(b.CashFlows)
	require.NoError(t, err)
	assert.InDelta(t, 0.06, r, 1e-7)
}

func TestIRRNegativeRate(t *testing.T) {
	// Terminal value below contributions: the IRR is negative but defined.
	flows := []CashFlow{
		{Month: 0, Amount: -10000},
		{Month: 120, Amount: 6000},
	}
	r, err := IRR(flows)
	require.NoError(t, err)

	want := math.Pow(0.6, 12.0/120.0) - 1
	assert.InDelta(t, want, r, 1e-8)
	assert.Less(t, r, 0.0)
}

func TestIRRUndefined(t *testing.T) {
	// All-negative stream never crosses zero NPV.
	_, err := IRR([]CashFlow{
		{Month: 0, Amount: -100},
		{Month: 180, Amount: -50},
	})
	require.ErrorIs(t, err, ErrIRRUndefined)

	// Fewer than two flows cannot define a rate.
	_, err = IRR([]CashFlow{{Month: 0, Amount: -100}})
	require.ErrorIs(t, err, ErrIRRUndefined)

	_, err = IRR(nil)
	require.ErrorIs(t, err, ErrIRRUndefined)
}

func TestIRRZeroRate(t *testing.T) {
	// Payout exactly equal to the outflows discounts to zero at r=0.
	flows := []CashFlow{
		{Month: 0, Amount: -1000},
		{Month: 180, Amount: 1000},
	}
	r, err := IRR(flows)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, r, 1e-8)
}

func TestIRRNPV(t *testing.T) {
	flows := []CashFlow{
		{Month: 0, Amount: -1000},
		{Month: 12, Amount: 1100},
	}
	// At exactly 10% annual the stream nets to zero.
	assert.InDelta(t, 0.0, irrNPV(flows, 0.10), 1e-9)
	assert.Greater(t, irrNPV(flows, 0.05), 0.0)
	assert.Less(t, irrNPV(flows, 0.20), 0.0)
}
