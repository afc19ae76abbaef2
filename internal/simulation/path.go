package simulation

import (
	"math"

	"github.com/cadentwebb/financial-simulator/internal/domain"
)

// CashFlow is one signed entry in a run's cash-flow stream, timed in months
// from the start of the simulation. Outflows (lump sum, contributions) are
// negative; the terminal payout is positive.
type CashFlow struct {
	Month  int
	Amount float64
}

// Run is one Monte Carlo iteration for one portfolio: the historical window it
// was generated from, the seed that perturbed it, and the computed path.
type Run struct {
	Index       int
	WindowIndex int
	Seed        int64

	// Totals holds the total portfolio value after each month, with Totals[0]
	// being the initial lump sum. Length months+1.
	Totals []float64

	// AssetBalances holds per-asset monthly balances, aligned with the asset
	// order used by the run. Only populated when traces are requested.
	AssetBalances [][]float64

	CashFlows  []CashFlow
	FinalValue float64

	// Err is non-nil when the path produced a non-finite balance; such runs
	// are excluded from aggregation and counted.
	Err error

	// Canceled marks runs skipped because the batch context was canceled.
	Canceled bool
}

// simulatePath steps one run across the horizon. Per month: apply returns,
// resolve and add the contribution at target weights, record the snapshot and
// cash flow, then rebalance on quarter boundaries if enabled.
//
// Contributions are recorded at month m+1 in the cash-flow stream: the money
// enters after month m's return has been applied, so it is first at risk in
// month m+1.
func simulatePath(p *domain.Portfolio, assets []string, returns [][]float64, keepTraces bool) (*Run, error) {
	months := len(returns[0])
	targets := make([]float64, len(assets))
	balances := make([]float64, len(assets))
	for i, id := range assets {
		targets[i] = p.Allocations[id]
		balances[i] = p.InitialLumpSum * targets[i]
	}

	run := &Run{
		Totals:     make([]float64, months+1),
		FinalValue: math.NaN(),
	}
	run.Totals[0] = p.InitialLumpSum
	if keepTraces {
		run.AssetBalances = make([][]float64, len(assets))
		for i := range run.AssetBalances {
			run.AssetBalances[i] = make([]float64, months+1)
			run.AssetBalances[i][0] = balances[i]
		}
	}
	if p.InitialLumpSum != 0 {
		run.CashFlows = append(run.CashFlows, CashFlow{Month: 0, Amount: -p.InitialLumpSum})
	}

	for m := 0; m < months; m++ {
		for i := range balances {
			balances[i] *= 1 + returns[i][m]
		}

		c := p.Schedule.AmountAt(m)
		if c != 0 {
			for i := range balances {
				balances[i] += c * targets[i]
			}
			run.CashFlows = append(run.CashFlows, CashFlow{Month: m + 1, Amount: -c})
		}

		total := 0.0
		for _, b := range balances {
			total += b
		}
		if math.IsNaN(total) || math.IsInf(total, 0) {
			return run, &InvalidPathError{Month: m}
		}
		run.Totals[m+1] = total
		if keepTraces {
			for i := range balances {
				run.AssetBalances[i][m+1] = balances[i]
			}
		}

		if p.RebalancingEnabled && m > 0 && m%3 == 0 {
			rebalance(balances, targets, p.RebalanceThreshold)
		}
	}

	run.FinalValue = run.Totals[months]
	run.CashFlows = append(run.CashFlows, CashFlow{Month: months, Amount: run.FinalValue})
	return run, nil
}

// rebalance restores target allocation when the worst single-asset deviation
// exceeds the threshold. It only redistributes: total value is unchanged.
// Returns whether a rebalance fired.
func rebalance(balances, targets []float64, threshold float64) bool {
	total := 0.0
	for _, b := range balances {
		total += b
	}
	if total <= 0 {
		return false
	}

	worst := 0.0
	for i, b := range balances {
		if d := math.Abs(b/total - targets[i]); d > worst {
			worst = d
		}
	}
	if worst <= threshold {
		return false
	}

	for i := range balances {
		balances[i] = total * targets[i]
	}
	return true
}
