package simulation

import (
	"math"

	"github.com/cadentwebb/financial-simulator/internal/domain"
)

// Baseline is the deterministic comparison trajectory: the same lump sum and
// contribution schedule compounding at a flat savings rate. It is not subject
// to historical windows or noise, so a single baseline is shared by every run.
type Baseline struct {
	AnnualRate  float64
	MonthlyRate float64
	Totals      []float64
	CashFlows   []CashFlow
	FinalValue  float64
}

// RunBaseline computes the baseline trajectory over the given horizon using
// the same monthly stepping as the path simulator.
func RunBaseline(initial float64, schedule domain.ContributionSchedule, annualRate float64, months int) *Baseline {
	b := &Baseline{
		AnnualRate:  annualRate,
		MonthlyRate: math.Pow(1+annualRate, 1.0/12) - 1,
		Totals:      make([]float64, months+1),
	}
	b.Totals[0] = initial
	if initial != 0 {
		b.CashFlows = append(b.CashFlows, CashFlow{Month: 0, Amount: -initial})
	}

	balance := initial
	for m := 0; m < months; m++ {
		balance *= 1 + b.MonthlyRate
		if c := schedule.AmountAt(m); c != 0 {
			balance += c
			b.CashFlows = append(b.CashFlows, CashFlow{Month: m + 1, Amount: -c})
		}
		b.Totals[m+1] = balance
	}

	b.FinalValue = balance
	b.CashFlows = append(b.CashFlows, CashFlow{Month: months, Amount: balance})
	return b
}
