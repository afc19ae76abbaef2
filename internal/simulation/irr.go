package simulation

import "math"

const (
	irrNewtonStart = 0.05
	irrNewtonIters = 100
	irrTolerance   = 1e-9

	// Bisection search bounds: -95% to +1000% annualized.
	irrRateMin = -0.95
	irrRateMax = 10.0
)

// IRR finds the annualized discount rate r that zeroes the net present value
// of the cash-flow stream, with time measured in years (month/12):
//
//	sum( cf / (1+r)^(month/12) ) = 0
//
// Newton's method with an analytic derivative is tried first; if it diverges
// or leaves the valid domain, bisection over a bounded rate range is used as
// fallback. ErrIRRUndefined is returned when no root exists in the range.
func IRR(flows []CashFlow) (float64, error) {
	if len(flows) < 2 {
		return 0, ErrIRRUndefined
	}

	if r, ok := irrNewton(flows); ok {
		return r, nil
	}
	return irrBisect(flows)
}

func irrNPV(flows []CashFlow, rate float64) float64 {
	var npv float64
	for _, cf := range flows {
		t := float64(cf.Month) / 12
		npv += cf.Amount / math.Pow(1+rate, t)
	}
	return npv
}

func irrNPVDerivative(flows []CashFlow, rate float64) float64 {
	var d float64
	for _, cf := range flows {
		t := float64(cf.Month) / 12
		d += -t * cf.Amount / math.Pow(1+rate, t+1)
	}
	return d
}

func irrNewton(flows []CashFlow) (float64, bool) {
	rate := irrNewtonStart
	for i := 0; i < irrNewtonIters; i++ {
		npv := irrNPV(flows, rate)
		if math.Abs(npv) < irrTolerance {
			if rate < irrRateMin || rate > irrRateMax || math.IsNaN(rate) {
				return 0, false
			}
			return rate, true
		}
		deriv := irrNPVDerivative(flows, rate)
		if deriv == 0 || math.IsNaN(deriv) || math.IsInf(deriv, 0) {
			return 0, false
		}
		next := rate - npv/deriv
		if math.IsNaN(next) || next <= -1 {
			return 0, false
		}
		if math.Abs(next-rate) < irrTolerance {
			rate = next
			if rate < irrRateMin || rate > irrRateMax {
				return 0, false
			}
			return rate, true
		}
		rate = next
	}
	return 0, false
}

func irrBisect(flows []CashFlow) (float64, error) {
	lo, hi := irrRateMin, irrRateMax
	fLo, fHi := irrNPV(flows, lo), irrNPV(flows, hi)
	if math.IsNaN(fLo) || math.IsNaN(fHi) || fLo*fHi > 0 {
		return 0, ErrIRRUndefined
	}

	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fMid := irrNPV(flows, mid)
		if math.Abs(fMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid, nil
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return (lo + hi) / 2, nil
}
