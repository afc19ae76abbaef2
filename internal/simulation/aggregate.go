package simulation

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/cadentwebb/financial-simulator/internal/domain"
	"github.com/cadentwebb/financial-simulator/internal/marketdata"
)

// aggregate reduces all runs for one portfolio into distributional statistics,
// milestones, the IRR distribution, and per-window rankings. Failed and
// canceled runs are excluded from every statistic and surfaced as counts.
func aggregate(p *domain.Portfolio, cfg Config, windows []marketdata.Window, runs []*Run, baseline *Baseline, assets []string) *domain.PortfolioResult {
	result := &domain.PortfolioResult{
		PortfolioName: p.Name,
		RequestedRuns: len(runs),
		BaselineFinal: baseline.FinalValue,
	}

	completed := make([]*Run, 0, len(runs))
	for _, r := range runs {
		switch {
		case r.Canceled:
			result.CanceledRuns++
		case r.Err != nil:
			result.FailedRuns++
			result.FailedRunIndexes = append(result.FailedRunIndexes, r.Index)
		default:
			completed = append(completed, r)
		}
	}
	result.CompletedRuns = len(completed)
	if len(completed) == 0 {
		return result
	}

	finals := make([]float64, len(completed))
	beat := 0
	for i, r := range completed {
		finals[i] = r.FinalValue
		if r.FinalValue > baseline.FinalValue {
			beat++
		}
	}
	result.FinalValues = percentiles(finals)
	result.MeanFinal = stat.Mean(finals, nil)
	result.BeatBaseline = float64(beat) / float64(len(completed))

	result.Milestones = milestones(cfg.MilestoneMonths, completed, baseline)
	result.IRR = irrSummary(completed, baseline)

	result.Windows = windowSummaries(windows, completed, baseline)
	k := cfg.TopBottomK
	if k > len(result.Windows) {
		k = len(result.Windows)
	}
	result.TopWindows = result.Windows[:k]
	result.BottomWindows = result.Windows[len(result.Windows)-k:]

	if cfg.KeepTraces {
		result.BaselineTotals = baseline.Totals
		result.Traces = traces(completed, assets)
	}
	return result
}

// percentiles computes the standard rank-interpolated distribution points.
// The input slice is sorted in place.
func percentiles(values []float64) domain.Percentiles {
	sort.Float64s(values)
	return domain.Percentiles{
		P10: quantile(0.10, values),
		P25: quantile(0.25, values),
		P50: quantile(0.50, values),
		P75: quantile(0.75, values),
		P90: quantile(0.90, values),
	}
}

// quantile linearly interpolates at rank p*(n-1) over sorted values, the
// convention under which the median of an odd-length sample is its middle
// element.
func quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(h)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func milestones(months []int, completed []*Run, baseline *Baseline) []domain.MilestoneStat {
	out := make([]domain.MilestoneStat, 0, len(months))
	values := make([]float64, len(completed))
	for _, month := range months {
		for i, r := range completed {
			values[i] = r.Totals[month]
		}
		pct := percentiles(values)
		out = append(out, domain.MilestoneStat{
			Month:    month,
			Median:   pct.P50,
			P10:      pct.P10,
			P90:      pct.P90,
			Baseline: baseline.Totals[month],
		})
	}
	return out
}

func irrSummary(completed []*Run, baseline *Baseline) domain.IRRSummary {
	defined := make([]float64, 0, len(completed))
	undefined := 0
	for _, r := range completed {
		irr, err := IRR(r.CashFlows)
		if err != nil {
			undefined++
			continue
		}
		defined = append(defined, irr)
	}

	summary := domain.IRRSummary{Defined: len(defined), Undefined: undefined}
	if baselineIRR, err := IRR(baseline.CashFlows); err == nil {
		summary.BaselineIRR = baselineIRR
	}
	if len(defined) == 0 {
		return summary
	}

	summary.Mean = stat.Mean(defined, nil)
	if len(defined) > 1 {
		summary.StdDev = stat.StdDev(defined, nil)
	}
	summary.Percentiles = percentiles(defined)
	summary.Min = defined[0]
	summary.Max = defined[len(defined)-1]
	return summary
}

func windowSummaries(windows []marketdata.Window, completed []*Run, baseline *Baseline) []domain.WindowSummary {
	byWindow := make(map[int][]float64)
	for _, r := range completed {
		byWindow[r.WindowIndex] = append(byWindow[r.WindowIndex], r.FinalValue)
	}

	out := make([]domain.WindowSummary, 0, len(byWindow))
	for idx, finals := range byWindow {
		w := windows[idx]
		beat := 0
		for _, f := range finals {
			if f > baseline.FinalValue {
				beat++
			}
		}
		pct := percentiles(finals)
		out = append(out, domain.WindowSummary{
			WindowIndex:     idx,
			StartYear:       w.StartYear,
			StartMonth:      w.StartMonth,
			EndYear:         w.EndYear(),
			Runs:            len(finals),
			MedianFinal:     pct.P50,
			MeanFinal:       stat.Mean(finals, nil),
			P10:             pct.P10,
			P90:             pct.P90,
			Baseline:        baseline.FinalValue,
			VsBaseline:      pct.P50 - baseline.FinalValue,
			BeatBaselinePct: float64(beat) / float64(len(finals)),
		})
	}

	// Rank best first; tie-break on window index for stable output.
	sort.Slice(out, func(i, j int) bool {
		if out[i].MedianFinal != out[j].MedianFinal {
			return out[i].MedianFinal > out[j].MedianFinal
		}
		return out[i].WindowIndex < out[j].WindowIndex
	})
	return out
}

func traces(completed []*Run, assets []string) []domain.RunTrace {
	out := make([]domain.RunTrace, 0, len(completed))
	for _, r := range completed {
		trace := domain.RunTrace{
			RunIndex:    r.Index,
			WindowIndex: r.WindowIndex,
			Totals:      r.Totals,
		}
		if r.AssetBalances != nil {
			trace.Assets = make(map[string][]float64, len(assets))
			for i, id := range assets {
				trace.Assets[id] = r.AssetBalances[i]
			}
		}
		out = append(out, trace)
	}
	return out
}
