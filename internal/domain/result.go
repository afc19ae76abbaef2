package domain

// Percentiles represents the distribution of a statistic across simulation
// runs, using rank-based linear interpolation.
type Percentiles struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// MilestoneStat reports the distribution of total portfolio value at a fixed
// elapsed-time checkpoint.
type MilestoneStat struct {
	Month    int     `json:"month"`
	Median   float64 `json:"median"`
	P10      float64 `json:"p10"`
	P90      float64 `json:"p90"`
	Baseline float64 `json:"baseline"`
}

// IRRSummary describes the internal-rate-of-return distribution across runs.
// Runs whose cash-flow pattern admits no root in the search range are counted
// in Undefined and excluded from the distribution (but kept in the value
// distribution).
type IRRSummary struct {
	Defined     int         `json:"defined"`
	Undefined   int         `json:"undefined"`
	Mean        float64     `json:"mean"`
	StdDev      float64     `json:"std_dev"`
	Min         float64     `json:"min"`
	Max         float64     `json:"max"`
	Percentiles Percentiles `json:"percentiles"`
	BaselineIRR float64     `json:"baseline_irr"`
}

// WindowSummary aggregates the runs generated from a single historical window.
type WindowSummary struct {
	WindowIndex     int     `json:"window_index"`
	StartYear       int     `json:"start_year"`
	StartMonth      int     `json:"start_month"`
	EndYear         int     `json:"end_year"`
	Runs            int     `json:"runs"`
	MedianFinal     float64 `json:"median_final"`
	MeanFinal       float64 `json:"mean_final"`
	P10             float64 `json:"p10"`
	P90             float64 `json:"p90"`
	Baseline        float64 `json:"baseline"`
	VsBaseline      float64 `json:"vs_baseline"`
	BeatBaselinePct float64 `json:"beat_baseline_pct"`
}

// RunTrace carries the raw per-month balances of one run for downstream
// plotting. Traces are only populated when requested.
type RunTrace struct {
	RunIndex    int                  `json:"run_index"`
	WindowIndex int                  `json:"window_index"`
	Totals      []float64            `json:"totals"`
	Assets      map[string][]float64 `json:"assets,omitempty"`
}

// PortfolioResult is the aggregate outcome of all Monte Carlo runs for one
// portfolio. It always reports how many of the requested runs completed and
// contributed to each statistic.
type PortfolioResult struct {
	PortfolioName string `json:"portfolio_name"`

	RequestedRuns int `json:"requested_runs"`
	CompletedRuns int `json:"completed_runs"`
	FailedRuns    int `json:"failed_runs"`
	CanceledRuns  int `json:"canceled_runs"`

	// FailedRunIndexes identifies the runs excluded for producing non-finite
	// balances.
	FailedRunIndexes []int `json:"failed_run_indexes,omitempty"`

	FinalValues   Percentiles `json:"final_values"`
	MeanFinal     float64     `json:"mean_final"`
	BaselineFinal float64     `json:"baseline_final"`

	// BeatBaseline is the fraction of completed runs whose final value
	// exceeded the deterministic baseline's final value.
	BeatBaseline float64 `json:"beat_baseline"`

	Milestones []MilestoneStat `json:"milestones"`
	IRR        IRRSummary      `json:"irr"`

	// Windows holds every per-window summary ranked by median final value,
	// best first. TopWindows and BottomWindows are the ranked extremes.
	Windows       []WindowSummary `json:"windows"`
	TopWindows    []WindowSummary `json:"top_windows"`
	BottomWindows []WindowSummary `json:"bottom_windows"`

	BaselineTotals []float64  `json:"baseline_totals,omitempty"`
	Traces         []RunTrace `json:"traces,omitempty"`
}
