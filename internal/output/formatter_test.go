package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadentwebb/financial-simulator/internal/domain"
)

func sampleResult() *domain.PortfolioResult {
	return &domain.PortfolioResult{
		PortfolioName: "Growth",
		RequestedRuns: 100,
		CompletedRuns: 98,
		FailedRuns:    2,
		FinalValues: domain.Percentiles{
			P10: 180000, P25: 220000, P50: 275000, P75: 340000, P90: 420000,
		},
		MeanFinal:     290000,
		BaselineFinal: 250000,
		BeatBaseline:  0.62,
		Milestones: []domain.MilestoneStat{
			{Month: 60, Median: 110000, P10: 95000, P90: 130000, Baseline: 105000},
			{Month: 180, Median: 275000, P10: 180000, P90: 420000, Baseline: 250000},
		},
		IRR: domain.IRRSummary{
			Defined: 98, Undefined: 0,
			Mean: 0.071, StdDev: 0.021, Min: 0.012, Max: 0.132,
			Percentiles: domain.Percentiles{P50: 0.069},
			BaselineIRR: 0.045,
		},
		TopWindows: []domain.WindowSummary{
			{StartYear: 1986, EndYear: 2000, Runs: 10, MedianFinal: 520000, P10: 480000, P90: 560000, VsBaseline: 270000, BeatBaselinePct: 1.0},
		},
		BottomWindows: []domain.WindowSummary{
			{StartYear: 2000, EndYear: 2014, Runs: 10, MedianFinal: 210000, P10: 180000, P90: 240000, VsBaseline: -40000, BeatBaselinePct: 0.2},
		},
	}
}

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter("console")
	require.NoError(t, err)
	assert.Equal(t, "console", f.Name())

	f, err = NewFormatter("")
	require.NoError(t, err)
	assert.Equal(t, "console", f.Name())

	f, err = NewFormatter("json")
	require.NoError(t, err)
	assert.Equal(t, "json", f.Name())

	_, err = NewFormatter("xml")
	require.Error(t, err)
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format([]*domain.PortfolioResult{sampleResult()})
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "PORTFOLIO: Growth")
	assert.Contains(t, text, "100 requested, 98 completed")
	assert.Contains(t, text, "2 failed (non-finite path)")
	assert.Contains(t, text, "Final Value Distribution")
	assert.Contains(t, text, "Median=$275000")
	assert.Contains(t, text, "Beat Baseline=62.0%")
	assert.Contains(t, text, "Milestones")
	assert.Contains(t, text, "Internal Rate of Return")
	assert.Contains(t, text, "Baseline IRR=4.50%")
	assert.Contains(t, text, "Best Historical Periods")
	assert.Contains(t, text, "Worst Historical Periods")
	assert.Contains(t, text, "1986-2000")
	assert.Contains(t, text, "+$270000")
	assert.Contains(t, text, "$-40000")
}

func TestConsoleFormatterNoCompletedRuns(t *testing.T) {
	r := &domain.PortfolioResult{
		PortfolioName: "Canceled",
		RequestedRuns: 50,
		CanceledRuns:  50,
	}
	out, err := ConsoleFormatter{}.Format([]*domain.PortfolioResult{r})
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "50 canceled")
	assert.Contains(t, text, "No completed runs; nothing to report.")
	assert.NotContains(t, text, "Final Value Distribution")
}

func TestConsoleFormatterUndefinedIRR(t *testing.T) {
	r := sampleResult()
	r.IRR = domain.IRRSummary{Defined: 0, Undefined: 98}
	out, err := ConsoleFormatter{}.Format([]*domain.PortfolioResult{r})
	require.NoError(t, err)
	assert.Contains(t, string(out), "No runs with a defined IRR.")
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	want := sampleResult()
	out, err := JSONFormatter{}.Format([]*domain.PortfolioResult{want})
	require.NoError(t, err)

	var got []*domain.PortfolioResult
	require.NoError(t, json.Unmarshal(out, &got))
	require.Len(t, got, 1)
	assert.Equal(t, want.PortfolioName, got[0].PortfolioName)
	assert.Equal(t, want.FinalValues, got[0].FinalValues)
	assert.Equal(t, want.IRR, got[0].IRR)
	assert.Equal(t, want.TopWindows, got[0].TopWindows)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1235", FormatCurrency(1234.56))
	assert.Equal(t, "$-500", FormatCurrency(-500.4))
	assert.Equal(t, "$0", FormatCurrency(0))

	assert.Equal(t, "15.3%", FormatPercent(0.153))
	assert.Equal(t, "100.0%", FormatPercent(1))
	assert.Equal(t, "0.0%", FormatPercent(0))

	assert.Equal(t, "7.12%", FormatRate(0.0712))
	assert.Equal(t, "-2.50%", FormatRate(-0.025))
}
