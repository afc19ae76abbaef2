package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/cadentwebb/financial-simulator/internal/domain"
)

// ConsoleFormatter renders a concise plain-text summary per portfolio.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results []*domain.PortfolioResult) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		c.formatPortfolio(&buf, r)
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) formatPortfolio(buf *bytes.Buffer, r *domain.PortfolioResult) {
	fmt.Fprintf(buf, "PORTFOLIO: %s\n", r.PortfolioName)
	fmt.Fprintln(buf, "================================")
	fmt.Fprintf(buf, "Runs: %d requested, %d completed", r.RequestedRuns, r.CompletedRuns)
	if r.FailedRuns > 0 {
		fmt.Fprintf(buf, ", %d failed (non-finite path)", r.FailedRuns)
	}
	if r.CanceledRuns > 0 {
		fmt.Fprintf(buf, ", %d canceled", r.CanceledRuns)
	}
	fmt.Fprintln(buf)
	if r.CompletedRuns == 0 {
		fmt.Fprintln(buf, "No completed runs; nothing to report.")
		return
	}

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "Final Value Distribution")
	fmt.Fprintf(buf, "  P10=%s  P25=%s  Median=%s  P75=%s  P90=%s\n",
		FormatCurrency(r.FinalValues.P10),
		FormatCurrency(r.FinalValues.P25),
		FormatCurrency(r.FinalValues.P50),
		FormatCurrency(r.FinalValues.P75),
		FormatCurrency(r.FinalValues.P90),
	)
	fmt.Fprintf(buf, "  Mean=%s  Baseline=%s  Beat Baseline=%s\n",
		FormatCurrency(r.MeanFinal),
		FormatCurrency(r.BaselineFinal),
		FormatPercent(r.BeatBaseline),
	)

	if len(r.Milestones) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "Milestones")
		w := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  Month\tYears\tMedian\tP10\tP90\tBaseline")
		for _, m := range r.Milestones {
			fmt.Fprintf(w, "  %d\t%.1f\t%s\t%s\t%s\t%s\n",
				m.Month, float64(m.Month)/12,
				FormatCurrency(m.Median), FormatCurrency(m.P10), FormatCurrency(m.P90),
				FormatCurrency(m.Baseline))
		}
		w.Flush()
	}

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "Internal Rate of Return")
	if r.IRR.Defined == 0 {
		fmt.Fprintln(buf, "  No runs with a defined IRR.")
	} else {
		fmt.Fprintf(buf, "  Median=%s  Mean=%s  StdDev=%s  Min=%s  Max=%s\n",
			FormatRate(r.IRR.Percentiles.P50), FormatRate(r.IRR.Mean), FormatRate(r.IRR.StdDev),
			FormatRate(r.IRR.Min), FormatRate(r.IRR.Max))
		fmt.Fprintf(buf, "  Baseline IRR=%s  Undefined runs=%d\n", FormatRate(r.IRR.BaselineIRR), r.IRR.Undefined)
	}

	c.formatWindowTable(buf, "Best Historical Periods", r.TopWindows)
	c.formatWindowTable(buf, "Worst Historical Periods", r.BottomWindows)
}

func (c ConsoleFormatter) formatWindowTable(buf *bytes.Buffer, title string, windows []domain.WindowSummary) {
	if len(windows) == 0 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, title)
	w := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Period\tMedian Final\tP10\tP90\tvs Baseline\tBeat %")
	for _, ws := range windows {
		vs := FormatCurrency(ws.VsBaseline)
		if ws.VsBaseline >= 0 {
			vs = "+" + vs
		}
		fmt.Fprintf(w, "  %d-%d\t%s\t%s\t%s\t%s\t%s\n",
			ws.StartYear, ws.EndYear,
			FormatCurrency(ws.MedianFinal), FormatCurrency(ws.P10), FormatCurrency(ws.P90),
			vs, FormatPercent(ws.BeatBaselinePct))
	}
	w.Flush()
}
