// Package marketdata holds the immutable historical return record that every
// simulation run is bootstrapped from: annual total returns per asset class
// for years 1926-2024, expanded to a monthly series, plus the extraction of
// overlapping historical windows.
package marketdata

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

//go:embed data/*.csv
var dataFS embed.FS

// assetFiles maps asset class IDs to their embedded datasets. Each CSV is
// `year,return` with the return in percent (e.g. 11.62 for 11.62%).
var assetFiles = map[string]string{
	"SP500":     "data/sp500.csv",
	"NASDAQ100": "data/nasdaq100.csv",
	"TBILL_3M":  "data/tbill3m.csv",
}

// AssetSeries is the full historical record for one asset class. It is
// constructed once at load time and never mutated.
type AssetSeries struct {
	ID        string
	FirstYear int
	LastYear  int

	// Annual holds one return fraction per year (0.1162 = 11.62%), contiguous
	// from FirstYear to LastYear.
	Annual []decimal.Decimal

	// Monthly is the annual series expanded to months: each year contributes
	// twelve equal entries of (1+annual)^(1/12)-1.
	Monthly []float64
}

// Years returns the number of years covered by the series.
func (a *AssetSeries) Years() int { return len(a.Annual) }

// AnnualStats returns mean and standard deviation of the annual return
// fractions, for reporting and sanity checks.
func (a *AssetSeries) AnnualStats() (mean, stdDev float64) {
	vals := make([]float64, len(a.Annual))
	for i, d := range a.Annual {
		vals[i], _ = d.Float64()
	}
	return stat.Mean(vals, nil), stat.StdDev(vals, nil)
}

// Store is the immutable table of historical returns per asset class. It is
// loaded once and shared read-only across all simulation runs.
type Store struct {
	assets map[string]*AssetSeries
	ids    []string
}

// NewStore loads the embedded historical datasets.
func NewStore() (*Store, error) {
	s := &Store{assets: make(map[string]*AssetSeries)}
	for id, path := range assetFiles {
		series, err := loadSeries(id, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", id, err)
		}
		s.assets[id] = series
		s.ids = append(s.ids, id)
	}
	sort.Strings(s.ids)
	return s, nil
}

// NewStoreFromSeries builds a store from pre-built series. Used by tests to
// exercise the engine against hand-computable return records.
func NewStoreFromSeries(series ...*AssetSeries) *Store {
	s := &Store{assets: make(map[string]*AssetSeries)}
	for _, a := range series {
		s.assets[a.ID] = a
		s.ids = append(s.ids, a.ID)
	}
	sort.Strings(s.ids)
	return s
}

// NewAssetSeries builds a series from annual return fractions starting at
// firstYear, deriving the monthly expansion.
func NewAssetSeries(id string, firstYear int, annual []decimal.Decimal) *AssetSeries {
	a := &AssetSeries{
		ID:        id,
		FirstYear: firstYear,
		LastYear:  firstYear + len(annual) - 1,
		Annual:    annual,
		Monthly:   make([]float64, 0, 12*len(annual)),
	}
	for _, d := range annual {
		f, _ := d.Float64()
		monthly := math.Pow(1+f, 1.0/12) - 1
		for i := 0; i < 12; i++ {
			a.Monthly = append(a.Monthly, monthly)
		}
	}
	return a
}

// Asset returns the series for an asset class ID.
func (s *Store) Asset(id string) (*AssetSeries, bool) {
	a, ok := s.assets[id]
	return a, ok
}

// AssetIDs returns all known asset class IDs in sorted order.
func (s *Store) AssetIDs() []string {
	return append([]string(nil), s.ids...)
}

func loadSeries(id, path string) (*AssetSeries, error) {
	f, err := dataFS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var (
		firstYear int
		prevYear  int
		annual    []decimal.Decimal
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		year, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", record[0], err)
		}
		pct, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("invalid return %q for year %d: %w", record[1], year, err)
		}

		if len(annual) == 0 {
			firstYear = year
		} else if year != prevYear+1 {
			return nil, fmt.Errorf("non-contiguous data: year %d follows %d", year, prevYear)
		}
		prevYear = year
		annual = append(annual, pct.Div(decimal.NewFromInt(100)))
	}

	if len(annual) == 0 {
		return nil, fmt.Errorf("no data points found in %s", path)
	}
	return NewAssetSeries(id, firstYear, annual), nil
}
