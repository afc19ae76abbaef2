package marketdata

import "fmt"

// WindowMonths is the default simulation horizon: 15 years of monthly steps.
const WindowMonths = 180

// InsufficientHistoryError indicates the historical record shared by the
// requested assets is shorter than one window. It is fatal to the whole batch.
type InsufficientHistoryError struct {
	Months   int
	Required int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: %d months available, %d required", e.Months, e.Required)
}

// Window is one contiguous slice of historical monthly returns covering every
// requested asset. Windows are identified by their start year (and month
// within that year) for reporting.
type Window struct {
	Index      int
	StartYear  int
	StartMonth int // 0-11 within StartYear

	// Returns holds, per asset, the window's monthly return fractions. The
	// slices alias the store's series and must not be modified.
	Returns map[string][]float64
}

// EndYear returns the calendar year in which the window's last month falls.
func (w *Window) EndYear() int {
	return w.StartYear + (w.StartMonth+len(w.Returns[firstKey(w.Returns)])-1)/12
}

// Label formats the window's period for reports, e.g. "1986-2000".
func (w *Window) Label() string {
	return fmt.Sprintf("%d-%d", w.StartYear, w.EndYear())
}

func firstKey(m map[string][]float64) string {
	for k := range m {
		return k
	}
	return ""
}

// Windows derives every overlapping window of the given length (in months,
// step one month) over the period covered by all requested assets. The result
// is deterministic: windows are ordered by start offset.
func (s *Store) Windows(assets []string, length int) ([]Window, error) {
	if length <= 0 {
		return nil, fmt.Errorf("window length must be positive, got %d", length)
	}

	commonStart, commonEnd := 0, 0
	for i, id := range assets {
		a, ok := s.assets[id]
		if !ok {
			return nil, fmt.Errorf("unknown asset class %q", id)
		}
		if i == 0 || a.FirstYear > commonStart {
			commonStart = a.FirstYear
		}
		if i == 0 || a.LastYear < commonEnd {
			commonEnd = a.LastYear
		}
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("no assets requested")
	}

	totalMonths := (commonEnd - commonStart + 1) * 12
	if totalMonths < 0 {
		totalMonths = 0
	}
	if totalMonths < length {
		return nil, &InsufficientHistoryError{Months: totalMonths, Required: length}
	}

	windows := make([]Window, 0, totalMonths-length+1)
	for offset := 0; offset+length <= totalMonths; offset++ {
		w := Window{
			Index:      len(windows),
			StartYear:  commonStart + offset/12,
			StartMonth: offset % 12,
			Returns:    make(map[string][]float64, len(assets)),
		}
		for _, id := range assets {
			a := s.assets[id]
			base := (commonStart-a.FirstYear)*12 + offset
			w.Returns[id] = a.Monthly[base : base+length]
		}
		windows = append(windows, w)
	}
	return windows, nil
}
