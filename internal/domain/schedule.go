package domain

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ContributionSegment is one life stage of the contribution schedule: from
// StartMonth (inclusive) onward the portfolio receives MonthlyAmount per month,
// until a later segment takes over.
type ContributionSegment struct {
	StartMonth    int     `yaml:"start_month" json:"start_month"`
	MonthlyAmount float64 `yaml:"monthly_amount" json:"monthly_amount"`
}

// ContributionSchedule is an ordered, non-overlapping list of contribution
// segments. The amount active at month m is that of the last segment whose
// StartMonth <= m; months before the first segment fall back to the first
// segment's amount.
type ContributionSchedule struct {
	Segments []ContributionSegment `yaml:"segments" json:"segments"`
}

// UnmarshalYAML accepts either a bare list of segments or a mapping with a
// "segments" key.
func (s *ContributionSchedule) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		return value.Decode(&s.Segments)
	}
	var wrapped struct {
		Segments []ContributionSegment `yaml:"segments"`
	}
	if err := value.Decode(&wrapped); err != nil {
		return err
	}
	s.Segments = wrapped.Segments
	return nil
}

// Validate checks segment ordering once at construction time. Lookups assume a
// validated schedule.
func (s ContributionSchedule) Validate() error {
	if len(s.Segments) == 0 {
		return &ConfigurationError{Field: "contributions", Reason: "at least one contribution segment is required"}
	}
	for i, seg := range s.Segments {
		if seg.StartMonth < 0 {
			return &ConfigurationError{
				Field:  fmt.Sprintf("contributions[%d].start_month", i),
				Reason: "start month cannot be negative",
			}
		}
		if seg.MonthlyAmount < 0 {
			return &ConfigurationError{
				Field:  fmt.Sprintf("contributions[%d].monthly_amount", i),
				Reason: "monthly amount cannot be negative",
			}
		}
		if i > 0 && seg.StartMonth <= s.Segments[i-1].StartMonth {
			return &ConfigurationError{
				Field:  fmt.Sprintf("contributions[%d].start_month", i),
				Reason: "segments must be sorted by start month and must not overlap",
			}
		}
	}
	return nil
}

// SegmentIndexAt returns the index of the segment active at month m. The
// active segment doubles as the "life event" marker for reporting; it does not
// affect the math.
func (s ContributionSchedule) SegmentIndexAt(m int) int {
	// First segment past m, minus one. Months before the first segment map to
	// the first segment.
	i := sort.Search(len(s.Segments), func(i int) bool { return s.Segments[i].StartMonth > m })
	if i == 0 {
		return 0
	}
	return i - 1
}

// AmountAt returns the monthly contribution active at month m.
func (s ContributionSchedule) AmountAt(m int) float64 {
	return s.Segments[s.SegmentIndexAt(m)].MonthlyAmount
}

// TotalContributed sums contributions over months 0..months-1, excluding the
// initial lump sum.
func (s ContributionSchedule) TotalContributed(months int) float64 {
	var total float64
	for m := 0; m < months; m++ {
		total += s.AmountAt(m)
	}
	return total
}
