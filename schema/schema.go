// Package schema has models, typed constants and declarative stat tables
// for all parts of trackstat.
package schema

import (
	"sort"
)

// EntityKey identifies a single aggregate row: one player, on one team,
// in one season. Zone is only set for zone-bin aggregates (1-13) and is
// zero for regular batting/pitching lines.
type EntityKey struct {
	Player string
	Team   string
	Year   int
	Zone   int
}

// StatLine is the unit of aggregation for batting, pitching and zone-bin
// tables alike. Counting fields live in Counts; nullable rate fields live
// in Rates, where a nil pointer means "no denominator yet" rather than
// zero. Which keys are populated is governed by a StatProfile.
type StatLine struct {
	Key    EntityKey
	Counts map[CountKey]int
	Rates  map[RateKey]*float64

	// ProcessedDates records which source files already contributed to
	// this line, so reprocessing the same export is a no-op.
	ProcessedDates map[string]struct{}
}

// NewStatLine returns an empty line for the given key.
func NewStatLine(key EntityKey) *StatLine {
	return &StatLine{
		Key:            key,
		Counts:         make(map[CountKey]int),
		Rates:          make(map[RateKey]*float64),
		ProcessedDates: make(map[string]struct{}),
	}
}

// Count returns the counting field value, with missing keys reading as 0.
func (s *StatLine) Count(k CountKey) int {
	return s.Counts[k]
}

// AddCount increments a counting field by n.
func (s *StatLine) AddCount(k CountKey, n int) {
	s.Counts[k] += n
}

// Rate returns the rate field, or nil when it has never been computed.
func (s *StatLine) Rate(k RateKey) *float64 {
	return s.Rates[k]
}

// RateValue returns the rate field value and whether it is non-nil.
func (s *StatLine) RateValue(k RateKey) (float64, bool) {
	if v := s.Rates[k]; v != nil {
		return *v, true
	}
	return 0, false
}

// SetRate stores a rate value; pass nil to mark it as undefined.
func (s *StatLine) SetRate(k RateKey, v *float64) {
	s.Rates[k] = v
}

// MarkProcessed records a source date marker on the line.
func (s *StatLine) MarkProcessed(date string) {
	if date == "" {
		return
	}
	s.ProcessedDates[date] = struct{}{}
}

// CoversDates reports whether every marker in other is already present
// on this line. An empty other set is trivially covered.
func (s *StatLine) CoversDates(other map[string]struct{}) bool {
	for d := range other {
		if _, ok := s.ProcessedDates[d]; !ok {
			return false
		}
	}
	return true
}

// SortedDates returns the processed-date markers in ascending order,
// for stable storage and logging.
func (s *StatLine) SortedDates() []string {
	out := make([]string, 0, len(s.ProcessedDates))
	for d := range s.ProcessedDates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy of the line. The merge engine works on
// copies so that combining never mutates its inputs.
func (s *StatLine) Clone() *StatLine {
	c := NewStatLine(s.Key)
	for k, v := range s.Counts {
		c.Counts[k] = v
	}
	for k, v := range s.Rates {
		if v != nil {
			val := *v
			c.Rates[k] = &val
		} else {
			c.Rates[k] = nil
		}
	}
	for d := range s.ProcessedDates {
		c.ProcessedDates[d] = struct{}{}
	}
	return c
}

// IsEmpty reports whether the line carries no events at all.
func (s *StatLine) IsEmpty() bool {
	for _, v := range s.Counts {
		if v != 0 {
			return false
		}
	}
	return len(s.ProcessedDates) == 0
}
