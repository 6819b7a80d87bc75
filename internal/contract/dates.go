package contract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// TrackMan exports appear under two filename grammars:
//
//	20240501-FieldName-1.csv
//	20240501-FieldName-1_unverified_2024-05-01T130000_0.csv
//
// The compact grammar is checked first; the ISO grammar catches files
// renamed by the verification pipeline.
var (
	compactDateRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})-`)
	isoDateRe     = regexp.MustCompile(`_(\d{4})-(\d{2})-(\d{2})T\d{6}_`)
)

// Year bounds considered sane for an embedded export date.
const (
	minSourceYear = 2000
	maxSourceYear = 2100
)

// ParseSourceDate extracts the game date embedded in a TrackMan export
// filename. Callers treat failure as fatal for that file: the date is
// part of the aggregate identity key and cannot be null.
func ParseSourceDate(filename string) (time.Time, error) {
	base := filepath.Base(filename)

	var y, m, d int
	if match := compactDateRe.FindStringSubmatch(base); match != nil {
		y, _ = strconv.Atoi(match[1])
		m, _ = strconv.Atoi(match[2])
		d, _ = strconv.Atoi(match[3])
	} else if match := isoDateRe.FindStringSubmatch(base); match != nil {
		y, _ = strconv.Atoi(match[1])
		m, _ = strconv.Atoi(match[2])
		d, _ = strconv.Atoi(match[3])
	} else {
		return time.Time{}, fmt.Errorf("no date found in filename %q", base)
	}

	if y < minSourceYear || y > maxSourceYear {
		return time.Time{}, fmt.Errorf("year %d in filename %q is out of range", y, base)
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("invalid month/day in filename %q", base)
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// Reject normalized overflows like February 31st.
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, fmt.Errorf("invalid calendar date in filename %q", base)
	}
	return t, nil
}

// SourceDateMarker formats a game date the way processed-date sets and
// the persisted store record it.
func SourceDateMarker(t time.Time) string {
	return t.Format("2006-01-02")
}
