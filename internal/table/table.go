// Package table holds the in-memory representation of a TrackMan event
// export: named columns over string cells, with typed accessors that
// treat malformed values as absent rather than fatal.
package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Column names fixed by the TrackMan export contract.
const (
	ColBatter          = "Batter"
	ColBatterTeam      = "BatterTeam"
	ColBatterSide      = "BatterSide"
	ColPitcher         = "Pitcher"
	ColPitcherTeam     = "PitcherTeam"
	ColPitcherThrows   = "PitcherThrows"
	ColPlayResult      = "PlayResult"
	ColKorBB           = "KorBB"
	ColPitchCall       = "PitchCall"
	ColTaggedPitchType = "TaggedPitchType"
	ColTaggedHitType   = "TaggedHitType"
	ColPlateLocHeight  = "PlateLocHeight"
	ColPlateLocSide    = "PlateLocSide"
	ColExitSpeed       = "ExitSpeed"
	ColAngle           = "Angle"
	ColDirection       = "Direction"
	ColRelSpeed        = "RelSpeed"
	ColLeague          = "League"
)

// EventTable is a column-indexed view over the rows of one export.
type EventTable struct {
	columns map[string]int
	rows    [][]string
}

// New builds a table from a header and data rows. Duplicate header
// names keep the first occurrence, matching how the exports behave.
func New(header []string, rows [][]string) *EventTable {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}
	return &EventTable{columns: columns, rows: rows}
}

// Load reads a CSV export from disk.
func Load(path string) (*EventTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // exports occasionally carry ragged trailing fields
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return New(nil, nil), nil
	}
	return New(records[0], records[1:]), nil
}

// Len returns the number of data rows.
func (t *EventTable) Len() int {
	return len(t.rows)
}

// HasColumns reports whether every named column is present.
func (t *EventTable) HasColumns(names ...string) bool {
	for _, n := range names {
		if _, ok := t.columns[n]; !ok {
			return false
		}
	}
	return true
}

// MissingColumns returns the subset of names absent from the table.
func (t *EventTable) MissingColumns(names ...string) []string {
	var missing []string
	for _, n := range names {
		if _, ok := t.columns[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// Row returns an accessor for row i.
func (t *EventTable) Row(i int) Row {
	return Row{table: t, idx: i}
}

// Row is a lightweight accessor over one event row.
type Row struct {
	table *EventTable
	idx   int
}

// Str returns the trimmed cell value, or "" when the column is missing
// or the row is ragged.
func (r Row) Str(col string) string {
	ci, ok := r.table.columns[col]
	if !ok {
		return ""
	}
	cells := r.table.rows[r.idx]
	if ci >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[ci])
}

// Float parses the cell as a number. Malformed or missing values report
// ok=false so a row's bad measurement only drops that stat's
// contribution, never the row.
func (r Row) Float(col string) (float64, bool) {
	s := r.Str(col)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
