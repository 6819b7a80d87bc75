package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var zoneColumns = []schema.CountKey{
	schema.CountZonePitches, schema.CountZoneSwings, schema.CountZoneWhiffs,
	schema.CountZoneInPlay, schema.CountFastballs, schema.CountZoneVsLeft,
	schema.CountZoneVsRight,
}

// WriteZoneBins outputs a pitcher's 13-zone location profile in the
// configured format.
func WriteZoneBins(bins []*schema.StatLine, cfg *contract.Config) error {
	return dispatch(cfg, map[schema.OutputMode]renderFunc{
		schema.JSONOut: func(w io.Writer) error {
			if bins == nil {
				bins = []*schema.StatLine{}
			}
			return emitJSON(w, bins)
		},
		schema.CSVOut:  func(w io.Writer) error { return writeCSVZoneBins(w, bins) },
		schema.TextOut: func(w io.Writer) error { return writeZoneBinsTable(w, bins) },
	})
}

// writeCSVZoneBins writes one row per zone bin.
func writeCSVZoneBins(w io.Writer, bins []*schema.StatLine) error {
	header := []string{"Player", "Team", "Year", "Zone"}
	for _, col := range zoneColumns {
		header = append(header, string(col))
	}
	records := make([][]string, 0, len(bins))
	for _, bin := range bins {
		record := []string{
			bin.Key.Player,
			bin.Key.Team,
			strconv.Itoa(bin.Key.Year),
			strconv.Itoa(bin.Key.Zone),
		}
		for _, col := range zoneColumns {
			record = append(record, strconv.Itoa(bin.Count(col)))
		}
		records = append(records, record)
	}
	return emitCSV(w, header, records)
}

// writeZoneBinsTable writes the zone profile as a human-readable table.
// Zones 1-9 are the strike-zone grid, 10-13 the outer quadrants.
func writeZoneBinsTable(w io.Writer, bins []*schema.StatLine) error {
	if len(bins) == 0 {
		_, err := fmt.Fprintln(w, "No located pitches found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	header := []string{"Zone", "Pitches", "Swings", "Whiffs", "In Play", "Fastballs", "vs LHB", "vs RHB"}
	table.Header(header)
	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(bins))
	for _, bin := range bins {
		row := []string{strconv.Itoa(bin.Key.Zone)}
		for _, col := range zoneColumns {
			row = append(row, strconv.Itoa(bin.Count(col)))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\nZone profile for %s (%s), %d\n", bins[0].Key.Player, bins[0].Key.Team, bins[0].Key.Year)
	return err
}
