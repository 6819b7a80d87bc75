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

// WriteLeaders outputs a stat leaderboard in the configured format.
func WriteLeaders(rows []schema.LeaderRow, cfg *contract.Config) error {
	return dispatch(cfg, map[schema.OutputMode]renderFunc{
		schema.JSONOut: func(w io.Writer) error { return writeJSONLeaders(w, rows) },
		schema.CSVOut:  func(w io.Writer) error { return writeCSVLeaders(w, rows) },
		schema.TextOut: func(w io.Writer) error { return writeLeadersTable(w, rows, cfg) },
	})
}

// writeJSONLeaders writes the leaderboard in JSON format.
func writeJSONLeaders(w io.Writer, rows []schema.LeaderRow) error {
	if rows == nil {
		rows = []schema.LeaderRow{}
	}
	return emitJSON(w, rows)
}

// writeCSVLeaders writes the leaderboard in CSV format.
func writeCSVLeaders(w io.Writer, rows []schema.LeaderRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		score, tier := "", ""
		if row.Score != nil {
			score = formatFloat(*row.Score)
			tier = contract.GetPlainLabel(*row.Score)
		}
		records = append(records, []string{
			strconv.Itoa(row.Rank),
			row.Player,
			row.Team,
			strconv.Itoa(row.Year),
			row.Stat,
			formatFloat(row.Value),
			score,
			tier,
		})
	}
	header := []string{"Rank", "Player", "Team", "Year", "Stat", "Value", "Score", "Tier"}
	return emitCSV(w, header, records)
}

// writeLeadersTable writes the leaderboard as a human-readable table.
func writeLeadersTable(w io.Writer, rows []schema.LeaderRow, cfg *contract.Config) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No qualifying players found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Rank", "Player", "Team", "Value", "Score", "Tier"})
	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxNameWidth(cfg)
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		score, tier := "", ""
		if row.Score != nil {
			score = formatFloat(*row.Score)
			if cfg.UseColors {
				tier = contract.GetColorLabel(*row.Score)
			} else {
				tier = contract.GetPlainLabel(*row.Score)
			}
		}
		data = append(data, []string{
			strconv.Itoa(row.Rank),
			TruncateName(row.Player, nameWidth),
			row.Team,
			formatFloat(row.Value),
			score,
			tier,
		})
	}

	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%s leaders for %d (%d shown)\n", rows[0].Stat, rows[0].Year, len(rows))
	return err
}
