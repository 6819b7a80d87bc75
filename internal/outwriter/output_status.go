package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
)

// WriteStatus outputs the storage backend status in the configured
// format.
func WriteStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return dispatch(cfg, map[schema.OutputMode]renderFunc{
		schema.JSONOut: func(w io.Writer) error { return emitJSON(w, status) },
		schema.CSVOut:  func(w io.Writer) error { return writeCSVStatus(w, status) },
		schema.TextOut: func(w io.Writer) error { return writeStatusText(w, status) },
	})
}

func sortedTables(status schema.StoreStatus) []string {
	tables := make([]string, 0, len(status.TableRows))
	for name := range status.TableRows {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables
}

// writeCSVStatus writes one row per table with the shared connection
// state repeated.
func writeCSVStatus(w io.Writer, status schema.StoreStatus) error {
	records := make([][]string, 0, len(status.TableRows))
	for _, name := range sortedTables(status) {
		records = append(records, []string{
			status.Backend,
			strconv.FormatBool(status.Connected),
			name,
			strconv.FormatInt(status.TableRows[name], 10),
		})
	}
	return emitCSV(w, []string{"Backend", "Connected", "Table", "Rows"}, records)
}

// writeStatusText writes a short human-readable status summary.
func writeStatusText(w io.Writer, status schema.StoreStatus) error {
	state := "disconnected"
	if status.Connected {
		state = "connected"
	}
	if _, err := fmt.Fprintf(w, "⚾ Storage backend: %s (%s)\n", status.Backend, state); err != nil {
		return err
	}
	for _, name := range sortedTables(status) {
		if _, err := fmt.Fprintf(w, "   %s: %d rows\n", name, status.TableRows[name]); err != nil {
			return err
		}
	}
	return nil
}
