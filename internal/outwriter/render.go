package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
)

// renderFunc writes one representation of a result set.
type renderFunc func(io.Writer) error

// dispatch picks the renderer for the configured output mode and sends
// it to the configured destination. Modes a result type does not list
// fall back to text. File writes get a confirmation on stderr so piped
// stdout stays clean.
func dispatch(cfg *contract.Config, renderers map[schema.OutputMode]renderFunc) error {
	render, ok := renderers[cfg.Output]
	if !ok {
		render = renderers[schema.TextOut]
	}

	dst, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	if dst != os.Stdout {
		defer func() { _ = dst.Close() }()
	}

	if err := render(dst); err != nil {
		return err
	}
	if dst != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 Wrote %s to %s\n", cfg.Output, cfg.OutputFile)
	}
	return nil
}

// emitJSON encodes any payload with two-space indentation.
func emitJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// emitCSV writes a header row followed by pre-built records.
func emitCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}
	return nil
}

// formatFloat renders stat values at the shared display precision.
func formatFloat(v float64) string {
	return fmt.Sprintf("%.*f", contract.DefaultPrecision, v)
}
