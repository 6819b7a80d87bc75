// Package outwriter renders engine results for the terminal and for
// file export.
package outwriter

import (
	"os"

	"github.com/dugoutlab/trackstat/internal/contract"
	"golang.org/x/term"
)

// GetMaxNameWidth calculates the player-name column width from the
// terminal width, honoring an absolute override from flag/env.
func GetMaxNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI.
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank, team, value, score and label columns plus borders.
	available := termWidth - 45
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}

// TruncateName shortens a player name to fit the name column.
func TruncateName(name string, maxWidth int) string {
	if len(name) <= maxWidth {
		return name
	}
	if maxWidth <= 3 {
		return name[:maxWidth]
	}
	return name[:maxWidth-3] + "..."
}
