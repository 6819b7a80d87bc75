package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
)

// ZoneBinsFor returns a pitcher's zone bins for a season, ordered by
// zone id. Pitchers with no located pitches return an empty slice.
func ZoneBinsFor(ctx context.Context, store contract.StatStore, cfg *contract.Config, player string) ([]*schema.StatLine, error) {
	lines, err := fetchSeason(ctx, store, schema.ZoneProfile, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load zone bins for %d: %w", cfg.Season, err)
	}

	var bins []*schema.StatLine
	for _, line := range lines {
		if line.Key.Player == player {
			bins = append(bins, line)
		}
	}
	sort.Slice(bins, func(a, b int) bool { return bins[a].Key.Zone < bins[b].Key.Zone })
	return bins, nil
}
