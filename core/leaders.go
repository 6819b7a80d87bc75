package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
)

// ResolveStat finds the profile rate matching a user-supplied stat
// name, along with whether a lower raw value is better for it.
func ResolveStat(profile *schema.StatProfile, name string) (schema.RateKey, error) {
	stat := schema.RateKey(name)
	for _, r := range profile.Rates {
		if r.Key == stat {
			return stat, nil
		}
	}
	return "", fmt.Errorf("unknown %s stat %q, choose one of %v", profile.Name, name, profile.RateKeys())
}

// Leaders builds the season leaderboard for one stat: the persisted
// population sorted by raw value in the stat's better-first direction,
// cut to the configured limit. Entities with no value for the stat are
// excluded. Scores come from the live ranking engine so a leaderboard
// never shows stale persisted ranks.
func Leaders(ctx context.Context, store contract.StatStore, profile *schema.StatProfile, cfg *contract.Config) ([]schema.LeaderRow, error) {
	stat, err := ResolveStat(profile, cfg.Stat)
	if err != nil {
		return nil, err
	}

	lines, err := fetchSeason(ctx, store, profile, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s population for %d: %w", profile.Name, cfg.Season, err)
	}

	values := make([]*float64, len(lines))
	for i, line := range lines {
		values[i] = line.Rate(stat)
	}
	scores := RankScores(values, !profile.LowerIsBetter[stat], cfg.RankScale)

	var rows []schema.LeaderRow
	for i, line := range lines {
		if values[i] == nil {
			continue
		}
		rows = append(rows, schema.LeaderRow{
			Player: line.Key.Player,
			Team:   line.Key.Team,
			Year:   line.Key.Year,
			Stat:   string(stat),
			Value:  schema.Round3(*values[i]),
			Score:  scores[i],
		})
	}

	lowerBetter := profile.LowerIsBetter[stat]
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Value != rows[b].Value {
			if lowerBetter {
				return rows[a].Value < rows[b].Value
			}
			return rows[a].Value > rows[b].Value
		}
		return rows[a].Player < rows[b].Player
	})

	if len(rows) > cfg.ResultLimit {
		rows = rows[:cfg.ResultLimit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}
