package core

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
)

// RankScores assigns a percentile score to every value of one stat
// within one season partition. Nil values receive nil scores and do not
// participate. Ties share the minimum rank among the tied values, and
// ranks rescale linearly onto the configured span with the result
// floored to a whole number.
//
// ascending follows series-ranking convention: with ascending true the
// smallest value gets rank 1 and therefore the lowest score. Callers
// wanting "lower is better" pass ascending false.
func RankScores(values []*float64, ascending bool, scale schema.RankScale) []*float64 {
	scores := make([]*float64, len(values))

	idx := make([]int, 0, len(values))
	for i, v := range values {
		if v != nil {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return scores
	}

	sort.SliceStable(idx, func(a, b int) bool {
		if ascending {
			return *values[idx[a]] < *values[idx[b]]
		}
		return *values[idx[a]] > *values[idx[b]]
	})

	// Competition ranking: tied values share the first tied position.
	ranks := make(map[int]int, len(idx))
	maxRank := 1
	for pos, i := range idx {
		if pos > 0 && *values[i] == *values[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]
		} else {
			ranks[i] = pos + 1
		}
		if ranks[i] > maxRank {
			maxRank = ranks[i]
		}
	}

	for _, i := range idx {
		var score float64
		if maxRank == 1 {
			score = scale.Max()
		} else {
			score = math.Floor(1 + float64(ranks[i]-1)/float64(maxRank-1)*scale.Span())
		}
		scores[i] = &score
	}
	return scores
}

// RankSeason recomputes the percentile columns for one profile and
// season. The persisted population is paged in, each ranked stat is
// scored across the whole partition, and the scores are written back in
// bounded batches. A failed write batch is logged and skipped so one bad
// batch never aborts the pass.
func RankSeason(ctx context.Context, store contract.StatStore, profile *schema.StatProfile, cfg *contract.Config) error {
	if len(profile.Ranked) == 0 {
		return nil
	}

	lines, err := fetchSeason(ctx, store, profile, cfg)
	if err != nil {
		return fmt.Errorf("failed to load %s population for %d: %w", profile.Name, cfg.Season, err)
	}
	if len(lines) == 0 {
		contract.Log().Infof("no %s rows persisted for season %d, nothing to rank", profile.Name, cfg.Season)
		return nil
	}

	ranks := make(map[schema.EntityKey]map[schema.RateKey]*float64, len(lines))
	for _, line := range lines {
		ranks[line.Key] = make(map[schema.RateKey]*float64, len(profile.Ranked))
	}

	for _, stat := range profile.Ranked {
		values := make([]*float64, len(lines))
		for i, line := range lines {
			values[i] = line.Rate(stat)
		}
		ascending := !profile.LowerIsBetter[stat]
		scores := RankScores(values, ascending, cfg.RankScale)
		for i, line := range lines {
			ranks[line.Key][stat] = scores[i]
		}
	}

	keys := make([]schema.EntityKey, 0, len(lines))
	for _, line := range lines {
		keys = append(keys, line.Key)
	}

	for start := 0; start < len(keys); start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > len(keys) {
			end = len(keys)
		}
		batch := make(map[schema.EntityKey]map[schema.RateKey]*float64, end-start)
		for _, k := range keys[start:end] {
			batch[k] = ranks[k]
		}
		if err := store.UpdateRanks(ctx, profile, batch); err != nil {
			contract.LogWarn(fmt.Sprintf("rank batch %d-%d skipped for %s (sample %v)", start, end, profile.Name, keys[start]), err)
		}
	}

	contract.Log().Infof("ranked %d %s rows for season %d", len(lines), profile.Name, cfg.Season)
	return nil
}

// SeasonLines loads the full persisted season partition for a profile.
func SeasonLines(ctx context.Context, store contract.StatStore, profile *schema.StatProfile, cfg *contract.Config) ([]*schema.StatLine, error) {
	return fetchSeason(ctx, store, profile, cfg)
}

// fetchSeason pages the full season partition out of the store, bounded
// by the configured page cap as a guard against a runaway source.
func fetchSeason(ctx context.Context, store contract.StatStore, profile *schema.StatProfile, cfg *contract.Config) ([]*schema.StatLine, error) {
	var lines []*schema.StatLine
	for page := 0; page < cfg.MaxFetchPages; page++ {
		batch, err := store.FetchSeason(ctx, profile, cfg.Season, page*cfg.BatchSize, cfg.BatchSize)
		if err != nil {
			return nil, err
		}
		lines = append(lines, batch...)
		if len(batch) < cfg.BatchSize {
			return lines, nil
		}
	}
	contract.LogWarn("season fetch stopped early", fmt.Errorf("page cap %d reached for %s", cfg.MaxFetchPages, profile.Name))
	return lines, nil
}
