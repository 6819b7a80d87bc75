package core

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
)

// memStore is an in-memory StatStore for engine tests.
type memStore struct {
	lines map[string]map[schema.EntityKey]*schema.StatLine
	ranks map[schema.EntityKey]map[schema.RateKey]*float64

	failUpserts bool
	failRanks   bool
}

var _ contract.StatStore = (*memStore)(nil) // Compile-time check

func newMemStore() *memStore {
	return &memStore{
		lines: make(map[string]map[schema.EntityKey]*schema.StatLine),
		ranks: make(map[schema.EntityKey]map[schema.RateKey]*float64),
	}
}

func (m *memStore) table(profile *schema.StatProfile) map[schema.EntityKey]*schema.StatLine {
	if m.lines[profile.Table] == nil {
		m.lines[profile.Table] = make(map[schema.EntityKey]*schema.StatLine)
	}
	return m.lines[profile.Table]
}

func (m *memStore) FetchStats(_ context.Context, profile *schema.StatProfile, keys []schema.EntityKey) (map[schema.EntityKey]*schema.StatLine, error) {
	out := make(map[schema.EntityKey]*schema.StatLine)
	for _, k := range keys {
		if line, ok := m.table(profile)[k]; ok {
			out[k] = line.Clone()
		}
	}
	return out, nil
}

func (m *memStore) FetchSeason(_ context.Context, profile *schema.StatProfile, year, offset, limit int) ([]*schema.StatLine, error) {
	var all []*schema.StatLine
	for _, line := range m.table(profile) {
		if line.Key.Year == year {
			all = append(all, line)
		}
	}
	sort.Slice(all, func(a, b int) bool { return all[a].Key.Player < all[b].Key.Player })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memStore) UpsertStats(_ context.Context, profile *schema.StatProfile, rows []*schema.StatLine) error {
	if m.failUpserts {
		return errors.New("upsert unavailable")
	}
	for _, r := range rows {
		m.table(profile)[r.Key] = r.Clone()
	}
	return nil
}

func (m *memStore) UpdateRanks(_ context.Context, _ *schema.StatProfile, ranks map[schema.EntityKey]map[schema.RateKey]*float64) error {
	if m.failRanks {
		return errors.New("rank update unavailable")
	}
	for k, v := range ranks {
		m.ranks[k] = v
	}
	return nil
}

func (m *memStore) GetStatus(context.Context) (schema.StoreStatus, error) {
	return schema.StoreStatus{Connected: true}, nil
}

func (m *memStore) Close() error { return nil }

func floats(vs ...float64) []*float64 {
	out := make([]*float64, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}

// TestRankScoresDirection pins the rescale over a distinct series: with
// descending order the smallest raw value takes the top score.
func TestRankScoresDirection(t *testing.T) {
	scores := RankScores(floats(10, 20, 30), false, schema.Scale100)
	require.Len(t, scores, 3)
	assert.Equal(t, 100.0, *scores[0])
	assert.Equal(t, 50.0, *scores[1])
	assert.Equal(t, 1.0, *scores[2])

	scores = RankScores(floats(10, 20, 30), true, schema.Scale100)
	assert.Equal(t, 1.0, *scores[0])
	assert.Equal(t, 50.0, *scores[1])
	assert.Equal(t, 100.0, *scores[2])
}

// TestRankScoresAllTied verifies an all-equal series takes the scale
// maximum everywhere.
func TestRankScoresAllTied(t *testing.T) {
	for _, scale := range []schema.RankScale{schema.Scale100, schema.Scale99} {
		scores := RankScores(floats(10, 10, 10), false, scale)
		for _, s := range scores {
			require.NotNil(t, s)
			assert.Equal(t, scale.Max(), *s)
		}
	}
}

// TestRankScoresCompetitionTies verifies tied values share the minimum
// rank and the next distinct value skips ranks.
func TestRankScoresCompetitionTies(t *testing.T) {
	// Descending: 40 -> rank 1, the two 30s -> rank 2, 10 -> rank 4.
	scores := RankScores(floats(30, 40, 30, 10), false, schema.Scale100)
	assert.Equal(t, 34.0, *scores[0])
	assert.Equal(t, 1.0, *scores[1])
	assert.Equal(t, 34.0, *scores[2])
	assert.Equal(t, 100.0, *scores[3])
}

// TestRankScoresNulls verifies nil values are excluded and receive nil
// scores.
func TestRankScoresNulls(t *testing.T) {
	values := []*float64{schema.Float(10), nil, schema.Float(30)}
	scores := RankScores(values, false, schema.Scale100)
	require.NotNil(t, scores[0])
	assert.Equal(t, 100.0, *scores[0])
	assert.Nil(t, scores[1])
	require.NotNil(t, scores[2])
	assert.Equal(t, 1.0, *scores[2])

	scores = RankScores([]*float64{nil, nil}, false, schema.Scale100)
	assert.Nil(t, scores[0])
	assert.Nil(t, scores[1])
}

// TestRankScoresScale99 pins the narrower legacy span.
func TestRankScoresScale99(t *testing.T) {
	scores := RankScores(floats(10, 20, 30), false, schema.Scale99)
	assert.Equal(t, 99.0, *scores[0])
	assert.Equal(t, 50.0, *scores[1])
	assert.Equal(t, 1.0, *scores[2])
}

// TestRankSeason runs the full pass over a small persisted population
// and checks direction policy per stat.
func TestRankSeason(t *testing.T) {
	store := newMemStore()
	cfg := &contract.Config{Season: 2024, RankScale: schema.Scale100, BatchSize: 2, MaxFetchPages: 10}

	seed := []struct {
		player string
		avg    float64
		kper   float64
	}{
		{"Alvarez, Yordan", 0.310, 0.180},
		{"Betts, Mookie", 0.290, 0.140},
		{"Castellanos, Nick", 0.250, 0.260},
	}
	for _, s := range seed {
		line := schema.NewStatLine(schema.EntityKey{Player: s.player, Team: "T", Year: 2024})
		line.SetRate(schema.RateBattingAvg, schema.Float(s.avg))
		line.SetRate(schema.RateStrikeout, schema.Float(s.kper))
		store.table(schema.BattingProfile)[line.Key] = line
	}

	require.NoError(t, RankSeason(context.Background(), store, schema.BattingProfile, cfg))

	get := func(player string, stat schema.RateKey) float64 {
		v := store.ranks[schema.EntityKey{Player: player, Team: "T", Year: 2024}][stat]
		require.NotNil(t, v)
		return *v
	}

	// Higher batting average ranks higher.
	assert.Equal(t, 100.0, get("Alvarez, Yordan", schema.RateBattingAvg))
	assert.Equal(t, 1.0, get("Castellanos, Nick", schema.RateBattingAvg))

	// Lower strikeout rate ranks higher.
	assert.Equal(t, 100.0, get("Betts, Mookie", schema.RateStrikeout))
	assert.Equal(t, 1.0, get("Castellanos, Nick", schema.RateStrikeout))

	// Stats with no values rank nil across the board.
	assert.Nil(t, store.ranks[schema.EntityKey{Player: "Betts, Mookie", Team: "T", Year: 2024}][schema.RateXBA])
}

// TestRankSeasonFailedBatches verifies write failures skip batches
// without failing the pass.
func TestRankSeasonFailedBatches(t *testing.T) {
	store := newMemStore()
	store.failRanks = true
	cfg := &contract.Config{Season: 2024, RankScale: schema.Scale100, BatchSize: 10, MaxFetchPages: 10}

	line := schema.NewStatLine(schema.EntityKey{Player: "Betts, Mookie", Team: "T", Year: 2024})
	line.SetRate(schema.RateBattingAvg, schema.Float(0.3))
	store.table(schema.BattingProfile)[line.Key] = line

	require.NoError(t, RankSeason(context.Background(), store, schema.BattingProfile, cfg))
	assert.Empty(t, store.ranks)
}
