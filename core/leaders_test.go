package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
)

func leadersConfig(stat string, limit int) *contract.Config {
	return &contract.Config{
		Season:        2024,
		RankScale:     schema.Scale100,
		ResultLimit:   limit,
		Stat:          stat,
		BatchSize:     10,
		MaxFetchPages: 10,
	}
}

func seedBatter(store *memStore, player string, rates map[schema.RateKey]*float64) {
	line := schema.NewStatLine(schema.EntityKey{Player: player, Team: "T", Year: 2024})
	for k, v := range rates {
		line.SetRate(k, v)
	}
	store.table(schema.BattingProfile)[line.Key] = line
}

// TestLeadersDescendingStat verifies a higher-is-better stat sorts top
// value first and carries live percentile scores.
func TestLeadersDescendingStat(t *testing.T) {
	store := newMemStore()
	seedBatter(store, "Alvarez, Yordan", map[schema.RateKey]*float64{schema.RateBattingAvg: schema.Float(0.310)})
	seedBatter(store, "Betts, Mookie", map[schema.RateKey]*float64{schema.RateBattingAvg: schema.Float(0.290)})
	seedBatter(store, "Castellanos, Nick", map[schema.RateKey]*float64{schema.RateBattingAvg: schema.Float(0.250)})

	rows, err := Leaders(context.Background(), store, schema.BattingProfile, leadersConfig("batting_avg", 25))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "Alvarez, Yordan", rows[0].Player)
	assert.InDelta(t, 0.310, rows[0].Value, 0.0001)
	require.NotNil(t, rows[0].Score)
	assert.Equal(t, 100.0, *rows[0].Score)

	assert.Equal(t, 3, rows[2].Rank)
	assert.Equal(t, "Castellanos, Nick", rows[2].Player)
	require.NotNil(t, rows[2].Score)
	assert.Equal(t, 1.0, *rows[2].Score)
}

// TestLeadersAscendingStat verifies a lower-is-better stat sorts the
// smallest value first.
func TestLeadersAscendingStat(t *testing.T) {
	store := newMemStore()
	seedBatter(store, "Alvarez, Yordan", map[schema.RateKey]*float64{schema.RateStrikeout: schema.Float(0.180)})
	seedBatter(store, "Betts, Mookie", map[schema.RateKey]*float64{schema.RateStrikeout: schema.Float(0.140)})

	rows, err := Leaders(context.Background(), store, schema.BattingProfile, leadersConfig("k_per", 25))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Betts, Mookie", rows[0].Player)
	require.NotNil(t, rows[0].Score)
	assert.Equal(t, 100.0, *rows[0].Score)
}

// TestLeadersExcludesNilAndLimits verifies entities without the stat
// are dropped and the board cuts to the configured limit.
func TestLeadersExcludesNilAndLimits(t *testing.T) {
	store := newMemStore()
	seedBatter(store, "Alvarez, Yordan", map[schema.RateKey]*float64{schema.RateBattingAvg: schema.Float(0.310)})
	seedBatter(store, "Betts, Mookie", map[schema.RateKey]*float64{schema.RateBattingAvg: schema.Float(0.290)})
	seedBatter(store, "Castellanos, Nick", map[schema.RateKey]*float64{schema.RateStrikeout: schema.Float(0.260)})

	rows, err := Leaders(context.Background(), store, schema.BattingProfile, leadersConfig("batting_avg", 1))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alvarez, Yordan", rows[0].Player)
}

// TestLeadersValuePrecision verifies raw values are rounded to the
// three-digit precision reports present rates at.
func TestLeadersValuePrecision(t *testing.T) {
	store := newMemStore()
	seedBatter(store, "Betts, Mookie", map[schema.RateKey]*float64{schema.RateBattingAvg: schema.Float(1.0 / 3.0)})

	rows, err := Leaders(context.Background(), store, schema.BattingProfile, leadersConfig("batting_avg", 25))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.333, rows[0].Value)
}

// TestLeadersUnknownStat verifies the stat name is validated against
// the profile before any store access.
func TestLeadersUnknownStat(t *testing.T) {
	store := newMemStore()
	_, err := Leaders(context.Background(), store, schema.BattingProfile, leadersConfig("wizardry", 25))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown batting stat")
}
