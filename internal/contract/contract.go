// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/dugoutlab/trackstat/schema"
)

// StatStore defines the persistence operations the engine needs. The
// only requirements on an implementation: upsert is idempotent keyed by
// the profile's composite key, and season fetches support offset
// pagination. This allows the merge and rank engines to be tested
// against an in-memory fake.
type StatStore interface {
	// FetchStats returns the persisted lines for the given keys. Keys
	// with no persisted row are simply absent from the result map.
	FetchStats(ctx context.Context, profile *schema.StatProfile, keys []schema.EntityKey) (map[schema.EntityKey]*schema.StatLine, error)

	// FetchSeason returns one page of the persisted population for a
	// season, ordered by identity columns.
	FetchSeason(ctx context.Context, profile *schema.StatProfile, year, offset, limit int) ([]*schema.StatLine, error)

	// UpsertStats inserts or fully replaces the given lines, keyed by
	// the profile's composite key.
	UpsertStats(ctx context.Context, profile *schema.StatProfile, rows []*schema.StatLine) error

	// UpdateRanks overwrites the rank columns for the given keys. A nil
	// score clears the stored rank.
	UpdateRanks(ctx context.Context, profile *schema.StatProfile, ranks map[schema.EntityKey]map[schema.RateKey]*float64) error

	// GetStatus returns backend health and table sizes.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// Handedness encoding for model inputs.
const (
	SideLeft  = 0
	SideRight = 1
)

// BattedBallInput is one feature row for the external expected-outcome
// models. BatterSide is pre-encoded: 0 for left, 1 for right.
type BattedBallInput struct {
	ExitSpeed  float64
	Angle      float64
	Direction  float64
	BatterSide int
}

// BattedBallScorer wraps an external regression model scoring batted
// balls. Implementations may fail; callers apply the documented
// failure-to-zero policy per entity.
type BattedBallScorer interface {
	Predict(rows []BattedBallInput) ([]float64, error)
}
