package schema

// Custom string types for type safety.
type (
	// CountKey names an integer counting field on a StatLine.
	CountKey string

	// RateKey names a nullable rate field on a StatLine.
	RateKey string

	// PitchType is a canonical pitch classification.
	PitchType string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string

	// RankScale selects the percentile target range.
	RankScale string
)

// Counting fields shared across profiles.
const (
	CountPlateApp       CountKey = "plate_app"
	CountAtBats         CountKey = "at_bats"
	CountHits           CountKey = "hits"
	CountSingles        CountKey = "singles"
	CountDoubles        CountKey = "doubles"
	CountTriples        CountKey = "triples"
	CountHomeRuns       CountKey = "home_runs"
	CountWalks          CountKey = "walks"
	CountHitByPitch     CountKey = "hit_by_pitch"
	CountSacrifices     CountKey = "sacrifices"
	CountStrikeouts     CountKey = "strikeouts"
	CountBattedBalls    CountKey = "batted_balls"
	CountGroundBalls    CountKey = "ground_balls"
	CountHardHits       CountKey = "hard_hits"
	CountSweetSpots     CountKey = "sweet_spots"
	CountBarrels        CountKey = "barrels"
	CountInZonePitches  CountKey = "in_zone_pitches"
	CountOutZonePitches CountKey = "out_of_zone_pitches"
	CountInZoneWhiffs   CountKey = "in_zone_whiffs"
	CountChases         CountKey = "chases"
	CountFastballs      CountKey = "fastballs"
	CountOuts           CountKey = "outs"

	CountSprayFarLeft  CountKey = "spray_far_left"
	CountSprayLeft     CountKey = "spray_left"
	CountSprayCenter   CountKey = "spray_center"
	CountSprayRight    CountKey = "spray_right"
	CountSprayFarRight CountKey = "spray_far_right"
)

// Zone-bin counting fields.
const (
	CountZonePitches CountKey = "pitches"
	CountZoneSwings  CountKey = "swings"
	CountZoneWhiffs  CountKey = "whiffs"
	CountZoneInPlay  CountKey = "in_play"
	CountZoneVsLeft  CountKey = "vs_left"
	CountZoneVsRight CountKey = "vs_right"
)

// Rate fields.
const (
	RateBattingAvg   RateKey = "batting_avg"
	RateOnBase       RateKey = "obp"
	RateSlugging     RateKey = "slg"
	RateOPS          RateKey = "ops"
	RateISO          RateKey = "iso"
	RateStrikeout    RateKey = "k_per"
	RateWalk         RateKey = "bb_per"
	RateWhiff        RateKey = "whiff_per"
	RateChase        RateKey = "chase_per"
	RateHardHit      RateKey = "hard_hit_per"
	RateSweetSpot    RateKey = "sweet_spot_per"
	RateAvgExitVelo  RateKey = "avg_exit_velo"
	RateAvgFBVelo    RateKey = "avg_fb_velo"
	RateXBA          RateKey = "xba_per"
	RateXSLG         RateKey = "xslg_per"
	RateXWOBA        RateKey = "xwoba_per"
	RateBarrel       RateKey = "barrel_per"
	RateGroundBall   RateKey = "gb_per"
	RateWHIP         RateKey = "whip"

	RateSprayFarLeft  RateKey = "spray_far_left_per"
	RateSprayLeft     RateKey = "spray_left_per"
	RateSprayCenter   RateKey = "spray_center_per"
	RateSprayRight    RateKey = "spray_right_per"
	RateSprayFarRight RateKey = "spray_far_right_per"
)

// Canonical pitch types.
const (
	FourSeam   PitchType = "FourSeam"
	Sinker     PitchType = "Sinker"
	Slider     PitchType = "Slider"
	Curveball  PitchType = "Curveball"
	Changeup   PitchType = "Changeup"
	Cutter     PitchType = "Cutter"
	Splitter   PitchType = "Splitter"
	OtherPitch PitchType = "Other"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Percentile scales. The legacy tables used both; Scale100 is the
// default and Scale99 exists for parity with tables that cap at 99.
const (
	Scale100 RankScale = "1-100"
	Scale99  RankScale = "1-99"
)

// Span returns the width of the linear rescale for the scale variant.
func (r RankScale) Span() float64 {
	if r == Scale99 {
		return 98
	}
	return 99
}

// Max returns the top score for the scale variant.
func (r RankScale) Max() float64 {
	if r == Scale99 {
		return 99
	}
	return 100
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid persistence backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidRankScales lists all valid percentile scales.
var ValidRankScales = map[RankScale]struct{}{
	Scale100: {},
	Scale99:  {},
}

// Linear weights applied to non-batted-ball outcomes when folding them
// into expected weighted on-base average.
const (
	WOBAWeightWalk       = 0.69
	WOBAWeightHitByPitch = 0.72
	WOBAWeightSacrifice  = 0.0
	WOBAWeightFielders   = 0.0
	WOBAWeightOut        = 0.0
)

// Barrel thresholds: a batted ball is a barrel when both expected
// outcomes clear these values.
const (
	BarrelXBAMin  = 0.5
	BarrelXSLGMin = 1.5
)

// PracticeTeamSuffix is appended to every team code in a source file
// that carries at least one practice-flagged row.
const PracticeTeamSuffix = "-P"
