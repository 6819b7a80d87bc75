// Package parquet exports persisted season statistics to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"

	"github.com/dugoutlab/trackstat/schema"
	"github.com/parquet-go/parquet-go"
)

// BattingSeasonRow is one batter's season line flattened for Parquet
// export. Rates are nullable; a nil value means the denominator never
// materialized.
type BattingSeasonRow struct {
	Batter     string `parquet:"batter,snappy"`
	BatterTeam string `parquet:"batter_team,snappy"`
	Year       int32  `parquet:"year,snappy"`

	PlateApp    int32 `parquet:"plate_app,snappy"`
	AtBats      int32 `parquet:"at_bats,snappy"`
	Hits        int32 `parquet:"hits,snappy"`
	HomeRuns    int32 `parquet:"home_runs,snappy"`
	Walks       int32 `parquet:"walks,snappy"`
	Strikeouts  int32 `parquet:"strikeouts,snappy"`
	BattedBalls int32 `parquet:"batted_balls,snappy"`
	Barrels     int32 `parquet:"barrels,snappy"`

	BattingAvg  *float64 `parquet:"batting_avg,optional,snappy"`
	OnBase      *float64 `parquet:"obp,optional,snappy"`
	Slugging    *float64 `parquet:"slg,optional,snappy"`
	OPS         *float64 `parquet:"ops,optional,snappy"`
	ISO         *float64 `parquet:"iso,optional,snappy"`
	Strikeout   *float64 `parquet:"k_per,optional,snappy"`
	Walk        *float64 `parquet:"bb_per,optional,snappy"`
	Whiff       *float64 `parquet:"whiff_per,optional,snappy"`
	Chase       *float64 `parquet:"chase_per,optional,snappy"`
	HardHit     *float64 `parquet:"hard_hit_per,optional,snappy"`
	SweetSpot   *float64 `parquet:"sweet_spot_per,optional,snappy"`
	AvgExitVelo *float64 `parquet:"avg_exit_velo,optional,snappy"`
	GroundBall  *float64 `parquet:"gb_per,optional,snappy"`
	XBA         *float64 `parquet:"xba_per,optional,snappy"`
	XSLG        *float64 `parquet:"xslg_per,optional,snappy"`
	XWOBA       *float64 `parquet:"xwoba_per,optional,snappy"`
	Barrel      *float64 `parquet:"barrel_per,optional,snappy"`

	ProcessedDates string `parquet:"processed_dates,snappy"`
}

// PitchingSeasonRow is one pitcher's season line flattened for Parquet
// export.
type PitchingSeasonRow struct {
	Pitcher     string `parquet:"pitcher,snappy"`
	PitcherTeam string `parquet:"pitcher_team,snappy"`
	Year        int32  `parquet:"year,snappy"`

	PlateApp    int32 `parquet:"plate_app,snappy"`
	AtBats      int32 `parquet:"at_bats,snappy"`
	Hits        int32 `parquet:"hits,snappy"`
	Walks       int32 `parquet:"walks,snappy"`
	Strikeouts  int32 `parquet:"strikeouts,snappy"`
	Outs        int32 `parquet:"outs,snappy"`
	BattedBalls int32 `parquet:"batted_balls,snappy"`
	Fastballs   int32 `parquet:"fastballs,snappy"`

	Strikeout   *float64 `parquet:"k_per,optional,snappy"`
	Walk        *float64 `parquet:"bb_per,optional,snappy"`
	WHIP        *float64 `parquet:"whip,optional,snappy"`
	Whiff       *float64 `parquet:"whiff_per,optional,snappy"`
	Chase       *float64 `parquet:"chase_per,optional,snappy"`
	HardHit     *float64 `parquet:"hard_hit_per,optional,snappy"`
	SweetSpot   *float64 `parquet:"sweet_spot_per,optional,snappy"`
	AvgExitVelo *float64 `parquet:"avg_exit_velo,optional,snappy"`
	AvgFBVelo   *float64 `parquet:"avg_fb_velo,optional,snappy"`
	GroundBall  *float64 `parquet:"gb_per,optional,snappy"`
	XBA         *float64 `parquet:"xba_per,optional,snappy"`
	XSLG        *float64 `parquet:"xslg_per,optional,snappy"`
	XWOBA       *float64 `parquet:"xwoba_per,optional,snappy"`
	Barrel      *float64 `parquet:"barrel_per,optional,snappy"`

	ProcessedDates string `parquet:"processed_dates,snappy"`
}

// ZoneBinRow is one (pitcher, zone) bin flattened for Parquet export.
type ZoneBinRow struct {
	Player string `parquet:"player,snappy"`
	Team   string `parquet:"team,snappy"`
	Year   int32  `parquet:"year,snappy"`
	Zone   int32  `parquet:"zone,snappy"`

	Pitches   int32 `parquet:"pitches,snappy"`
	Swings    int32 `parquet:"swings,snappy"`
	Whiffs    int32 `parquet:"whiffs,snappy"`
	InPlay    int32 `parquet:"in_play,snappy"`
	Fastballs int32 `parquet:"fastballs,snappy"`
	VsLeft    int32 `parquet:"vs_left,snappy"`
	VsRight   int32 `parquet:"vs_right,snappy"`
}

// writeParquet writes records to a Parquet file using struct schema
// inference from the row type's tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteBattingParquet writes a batting season export to outputPath.
func WriteBattingParquet(lines []*schema.StatLine, outputPath string) error {
	return writeParquet(ConvertBattingLines(lines), outputPath)
}

// WritePitchingParquet writes a pitching season export to outputPath.
func WritePitchingParquet(lines []*schema.StatLine, outputPath string) error {
	return writeParquet(ConvertPitchingLines(lines), outputPath)
}

// WriteZoneBinsParquet writes a zone-bin export to outputPath.
func WriteZoneBinsParquet(lines []*schema.StatLine, outputPath string) error {
	return writeParquet(ConvertZoneBinLines(lines), outputPath)
}

// ConvertBattingLines converts persisted batting lines to export rows.
func ConvertBattingLines(lines []*schema.StatLine) []BattingSeasonRow {
	result := make([]BattingSeasonRow, len(lines))
	for i, line := range lines {
		result[i] = BattingSeasonRow{
			Batter:      line.Key.Player,
			BatterTeam:  line.Key.Team,
			Year:        int32(line.Key.Year),
			PlateApp:    int32(line.Count(schema.CountPlateApp)),
			AtBats:      int32(line.Count(schema.CountAtBats)),
			Hits:        int32(line.Count(schema.CountHits)),
			HomeRuns:    int32(line.Count(schema.CountHomeRuns)),
			Walks:       int32(line.Count(schema.CountWalks)),
			Strikeouts:  int32(line.Count(schema.CountStrikeouts)),
			BattedBalls: int32(line.Count(schema.CountBattedBalls)),
			Barrels:     int32(line.Count(schema.CountBarrels)),

			BattingAvg:  line.Rate(schema.RateBattingAvg),
			OnBase:      line.Rate(schema.RateOnBase),
			Slugging:    line.Rate(schema.RateSlugging),
			OPS:         line.Rate(schema.RateOPS),
			ISO:         line.Rate(schema.RateISO),
			Strikeout:   line.Rate(schema.RateStrikeout),
			Walk:        line.Rate(schema.RateWalk),
			Whiff:       line.Rate(schema.RateWhiff),
			Chase:       line.Rate(schema.RateChase),
			HardHit:     line.Rate(schema.RateHardHit),
			SweetSpot:   line.Rate(schema.RateSweetSpot),
			AvgExitVelo: line.Rate(schema.RateAvgExitVelo),
			GroundBall:  line.Rate(schema.RateGroundBall),
			XBA:         line.Rate(schema.RateXBA),
			XSLG:        line.Rate(schema.RateXSLG),
			XWOBA:       line.Rate(schema.RateXWOBA),
			Barrel:      line.Rate(schema.RateBarrel),

			ProcessedDates: strings.Join(line.SortedDates(), ","),
		}
	}
	return result
}

// ConvertPitchingLines converts persisted pitching lines to export rows.
func ConvertPitchingLines(lines []*schema.StatLine) []PitchingSeasonRow {
	result := make([]PitchingSeasonRow, len(lines))
	for i, line := range lines {
		result[i] = PitchingSeasonRow{
			Pitcher:     line.Key.Player,
			PitcherTeam: line.Key.Team,
			Year:        int32(line.Key.Year),
			PlateApp:    int32(line.Count(schema.CountPlateApp)),
			AtBats:      int32(line.Count(schema.CountAtBats)),
			Hits:        int32(line.Count(schema.CountHits)),
			Walks:       int32(line.Count(schema.CountWalks)),
			Strikeouts:  int32(line.Count(schema.CountStrikeouts)),
			Outs:        int32(line.Count(schema.CountOuts)),
			BattedBalls: int32(line.Count(schema.CountBattedBalls)),
			Fastballs:   int32(line.Count(schema.CountFastballs)),

			Strikeout:   line.Rate(schema.RateStrikeout),
			Walk:        line.Rate(schema.RateWalk),
			WHIP:        line.Rate(schema.RateWHIP),
			Whiff:       line.Rate(schema.RateWhiff),
			Chase:       line.Rate(schema.RateChase),
			HardHit:     line.Rate(schema.RateHardHit),
			SweetSpot:   line.Rate(schema.RateSweetSpot),
			AvgExitVelo: line.Rate(schema.RateAvgExitVelo),
			AvgFBVelo:   line.Rate(schema.RateAvgFBVelo),
			GroundBall:  line.Rate(schema.RateGroundBall),
			XBA:         line.Rate(schema.RateXBA),
			XSLG:        line.Rate(schema.RateXSLG),
			XWOBA:       line.Rate(schema.RateXWOBA),
			Barrel:      line.Rate(schema.RateBarrel),

			ProcessedDates: strings.Join(line.SortedDates(), ","),
		}
	}
	return result
}

// ConvertZoneBinLines converts persisted zone bins to export rows.
func ConvertZoneBinLines(lines []*schema.StatLine) []ZoneBinRow {
	result := make([]ZoneBinRow, len(lines))
	for i, line := range lines {
		result[i] = ZoneBinRow{
			Player:    line.Key.Player,
			Team:      line.Key.Team,
			Year:      int32(line.Key.Year),
			Zone:      int32(line.Key.Zone),
			Pitches:   int32(line.Count(schema.CountZonePitches)),
			Swings:    int32(line.Count(schema.CountZoneSwings)),
			Whiffs:    int32(line.Count(schema.CountZoneWhiffs)),
			InPlay:    int32(line.Count(schema.CountZoneInPlay)),
			Fastballs: int32(line.Count(schema.CountFastballs)),
			VsLeft:    int32(line.Count(schema.CountZoneVsLeft)),
			VsRight:   int32(line.Count(schema.CountZoneVsRight)),
		}
	}
	return result
}
