package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/trackstat/schema"
)

func battingLine(player string) *schema.StatLine {
	line := schema.NewStatLine(schema.EntityKey{Player: player, Team: "HOU", Year: 2024})
	line.AddCount(schema.CountPlateApp, 5)
	line.AddCount(schema.CountAtBats, 4)
	line.AddCount(schema.CountHits, 2)
	line.SetRate(schema.RateBattingAvg, schema.Float(0.5))
	line.MarkProcessed("2024-05-01")
	line.MarkProcessed("2024-05-02")
	return line
}

// TestBattingRowStructTags verifies parquet schema inference sees the
// expected columns.
func TestBattingRowStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(BattingSeasonRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"batter", "batter_team", "year",
		"plate_app", "at_bats", "hits", "home_runs",
		"batting_avg", "obp", "slg", "ops", "xba_per", "xwoba_per",
		"processed_dates",
	}
	for _, colName := range expectedColumns {
		_, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

// TestWriteBattingParquetRoundTrip writes batting lines and reads them
// back, checking nullable rate handling.
func TestWriteBattingParquetRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "batting.parquet")

	lines := []*schema.StatLine{battingLine("Alvarez, Yordan")}
	require.NoError(t, WriteBattingParquet(lines, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[BattingSeasonRow](file)
	defer func() { _ = reader.Close() }()

	readData := make([]BattingSeasonRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 1, n)

	row := readData[0]
	assert.Equal(t, "Alvarez, Yordan", row.Batter)
	assert.Equal(t, int32(2024), row.Year)
	assert.Equal(t, int32(5), row.PlateApp)
	require.NotNil(t, row.BattingAvg)
	assert.InDelta(t, 0.5, *row.BattingAvg, 0.0001)
	assert.Nil(t, row.OPS)
	assert.Equal(t, "2024-05-01,2024-05-02", row.ProcessedDates)
}

// TestWritePitchingParquet exercises the pitching row conversion.
func TestWritePitchingParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "pitching.parquet")

	line := schema.NewStatLine(schema.EntityKey{Player: "Cole, Gerrit", Team: "NYY", Year: 2024})
	line.AddCount(schema.CountOuts, 6)
	line.SetRate(schema.RateWHIP, schema.Float(1.5))
	require.NoError(t, WritePitchingParquet([]*schema.StatLine{line}, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[PitchingSeasonRow](file)
	defer func() { _ = reader.Close() }()

	readData := make([]PitchingSeasonRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 1, n)
	assert.Equal(t, int32(6), readData[0].Outs)
	require.NotNil(t, readData[0].WHIP)
	assert.InDelta(t, 1.5, *readData[0].WHIP, 0.0001)
}

// TestWriteZoneBinsParquet exercises the zone-bin row conversion.
func TestWriteZoneBinsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "zones.parquet")

	line := schema.NewStatLine(schema.EntityKey{Player: "Cole, Gerrit", Team: "NYY", Year: 2024, Zone: 5})
	line.AddCount(schema.CountZonePitches, 12)
	line.AddCount(schema.CountZoneWhiffs, 3)
	require.NoError(t, WriteZoneBinsParquet([]*schema.StatLine{line}, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[ZoneBinRow](file)
	defer func() { _ = reader.Close() }()

	readData := make([]ZoneBinRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 1, n)
	assert.Equal(t, int32(5), readData[0].Zone)
	assert.Equal(t, int32(12), readData[0].Pitches)
	assert.Equal(t, int32(3), readData[0].Whiffs)
}

// TestWriteParquetEmptyData verifies an empty export still writes a
// schema-bearing file.
func TestWriteParquetEmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteBattingParquet(nil, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// TestWriteParquetInvalidPath verifies path errors surface.
func TestWriteParquetInvalidPath(t *testing.T) {
	err := WriteBattingParquet([]*schema.StatLine{battingLine("x")}, "/nonexistent/directory/out.parquet")
	require.Error(t, err)
}
