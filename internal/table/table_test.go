package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRowAccessors covers trimmed strings, float parsing and ragged rows.
func TestRowAccessors(t *testing.T) {
	tbl := New(
		[]string{"Batter", "ExitSpeed", "Angle"},
		[][]string{
			{"  Soto, Juan  ", "95.3", "20"},
			{"Betts, Mookie", "not-a-number", ""},
			{"Short, Row"},
		},
	)

	t.Run("trimmed string", func(t *testing.T) {
		assert.Equal(t, "Soto, Juan", tbl.Row(0).Str("Batter"))
	})

	t.Run("float parse", func(t *testing.T) {
		v, ok := tbl.Row(0).Float("ExitSpeed")
		assert.True(t, ok)
		assert.InDelta(t, 95.3, v, 0.001)
	})

	t.Run("malformed float", func(t *testing.T) {
		_, ok := tbl.Row(1).Float("ExitSpeed")
		assert.False(t, ok)
	})

	t.Run("empty cell", func(t *testing.T) {
		_, ok := tbl.Row(1).Float("Angle")
		assert.False(t, ok)
	})

	t.Run("ragged row", func(t *testing.T) {
		assert.Equal(t, "", tbl.Row(2).Str("Angle"))
	})

	t.Run("missing column", func(t *testing.T) {
		assert.Equal(t, "", tbl.Row(0).Str("Nope"))
		_, ok := tbl.Row(0).Float("Nope")
		assert.False(t, ok)
	})
}

// TestColumnChecks verifies presence helpers.
func TestColumnChecks(t *testing.T) {
	tbl := New([]string{"Batter", "PitchCall"}, nil)
	assert.True(t, tbl.HasColumns("Batter", "PitchCall"))
	assert.False(t, tbl.HasColumns("Batter", "ExitSpeed"))
	assert.Equal(t, []string{"ExitSpeed"}, tbl.MissingColumns("Batter", "ExitSpeed"))
}

// TestLoad reads a small CSV from disk including a ragged line.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "20240501-Field-1.csv")
	content := "Batter,ExitSpeed\nSoto, 95.3\nBetts\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Soto", tbl.Row(0).Str("Batter"))

	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
