package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
)

// StatStoreImpl implements the StatStore interface over database/sql.
type StatStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.StatStore = &StatStoreImpl{} // Compile-time check

// allProfiles lists the tables the store manages, used by GetStatus.
var allProfiles = []*schema.StatProfile{
	schema.BattingProfile, schema.PitchingProfile, schema.ZoneProfile,
}

// NewStatStore opens a stat store for the configured backend and brings
// its schema up to date. The none backend returns a store whose writes
// are silent no-ops and whose reads are empty.
func NewStatStore(backend schema.DatabaseBackend, connStr string) (contract.StatStore, error) {
	if backend == schema.NoneBackend {
		return &StatStoreImpl{db: nil, backend: backend}, nil
	}

	if err := Migrate(backend, connStr, -1); err != nil {
		return nil, fmt.Errorf("failed to prepare stat tables: %w", err)
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	return &StatStoreImpl{db: db, backend: backend}, nil
}

// keyColumns returns the identity column names for a profile.
func keyColumns(profile *schema.StatProfile) []string {
	cols := []string{profile.PlayerCol, profile.TeamCol, "year"}
	if profile.HasZoneKey() {
		cols = append(cols, "zone")
	}
	return cols
}

// dataColumns returns the non-key column names in storage order.
func dataColumns(profile *schema.StatProfile) []string {
	cols := make([]string, 0, len(profile.Counts)+len(profile.Rates)+1)
	for _, c := range profile.Counts {
		cols = append(cols, string(c))
	}
	for _, r := range profile.RateKeys() {
		cols = append(cols, string(r))
	}
	return append(cols, "processed_dates")
}

func keyValues(profile *schema.StatProfile, key schema.EntityKey) []any {
	vals := []any{key.Player, key.Team, key.Year}
	if profile.HasZoneKey() {
		vals = append(vals, key.Zone)
	}
	return vals
}

// dataValues flattens a line's counts, rates and date set in the same
// order dataColumns reports.
func dataValues(profile *schema.StatProfile, line *schema.StatLine) []any {
	vals := make([]any, 0, len(profile.Counts)+len(profile.Rates)+1)
	for _, c := range profile.Counts {
		vals = append(vals, line.Count(c))
	}
	for _, r := range profile.RateKeys() {
		if v, ok := line.RateValue(r); ok {
			vals = append(vals, v)
		} else {
			vals = append(vals, nil)
		}
	}
	return append(vals, strings.Join(line.SortedDates(), ","))
}

// quoteAll quotes a list of identifiers for the backend.
func (s *StatStoreImpl) quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = quoteIdent(c, s.backend)
	}
	return out
}

// keyPredicate renders "col1 = ? AND col2 = ?" for the profile's key,
// with placeholders numbered from offset.
func (s *StatStoreImpl) keyPredicate(profile *schema.StatProfile, offset int) string {
	cols := keyColumns(profile)
	marks := placeholders(s.backend, offset, len(cols))
	parts := make([]string, len(cols))
	for i := range cols {
		parts[i] = fmt.Sprintf("%s = %s", quoteIdent(cols[i], s.backend), marks[i])
	}
	return strings.Join(parts, " AND ")
}

// FetchStats returns the persisted lines for the given keys. Keys with
// no persisted row are absent from the result.
func (s *StatStoreImpl) FetchStats(ctx context.Context, profile *schema.StatProfile, keys []schema.EntityKey) (map[schema.EntityKey]*schema.StatLine, error) {
	out := make(map[schema.EntityKey]*schema.StatLine, len(keys))
	if s.db == nil {
		return out, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(s.quoteAll(dataColumns(profile)), ", "),
		quoteIdent(profile.Table, s.backend),
		s.keyPredicate(profile, 0))

	for _, key := range keys {
		line := schema.NewStatLine(key)
		row := s.db.QueryRowContext(ctx, query, keyValues(profile, key)...)
		if err := scanLineData(profile, row.Scan, line); err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, fmt.Errorf("failed to fetch %s row for %s: %w", profile.Name, key.Player, err)
		}
		out[key] = line
	}
	return out, nil
}

// FetchSeason returns one page of the persisted population for a season,
// ordered by identity columns.
func (s *StatStoreImpl) FetchSeason(ctx context.Context, profile *schema.StatProfile, year, offset, limit int) ([]*schema.StatLine, error) {
	if s.db == nil {
		return nil, nil
	}

	keyCols := s.quoteAll(keyColumns(profile))
	cols := append(keyCols, s.quoteAll(dataColumns(profile))...)
	marks := placeholders(s.backend, 0, 3)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s ORDER BY %s LIMIT %s OFFSET %s",
		strings.Join(cols, ", "),
		quoteIdent(profile.Table, s.backend),
		quoteIdent("year", s.backend), marks[0],
		strings.Join(keyCols, ", "),
		marks[1], marks[2])

	rows, err := s.db.QueryContext(ctx, query, year, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s season %d: %w", profile.Name, year, err)
	}
	defer func() { _ = rows.Close() }()

	var lines []*schema.StatLine
	for rows.Next() {
		line := schema.NewStatLine(schema.EntityKey{})
		keyDest := []any{&line.Key.Player, &line.Key.Team, &line.Key.Year}
		if profile.HasZoneKey() {
			keyDest = append(keyDest, &line.Key.Zone)
		}
		if err := scanLineData(profile, prefixScan(keyDest, rows.Scan), line); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", profile.Name, err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// scanFn abstracts row.Scan so single-row and multi-row reads share the
// column decoding below.
type scanFn func(dest ...any) error

// prefixScan prepends fixed destinations (the key columns) ahead of the
// data destinations.
func prefixScan(prefix []any, scan scanFn) scanFn {
	return func(dest ...any) error {
		return scan(append(prefix, dest...)...)
	}
}

// scanLineData decodes the data columns into a line.
func scanLineData(profile *schema.StatProfile, scan scanFn, line *schema.StatLine) error {
	counts := make([]sql.NullInt64, len(profile.Counts))
	rates := make([]sql.NullFloat64, len(profile.Rates))
	var dates sql.NullString

	dest := make([]any, 0, len(counts)+len(rates)+1)
	for i := range counts {
		dest = append(dest, &counts[i])
	}
	for i := range rates {
		dest = append(dest, &rates[i])
	}
	dest = append(dest, &dates)

	if err := scan(dest...); err != nil {
		return err
	}

	for i, c := range profile.Counts {
		line.Counts[c] = int(counts[i].Int64)
	}
	for i, r := range profile.RateKeys() {
		if rates[i].Valid {
			line.SetRate(r, schema.Float(rates[i].Float64))
		} else {
			line.SetRate(r, nil)
		}
	}
	if dates.Valid && dates.String != "" {
		for _, d := range strings.Split(dates.String, ",") {
			line.MarkProcessed(d)
		}
	}
	return nil
}

// UpsertStats inserts or fully replaces lines keyed by the profile's
// composite key.
func (s *StatStoreImpl) UpsertStats(ctx context.Context, profile *schema.StatProfile, rows []*schema.StatLine) error {
	if s.db == nil || len(rows) == 0 {
		return nil
	}

	keyCols := keyColumns(profile)
	dataCols := dataColumns(profile)
	allCols := append(append([]string{}, keyCols...), dataCols...)
	marks := placeholders(s.backend, 0, len(allCols))

	var conflict string
	switch s.backend {
	case schema.MySQLBackend:
		sets := make([]string, len(dataCols))
		for i, c := range dataCols {
			q := quoteIdent(c, s.backend)
			sets[i] = fmt.Sprintf("%s = VALUES(%s)", q, q)
		}
		conflict = fmt.Sprintf("ON DUPLICATE KEY UPDATE %s", strings.Join(sets, ", "))
	default: // SQLite and PostgreSQL
		sets := make([]string, len(dataCols))
		for i, c := range dataCols {
			q := quoteIdent(c, s.backend)
			sets[i] = fmt.Sprintf("%s = excluded.%s", q, q)
		}
		conflict = fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s",
			strings.Join(s.quoteAll(keyCols), ", "), strings.Join(sets, ", "))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) %s",
		quoteIdent(profile.Table, s.backend),
		strings.Join(s.quoteAll(allCols), ", "),
		strings.Join(marks, ", "),
		conflict)

	for _, line := range rows {
		args := append(keyValues(profile, line.Key), dataValues(profile, line)...)
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to upsert %s row for %s: %w", profile.Name, line.Key.Player, err)
		}
	}
	return nil
}

// UpdateRanks overwrites the rank columns for the given keys. A nil
// score clears the stored rank.
func (s *StatStoreImpl) UpdateRanks(ctx context.Context, profile *schema.StatProfile, ranks map[schema.EntityKey]map[schema.RateKey]*float64) error {
	if s.db == nil || len(profile.Ranked) == 0 {
		return nil
	}

	sets := make([]string, len(profile.Ranked))
	marks := placeholders(s.backend, 0, len(profile.Ranked))
	for i, stat := range profile.Ranked {
		sets[i] = fmt.Sprintf("%s = %s", quoteIdent(string(stat)+"_rank", s.backend), marks[i])
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		quoteIdent(profile.Table, s.backend),
		strings.Join(sets, ", "),
		s.keyPredicate(profile, len(profile.Ranked)))

	for key, scores := range ranks {
		args := make([]any, 0, len(profile.Ranked)+4)
		for _, stat := range profile.Ranked {
			if v := scores[stat]; v != nil {
				args = append(args, *v)
			} else {
				args = append(args, nil)
			}
		}
		args = append(args, keyValues(profile, key)...)
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update %s ranks for %s: %w", profile.Name, key.Player, err)
		}
	}
	return nil
}

// GetStatus reports backend health and per-table row counts.
func (s *StatStoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(s.backend),
		TableRows: make(map[string]int64),
	}
	if s.db == nil {
		return status, nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return status, nil
	}
	status.Connected = true

	for _, profile := range allProfiles {
		var n int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(profile.Table, s.backend))
		if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			return status, fmt.Errorf("failed to count %s rows: %w", profile.Table, err)
		}
		status.TableRows[profile.Table] = n
	}
	return status, nil
}

// Close closes the underlying connection.
func (s *StatStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
