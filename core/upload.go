package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/internal/table"
	"github.com/dugoutlab/trackstat/schema"
)

// fileResult carries the partial aggregates computed from one source
// file. Partials are independent per file; only the fold into shared
// state is serialized.
type fileResult struct {
	source   string
	batting  map[schema.EntityKey]*schema.StatLine
	pitching map[schema.EntityKey]*schema.StatLine
	zones    map[schema.EntityKey]*schema.StatLine
	err      error
}

// UploadResult summarizes one upload run for logging and tests.
type UploadResult struct {
	Files        int
	SkippedFiles int
	BattingRows  int
	PitchingRows int
	ZoneRows     int
}

// Upload processes every CSV export under the configured data directory:
// aggregate per file on a worker pool, fold the partials at a single
// accumulation point, then merge with persisted state and upsert in
// bounded batches. The run is best effort: a bad file or a failed batch
// is logged and skipped, never fatal for the whole run.
func Upload(ctx context.Context, store contract.StatStore, cfg *contract.Config, models *Models) (*UploadResult, error) {
	files, err := listEventFiles(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan data directory: %w", err)
	}
	res := &UploadResult{Files: len(files)}
	if len(files) == 0 {
		contract.Log().Infof("no event files found under %s", cfg.DataDir)
		return res, nil
	}
	contract.Log().Infof("processing %d event files with %d workers", len(files), cfg.Workers)

	jobs := make(chan string)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Go(func() {
			for source := range jobs {
				results <- aggregateFile(source, models)
			}
		})
	}
	go func() {
		for _, f := range files {
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// Single accumulation point: folding partials here keeps the
	// merge-and-upsert step serialized per entity key.
	batting := make(map[schema.EntityKey]*schema.StatLine)
	pitching := make(map[schema.EntityKey]*schema.StatLine)
	zones := make(map[schema.EntityKey]*schema.StatLine)

	for r := range results {
		if r.err != nil {
			contract.LogWarn(fmt.Sprintf("skipping %s", filepath.Base(r.source)), r.err)
			res.SkippedFiles++
			continue
		}
		foldPartials(schema.BattingProfile, batting, r.batting)
		foldPartials(schema.PitchingProfile, pitching, r.pitching)
		foldPartials(schema.ZoneProfile, zones, r.zones)
	}

	res.BattingRows = len(batting)
	res.PitchingRows = len(pitching)
	res.ZoneRows = len(zones)

	persistAggregates(ctx, store, schema.BattingProfile, batting, cfg.BatchSize)
	persistAggregates(ctx, store, schema.PitchingProfile, pitching, cfg.BatchSize)
	persistAggregates(ctx, store, schema.ZoneProfile, zones, cfg.BatchSize)

	contract.Log().Infof("upload complete: %d files (%d skipped), %d batting, %d pitching, %d zone rows",
		res.Files, res.SkippedFiles, res.BattingRows, res.PitchingRows, res.ZoneRows)
	return res, nil
}

// aggregateFile runs all three aggregation passes over one export.
func aggregateFile(source string, models *Models) fileResult {
	r := fileResult{source: source}

	tbl, err := table.Load(source)
	if err != nil {
		r.err = err
		return r
	}

	if r.batting, err = AggregateBatting(tbl, source, models); err != nil {
		r.err = err
		return r
	}
	if r.pitching, err = AggregatePitching(tbl, source, models); err != nil {
		r.err = err
		return r
	}
	if r.zones, err = AggregateZoneBins(tbl, source); err != nil {
		r.err = err
		return r
	}
	return r
}

// foldPartials merges one file's partial map into the run accumulator.
func foldPartials(profile *schema.StatProfile, acc, partial map[schema.EntityKey]*schema.StatLine) {
	for key, line := range partial {
		acc[key] = Combine(profile, acc[key], line)
	}
}

// persistAggregates merges the run accumulator with persisted state and
// upserts, in key batches. A failed batch logs a sample key and the loop
// continues with the next batch.
func persistAggregates(ctx context.Context, store contract.StatStore, profile *schema.StatProfile, lines map[schema.EntityKey]*schema.StatLine, batchSize int) {
	if len(lines) == 0 {
		return
	}

	keys := make([]schema.EntityKey, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].Player != keys[b].Player {
			return keys[a].Player < keys[b].Player
		}
		if keys[a].Team != keys[b].Team {
			return keys[a].Team < keys[b].Team
		}
		return keys[a].Zone < keys[b].Zone
	})

	for start := 0; start < len(keys); start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		existing, err := store.FetchStats(ctx, profile, batch)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("%s fetch batch skipped (sample %v)", profile.Name, batch[0]), err)
			continue
		}

		rows := make([]*schema.StatLine, 0, len(batch))
		for _, k := range batch {
			rows = append(rows, Combine(profile, existing[k], lines[k]))
		}
		if err := store.UpsertStats(ctx, profile, rows); err != nil {
			contract.LogWarn(fmt.Sprintf("%s upsert batch skipped (sample %v)", profile.Name, batch[0]), err)
		}
	}
}

// listEventFiles returns the CSV exports under dir, sorted by name.
func listEventFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
