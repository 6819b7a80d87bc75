package core

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/dugoutlab/trackstat/internal/contract"
)

// DefaultXBAMean is returned by every lookup when no grid is loaded.
const DefaultXBAMean = 0.25

// Direction bins are quantized in multiples of 5 degrees, so one
// neighborhood step on that axis is 5.
const dirBinStep = 5

// GridKey addresses one cell of the precomputed expected-batting-average
// grid: integer exit velocity, integer launch angle, direction rounded
// to the nearest multiple of 5.
type GridKey struct {
	EV  int
	LA  int
	Dir int
}

// ExpectedGrid is the precomputed (ev, la, dir) -> xBA lookup. Loaded
// once at startup and read-only thereafter.
type ExpectedGrid struct {
	cells map[GridKey]float64
	evs   []int
	las   []int
	dirs  []int
	mean  float64
}

// NewExpectedGrid builds a grid from cell values. An empty or nil map
// yields a grid that always answers DefaultXBAMean.
func NewExpectedGrid(cells map[GridKey]float64) *ExpectedGrid {
	g := &ExpectedGrid{cells: cells}
	if len(cells) == 0 {
		return g
	}

	evSet := make(map[int]struct{})
	laSet := make(map[int]struct{})
	dirSet := make(map[int]struct{})
	var sum float64
	for k, v := range cells {
		evSet[k.EV] = struct{}{}
		laSet[k.LA] = struct{}{}
		dirSet[k.Dir] = struct{}{}
		sum += v
	}
	g.mean = sum / float64(len(cells))
	g.evs = sortedKeys(evSet)
	g.las = sortedKeys(laSet)
	g.dirs = sortedKeys(dirSet)
	return g
}

// LoadExpectedGrid reads a grid CSV with columns ev,la,dir,xba. A
// missing or unreadable file degrades to the empty grid; the caller is
// expected to have logged the path it tried.
func LoadExpectedGrid(path string) (*ExpectedGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewExpectedGrid(nil), fmt.Errorf("failed to open xBA grid: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return NewExpectedGrid(nil), fmt.Errorf("failed to parse xBA grid %s: %w", path, err)
	}

	cells := make(map[GridKey]float64)
	for i, rec := range records {
		if i == 0 || len(rec) < 4 {
			continue // header or short row
		}
		ev, err1 := strconv.Atoi(rec[0])
		la, err2 := strconv.Atoi(rec[1])
		dir, err3 := strconv.Atoi(rec[2])
		xba, err4 := strconv.ParseFloat(rec[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		cells[GridKey{EV: ev, LA: la, Dir: dir}] = xba
	}
	return NewExpectedGrid(cells), nil
}

// Loaded reports whether the grid has any cells.
func (g *ExpectedGrid) Loaded() bool {
	return len(g.cells) > 0
}

// Mean returns the global grid mean, or DefaultXBAMean when empty.
func (g *ExpectedGrid) Mean() float64 {
	if !g.Loaded() {
		return DefaultXBAMean
	}
	return g.mean
}

// LookupXBA returns the expected batting average for a binned batted
// ball. Resolution order: exact cell, then the 3x3x3 neighborhood
// around the nearest bin on each axis, then the global grid mean. It
// never fails; absence of data always degrades to a numeric default.
func (g *ExpectedGrid) LookupXBA(evBin, laBin, dirBin int) float64 {
	if !g.Loaded() {
		return DefaultXBAMean
	}

	if v, ok := g.cells[GridKey{EV: evBin, LA: laBin, Dir: dirBin}]; ok {
		return v
	}

	ev := nearestBin(g.evs, evBin)
	la := nearestBin(g.las, laBin)
	dir := nearestBin(g.dirs, dirBin)

	var sum float64
	var n int
	for de := -1; de <= 1; de++ {
		for dl := -1; dl <= 1; dl++ {
			for dd := -dirBinStep; dd <= dirBinStep; dd += dirBinStep {
				if v, ok := g.cells[GridKey{EV: ev + de, LA: la + dl, Dir: dir + dd}]; ok {
					sum += v
					n++
				}
			}
		}
	}
	if n == 0 {
		return g.mean
	}
	return sum / float64(n)
}

// nearestBin finds the closest value in a sorted unique list, breaking
// ties toward the lower value.
func nearestBin(sorted []int, v int) int {
	i := sort.SearchInts(sorted, v)
	if i == 0 {
		return sorted[0]
	}
	if i == len(sorted) {
		return sorted[len(sorted)-1]
	}
	lo, hi := sorted[i-1], sorted[i]
	if v-lo <= hi-v {
		return lo
	}
	return hi
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// BinBattedBall quantizes raw contact features into grid bins. Exit
// velocity and launch angle round to the nearest integer; direction is
// mirrored for left-handed batters and rounded to the nearest multiple
// of 5.
func BinBattedBall(exitSpeed, angle, direction float64, side string) (evBin, laBin, dirBin int) {
	if side == "L" {
		direction = -direction
	}
	return roundInt(exitSpeed), roundInt(angle), roundToStep(direction, dirBinStep)
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func roundToStep(v float64, step int) int {
	return roundInt(v/float64(step)) * step
}

var _ contract.BattedBallScorer = (*LinearScorer)(nil) // Compile-time check
