// Package core implements the aggregation, merge and ranking engine for
// TrackMan pitch-event exports.
package core

// Plate geometry for the 13-zone classifier, in feet. The inner
// rectangle is split into a 3x3 grid; everything outside maps to one of
// four outer quadrants.
const (
	zoneHalfWidth = 0.83
	zoneBottom    = 1.50
	zoneTop       = 3.50
)

// Grid edges for the inner rectangle. Rows count bottom-up so that
// cell 1 is the low-inside corner for a right-handed view.
var (
	zoneXEdges = [4]float64{-zoneHalfWidth, -zoneHalfWidth / 3, zoneHalfWidth / 3, zoneHalfWidth}
	zoneYEdges = [4]float64{zoneBottom, zoneBottom + (zoneTop-zoneBottom)/3, zoneBottom + 2*(zoneTop-zoneBottom)/3, zoneTop}
)

// Outer quadrant zone ids.
const (
	zoneOuterTopLeft     = 10
	zoneOuterTopRight    = 11
	zoneOuterBottomLeft  = 12
	zoneOuterBottomRight = 13
)

// ZoneResult is the classification of one plate-coordinate point.
type ZoneResult struct {
	ZoneID     int
	InZone     bool
	Row        int    // 1-3 bottom-up, 0 for outer zones
	Col        int    // 1-3 left-right, 0 for outer zones
	Cell       int    // (row-1)*3 + col, 0 for outer zones
	OuterLabel string // OTL/OTR/OBL/OBR, "NA" for inner zones
}

// ClassifyZone maps a plate location (x = side, y = height) to one of 13
// zones. It is total over finite inputs: every point classifies.
func ClassifyZone(x, y float64) ZoneResult {
	inside := x >= -zoneHalfWidth && x <= zoneHalfWidth && y >= zoneBottom && y <= zoneTop
	if inside {
		col := bucket(x, zoneXEdges)
		row := bucket(y, zoneYEdges)
		cell := (row-1)*3 + col
		return ZoneResult{
			ZoneID:     cell,
			InZone:     true,
			Row:        row,
			Col:        col,
			Cell:       cell,
			OuterLabel: "NA",
		}
	}

	// Quadrant relative to the rectangle center. A point exactly on the
	// vertical midpoint falls to the bottom quadrants; a point exactly
	// on x=0 falls to the right quadrants.
	mid := (zoneBottom + zoneTop) / 2
	top := y > mid
	left := x < 0

	switch {
	case top && left:
		return ZoneResult{ZoneID: zoneOuterTopLeft, OuterLabel: "OTL"}
	case top && !left:
		return ZoneResult{ZoneID: zoneOuterTopRight, OuterLabel: "OTR"}
	case !top && left:
		return ZoneResult{ZoneID: zoneOuterBottomLeft, OuterLabel: "OBL"}
	default:
		return ZoneResult{ZoneID: zoneOuterBottomRight, OuterLabel: "OBR"}
	}
}

// bucket locates v between edges with left-inclusive bucketing and
// clamps the result to [1,3].
func bucket(v float64, edges [4]float64) int {
	idx := 1
	for i := 1; i < 3; i++ {
		if v >= edges[i] {
			idx = i + 1
		}
	}
	return idx
}
