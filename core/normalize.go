package core

import (
	"strings"

	"github.com/dugoutlab/trackstat/schema"
)

// Strike-zone bounds used by the in-zone/chase counting pass. These are
// intentionally wider than the classifier rectangle: they follow the
// umpire-calibrated band the legacy tables were built on.
const (
	strikeZoneMinHeight = 1.77
	strikeZoneMaxHeight = 3.55
	strikeZoneMinSide   = -0.86
	strikeZoneMaxSide   = 0.86
)

// pitchTypeAliases maps lowercased, trimmed tagger spellings to the
// canonical pitch types. Unknown spellings normalize to Other.
var pitchTypeAliases = map[string]schema.PitchType{
	"fastball":          schema.FourSeam,
	"four-seam":         schema.FourSeam,
	"fourseam":          schema.FourSeam,
	"fourseamfastball":  schema.FourSeam,
	"four-seamfastball": schema.FourSeam,
	"4-seam":            schema.FourSeam,
	"4seam":             schema.FourSeam,
	"ff":                schema.FourSeam,

	"sinker":   schema.Sinker,
	"two-seam": schema.Sinker,
	"twoseam":  schema.Sinker,
	"2-seam":   schema.Sinker,
	"2seam":    schema.Sinker,
	"si":       schema.Sinker,
	"ft":       schema.Sinker,

	"slider":  schema.Slider,
	"sweeper": schema.Slider,
	"sl":      schema.Slider,

	"curveball":    schema.Curveball,
	"curve":        schema.Curveball,
	"knucklecurve": schema.Curveball,
	"cu":           schema.Curveball,
	"kc":           schema.Curveball,

	"changeup": schema.Changeup,
	"change":   schema.Changeup,
	"ch":       schema.Changeup,

	"cutter": schema.Cutter,
	"fc":     schema.Cutter,

	"splitter": schema.Splitter,
	"split":    schema.Splitter,
	"fs":       schema.Splitter,
}

// NormalizePitchType canonicalizes a free-text pitch tag. Matching is
// case-insensitive on the trimmed value with internal whitespace
// removed; anything unmatched is Other.
func NormalizePitchType(s string) schema.PitchType {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "")
	if pt, ok := pitchTypeAliases[key]; ok {
		return pt
	}
	return schema.OtherPitch
}

// IsFastball reports whether a canonical pitch type counts toward
// fastball velocity aggregates.
func IsFastball(pt schema.PitchType) bool {
	return pt == schema.FourSeam || pt == schema.Sinker
}

// NormalizeSide reduces a handedness tag to "L" or "R". Empty or
// unrecognized values default to "R", a lossy default kept to satisfy
// the downstream non-null constraint.
func NormalizeSide(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.HasPrefix(s, "L") {
		return "L"
	}
	return "R"
}

// IsInStrikeZone reports whether a plate location falls inside the fixed
// strike-zone band.
func IsInStrikeZone(height, side float64) bool {
	return height >= strikeZoneMinHeight && height <= strikeZoneMaxHeight &&
		side >= strikeZoneMinSide && side <= strikeZoneMaxSide
}
