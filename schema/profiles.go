package schema

// RateDef describes how one rate field is derived. Most rates are a
// plain counting-field ratio; composites like OPS provide a Func that
// reads other finalized rates instead.
type RateDef struct {
	Key RateKey
	Num CountKey
	Den CountKey

	// Func overrides the Num/Den ratio for derived composites. It runs
	// after all ratio-based rates have been finalized.
	Func func(*StatLine) *float64
}

// SprayPair binds a spray slice count to its percentage field. The five
// slices are mutually exclusive categories of one whole, so their
// percentages are recomputed from summed counts at merge time rather
// than weight-averaged.
type SprayPair struct {
	Count CountKey
	Rate  RateKey
}

// StatProfile drives the generic aggregation, merge, rank and storage
// machinery for one table. The legacy implementation repeated all of
// this logic per table with subtly different column sets; here each
// table is data.
type StatProfile struct {
	Name  string // profile identifier, used in logs
	Table string // persisted table name

	PlayerCol string // identity column for the player name
	TeamCol   string // identity column for the team code

	Counts []CountKey // ordered counting columns
	Rates  []RateDef  // ordered rate columns

	// Weights is the authoritative weight-field table: for each rate,
	// the counting field whose value decides how much influence each
	// side carries in a merge.
	Weights map[RateKey]CountKey

	// Spray lists slice/percentage pairs recomputed from counts.
	Spray []SprayPair

	// Ranked lists the rates that receive percentile rank columns, in
	// storage order. LowerIsBetter marks the rates where a lower raw
	// value earns a higher percentile.
	Ranked        []RateKey
	LowerIsBetter map[RateKey]bool
}

// RateKeys returns the ordered rate column names.
func (p *StatProfile) RateKeys() []RateKey {
	out := make([]RateKey, len(p.Rates))
	for i, r := range p.Rates {
		out[i] = r.Key
	}
	return out
}

// WeightFor returns the merge weight counting field for a rate. Rates
// absent from the table fall back to plate appearances, which is the
// broadest denominator a profile carries.
func (p *StatProfile) WeightFor(k RateKey) CountKey {
	if w, ok := p.Weights[k]; ok {
		return w
	}
	return CountPlateApp
}

// HasZoneKey reports whether the profile keys rows by zone id.
func (p *StatProfile) HasZoneKey() bool {
	return p.Name == ZoneProfile.Name
}

func ratio(key RateKey, num, den CountKey) RateDef {
	return RateDef{Key: key, Num: num, Den: den}
}

// sumRates derives a composite as the sum of two finalized rates,
// nil when either side is nil.
func sumRates(a, b RateKey) func(*StatLine) *float64 {
	return func(s *StatLine) *float64 {
		av, aok := s.RateValue(a)
		bv, bok := s.RateValue(b)
		if !aok || !bok {
			return nil
		}
		v := av + bv
		return &v
	}
}

// diffRates derives a composite as the difference of two finalized
// rates, nil when either side is nil.
func diffRates(a, b RateKey) func(*StatLine) *float64 {
	return func(s *StatLine) *float64 {
		av, aok := s.RateValue(a)
		bv, bok := s.RateValue(b)
		if !aok || !bok {
			return nil
		}
		v := av - bv
		if v < 0 {
			v = 0
		}
		return &v
	}
}

var sharedSpray = []SprayPair{
	{CountSprayFarLeft, RateSprayFarLeft},
	{CountSprayLeft, RateSprayLeft},
	{CountSprayCenter, RateSprayCenter},
	{CountSprayRight, RateSprayRight},
	{CountSprayFarRight, RateSprayFarRight},
}

// BattingProfile keys rows by (Batter, BatterTeam, Year).
var BattingProfile = &StatProfile{
	Name:      "batting",
	Table:     "trackstat_batting",
	PlayerCol: "batter",
	TeamCol:   "batter_team",
	Counts: []CountKey{
		CountPlateApp, CountAtBats, CountHits, CountSingles, CountDoubles,
		CountTriples, CountHomeRuns, CountWalks, CountHitByPitch,
		CountSacrifices, CountStrikeouts, CountBattedBalls, CountGroundBalls,
		CountHardHits, CountSweetSpots, CountBarrels, CountInZonePitches,
		CountOutZonePitches, CountInZoneWhiffs, CountChases,
		CountSprayFarLeft, CountSprayLeft, CountSprayCenter, CountSprayRight,
		CountSprayFarRight,
	},
	Rates: []RateDef{
		ratio(RateBattingAvg, CountHits, CountAtBats),
		{Key: RateOnBase}, // computed by the aggregator: (H+BB+HBP)/PA
		{Key: RateSlugging},
		{Key: RateOPS, Func: sumRates(RateOnBase, RateSlugging)},
		{Key: RateISO, Func: diffRates(RateSlugging, RateBattingAvg)},
		ratio(RateStrikeout, CountStrikeouts, CountPlateApp),
		ratio(RateWalk, CountWalks, CountPlateApp),
		ratio(RateWhiff, CountInZoneWhiffs, CountInZonePitches),
		ratio(RateChase, CountChases, CountOutZonePitches),
		ratio(RateHardHit, CountHardHits, CountBattedBalls),
		ratio(RateSweetSpot, CountSweetSpots, CountBattedBalls),
		{Key: RateAvgExitVelo}, // mean over batted balls
		ratio(RateGroundBall, CountGroundBalls, CountBattedBalls),
		{Key: RateXBA},
		{Key: RateXSLG},
		{Key: RateXWOBA},
		ratio(RateBarrel, CountBarrels, CountBattedBalls),
		// Spray percentages are recomputed from the five slice counts
		// whenever the counts change, not carried as ratios.
		{Key: RateSprayFarLeft}, {Key: RateSprayLeft}, {Key: RateSprayCenter},
		{Key: RateSprayRight}, {Key: RateSprayFarRight},
	},
	Weights: map[RateKey]CountKey{
		RateBattingAvg:  CountAtBats,
		RateOnBase:      CountPlateApp,
		RateSlugging:    CountAtBats,
		RateOPS:         CountPlateApp,
		RateISO:         CountAtBats,
		RateStrikeout:   CountPlateApp,
		RateWalk:        CountPlateApp,
		RateWhiff:       CountInZonePitches,
		RateChase:       CountOutZonePitches,
		RateHardHit:     CountBattedBalls,
		RateSweetSpot:   CountBattedBalls,
		RateAvgExitVelo: CountBattedBalls,
		RateGroundBall:  CountBattedBalls,
		RateXBA:         CountAtBats,
		RateXSLG:        CountAtBats,
		RateXWOBA:       CountPlateApp,
		RateBarrel:      CountBattedBalls,
	},
	Spray: sharedSpray,
	Ranked: []RateKey{
		RateBattingAvg, RateOnBase, RateSlugging, RateOPS, RateISO,
		RateStrikeout, RateWalk, RateWhiff, RateChase, RateHardHit,
		RateSweetSpot, RateAvgExitVelo, RateXBA, RateXSLG, RateXWOBA,
		RateBarrel,
	},
	LowerIsBetter: map[RateKey]bool{
		// For batters a lower strikeout, whiff or chase rate ranks higher.
		RateStrikeout: true,
		RateWhiff:     true,
		RateChase:     true,
	},
}

// PitchingProfile keys rows by (Pitcher, PitcherTeam, Year). The rate
// set mirrors batting with contact-against semantics plus WHIP and
// average fastball velocity.
var PitchingProfile = &StatProfile{
	Name:      "pitching",
	Table:     "trackstat_pitching",
	PlayerCol: "pitcher",
	TeamCol:   "pitcher_team",
	Counts: []CountKey{
		CountPlateApp, CountAtBats, CountHits, CountSingles, CountDoubles,
		CountTriples, CountHomeRuns, CountWalks, CountHitByPitch,
		CountSacrifices, CountStrikeouts, CountOuts, CountBattedBalls,
		CountGroundBalls, CountHardHits, CountSweetSpots, CountBarrels,
		CountInZonePitches, CountOutZonePitches, CountInZoneWhiffs,
		CountChases, CountFastballs,
		CountSprayFarLeft, CountSprayLeft, CountSprayCenter, CountSprayRight,
		CountSprayFarRight,
	},
	Rates: []RateDef{
		ratio(RateStrikeout, CountStrikeouts, CountPlateApp),
		ratio(RateWalk, CountWalks, CountPlateApp),
		{Key: RateWHIP}, // (hits+walks) per inning, innings = outs/3
		ratio(RateWhiff, CountInZoneWhiffs, CountInZonePitches),
		ratio(RateChase, CountChases, CountOutZonePitches),
		ratio(RateHardHit, CountHardHits, CountBattedBalls),
		ratio(RateSweetSpot, CountSweetSpots, CountBattedBalls),
		{Key: RateAvgExitVelo},
		{Key: RateAvgFBVelo}, // mean release speed over fastballs
		ratio(RateGroundBall, CountGroundBalls, CountBattedBalls),
		{Key: RateXBA},
		{Key: RateXSLG},
		{Key: RateXWOBA},
		ratio(RateBarrel, CountBarrels, CountBattedBalls),
		{Key: RateSprayFarLeft}, {Key: RateSprayLeft}, {Key: RateSprayCenter},
		{Key: RateSprayRight}, {Key: RateSprayFarRight},
	},
	Weights: map[RateKey]CountKey{
		RateStrikeout:   CountPlateApp,
		RateWalk:        CountPlateApp,
		RateWHIP:        CountOuts,
		RateWhiff:       CountInZonePitches,
		RateChase:       CountOutZonePitches,
		RateHardHit:     CountBattedBalls,
		RateSweetSpot:   CountBattedBalls,
		RateAvgExitVelo: CountBattedBalls,
		RateAvgFBVelo:   CountFastballs,
		RateGroundBall:  CountBattedBalls,
		RateXBA:         CountAtBats,
		RateXSLG:        CountAtBats,
		RateXWOBA:       CountPlateApp,
		RateBarrel:      CountBattedBalls,
	},
	Spray: sharedSpray,
	Ranked: []RateKey{
		RateStrikeout, RateWalk, RateWHIP, RateWhiff, RateChase,
		RateHardHit, RateSweetSpot, RateAvgExitVelo, RateAvgFBVelo,
		RateGroundBall, RateXBA, RateXSLG, RateXWOBA, RateBarrel,
	},
	LowerIsBetter: map[RateKey]bool{
		// For pitchers lower contact quality against ranks higher.
		RateWalk:        true,
		RateWHIP:        true,
		RateHardHit:     true,
		RateSweetSpot:   true,
		RateAvgExitVelo: true,
		RateXBA:         true,
		RateXSLG:        true,
		RateXWOBA:       true,
		RateBarrel:      true,
		RateChase:       false,
		RateStrikeout:   false,
		RateWhiff:       false,
		RateGroundBall:  false,
		RateAvgFBVelo:   false,
	},
}

// ZoneProfile keys rows by (Player, Team, Year, ZoneID). Zone bins carry
// only counts, so merging is purely additive and nothing is ranked.
var ZoneProfile = &StatProfile{
	Name:      "zones",
	Table:     "trackstat_zone_bins",
	PlayerCol: "player",
	TeamCol:   "team",
	Counts: []CountKey{
		CountZonePitches, CountZoneSwings, CountZoneWhiffs, CountZoneInPlay,
		CountFastballs, CountZoneVsLeft, CountZoneVsRight,
	},
	Rates:         nil,
	Weights:       map[RateKey]CountKey{},
	Ranked:        nil,
	LowerIsBetter: map[RateKey]bool{},
}
