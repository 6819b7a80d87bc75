package core

import (
	"github.com/dugoutlab/trackstat/schema"
)

// Combine merges a freshly aggregated line into a previously persisted
// one for the same entity key. It is pure: neither input is mutated, and
// folding a sequence of partials in any per-file order converges to the
// same result as one batch aggregation, up to float rounding.
//
// Counting fields sum. Rate fields are weight-averaged using each side's
// own pre-merge denominator count. Spray percentages are recomputed from
// the summed slice counts. A line whose processed-date markers are all
// already present on the existing side is a duplicate and merges as a
// no-op.
func Combine(profile *schema.StatProfile, existing, incoming *schema.StatLine) *schema.StatLine {
	if incoming == nil {
		if existing == nil {
			return nil
		}
		return existing.Clone()
	}
	if existing == nil || existing.IsEmpty() {
		return incoming.Clone()
	}
	if len(incoming.ProcessedDates) > 0 && existing.CoversDates(incoming.ProcessedDates) {
		return existing.Clone()
	}

	out := schema.NewStatLine(existing.Key)
	for _, k := range profile.Counts {
		out.Counts[k] = existing.Count(k) + incoming.Count(k)
	}
	for d := range existing.ProcessedDates {
		out.ProcessedDates[d] = struct{}{}
	}
	for d := range incoming.ProcessedDates {
		out.ProcessedDates[d] = struct{}{}
	}

	sprayRates := make(map[schema.RateKey]struct{}, len(profile.Spray))
	for _, sp := range profile.Spray {
		sprayRates[sp.Rate] = struct{}{}
	}

	for _, def := range profile.Rates {
		if _, isSpray := sprayRates[def.Key]; isSpray {
			continue
		}
		out.SetRate(def.Key, weightedRate(profile, def.Key, existing, incoming))
	}

	if len(profile.Spray) > 0 {
		total := 0
		for _, sp := range profile.Spray {
			total += out.Count(sp.Count)
		}
		for _, sp := range profile.Spray {
			out.SetRate(sp.Rate, schema.Ratio(out.Count(sp.Count), total))
		}
	}
	return out
}

// weightedRate averages one rate across both sides. A side with a nil
// value contributes no weight; a combined weight of zero keeps the rate
// undefined; the result is floored at zero.
func weightedRate(profile *schema.StatProfile, key schema.RateKey, existing, incoming *schema.StatLine) *float64 {
	weightField := profile.WeightFor(key)

	ev, eok := existing.RateValue(key)
	nv, nok := incoming.RateValue(key)

	var ew, nw float64
	if eok {
		ew = float64(existing.Count(weightField))
	}
	if nok {
		nw = float64(incoming.Count(weightField))
	}
	if ew+nw == 0 {
		return nil
	}
	return schema.ClampNonNegative(schema.Float((ev*ew + nv*nw) / (ew + nw)))
}

// CombineAll folds a map of freshly aggregated lines into the persisted
// state fetched for the same keys. Keys absent from existing pass
// through as first writes.
func CombineAll(profile *schema.StatProfile, existing, incoming map[schema.EntityKey]*schema.StatLine) map[schema.EntityKey]*schema.StatLine {
	out := make(map[schema.EntityKey]*schema.StatLine, len(incoming))
	for key, line := range incoming {
		out[key] = Combine(profile, existing[key], line)
	}
	return out
}
