package core

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dugoutlab/trackstat/internal/contract"
)

// LinearScorer predicts an expected outcome as a clamped linear
// combination of contact features. Model files are small JSON blobs
// exported from the offline fitting pipeline.
type LinearScorer struct {
	Name      string  `json:"name"`
	Intercept float64 `json:"intercept"`
	EVWeight  float64 `json:"ev_weight"`
	LAWeight  float64 `json:"la_weight"`
	DirWeight float64 `json:"dir_weight"`
	Floor     float64 `json:"floor"`
	Ceiling   float64 `json:"ceiling"`
}

// LoadLinearScorer reads a model file from disk.
func LoadLinearScorer(path string) (*LinearScorer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	var s LinearScorer
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	if s.Ceiling <= s.Floor {
		return nil, fmt.Errorf("model %s has empty output range", path)
	}
	return &s, nil
}

// Predict scores one batch of batted balls. Direction is mirrored for
// left-handed batters so both sides share one spray frame.
func (s *LinearScorer) Predict(inputs []contract.BattedBallInput) ([]float64, error) {
	out := make([]float64, len(inputs))
	for i, in := range inputs {
		dir := in.Direction
		if in.BatterSide == contract.SideLeft {
			dir = -dir
		}
		v := s.Intercept + s.EVWeight*in.ExitSpeed + s.LAWeight*in.Angle + s.DirWeight*dir
		if v < s.Floor {
			v = s.Floor
		}
		if v > s.Ceiling {
			v = s.Ceiling
		}
		out[i] = v
	}
	return out, nil
}

// unavailableScorer stands in when no model file was configured or the
// configured one failed to load. Every Predict call fails, which the
// aggregator turns into zero contributions for the affected rates.
type unavailableScorer struct {
	reason string
}

func (u *unavailableScorer) Predict(_ []contract.BattedBallInput) ([]float64, error) {
	return nil, fmt.Errorf("scorer unavailable: %s", u.reason)
}

var _ contract.BattedBallScorer = (*unavailableScorer)(nil) // Compile-time check

// Models bundles the expected-outcome components the aggregation passes
// consume. Each member is always non-nil; missing artifacts degrade to
// defaults (grid mean, failing scorers) rather than nil checks at every
// call site.
type Models struct {
	Grid  *ExpectedGrid
	XSLG  contract.BattedBallScorer
	XWOBA contract.BattedBallScorer
}

// LoadModels assembles the model bundle from configured paths. Any
// artifact that cannot load is reported and replaced with its degraded
// default so an upload run never aborts over expected-stat inputs.
func LoadModels(gridPath, xslgPath, xwobaPath string) *Models {
	m := &Models{
		Grid:  NewExpectedGrid(nil),
		XSLG:  &unavailableScorer{reason: "no xSLG model configured"},
		XWOBA: &unavailableScorer{reason: "no xwOBA model configured"},
	}

	if gridPath != "" {
		grid, err := LoadExpectedGrid(gridPath)
		if err != nil {
			contract.LogWarn("using default xBA mean", err)
		}
		m.Grid = grid
	}
	if xslgPath != "" {
		if s, err := LoadLinearScorer(xslgPath); err != nil {
			contract.LogWarn("xSLG model unavailable", err)
			m.XSLG = &unavailableScorer{reason: err.Error()}
		} else {
			m.XSLG = s
		}
	}
	if xwobaPath != "" {
		if s, err := LoadLinearScorer(xwobaPath); err != nil {
			contract.LogWarn("xwOBA model unavailable", err)
			m.XWOBA = &unavailableScorer{reason: err.Error()}
		} else {
			m.XWOBA = s
		}
	}
	return m
}
