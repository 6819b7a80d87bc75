package schema

// LeaderRow is one entry of a season leaderboard for a single stat.
type LeaderRow struct {
	Rank   int      `json:"rank"`
	Player string   `json:"player"`
	Team   string   `json:"team"`
	Year   int      `json:"year"`
	Stat   string   `json:"stat"`
	Value  float64  `json:"value"`
	Score  *float64 `json:"score,omitempty"`
}
