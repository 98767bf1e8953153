package metrics

// RankStats captures the work done to satisfy a recommendation request.
type RankStats struct {
	Candidates int   `json:"candidates"`
	Returned   int   `json:"returned"`
	Workers    int   `json:"workers"`
	DurationMs int64 `json:"durationMs"`
}
