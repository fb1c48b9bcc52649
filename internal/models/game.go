package models

// SizeEntry is one row of the bundled size database
type SizeEntry struct {
	ID     string  `json:"-"`
	Name   string  `json:"name"`
	SizeGB float64 `json:"size_gb"`
}

// GameWithSize is a matched game in the ranked breakdown
type GameWithSize struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

// SizeResult is the aggregated library footprint returned by /api/calculate-size
type SizeResult struct {
	TotalSizeGB      float64        `json:"total_size_gb"`
	TotalSizeDisplay string         `json:"total_size_display"`
	TotalGames       int            `json:"total_games"`
	Games            []GameWithSize `json:"games"`
}
