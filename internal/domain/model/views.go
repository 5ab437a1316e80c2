package model

// Summary carries the headline metrics of the data set.
type Summary struct {
	TotalCompetitors int `json:"total_competitors"`
	Countries        int `json:"countries"`
	MaxPoints        int `json:"max_points"`
}

// Options lists the choices a shell can offer for each filter control.
type Options struct {
	Names         []string `json:"names"`
	Countries     []string `json:"countries"`
	RankBounds    Range    `json:"rank_bounds"`
	PointsBounds  Range    `json:"points_bounds"`
	RangesEnabled bool     `json:"ranges_enabled"`
}

// Views is everything a presentation shell needs for one rendering pass.
// Enriched is the size of the full joined set.
type Views struct {
	Summary     Summary            `json:"summary"`
	Options     Options            `json:"options"`
	Criteria    FilterCriteria     `json:"criteria"`
	Enriched    int                `json:"enriched"`
	Filtered    []EnrichedRecord   `json:"filtered"`
	Selected    *EnrichedRecord    `json:"selected"`
	Countries   []CountryAggregate `json:"countries"`
	TopByRank   []EnrichedRecord   `json:"top_by_rank"`
	TopByPoints []EnrichedRecord   `json:"top_by_points"`
}

// EmptyStateMessage is shown when a detail lookup finds nothing.
const EmptyStateMessage = "No competitors found."
