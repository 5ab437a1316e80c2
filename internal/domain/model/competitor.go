// Package model contains domain models passed between layers.
package model

// Competitor is a row of the competitors table.
type Competitor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Ranking is a row of the competitor_rankings table.
type Ranking struct {
	CompetitorID       string `json:"competitor_id"`
	Rank               int    `json:"rank"`
	Points             int    `json:"points"`
	Movement           int    `json:"movement"`
	CompetitionsPlayed int    `json:"competitions_played"`
}

// EnrichedRecord is one competitor joined with one of its rankings.
type EnrichedRecord struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Country            string `json:"country"`
	CompetitorID       string `json:"competitor_id"`
	Rank               int    `json:"rank"`
	Points             int    `json:"points"`
	Movement           int    `json:"movement"`
	CompetitionsPlayed int    `json:"competitions_played"`
}

// Enrich builds the joined record for c and r. It does not check the key.
func Enrich(c Competitor, r Ranking) EnrichedRecord {
	return EnrichedRecord{
		ID:                 c.ID,
		Name:               c.Name,
		Country:            c.Country,
		CompetitorID:       r.CompetitorID,
		Rank:               r.Rank,
		Points:             r.Points,
		Movement:           r.Movement,
		CompetitionsPlayed: r.CompetitionsPlayed,
	}
}

// CountryAggregate summarises the enriched records of one country.
type CountryAggregate struct {
	Country          string  `json:"country"`
	TotalCompetitors int     `json:"total_competitors"`
	AvgPoints        float64 `json:"avg_points"`
}

// Snapshot holds both record sets loaded for a single rendering pass.
type Snapshot struct {
	Competitors []Competitor `json:"competitors"`
	Rankings    []Ranking    `json:"rankings"`
}
