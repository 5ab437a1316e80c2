// Package pipeline turns the two loaded record sets into the dashboard views.
//
// Every function here is pure: inputs are never mutated and the same inputs
// always produce the same views. A shell (HTTP, terminal, tests) calls
// Recompute once per rendering pass with the snapshot it loaded.
package pipeline

import (
	"cmp"
	"iter"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/okian/courtside/internal/domain/model"
)

// DefaultTopN is the length of each leaderboard.
const DefaultTopN = 10

// Join returns the inner join of competitors and rankings on
// id = competitor_id. Output follows competitor order, then ranking order for
// a competitor with several rankings. Duplicate ids on either side produce
// the cross product of the duplicates.
func Join(competitors []model.Competitor, rankings []model.Ranking) []model.EnrichedRecord {
	byID := make(map[string][]model.Ranking, len(rankings))
	for _, r := range rankings {
		byID[r.CompetitorID] = append(byID[r.CompetitorID], r)
	}

	out := make([]model.EnrichedRecord, 0, min(len(competitors), len(rankings)))
	for _, c := range competitors {
		for _, r := range byID[c.ID] {
			out = append(out, model.Enrich(c, r))
		}
	}
	return out
}

// Bounds returns the observed rank and points ranges of records.
// ok is false when records is empty and the bounds are undefined.
func Bounds(records []model.EnrichedRecord) (rank, points model.Range, ok bool) {
	if len(records) == 0 {
		return model.Range{}, model.Range{}, false
	}
	first := records[0]
	rank = model.Range{Min: first.Rank, Max: first.Rank}
	points = model.Range{Min: first.Points, Max: first.Points}
	for _, rec := range records[1:] {
		rank = rank.Widen(rec.Rank)
		points = points.Widen(rec.Points)
	}
	return rank, points, true
}

// Normalize clamps the requested ranges to the observed bounds and fills in
// the full bounds for ranges left unset. When the bounds are undefined the
// range predicates are dropped.
func Normalize(c model.FilterCriteria, opts model.Options) model.FilterCriteria {
	if !opts.RangesEnabled {
		c.RankRange = nil
		c.PointsRange = nil
		return c
	}
	c.RankRange = clampOrFull(c.RankRange, opts.RankBounds)
	c.PointsRange = clampOrFull(c.PointsRange, opts.PointsBounds)
	return c
}

func clampOrFull(r *model.Range, bounds model.Range) *model.Range {
	out := bounds
	if r != nil {
		out = r.Clamp(bounds)
	}
	return &out
}

// FilterSeq lazily yields the records matching every predicate of c.
func FilterSeq(records []model.EnrichedRecord, c model.FilterCriteria) iter.Seq[model.EnrichedRecord] {
	return func(yield func(model.EnrichedRecord) bool) {
		for _, rec := range records {
			if c.Match(rec) && !yield(rec) {
				return
			}
		}
	}
}

// Filter collects FilterSeq into a slice. The result is never nil.
func Filter(records []model.EnrichedRecord, c model.FilterCriteria) []model.EnrichedRecord {
	out := slices.Collect(FilterSeq(records, c))
	if out == nil {
		out = []model.EnrichedRecord{}
	}
	return out
}

// Detail returns the first filtered record named name. An empty name selects
// the first record, as a select box defaults to its first option.
// It returns model.ErrNotFound when nothing matches.
func Detail(filtered []model.EnrichedRecord, name string) (model.EnrichedRecord, error) {
	if len(filtered) == 0 {
		return model.EnrichedRecord{}, model.ErrNotFound
	}
	if name == "" {
		return filtered[0], nil
	}
	for _, rec := range filtered {
		if rec.Name == name {
			return rec, nil
		}
	}
	return model.EnrichedRecord{}, model.ErrNotFound
}

// CountryAggregates groups records by country and reports the number of
// records and the mean points of each group, ordered by country.
func CountryAggregates(records []model.EnrichedRecord) []model.CountryAggregate {
	points := make(map[string]stats.Float64Data)
	order := make([]string, 0)
	for _, rec := range records {
		if _, seen := points[rec.Country]; !seen {
			order = append(order, rec.Country)
		}
		points[rec.Country] = append(points[rec.Country], float64(rec.Points))
	}

	out := make([]model.CountryAggregate, 0, len(order))
	for _, country := range order {
		data := points[country]
		// data is never empty here, so Mean cannot fail.
		mean, _ := stats.Mean(data)
		out = append(out, model.CountryAggregate{
			Country:          country,
			TotalCompetitors: data.Len(),
			AvgPoints:        mean,
		})
	}
	slices.SortFunc(out, func(a, b model.CountryAggregate) int {
		return cmp.Compare(a.Country, b.Country)
	})
	return out
}

// TopByRank returns the n best-ranked records, ties kept in input order.
func TopByRank(records []model.EnrichedRecord, n int) []model.EnrichedRecord {
	return topBy(records, n, func(a, b model.EnrichedRecord) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
}

// TopByPoints returns the n records with most points, ties kept in input order.
func TopByPoints(records []model.EnrichedRecord, n int) []model.EnrichedRecord {
	return topBy(records, n, func(a, b model.EnrichedRecord) int {
		return cmp.Compare(b.Points, a.Points)
	})
}

func topBy(records []model.EnrichedRecord, n int, compare func(a, b model.EnrichedRecord) int) []model.EnrichedRecord {
	sorted := make([]model.EnrichedRecord, len(records))
	copy(sorted, records)
	slices.SortStableFunc(sorted, compare)
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
