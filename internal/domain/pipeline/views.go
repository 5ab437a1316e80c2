package pipeline

import (
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/okian/courtside/internal/domain/model"
)

// Request is what a shell asks of one rendering pass.
type Request struct {
	Criteria model.FilterCriteria
	// Selected names the competitor whose detail is shown.
	Selected string
}

type settings struct {
	topN               int
	filteredAggregates bool
}

// Option tunes Recompute.
type Option func(*settings)

// WithTopN sets the leaderboard length. Non-positive values are ignored.
func WithTopN(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithFilteredAggregates computes the country aggregate and the leaderboards
// over the filtered records instead of the full set.
func WithFilteredAggregates() Option {
	return func(s *settings) {
		s.filteredAggregates = true
	}
}

// Recompute derives every view for req from snap.
func Recompute(snap model.Snapshot, req Request, opts ...Option) model.Views {
	s := settings{topN: DefaultTopN}
	for _, opt := range opts {
		opt(&s)
	}

	full := Join(snap.Competitors, snap.Rankings)
	options := BuildOptions(snap, full)
	criteria := Normalize(req.Criteria, options)
	filtered := Filter(full, criteria)

	views := model.Views{
		Summary:  Summarize(snap),
		Options:  options,
		Criteria: criteria,
		Enriched: len(full),
		Filtered: filtered,
	}
	if rec, err := Detail(filtered, req.Selected); err == nil {
		views.Selected = &rec
	}

	scope := full
	if s.filteredAggregates {
		scope = filtered
	}
	views.Countries = CountryAggregates(scope)
	views.TopByRank = TopByRank(scope, s.topN)
	views.TopByPoints = TopByPoints(scope, s.topN)
	return views
}

// Summarize computes the headline metrics over the raw record sets.
func Summarize(snap model.Snapshot) model.Summary {
	countries := make(map[string]struct{})
	for _, c := range snap.Competitors {
		if c.Country != "" {
			countries[c.Country] = struct{}{}
		}
	}

	sum := model.Summary{
		TotalCompetitors: len(snap.Competitors),
		Countries:        len(countries),
	}
	if len(snap.Rankings) > 0 {
		points := make(stats.Float64Data, 0, len(snap.Rankings))
		for _, r := range snap.Rankings {
			points = append(points, float64(r.Points))
		}
		if maxPoints, err := points.Max(); err == nil {
			sum.MaxPoints = int(maxPoints)
		}
	}
	return sum
}

// BuildOptions lists the filter choices: distinct competitor names and
// countries, sorted, and the observed bounds of the enriched records.
func BuildOptions(snap model.Snapshot, full []model.EnrichedRecord) model.Options {
	names := make([]string, 0, len(snap.Competitors))
	countries := make([]string, 0)
	for _, c := range snap.Competitors {
		if c.Name != "" {
			names = append(names, c.Name)
		}
		if c.Country != "" {
			countries = append(countries, c.Country)
		}
	}
	slices.Sort(names)
	slices.Sort(countries)

	rank, points, ok := Bounds(full)
	return model.Options{
		Names:         slices.Compact(names),
		Countries:     slices.Compact(countries),
		RankBounds:    rank,
		PointsBounds:  points,
		RangesEnabled: ok,
	}
}
