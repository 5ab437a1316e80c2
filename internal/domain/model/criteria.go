package model

// Range is an inclusive [Min, Max] interval of integers.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp restricts r to bounds. The result may be empty (Min > Max) when r and
// bounds do not overlap.
func (r Range) Clamp(bounds Range) Range {
	out := r
	if out.Min < bounds.Min {
		out.Min = bounds.Min
	}
	if out.Max > bounds.Max {
		out.Max = bounds.Max
	}
	return out
}

// Widen extends r so that it also covers v.
func (r Range) Widen(v int) Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Empty reports whether no value can satisfy the range.
func (r Range) Empty() bool {
	return r.Min > r.Max
}

// FilterCriteria narrows the enriched records shown in the filtered table.
// Empty Name or Country disables that predicate; a nil range means the full
// observed range.
type FilterCriteria struct {
	Name        string `json:"name,omitempty"`
	Country     string `json:"country,omitempty"`
	RankRange   *Range `json:"rank_range,omitempty"`
	PointsRange *Range `json:"points_range,omitempty"`
}

// Match reports whether rec satisfies every predicate of c.
func (c FilterCriteria) Match(rec EnrichedRecord) bool {
	if c.Name != "" && rec.Name != c.Name {
		return false
	}
	if c.Country != "" && rec.Country != c.Country {
		return false
	}
	if c.RankRange != nil && !c.RankRange.Contains(rec.Rank) {
		return false
	}
	if c.PointsRange != nil && !c.PointsRange.Contains(rec.Points) {
		return false
	}
	return true
}
