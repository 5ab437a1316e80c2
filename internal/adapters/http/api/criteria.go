package api

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pipeline"
)

// allOption is the select-box value that disables a name or country filter.
const allOption = "All"

// parseRequest reads filter criteria and the detail selection from the query
// string. A range with one missing side is open on that side and is later
// clamped to the observed bounds.
func parseRequest(r *http.Request) (pipeline.Request, error) {
	const op = "api.parse_request"
	q := r.URL.Query()

	rankRange, err := parseRange(q, "rank")
	if err != nil {
		return pipeline.Request{}, WrapKind(op, ErrBadRequest, err)
	}
	pointsRange, err := parseRange(q, "points")
	if err != nil {
		return pipeline.Request{}, WrapKind(op, ErrBadRequest, err)
	}

	return pipeline.Request{
		Criteria: model.FilterCriteria{
			Name:        choice(q.Get("name")),
			Country:     choice(q.Get("country")),
			RankRange:   rankRange,
			PointsRange: pointsRange,
		},
		Selected: strings.TrimSpace(q.Get("selected")),
	}, nil
}

func choice(v string) string {
	v = strings.TrimSpace(v)
	if v == allOption {
		return ""
	}
	return v
}

func parseRange(q url.Values, prefix string) (*model.Range, error) {
	minStr := strings.TrimSpace(q.Get(prefix + "_min"))
	maxStr := strings.TrimSpace(q.Get(prefix + "_max"))
	if minStr == "" && maxStr == "" {
		return nil, nil //nolint:nilnil // absent range means full observed range
	}

	out := model.Range{Min: math.MinInt, Max: math.MaxInt}
	if minStr != "" {
		v, err := strconv.Atoi(minStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s_min %q", prefix, minStr)
		}
		out.Min = v
	}
	if maxStr != "" {
		v, err := strconv.Atoi(maxStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s_max %q", prefix, maxStr)
		}
		out.Max = v
	}
	if out.Empty() {
		return nil, fmt.Errorf("%s_min %d exceeds %s_max %d", prefix, out.Min, prefix, out.Max)
	}
	return &out, nil
}
