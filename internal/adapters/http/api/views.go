package api

import (
	"net/http"

	"github.com/okian/courtside/internal/domain/model"
)

// Leaderboard orderings accepted by GET /api/leaderboard.
const (
	byRank   = "rank"
	byPoints = "points"
)

// ViewsHandler serves the JSON views of a rendering pass.
type ViewsHandler struct {
	deps Dependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps Dependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

func (h *ViewsHandler) pass(w http.ResponseWriter, r *http.Request) (model.Views, bool) {
	return runPass(h.deps, w, r)
}

// runPass parses the request, runs one pass and writes the error response on
// failure. ok is false when a response was already written.
func runPass(deps Dependencies, w http.ResponseWriter, r *http.Request) (model.Views, bool) {
	req, err := parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return model.Views{}, false
	}
	views, err := deps.Recompute(r.Context(), req)
	if err != nil {
		writePassError(w, err)
		return model.Views{}, false
	}
	return views, true
}

// HandleViews handles GET /api/views requests.
func (h *ViewsHandler) HandleViews(w http.ResponseWriter, r *http.Request) {
	views, ok := h.pass(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleSummary handles GET /api/summary requests.
func (h *ViewsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	views, ok := h.pass(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views.Summary)
}

// HandleOptions handles GET /api/options requests.
func (h *ViewsHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	views, ok := h.pass(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views.Options)
}

type filteredResponse struct {
	Criteria model.FilterCriteria   `json:"criteria"`
	Count    int                    `json:"count"`
	Records  []model.EnrichedRecord `json:"records"`
}

// HandleFiltered handles GET /api/filtered requests.
func (h *ViewsHandler) HandleFiltered(w http.ResponseWriter, r *http.Request) {
	views, ok := h.pass(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, filteredResponse{
		Criteria: views.Criteria,
		Count:    len(views.Filtered),
		Records:  views.Filtered,
	})
}

// HandleDetail handles GET /api/detail requests. No match is a 404 carrying
// the empty state message.
func (h *ViewsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	views, ok := h.pass(w, r)
	if !ok {
		return
	}
	if views.Selected == nil {
		writeEmptyState(w)
		return
	}
	writeJSON(w, http.StatusOK, views.Selected)
}

// HandleCountries handles GET /api/countries requests.
func (h *ViewsHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	views, ok := h.pass(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views.Countries)
}

// HandleLeaderboard handles GET /api/leaderboard?by=rank|points requests.
func (h *ViewsHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	by := r.URL.Query().Get("by")
	if by == "" {
		by = byRank
	}
	if by != byRank && by != byPoints {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	views, ok := h.pass(w, r)
	if !ok {
		return
	}
	if by == byPoints {
		writeJSON(w, http.StatusOK, views.TopByPoints)
		return
	}
	writeJSON(w, http.StatusOK, views.TopByRank)
}
