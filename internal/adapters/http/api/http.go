// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/courtside/internal/adapters/chart"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pipeline"
)

// Dependencies required by HTTP handlers. Each call runs one rendering pass.
type Dependencies interface {
	Recompute(ctx context.Context, req pipeline.Request) (model.Views, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	viewsHandler  *ViewsHandler
	renderHandler *RenderHandler

	allowedOrigins []string
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

type serverConfig struct {
	chartOpts      []chart.Option
	allowedOrigins []string
}

// WithChartSize sets the PNG chart canvas size.
func WithChartSize(width, height int) Option {
	return func(c *serverConfig) {
		c.chartOpts = append(c.chartOpts, chart.WithSize(width, height))
	}
}

// WithAllowedOrigins sets the CORS allow list. Empty keeps "*".
func WithAllowedOrigins(origins []string) Option {
	return func(c *serverConfig) {
		if len(origins) > 0 {
			c.allowedOrigins = origins
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{allowedOrigins: []string{"*"}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		viewsHandler:   NewViewsHandler(deps),
		renderHandler:  NewRenderHandler(deps, cfg.chartOpts...),
		allowedOrigins: cfg.allowedOrigins,
	}
}

// NewRouter returns a chi router with the shared middleware stack installed.
func (s *Server) NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	return r
}

// Register attaches all API routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/views", MetricsMiddleware(s.viewsHandler.HandleViews, "views"))
		r.Get("/summary", MetricsMiddleware(s.viewsHandler.HandleSummary, "summary"))
		r.Get("/options", MetricsMiddleware(s.viewsHandler.HandleOptions, "options"))
		r.Get("/filtered", MetricsMiddleware(s.viewsHandler.HandleFiltered, "filtered"))
		r.Get("/detail", MetricsMiddleware(s.viewsHandler.HandleDetail, "detail"))
		r.Get("/countries", MetricsMiddleware(s.viewsHandler.HandleCountries, "countries"))
		r.Get("/leaderboard", MetricsMiddleware(s.viewsHandler.HandleLeaderboard, "leaderboard"))
	})

	r.Get("/charts/countries.png", MetricsMiddleware(s.renderHandler.HandleCountriesChart, "chart_countries"))
	r.Get("/charts/top-points.png", MetricsMiddleware(s.renderHandler.HandleTopPointsChart, "chart_top_points"))
	r.Get("/export/filtered.csv", MetricsMiddleware(s.renderHandler.HandleFilteredCSV, "export_filtered_csv"))
	r.Get("/export/countries.csv", MetricsMiddleware(s.renderHandler.HandleCountriesCSV, "export_countries_csv"))
	r.Get("/export/report.xlsx", MetricsMiddleware(s.renderHandler.HandleWorkbook, "export_xlsx"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writePassError maps a failed pass onto a status code: data source
// failures become 503, anything else 500.
func writePassError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrDataSource) {
		writeError(w, http.StatusServiceUnavailable, "data_source_unavailable", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}

// writeEmptyState reports a view with nothing to show.
func writeEmptyState(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not_found", errors.New(model.EmptyStateMessage))
}
