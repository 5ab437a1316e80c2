package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/courtside/internal/adapters/chart"
	"github.com/okian/courtside/internal/adapters/export"
	"github.com/okian/courtside/pkg/metrics"
)

// RenderHandler serves charts and file exports of a rendering pass.
type RenderHandler struct {
	deps      Dependencies
	chartOpts []chart.Option
}

// NewRenderHandler creates a new render handler.
func NewRenderHandler(deps Dependencies, chartOpts ...chart.Option) *RenderHandler {
	return &RenderHandler{deps: deps, chartOpts: chartOpts}
}

// HandleCountriesChart handles GET /charts/countries.png requests.
func (h *RenderHandler) HandleCountriesChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart_countries"
	views, ok := runPass(h.deps, w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.CountriesBar(&buf, views.Countries, h.chartOpts...); err != nil {
		writeRenderError(w, op, err)
		return
	}
	metrics.RecordChartRender("countries")
	writeFile(w, "image/png", "", buf.Bytes())
}

// HandleTopPointsChart handles GET /charts/top-points.png requests.
func (h *RenderHandler) HandleTopPointsChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart_top_points"
	views, ok := runPass(h.deps, w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.TopPointsBar(&buf, views.TopByPoints, h.chartOpts...); err != nil {
		writeRenderError(w, op, err)
		return
	}
	metrics.RecordChartRender("top_points")
	writeFile(w, "image/png", "", buf.Bytes())
}

// HandleFilteredCSV handles GET /export/filtered.csv requests.
func (h *RenderHandler) HandleFilteredCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_filtered_csv"
	views, ok := runPass(h.deps, w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.FilteredCSV(&buf, views.Filtered); err != nil {
		writeRenderError(w, op, err)
		return
	}
	metrics.RecordExport("csv")
	writeFile(w, "text/csv; charset=utf-8", "filtered_competitors.csv", buf.Bytes())
}

// HandleCountriesCSV handles GET /export/countries.csv requests.
func (h *RenderHandler) HandleCountriesCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_countries_csv"
	views, ok := runPass(h.deps, w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.CountriesCSV(&buf, views.Countries); err != nil {
		writeRenderError(w, op, err)
		return
	}
	metrics.RecordExport("csv")
	writeFile(w, "text/csv; charset=utf-8", "country_stats.csv", buf.Bytes())
}

// HandleWorkbook handles GET /export/report.xlsx requests.
func (h *RenderHandler) HandleWorkbook(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_xlsx"
	views, ok := runPass(h.deps, w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.Workbook(&buf, views); err != nil {
		writeRenderError(w, op, err)
		return
	}
	metrics.RecordExport("xlsx")
	writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "tennis_dashboard.xlsx", buf.Bytes())
}

func writeRenderError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, chart.ErrNoData) {
		writeEmptyState(w)
		return
	}
	writeError(w, http.StatusInternalServerError, "render_failed", WrapKind(op, ErrRender, err))
}

func writeFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
