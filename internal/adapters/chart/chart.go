// Package chart renders dashboard views as PNG bar charts.
package chart

import (
	"errors"
	"fmt"
	"io"
	"slices"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/okian/courtside/internal/domain/model"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

// Default canvas size in pixels.
const (
	DefaultWidth  = 900
	DefaultHeight = 500
)

// headroom above the tallest bar.
const headroom = 1.1

type settings struct {
	width, height int
}

// Option tunes a rendered chart.
type Option func(*settings)

// WithSize sets the canvas size. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(s *settings) {
		if width > 0 {
			s.width = width
		}
		if height > 0 {
			s.height = height
		}
	}
}

// CountriesBar plots competitor counts per country, tallest first.
func CountriesBar(w io.Writer, aggs []model.CountryAggregate, opts ...Option) error {
	if len(aggs) == 0 {
		return ErrNoData
	}
	sorted := slices.Clone(aggs)
	slices.SortStableFunc(sorted, func(a, b model.CountryAggregate) int {
		return b.TotalCompetitors - a.TotalCompetitors
	})

	bars := make([]gochart.Value, len(sorted))
	for i, a := range sorted {
		bars[i] = gochart.Value{Label: a.Country, Value: float64(a.TotalCompetitors)}
	}
	return render(w, "Total Competitors by Country", bars, opts)
}

// TopPointsBar plots points per competitor in the given order.
func TopPointsBar(w io.Writer, recs []model.EnrichedRecord, opts ...Option) error {
	if len(recs) == 0 {
		return ErrNoData
	}
	bars := make([]gochart.Value, len(recs))
	for i, r := range recs {
		bars[i] = gochart.Value{Label: r.Name, Value: float64(r.Points)}
	}
	return render(w, fmt.Sprintf("Top %d Competitors by Points", len(recs)), bars, opts)
}

func render(w io.Writer, title string, bars []gochart.Value, opts []Option) error {
	s := settings{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&s)
	}

	maxVal := 1.0
	for _, b := range bars {
		maxVal = max(maxVal, b.Value)
	}

	bc := gochart.BarChart{
		Title:  title,
		Width:  s.width,
		Height: s.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		BarWidth: 40,
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: maxVal * headroom},
		},
		Bars: bars,
	}
	if err := bc.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render %q: %w", title, err)
	}
	return nil
}
