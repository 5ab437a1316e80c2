package seed

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pipeline"
	"github.com/okian/courtside/pkg/logger"
)

// checkHealth verifies the dashboard answers its health endpoint.
func checkHealth(ctx context.Context, client *httpClient, baseURL string) error {
	logger.Get().Info(ctx, "checking dashboard health")

	resp, err := client.get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer closeBody(ctx, resp)

	// Any 200 is healthy; the body is the prometheus exposition.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// Verify fetches the unfiltered views from the dashboard at cfg.BaseURL and
// compares them with the views computed locally from snap.
func Verify(ctx context.Context, cfg *Config, snap model.Snapshot) error {
	client := newHTTPClient(cfg.Timeout)
	if err := checkHealth(ctx, client, cfg.BaseURL); err != nil {
		return err
	}

	var served model.Views
	if err := client.getJSON(ctx, cfg.BaseURL+"/api/views", &served); err != nil {
		return err
	}

	expected := pipeline.Recompute(snap, pipeline.Request{}, pipeline.WithTopN(cfg.TopN))
	if err := compareViews(expected, served); err != nil {
		return err
	}

	logger.Get().Info(ctx, "served views match the generated data",
		logger.Int("enriched", served.Enriched),
		logger.Int("countries", len(served.Countries)))
	if cfg.Verbose {
		logTopPerformers(ctx, served.TopByPoints)
	}
	return nil
}

// compareViews checks the parts of the views that are independent of row
// order in the database.
func compareViews(expected, served model.Views) error {
	if expected.Summary != served.Summary {
		return fmt.Errorf("%w: summary %+v, want %+v", ErrMismatch, served.Summary, expected.Summary)
	}
	if expected.Enriched != served.Enriched {
		return fmt.Errorf("%w: %d enriched records, want %d", ErrMismatch, served.Enriched, expected.Enriched)
	}
	if err := compareIDs("top by rank", expected.TopByRank, served.TopByRank); err != nil {
		return err
	}
	if err := compareIDs("top by points", expected.TopByPoints, served.TopByPoints); err != nil {
		return err
	}
	if len(expected.Countries) != len(served.Countries) {
		return fmt.Errorf("%w: %d countries, want %d", ErrMismatch, len(served.Countries), len(expected.Countries))
	}
	for i, want := range expected.Countries {
		got := served.Countries[i]
		if got.Country != want.Country || got.TotalCompetitors != want.TotalCompetitors ||
			math.Abs(got.AvgPoints-want.AvgPoints) > avgPointsTolerance {
			return fmt.Errorf("%w: country %d is %+v, want %+v", ErrMismatch, i, got, want)
		}
	}
	return nil
}

func compareIDs(view string, expected, served []model.EnrichedRecord) error {
	if len(expected) != len(served) {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrMismatch, view, len(served), len(expected))
	}
	for i := range expected {
		if expected[i].ID != served[i].ID {
			return fmt.Errorf("%w: %s entry %d is %s, want %s", ErrMismatch, view, i, served[i].ID, expected[i].ID)
		}
	}
	return nil
}

func logTopPerformers(ctx context.Context, top []model.EnrichedRecord) {
	for i, r := range top {
		logger.Get().Info(ctx, "top performer",
			logger.Int("position", i+1),
			logger.String("name", r.Name),
			logger.String("country", r.Country),
			logger.Int("rank", r.Rank),
			logger.Int("points", r.Points))
	}
}
