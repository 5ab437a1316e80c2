// Package service runs rendering passes: it opens the data source, loads
// a snapshot, closes the source and derives the dashboard views.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pipeline"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// Aggregate scopes accepted by WithAggregateScope.
const (
	ScopeFull     = "full"
	ScopeFiltered = "filtered"
)

// Source is an open data source for a single pass.
type Source interface {
	Load(ctx context.Context) (model.Snapshot, error)
	Close() error
}

// Opener acquires a fresh Source at the start of every pass.
type Opener interface {
	Open(ctx context.Context) (Source, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context) (Source, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context) (Source, error) { return f(ctx) }

// RepositoryOpener opens a repository.Store per pass.
func RepositoryOpener(driver, dsn string, opts ...repository.Option) Opener {
	return OpenerFunc(func(ctx context.Context) (Source, error) {
		store, err := repository.Open(ctx, driver, dsn, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	})
}

// Service implements the view dependencies of the HTTP API and the report command.
type Service struct {
	opener         Opener
	topN           int
	aggregateScope string
	logger         logger.Logger

	passes   atomic.Int64
	failures atomic.Int64

	mu       sync.RWMutex
	lastPass passInfo
}

type passInfo struct {
	id       string
	at       time.Time
	duration time.Duration
	filtered int
	err      string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithOpener sets the data source used by every pass.
func WithOpener(o Opener) Option {
	return func(s *Service) {
		if o != nil {
			s.opener = o
		}
	}
}

// WithTopN sets the leaderboard length.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithAggregateScope selects whether country aggregates and leaderboards
// use the full set (default) or the filtered set.
func WithAggregateScope(scope string) Option {
	return func(s *Service) {
		if scope == ScopeFull || scope == ScopeFiltered {
			s.aggregateScope = scope
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without WithOpener every pass fails with ErrNoSource.
func New(opts ...Option) *Service {
	s := &Service{
		topN:           pipeline.DefaultTopN,
		aggregateScope: ScopeFull,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Recompute runs one pass for req. Data source failures abort the pass and
// are returned as *model.DataSourceError.
func (s *Service) Recompute(ctx context.Context, req pipeline.Request) (model.Views, error) {
	passID := uuid.NewString()
	log := s.logger.With(logger.String("pass_id", passID))
	start := time.Now()

	snap, err := s.load(ctx, log)
	if err != nil {
		s.finish(passID, start, 0, err)
		log.Error(ctx, "pass aborted", logger.Error(err))
		return model.Views{}, err
	}

	views := pipeline.Recompute(snap, req, s.pipelineOptions()...)
	s.finish(passID, start, len(views.Filtered), nil)

	metrics.UpdateEnrichedRecords(views.Enriched)
	metrics.UpdateFilteredRecords(len(views.Filtered))
	log.Debug(ctx, "pass complete",
		logger.Int("competitors", len(snap.Competitors)),
		logger.Int("rankings", len(snap.Rankings)),
		logger.Int("enriched", views.Enriched),
		logger.Int("filtered", len(views.Filtered)),
		logger.Bool("selected", views.Selected != nil),
		logger.Duration("elapsed", time.Since(start)),
	)
	return views, nil
}

func (s *Service) load(ctx context.Context, log logger.Logger) (model.Snapshot, error) {
	if s.opener == nil {
		return model.Snapshot{}, model.NewDataSourceError("open", ErrNoSource)
	}
	src, err := s.opener.Open(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Warn(ctx, "failed to close data source", logger.Error(cerr))
		}
	}()
	return src.Load(ctx)
}

func (s *Service) pipelineOptions() []pipeline.Option {
	opts := []pipeline.Option{pipeline.WithTopN(s.topN)}
	if s.aggregateScope == ScopeFiltered {
		opts = append(opts, pipeline.WithFilteredAggregates())
	}
	return opts
}

func (s *Service) finish(id string, start time.Time, filtered int, err error) {
	elapsed := time.Since(start)
	outcome := metrics.OutcomeOK
	info := passInfo{id: id, at: start, duration: elapsed, filtered: filtered}

	s.passes.Add(1)
	if err != nil {
		outcome = metrics.OutcomeDataSource
		info.err = err.Error()
		s.failures.Add(1)
		metrics.RecordErrorByComponent("service", "data_source")
	}
	metrics.RecordPass(outcome, float64(elapsed.Microseconds())/1000.0)

	s.mu.Lock()
	s.lastPass = info
	s.mu.Unlock()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	last := s.lastPass
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"passes":         s.passes.Load(),
		"failures":       s.failures.Load(),
		"topN":           s.topN,
		"aggregateScope": s.aggregateScope,
	}
	if last.id != "" {
		lastStats := map[string]interface{}{
			"id":         last.id,
			"startedAt":  last.at.UTC().Format(time.RFC3339Nano),
			"durationMs": float64(last.duration.Microseconds()) / 1000.0,
			"filtered":   last.filtered,
		}
		if last.err != "" {
			lastStats["error"] = last.err
		}
		stats["lastPass"] = lastStats
	}
	return stats
}
