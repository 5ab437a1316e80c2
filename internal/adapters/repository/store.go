// Package repository loads competitor and ranking rows from a relational store.
package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/metrics"

	// Supported database/sql drivers.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Default table names.
const (
	DefaultCompetitorsTable = "competitors"
	DefaultRankingsTable    = "competitor_rankings"
)

const defaultQueryTimeout = 10 * time.Second

// Store is a read-only view over the competitors and competitor_rankings tables.
type Store struct {
	db      *sqlx.DB
	dialect dialect
	closed  atomic.Bool

	queryTimeout     time.Duration
	competitorsTable string
	rankingsTable    string
	maxOpenConns     int
}

// Open connects to the data source and verifies it is reachable.
// Any failure is reported as a *model.DataSourceError.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*Store, error) {
	const op = "open"

	d, ok := dialects[driver]
	if !ok {
		return nil, model.NewDataSourceError(op, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver))
	}

	s := &Store{
		dialect:          d,
		queryTimeout:     defaultQueryTimeout,
		competitorsTable: DefaultCompetitorsTable,
		rankingsTable:    DefaultRankingsTable,
		maxOpenConns:     1,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		metrics.RecordDataSourceError(op)
		return nil, model.NewDataSourceError(op, err)
	}
	db.SetMaxOpenConns(s.maxOpenConns)

	pingCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		metrics.RecordDataSourceError(op)
		return nil, model.NewDataSourceError(op, err)
	}

	s.db = db
	return s, nil
}

// NewWithDB wraps an existing connection. Used by tests and embedders that
// manage their own pool.
func NewWithDB(db *sqlx.DB, opts ...Option) (*Store, error) {
	d, ok := dialects[db.DriverName()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, db.DriverName())
	}
	s := &Store{
		db:               db,
		dialect:          d,
		queryTimeout:     defaultQueryTimeout,
		competitorsTable: DefaultCompetitorsTable,
		rankingsTable:    DefaultRankingsTable,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the connection. Calling it twice is a no-op.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return model.NewDataSourceError("close", s.db.Close())
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
