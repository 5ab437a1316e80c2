package repository

import "time"

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithQueryTimeout bounds each query. Zero or negative disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.queryTimeout = d
	}
}

// WithTables overrides the source table names.
func WithTables(competitors, rankings string) Option {
	return func(s *Store) {
		if competitors != "" {
			s.competitorsTable = competitors
		}
		if rankings != "" {
			s.rankingsTable = rankings
		}
	}
}

// WithMaxOpenConns caps the pool. A pass uses a single connection.
func WithMaxOpenConns(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}
