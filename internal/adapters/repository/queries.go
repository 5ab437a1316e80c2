package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/metrics"
)

// dialect quotes identifiers. rank is reserved in MySQL 8.
type dialect struct {
	open, close string
}

var dialects = map[string]dialect{ //nolint:gochecknoglobals // read-only lookup table
	DriverMySQL:    {open: "`", close: "`"},
	DriverPostgres: {open: `"`, close: `"`},
	DriverSQLite:   {open: `"`, close: `"`},
}

func (d dialect) quote(ident string) string {
	return d.open + ident + d.close
}

func (d dialect) selectAll(table string, columns ...string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.quote(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), d.quote(table))
}

type competitorRow struct {
	ID      string         `db:"id"`
	Name    sql.NullString `db:"name"`
	Country sql.NullString `db:"country"`
}

type rankingRow struct {
	CompetitorID       string        `db:"competitor_id"`
	Rank               int           `db:"rank"`
	Points             int           `db:"points"`
	Movement           sql.NullInt64 `db:"movement"`
	CompetitionsPlayed int           `db:"competitions_played"`
}

// Competitors returns every competitor row in source order.
func (s *Store) Competitors(ctx context.Context) ([]model.Competitor, error) {
	const op = "query competitors"

	var rows []competitorRow
	query := s.dialect.selectAll(s.competitorsTable, "id", "name", "country")
	if err := s.selectRows(ctx, op, "competitors", &rows, query); err != nil {
		return nil, err
	}

	out := make([]model.Competitor, len(rows))
	for i, r := range rows {
		out[i] = model.Competitor{ID: r.ID, Name: r.Name.String, Country: r.Country.String}
	}
	return out, nil
}

// Rankings returns every ranking row in source order.
func (s *Store) Rankings(ctx context.Context) ([]model.Ranking, error) {
	const op = "query rankings"

	var rows []rankingRow
	query := s.dialect.selectAll(s.rankingsTable, "competitor_id", "rank", "points", "movement", "competitions_played")
	if err := s.selectRows(ctx, op, "rankings", &rows, query); err != nil {
		return nil, err
	}

	out := make([]model.Ranking, len(rows))
	for i, r := range rows {
		out[i] = model.Ranking{
			CompetitorID:       r.CompetitorID,
			Rank:               r.Rank,
			Points:             r.Points,
			Movement:           int(r.Movement.Int64),
			CompetitionsPlayed: r.CompetitionsPlayed,
		}
	}
	return out, nil
}

// Load fetches both record sets. A failure of either aborts the load.
func (s *Store) Load(ctx context.Context) (model.Snapshot, error) {
	competitors, err := s.Competitors(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	rankings, err := s.Rankings(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	metrics.UpdateRecordsLoaded(s.competitorsTable, len(competitors))
	metrics.UpdateRecordsLoaded(s.rankingsTable, len(rankings))
	return model.Snapshot{Competitors: competitors, Rankings: rankings}, nil
}

func (s *Store) selectRows(ctx context.Context, op, label string, dest any, query string) error {
	if s.closed.Load() {
		return model.NewDataSourceError(op, ErrClosed)
	}

	qctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := s.db.SelectContext(qctx, dest, query)
	metrics.RecordQueryLatency(label, float64(time.Since(start).Microseconds())/1000.0)
	if err != nil {
		metrics.RecordDataSourceError(op)
		return model.NewDataSourceError(op, err)
	}
	return nil
}
