package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/logger"
)

type competitorRow struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Country string `db:"country"`
}

type rankingRow struct {
	CompetitorID       string `db:"competitor_id"`
	Rank               int    `db:"rank"`
	Points             int    `db:"points"`
	Movement           int    `db:"movement"`
	CompetitionsPlayed int    `db:"competitions_played"`
}

// writer issues DDL and inserts for one driver.
type writer struct {
	db    *sqlx.DB
	quote func(string) string
}

func newWriter(db *sqlx.DB) *writer {
	q := `"`
	if db.DriverName() == repository.DriverMySQL {
		q = "`"
	}
	return &writer{db: db, quote: func(ident string) string { return q + ident + q }}
}

func (w *writer) schema() []string {
	q := w.quote
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s VARCHAR(64) PRIMARY KEY,
	%s VARCHAR(255),
	%s VARCHAR(128)
)`, q(repository.DefaultCompetitorsTable), q("id"), q("name"), q("country")),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s VARCHAR(64) NOT NULL,
	%s INTEGER NOT NULL,
	%s INTEGER NOT NULL,
	%s INTEGER,
	%s INTEGER NOT NULL
)`, q(repository.DefaultRankingsTable), q("competitor_id"), q("rank"), q("points"), q("movement"), q("competitions_played")),
	}
}

func (w *writer) insert(table string, columns ...string) string {
	quoted := make([]string, len(columns))
	named := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = w.quote(c)
		named[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		w.quote(table), strings.Join(quoted, ", "), strings.Join(named, ", "))
}

// Write creates both tables when missing and inserts snap. With reset set
// existing rows are deleted first. It returns the number of rows inserted.
func Write(ctx context.Context, db *sqlx.DB, snap model.Snapshot, reset bool) (int, error) {
	w := newWriter(db)

	for _, stmt := range w.schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("create table: %w", err)
		}
	}

	if reset {
		for _, table := range []string{repository.DefaultRankingsTable, repository.DefaultCompetitorsTable} {
			if _, err := db.ExecContext(ctx, "DELETE FROM "+w.quote(table)); err != nil {
				return 0, fmt.Errorf("reset %s: %w", table, err)
			}
		}
		logger.Get().Info(ctx, "existing rows deleted")
	}

	competitors := make([]any, len(snap.Competitors))
	for i, c := range snap.Competitors {
		competitors[i] = competitorRow{ID: c.ID, Name: c.Name, Country: c.Country}
	}
	rankings := make([]any, len(snap.Rankings))
	for i, r := range snap.Rankings {
		rankings[i] = rankingRow{
			CompetitorID:       r.CompetitorID,
			Rank:               r.Rank,
			Points:             r.Points,
			Movement:           r.Movement,
			CompetitionsPlayed: r.CompetitionsPlayed,
		}
	}

	written := 0
	n, err := w.insertBatches(ctx, w.insert(repository.DefaultCompetitorsTable, "id", "name", "country"), competitors)
	written += n
	if err != nil {
		return written, fmt.Errorf("insert competitors: %w", err)
	}
	n, err = w.insertBatches(ctx, w.insert(repository.DefaultRankingsTable,
		"competitor_id", "rank", "points", "movement", "competitions_played"), rankings)
	written += n
	if err != nil {
		return written, fmt.Errorf("insert rankings: %w", err)
	}
	return written, nil
}

// insertBatches runs query once per row, committing every batchSize rows.
func (w *writer) insertBatches(ctx context.Context, query string, rows []any) (int, error) {
	written := 0
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		if err := w.insertBatch(ctx, query, rows[start:end]); err != nil {
			return written, err
		}
		written += end - start
	}
	return written, nil
}

func (w *writer) insertBatch(ctx context.Context, query string, rows []any) (err error) {
	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err = stmt.ExecContext(ctx, row); err != nil {
			return err
		}
	}
	return tx.Commit()
}
