package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/okian/courtside/internal/domain/model"
)

const fixtureSchema = `
CREATE TABLE competitors (
	id INTEGER PRIMARY KEY,
	name TEXT,
	country TEXT
);
CREATE TABLE competitor_rankings (
	competitor_id INTEGER NOT NULL,
	"rank" INTEGER NOT NULL,
	points INTEGER NOT NULL,
	movement INTEGER,
	competitions_played INTEGER NOT NULL
);
INSERT INTO competitors (id, name, country) VALUES
	(7, 'Ana', 'ESP'),
	(3, 'Ben', 'USA'),
	(5, NULL, NULL);
INSERT INTO competitor_rankings (competitor_id, "rank", points, movement, competitions_played) VALUES
	(3, 2, 800, NULL, 12),
	(7, 1, 1000, -1, 15),
	(3, 9, 120, 4, 2);
`

func seedDB(t *testing.T, schema string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tennis.db")
	db, err := sqlx.Open(DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()
	if schema != "" {
		_, err = db.Exec(schema)
		require.NoError(t, err)
	}
	return path
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	path := seedDB(t, fixtureSchema)

	store, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer store.Close()

	snap, err := store.Load(ctx)
	require.NoError(t, err)

	require.Equal(t, []model.Competitor{
		{ID: "7", Name: "Ana", Country: "ESP"},
		{ID: "3", Name: "Ben", Country: "USA"},
		{ID: "5", Name: "", Country: ""},
	}, snap.Competitors)

	require.Equal(t, []model.Ranking{
		{CompetitorID: "3", Rank: 2, Points: 800, Movement: 0, CompetitionsPlayed: 12},
		{CompetitorID: "7", Rank: 1, Points: 1000, Movement: -1, CompetitionsPlayed: 15},
		{CompetitorID: "3", Rank: 9, Points: 120, Movement: 4, CompetitionsPlayed: 2},
	}, snap.Rankings)
}

func TestStore_EmptyTables(t *testing.T) {
	ctx := context.Background()
	path := seedDB(t, `
CREATE TABLE competitors (id INTEGER, name TEXT, country TEXT);
CREATE TABLE competitor_rankings (competitor_id INTEGER, "rank" INTEGER, points INTEGER, movement INTEGER, competitions_played INTEGER);
`)

	store, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer store.Close()

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, snap.Competitors)
	require.Empty(t, snap.Rankings)
}

func TestStore_CustomTables(t *testing.T) {
	ctx := context.Background()
	path := seedDB(t, `
CREATE TABLE players (id TEXT, name TEXT, country TEXT);
CREATE TABLE player_rankings (competitor_id TEXT, "rank" INTEGER, points INTEGER, movement INTEGER, competitions_played INTEGER);
INSERT INTO players VALUES ('sr:competitor:1', 'Cleo', 'FRA');
INSERT INTO player_rankings VALUES ('sr:competitor:1', 4, 640, 2, 9);
`)

	store, err := Open(ctx, DriverSQLite, path, WithTables("players", "player_rankings"), WithQueryTimeout(time.Second))
	require.NoError(t, err)
	defer store.Close()

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Competitors, 1)
	require.Equal(t, "sr:competitor:1", snap.Rankings[0].CompetitorID)
	require.Equal(t, 2, snap.Rankings[0].Movement)
}

func TestStore_MissingTable(t *testing.T) {
	ctx := context.Background()
	path := seedDB(t, `CREATE TABLE competitors (id INTEGER, name TEXT, country TEXT);`)

	store, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, model.ErrDataSource)

	var dsErr *model.DataSourceError
	require.True(t, errors.As(err, &dsErr))
	require.Equal(t, "query rankings", dsErr.Op)
}

func TestOpen_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := Open(ctx, "oracle", "whatever")
		require.ErrorIs(t, err, model.ErrDataSource)
		require.ErrorIs(t, err, ErrUnsupportedDriver)
	})

	t.Run("unreachable database", func(t *testing.T) {
		_, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
		require.ErrorIs(t, err, model.ErrDataSource)
	})
}

func TestStore_Close(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, DriverSQLite, seedDB(t, fixtureSchema))
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.Competitors(ctx)
	require.ErrorIs(t, err, model.ErrDataSource)
	require.ErrorIs(t, err, ErrClosed)
}

func TestNewWithDB(t *testing.T) {
	db, err := sqlx.Open(DriverSQLite, seedDB(t, fixtureSchema))
	require.NoError(t, err)

	store, err := NewWithDB(db)
	require.NoError(t, err)
	defer store.Close()

	competitors, err := store.Competitors(context.Background())
	require.NoError(t, err)
	require.Len(t, competitors, 3)
}

func TestDialectQuoting(t *testing.T) {
	cols := []string{"competitor_id", "rank"}

	require.Equal(t,
		"SELECT `competitor_id`, `rank` FROM `competitor_rankings`",
		dialects[DriverMySQL].selectAll("competitor_rankings", cols...))
	require.Equal(t,
		`SELECT "competitor_id", "rank" FROM "competitor_rankings"`,
		dialects[DriverPostgres].selectAll("competitor_rankings", cols...))
}
