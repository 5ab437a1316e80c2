package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/courtside/internal/domain/model"
)

const fixture = `
CREATE TABLE competitors (id INTEGER PRIMARY KEY, name TEXT, country TEXT);
CREATE TABLE competitor_rankings (competitor_id INTEGER, "rank" INTEGER, points INTEGER, movement INTEGER, competitions_played INTEGER);
INSERT INTO competitors (id, name, country) VALUES (1, 'Ana Lopez', 'Spain'), (2, 'Ben Cole', 'USA'), (3, 'Cy Park', 'USA');
INSERT INTO competitor_rankings VALUES (1, 1, 900, 2, 20), (2, 2, 700, -1, 18), (3, 3, 500, 0, 11);
`

func useSQLite(t *testing.T, schema string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "report.db")
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COURTSIDE_DB_DRIVER", "sqlite")
	t.Setenv("COURTSIDE_DB_DSN", path)
	return dir
}

func TestRun(t *testing.T) {
	convey.Convey("Given a sqlite database with three competitors", t, func() {
		dir := useSQLite(t, fixture)
		ctx := context.Background()
		var stdout, stderr bytes.Buffer

		convey.Convey("When the report runs without filters", func() {
			err := run(ctx, nil, &stdout, &stderr)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the report lists every competitor and the default detail", func() {
				text := stdout.String()
				convey.So(text, convey.ShouldContainSubstring, "Global Tennis Competitor Dashboard")
				convey.So(text, convey.ShouldContainSubstring, "Showing 3 competitors based on the filters.")
				convey.So(text, convey.ShouldContainSubstring, "Ana Lopez")
				convey.So(text, convey.ShouldContainSubstring, "Cy Park")
			})
		})

		convey.Convey("When filtering by country and points", func() {
			err := run(ctx, []string{"-country", "USA", "-points-min", "600"}, &stdout, &stderr)
			convey.So(err, convey.ShouldBeNil)
			convey.So(stdout.String(), convey.ShouldContainSubstring, "Showing 1 competitors based on the filters.")
		})

		convey.Convey("When the filters match nothing", func() {
			err := run(ctx, []string{"-name", "Nobody"}, &stdout, &stderr)
			convey.So(err, convey.ShouldBeNil)
			convey.So(stdout.String(), convey.ShouldContainSubstring, model.EmptyStateMessage)
		})

		convey.Convey("When file outputs are requested", func() {
			xlsx := filepath.Join(dir, "out.xlsx")
			csv := filepath.Join(dir, "out.csv")
			chartPath := filepath.Join(dir, "countries.png")
			top := filepath.Join(dir, "top.png")
			err := run(ctx, []string{"-xlsx", xlsx, "-csv", csv, "-chart", chartPath, "-top-chart", top}, &stdout, &stderr)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the workbook has the dashboard sheets", func() {
				f, err := excelize.OpenFile(xlsx)
				convey.So(err, convey.ShouldBeNil)
				defer f.Close()
				convey.So(f.GetSheetList(), convey.ShouldContain, "Countries")
			})

			convey.Convey("Then the CSV holds the projected columns", func() {
				data, err := os.ReadFile(csv)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldStartWith, "name,country,rank,points")
			})

			convey.Convey("Then both charts are PNG images", func() {
				for _, p := range []string{chartPath, top} {
					f, err := os.Open(p)
					convey.So(err, convey.ShouldBeNil)
					_, err = png.DecodeConfig(f)
					_ = f.Close()
					convey.So(err, convey.ShouldBeNil)
				}
			})
		})

		convey.Convey("When a range is inverted", func() {
			err := run(ctx, []string{"-rank-min", "5", "-rank-max", "1"}, &stdout, &stderr)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When a bound is not an integer", func() {
			err := run(ctx, []string{"-points-max", "lots"}, &stdout, &stderr)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When help is requested", func() {
			err := run(ctx, []string{"-h"}, &stdout, &stderr)
			convey.So(err, convey.ShouldBeNil)
			convey.So(stderr.String(), convey.ShouldContainSubstring, "-rank-min")
		})
	})

	convey.Convey("Given an empty database, charts are skipped", t, func() {
		dir := useSQLite(t, `
CREATE TABLE competitors (id INTEGER, name TEXT, country TEXT);
CREATE TABLE competitor_rankings (competitor_id INTEGER, "rank" INTEGER, points INTEGER, movement INTEGER, competitions_played INTEGER);
`)
		var stdout, stderr bytes.Buffer
		chartPath := filepath.Join(dir, "countries.png")
		err := run(context.Background(), []string{"-chart", chartPath}, &stdout, &stderr)
		convey.So(err, convey.ShouldBeNil)
		_, statErr := os.Stat(chartPath)
		convey.So(errors.Is(statErr, os.ErrNotExist), convey.ShouldBeTrue)
	})

	convey.Convey("Given a database without the tables", t, func() {
		useSQLite(t, `CREATE TABLE unrelated (id INTEGER);`)
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), nil, &stdout, &stderr)
		convey.So(errors.Is(err, model.ErrDataSource), convey.ShouldBeTrue)
		convey.So(stdout.Len(), convey.ShouldEqual, 0)
	})
}

func TestRangeOf(t *testing.T) {
	convey.Convey("Given optional bounds", t, func() {
		convey.Convey("Then unset bounds give no range", func() {
			r, err := rangeOf(boundFlag{}, boundFlag{})
			convey.So(err, convey.ShouldBeNil)
			convey.So(r, convey.ShouldBeNil)
		})

		convey.Convey("Then one set side leaves the other open", func() {
			r, err := rangeOf(boundFlag{value: 3, set: true}, boundFlag{})
			convey.So(err, convey.ShouldBeNil)
			convey.So(r.Min, convey.ShouldEqual, 3)
			convey.So(r.Contains(1_000_000), convey.ShouldBeTrue)
		})
	})
}
