package chart

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/domain/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestCountriesBar(t *testing.T) {
	Convey("Given country aggregates", t, func() {
		aggs := []model.CountryAggregate{
			{Country: "ESP", TotalCompetitors: 2, AvgPoints: 900},
			{Country: "USA", TotalCompetitors: 5, AvgPoints: 700},
			{Country: "FRA", TotalCompetitors: 1, AvgPoints: 300},
		}

		Convey("When rendering with a custom size", func() {
			var buf bytes.Buffer
			err := CountriesBar(&buf, aggs, WithSize(640, 320))

			Convey("Then a PNG of that size is produced", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(buf.Bytes(), pngMagic), ShouldBeTrue)
				cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
				So(err, ShouldBeNil)
				So(cfg.Width, ShouldEqual, 640)
				So(cfg.Height, ShouldEqual, 320)
			})

			Convey("And the input order is untouched", func() {
				So(aggs[0].Country, ShouldEqual, "ESP")
			})
		})

		Convey("When every country has zero competitors", func() {
			var buf bytes.Buffer
			err := CountriesBar(&buf, []model.CountryAggregate{{Country: "ESP"}})

			Convey("Then the chart still renders", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(buf.Bytes(), pngMagic), ShouldBeTrue)
			})
		})
	})

	Convey("Given no aggregates", t, func() {
		err := CountriesBar(&bytes.Buffer{}, nil)

		Convey("Then ErrNoData is returned", func() {
			So(errors.Is(err, ErrNoData), ShouldBeTrue)
		})
	})
}

func TestTopPointsBar(t *testing.T) {
	Convey("Given a leaderboard", t, func() {
		recs := []model.EnrichedRecord{
			{Name: "A", Points: 200},
			{Name: "B", Points: 150},
		}

		Convey("When rendering with defaults", func() {
			var buf bytes.Buffer
			err := TopPointsBar(&buf, recs)

			Convey("Then a default-size PNG is produced", func() {
				So(err, ShouldBeNil)
				cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
				So(err, ShouldBeNil)
				So(cfg.Width, ShouldEqual, DefaultWidth)
				So(cfg.Height, ShouldEqual, DefaultHeight)
			})
		})
	})

	Convey("Given an empty leaderboard", t, func() {
		err := TopPointsBar(&bytes.Buffer{}, []model.EnrichedRecord{})

		Convey("Then ErrNoData is returned", func() {
			So(errors.Is(err, ErrNoData), ShouldBeTrue)
		})
	})
}
