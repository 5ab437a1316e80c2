package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/domain/model"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite(t *testing.T) {
	Convey("Given views with a selected competitor", t, func() {
		b := model.EnrichedRecord{Name: "Bea", Country: "ESP", Rank: 2, Points: 150, Movement: -3, CompetitionsPlayed: 9}
		a := model.EnrichedRecord{Name: "Ada", Country: "USA", Rank: 1, Points: 200, Movement: 1, CompetitionsPlayed: 12}
		views := model.Views{
			Summary:     model.Summary{TotalCompetitors: 2, Countries: 2, MaxPoints: 200},
			Filtered:    []model.EnrichedRecord{b},
			Selected:    &b,
			Countries:   []model.CountryAggregate{{Country: "ESP", TotalCompetitors: 1, AvgPoints: 150}},
			TopByRank:   []model.EnrichedRecord{a, b},
			TopByPoints: []model.EnrichedRecord{a, b},
		}

		Convey("When writing the report", func() {
			var buf bytes.Buffer
			err := Write(&buf, views)
			out := buf.String()

			Convey("Then every section is present", func() {
				So(err, ShouldBeNil)
				So(out, ShouldStartWith, Title)
				So(out, ShouldContainSubstring, "Summary Statistics")
				So(out, ShouldContainSubstring, "Showing 1 competitors based on the filters.")
				So(out, ShouldContainSubstring, "Details for Bea")
				So(out, ShouldContainSubstring, "Competitor Stats by Country")
				So(out, ShouldContainSubstring, "Top 2 by Rank")
				So(out, ShouldContainSubstring, "Top 2 by Points")
			})

			Convey("And values are rendered", func() {
				So(out, ShouldContainSubstring, "Highest Points")
				So(out, ShouldContainSubstring, "150.00")
				So(out, ShouldContainSubstring, "Competitions Played")
				So(out, ShouldContainSubstring, "-3")
				So(out, ShouldNotContainSubstring, model.EmptyStateMessage)
			})

			Convey("And the points leaderboard lists points before rank", func() {
				idx := strings.Index(out, "Top 2 by Points")
				So(idx, ShouldBeGreaterThan, 0)
				tail := out[idx+len("Top 2 by Points"):]
				So(strings.Index(tail, "Points"), ShouldBeLessThan, strings.Index(tail, "Rank"))
			})
		})
	})

	Convey("Given views without a selection", t, func() {
		var buf bytes.Buffer
		err := Write(&buf, model.Views{})

		Convey("Then the empty state message is shown", func() {
			So(err, ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, model.EmptyStateMessage)
			So(buf.String(), ShouldContainSubstring, "Showing 0 competitors")
		})
	})

	Convey("Given a failing writer", t, func() {
		err := Write(failingWriter{}, model.Views{})

		Convey("Then the write error is returned", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "disk full")
		})
	})
}
