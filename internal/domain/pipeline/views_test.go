package pipeline_test

import (
	"testing"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecompute(t *testing.T) {
	Convey("Given the two-competitor example", t, func() {
		snap := exampleSnapshot()

		Convey("When recomputing with a rank filter", func() {
			views := pipeline.Recompute(snap, pipeline.Request{
				Criteria: model.FilterCriteria{RankRange: &model.Range{Min: 1, Max: 3}},
			})

			Convey("Then the filtered table holds only B", func() {
				So(names(views.Filtered), ShouldResemble, []string{"B"})
				So(views.Selected, ShouldNotBeNil)
				So(views.Selected.Name, ShouldEqual, "B")
			})

			Convey("And the effective criteria are clamped", func() {
				So(*views.Criteria.RankRange, ShouldResemble, model.Range{Min: 2, Max: 3})
				So(*views.Criteria.PointsRange, ShouldResemble, model.Range{Min: 100, Max: 200})
			})

			Convey("And the aggregates ignore the filter", func() {
				So(len(views.Countries), ShouldEqual, 2)
				So(names(views.TopByPoints), ShouldResemble, []string{"B", "A"})
				So(names(views.TopByRank), ShouldResemble, []string{"B", "A"})
			})

			Convey("And the summary covers the raw sets", func() {
				So(views.Summary, ShouldResemble, model.Summary{TotalCompetitors: 2, Countries: 2, MaxPoints: 200})
				So(views.Enriched, ShouldEqual, 2)
			})

			Convey("And the options list sorted names and countries", func() {
				So(views.Options.Names, ShouldResemble, []string{"A", "B"})
				So(views.Options.Countries, ShouldResemble, []string{"FR", "US"})
				So(views.Options.RangesEnabled, ShouldBeTrue)
			})
		})

		Convey("When the aggregates follow the filter", func() {
			views := pipeline.Recompute(snap, pipeline.Request{
				Criteria: model.FilterCriteria{Country: "US"},
			}, pipeline.WithFilteredAggregates())

			Convey("Then only the filtered country is aggregated", func() {
				So(views.Countries, ShouldResemble, []model.CountryAggregate{
					{Country: "US", TotalCompetitors: 1, AvgPoints: 100},
				})
				So(names(views.TopByRank), ShouldResemble, []string{"A"})
			})
		})

		Convey("When the leaderboard length is 1", func() {
			views := pipeline.Recompute(snap, pipeline.Request{}, pipeline.WithTopN(1))

			Convey("Then each leaderboard holds one record", func() {
				So(names(views.TopByRank), ShouldResemble, []string{"B"})
				So(names(views.TopByPoints), ShouldResemble, []string{"B"})
			})
		})

		Convey("When the selection is not in the filtered set", func() {
			views := pipeline.Recompute(snap, pipeline.Request{
				Criteria: model.FilterCriteria{Name: "A"},
				Selected: "B",
			})

			Convey("Then no detail is selected", func() {
				So(names(views.Filtered), ShouldResemble, []string{"A"})
				So(views.Selected, ShouldBeNil)
			})
		})
	})

	Convey("Given an empty snapshot", t, func() {
		views := pipeline.Recompute(model.Snapshot{}, pipeline.Request{
			Criteria: model.FilterCriteria{RankRange: &model.Range{Min: 1, Max: 10}},
		})

		Convey("Then every view is empty and ranges are disabled", func() {
			So(views.Filtered, ShouldBeEmpty)
			So(views.Selected, ShouldBeNil)
			So(views.Countries, ShouldBeEmpty)
			So(views.TopByRank, ShouldBeEmpty)
			So(views.TopByPoints, ShouldBeEmpty)
			So(views.Options.RangesEnabled, ShouldBeFalse)
			So(views.Criteria.RankRange, ShouldBeNil)
			So(views.Summary, ShouldResemble, model.Summary{})
		})
	})

	Convey("Given competitors with blank fields", t, func() {
		snap := model.Snapshot{
			Competitors: []model.Competitor{
				{ID: "1", Name: "B", Country: "FR"},
				{ID: "2", Name: "", Country: ""},
				{ID: "3", Name: "A", Country: "FR"},
			},
		}

		Convey("Then options skip blanks and duplicates", func() {
			opts := pipeline.BuildOptions(snap, nil)
			So(opts.Names, ShouldResemble, []string{"A", "B"})
			So(opts.Countries, ShouldResemble, []string{"FR"})
		})

		Convey("Then the summary counts distinct non-blank countries", func() {
			sum := pipeline.Summarize(snap)
			So(sum.TotalCompetitors, ShouldEqual, 3)
			So(sum.Countries, ShouldEqual, 1)
			So(sum.MaxPoints, ShouldEqual, 0)
		})
	})
}
