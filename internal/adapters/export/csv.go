// Package export writes dashboard views as CSV frames and XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/courtside/internal/domain/model"
)

// FilteredColumns is the projection written by FilteredCSV.
var FilteredColumns = []string{"name", "country", "rank", "points"} //nolint:gochecknoglobals // exported column contract

// FilteredFrame projects records onto name, country, rank and points.
func FilteredFrame(recs []model.EnrichedRecord) (dataframe.DataFrame, error) {
	names := make([]string, len(recs))
	countries := make([]string, len(recs))
	ranks := make([]int, len(recs))
	points := make([]int, len(recs))
	for i, r := range recs {
		names[i] = r.Name
		countries[i] = r.Country
		ranks[i] = r.Rank
		points[i] = r.Points
	}

	df := dataframe.New(
		series.New(names, series.String, FilteredColumns[0]),
		series.New(countries, series.String, FilteredColumns[1]),
		series.New(ranks, series.Int, FilteredColumns[2]),
		series.New(points, series.Int, FilteredColumns[3]),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build filtered frame: %w", df.Err)
	}
	return df, nil
}

// CountriesFrame holds one row per country aggregate.
func CountriesFrame(aggs []model.CountryAggregate) (dataframe.DataFrame, error) {
	countries := make([]string, len(aggs))
	totals := make([]int, len(aggs))
	avgs := make([]float64, len(aggs))
	for i, a := range aggs {
		countries[i] = a.Country
		totals[i] = a.TotalCompetitors
		avgs[i] = a.AvgPoints
	}

	df := dataframe.New(
		series.New(countries, series.String, "country"),
		series.New(totals, series.Int, "total_competitors"),
		series.New(avgs, series.Float, "avg_points"),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build countries frame: %w", df.Err)
	}
	return df, nil
}

// FilteredCSV writes the filtered records as CSV with a header row.
func FilteredCSV(w io.Writer, recs []model.EnrichedRecord) error {
	df, err := FilteredFrame(recs)
	if err != nil {
		return err
	}
	return writeCSV(w, df)
}

// CountriesCSV writes the country aggregate as CSV with a header row.
func CountriesCSV(w io.Writer, aggs []model.CountryAggregate) error {
	df, err := CountriesFrame(aggs)
	if err != nil {
		return err
	}
	return writeCSV(w, df)
}

func writeCSV(w io.Writer, df dataframe.DataFrame) error {
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
