// Package report renders the views of a pass as plain-text tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/okian/courtside/internal/domain/model"
)

// Title heads every report.
const Title = "Global Tennis Competitor Dashboard"

// Write renders summary, filtered results, detail, country analysis and
// both leaderboards to w.
func Write(w io.Writer, views model.Views) error {
	ew := &errWriter{w: w}

	ew.printf("%s\n\n", Title)

	ew.section("Summary Statistics")
	table := newTable(ew, "Metric", "Value")
	table.Append([]string{"Total Competitors", strconv.Itoa(views.Summary.TotalCompetitors)})
	table.Append([]string{"Countries Represented", strconv.Itoa(views.Summary.Countries)})
	table.Append([]string{"Highest Points", strconv.Itoa(views.Summary.MaxPoints)})
	table.Render()

	ew.section("Filtered Competitors")
	ew.printf("Showing %d competitors based on the filters.\n", len(views.Filtered))
	writeRecords(ew, views.Filtered, "Name", "Country", "Rank", "Points")

	if views.Selected == nil {
		ew.printf("\n%s\n", model.EmptyStateMessage)
	} else {
		ew.section("Details for " + views.Selected.Name)
		writeDetail(ew, *views.Selected)
	}

	ew.section("Competitor Stats by Country")
	table = newTable(ew, "Country", "Total Competitors", "Avg Points")
	for _, a := range views.Countries {
		table.Append([]string{a.Country, strconv.Itoa(a.TotalCompetitors), strconv.FormatFloat(a.AvgPoints, 'f', 2, 64)})
	}
	table.Render()

	ew.section(fmt.Sprintf("Top %d by Rank", len(views.TopByRank)))
	writeRecords(ew, views.TopByRank, "Name", "Country", "Rank", "Points")

	ew.section(fmt.Sprintf("Top %d by Points", len(views.TopByPoints)))
	writeRecords(ew, views.TopByPoints, "Name", "Country", "Points", "Rank")

	return ew.err
}

func writeRecords(w io.Writer, recs []model.EnrichedRecord, columns ...string) {
	table := newTable(w, columns...)
	for _, r := range recs {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = field(r, c)
		}
		table.Append(row)
	}
	table.Render()
}

func writeDetail(w io.Writer, r model.EnrichedRecord) {
	table := newTable(w, "Field", "Value")
	for _, c := range []string{"Name", "Country", "Rank", "Movement", "Competitions Played", "Points"} {
		table.Append([]string{c, field(r, c)})
	}
	table.Render()
}

func field(r model.EnrichedRecord, column string) string {
	switch column {
	case "Name":
		return r.Name
	case "Country":
		return r.Country
	case "Rank":
		return strconv.Itoa(r.Rank)
	case "Points":
		return strconv.Itoa(r.Points)
	case "Movement":
		return strconv.Itoa(r.Movement)
	case "Competitions Played":
		return strconv.Itoa(r.CompetitionsPlayed)
	default:
		return ""
	}
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// errWriter keeps the first write error so rendering code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(e, format, args...)
}

func (e *errWriter) section(title string) {
	e.printf("\n== %s ==\n", title)
}
