package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/courtside/internal/domain/model"
)

// Workbook sheet names, in order.
const (
	SheetFiltered    = "Filtered"
	SheetCountries   = "Countries"
	SheetTopByRank   = "Top by Rank"
	SheetTopByPoints = "Top by Points"
	SheetSummary     = "Summary"
)

var recordHeader = []any{"Name", "Country", "Rank", "Points", "Movement", "Competitions Played"} //nolint:gochecknoglobals // sheet header

// Workbook writes every view of a pass as one XLSX workbook.
func Workbook(w io.Writer, views model.Views) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetFiltered); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetCountries, SheetTopByRank, SheetTopByPoints, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetFiltered, recordRows(views.Filtered)},
		{SheetCountries, countryRows(views.Countries)},
		{SheetTopByRank, recordRows(views.TopByRank)},
		{SheetTopByPoints, recordRows(views.TopByPoints)},
		{SheetSummary, summaryRows(views.Summary)},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.rows, header); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return fmt.Errorf("%s column width: %w", sheet, err)
	}
	return nil
}

func recordRows(recs []model.EnrichedRecord) [][]any {
	rows := make([][]any, 0, len(recs)+1)
	rows = append(rows, recordHeader)
	for _, r := range recs {
		rows = append(rows, []any{r.Name, r.Country, r.Rank, r.Points, r.Movement, r.CompetitionsPlayed})
	}
	return rows
}

func countryRows(aggs []model.CountryAggregate) [][]any {
	rows := make([][]any, 0, len(aggs)+1)
	rows = append(rows, []any{"Country", "Total Competitors", "Avg Points"})
	for _, a := range aggs {
		rows = append(rows, []any{a.Country, a.TotalCompetitors, a.AvgPoints})
	}
	return rows
}

func summaryRows(s model.Summary) [][]any {
	return [][]any{
		{"Metric", "Value"},
		{"Total Competitors", s.TotalCompetitors},
		{"Countries", s.Countries},
		{"Max Points", s.MaxPoints},
	}
}
