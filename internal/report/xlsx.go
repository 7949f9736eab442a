package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	warningsSheet = "Warnings"
)

// WriteXLSX saves the result as a workbook at path. The Summary sheet holds
// one label/value pair per row; the Warnings sheet holds one anomaly per row.
func WriteXLSX(path string, s Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	generated := ""
	if !s.GeneratedAt.IsZero() {
		generated = s.GeneratedAt.Format(time.RFC3339)
	}

	summaryRows := [][]any{
		{"Run ID", s.RunID},
		{"Generated At", generated},
		{"Price Catalogue", s.CataloguePath},
		{"Sales Data", s.SalesPath},
		{"Total Sales", s.Result.TotalCost},
		{"Execution Time (s)", s.Elapsed.Seconds()},
		{"Records Priced", s.Result.RecordsPriced},
		{"Warnings and Errors", len(s.Result.Warnings)},
	}
	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return err
	}

	// Display the total with two decimals, as in the text artifact.
	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "B5", "B5", style); err != nil {
		return fmt.Errorf("failed to style total cell: %w", err)
	}

	if _, err := f.NewSheet(warningsSheet); err != nil {
		return fmt.Errorf("failed to create warnings sheet: %w", err)
	}

	warningRows := [][]any{{"Record", "Severity", "Kind", "Product", "Message"}}
	for _, a := range s.Result.Anomalies {
		warningRows = append(warningRows, []any{a.Index + 1, string(a.Severity), string(a.Kind), a.Product, a.Message})
	}
	if err := writeRows(f, warningsSheet, warningRows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
