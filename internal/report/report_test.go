package report

import (
	"bytes"
	"encoding/xml"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/compute-sales/internal/sales"
	"github.com/ginjaninja78/compute-sales/internal/types"
)

func sampleSummary() Summary {
	catalogue := []types.CatalogueEntry{
		{Title: "Apple", Price: types.NumberOf(1.5)},
		{Title: "Banana", Price: types.NumberOf(0.5)},
	}
	records := []types.SaleRecord{
		{Index: 0, Product: types.TextOf("Apple"), Quantity: types.NumberOf(4)},
		{Index: 1, Product: types.TextOf("Banana"), Quantity: types.NumberOf(2)},
		{Index: 2, Product: types.TextOf("Mango"), Quantity: types.NumberOf(1)},
		{Index: 3, Quantity: types.NumberOf(1)},
		{Index: 4, Product: types.TextOf("Apple"), Quantity: types.NonNumeric("two")},
	}

	return Summary{
		RunID:         "run-42",
		CataloguePath: "catalogue.json",
		SalesPath:     "sales.json",
		Result:        sales.Accumulate(catalogue, records),
		Elapsed:       1234567 * time.Microsecond,
		GeneratedAt:   time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC),
	}
}

func TestWriteText_WithWarnings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleSummary()))

	want := "Total Sales: $7.00\n" +
		"Execution Time: 1.2346 seconds\n" +
		"\n" +
		"Warnings and Errors:\n" +
		"Warning: 'Mango' is not listed in the price catalogue.\n" +
		"Warning: Sale record with a missing product name.\n" +
		"Error: Invalid price format for 'Apple'.\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteText_NoWarnings(t *testing.T) {
	s := Summary{Result: sales.RunResult{TotalCost: 2.005}, Elapsed: 0}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))

	assert.Equal(t, "Total Sales: $2.00\nExecution Time: 0.0000 seconds\n", buf.String())
}

func TestSummaryFormatting(t *testing.T) {
	s := Summary{Result: sales.RunResult{TotalCost: 1234.567}, Elapsed: 50 * time.Millisecond}

	assert.Equal(t, "1234.57", s.TotalText())
	assert.Equal(t, "0.0500", s.ElapsedText())
}

func TestWriteXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, sampleSummary()))

	out := buf.String()
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<salesResult runId="run-42" generatedAt="2024-01-15T14:30:22Z">`)
	assert.Contains(t, out, `<totalSales>7.00</totalSales>`)
	assert.Contains(t, out, `<executionTime unit="seconds">1.2346</executionTime>`)

	var doc xmlResult
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "catalogue.json", doc.Catalogue)
	assert.Equal(t, 2, doc.Priced)
	require.NotNil(t, doc.Warnings)
	assert.Equal(t, 3, doc.Warnings.Count)
	require.Len(t, doc.Warnings.Items, 3)
	assert.Equal(t, 3, doc.Warnings.Items[0].Record)
	assert.Equal(t, "Mango", doc.Warnings.Items[0].Product)
	assert.Equal(t, "error", doc.Warnings.Items[2].Severity)
	assert.Equal(t, "Error: Invalid price format for 'Apple'.", doc.Warnings.Items[2].Message)
}

func TestWriteXML_NoWarnings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, Summary{RunID: "r"}))

	assert.NotContains(t, buf.String(), "<warnings")
	assert.NotContains(t, buf.String(), "<inputs")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SalesResults.xlsx")
	require.NoError(t, WriteXLSX(path, sampleSummary()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, warningsSheet}, f.GetSheetList())

	runID, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "run-42", runID)

	rows, err := f.GetRows(warningsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Record", "Severity", "Kind", "Product", "Message"}, rows[0])
	assert.Equal(t, []string{"3", "warning", "unlisted_product", "Mango", "Warning: 'Mango' is not listed in the price catalogue."}, rows[1])
	assert.Equal(t, "missing_product", rows[2][2])
}
