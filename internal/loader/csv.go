package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// =============================================================================
// CSV PARSING
// =============================================================================

// parseCSV reads a delimited document. The first non-empty row holds the
// field names; each following non-empty row is one record.
func parseCSV(data []byte, delimiter string) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	configureReader(reader, delimiter)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, malformed("invalid CSV: %v", err)
	}

	return tableRecords(rows), nil
}

// configureReader applies the delimiter setting to the CSV reader.
func configureReader(reader *csv.Reader, delimiter string) {
	switch delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(delimiter) > 0 {
			reader.Comma = rune(delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Rows may be ragged; missing trailing cells read as empty.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// =============================================================================
// TABLE CONVERSION
// =============================================================================
// Shared by the CSV and XLSX readers.

// tableRecords turns rows into records keyed by the header row. Every header
// column is present in every record; an empty or missing cell is the empty
// string, which reads as an absent product and a non-numeric price or quantity.
func tableRecords(rows [][]string) []record {
	start := 0
	for start < len(rows) && isRowEmpty(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil
	}

	headers := cleanHeaders(rows[start])
	records := make([]record, 0, len(rows)-start-1)

	for _, row := range rows[start+1:] {
		if isRowEmpty(row) {
			continue
		}

		rec := make(record, len(headers))
		for col, header := range headers {
			var value string
			if col < len(row) {
				value = strings.TrimSpace(row[col])
			}
			rec[header] = cell(value)
		}
		records = append(records, rec)
	}

	return records
}

// cleanHeaders trims header names. Blank headers get a positional name so
// they cannot collide with the real field names.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
