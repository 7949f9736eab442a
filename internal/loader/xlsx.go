package loader

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// parseXLSX reads one worksheet of a workbook. The layout matches CSV: a
// header row naming the fields, then one record per row.
func parseXLSX(data []byte, sheet string) ([]record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, malformed("invalid XLSX: %v", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, malformed("workbook has no worksheets")
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, malformed("worksheet %q not found", sheet)
	}

	// Raw values: a formatted cell such as "$1,234.50" must still read as 1234.5.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, malformed("read worksheet %q: %v", sheet, err)
	}

	return tableRecords(rows), nil
}
