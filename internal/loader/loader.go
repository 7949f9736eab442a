// =============================================================================
// Sales Calculator - Document Loader
// =============================================================================
//
// This module reads the price catalogue and the sales data from disk and
// converts them into the record types consumed by the accumulator.
//
// SUPPORTED FORMATS (selected by file extension):
//   - .json          : array of objects (default for unknown extensions)
//   - .yaml / .yml   : sequence of mappings
//   - .csv / .tsv    : header row followed by data rows
//   - .xlsx / .xlsm  : header row followed by data rows on one sheet
//
// FAILURE MODEL:
//   A document is either loaded completely or not at all. Every failure is
//   returned as a *LoadError carrying its Kind:
//     not_found  : the path does not exist
//     unreadable : the path exists but cannot be read
//     malformed  : the content cannot be parsed into records
//     empty      : the document parsed but holds no records
//
//   Record-level oddities (a string quantity, a missing product) are NOT
//   load failures. They are carried through to the accumulator.
//
// =============================================================================

package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/compute-sales/internal/types"
)

// =============================================================================
// DOCUMENTS AND FORMATS
// =============================================================================

// Document names which of the two inputs is being loaded.
type Document string

const (
	DocumentCatalogue Document = "price catalogue"
	DocumentSales     Document = "sales data"
)

// Format is an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// Label is the upper-case name used in diagnostics.
func (f Format) Label() string {
	if f == "" {
		return "JSON"
	}
	return strings.ToUpper(string(f))
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	case ".tsv":
		return FormatTSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatJSON
	}
}

// ParseFormat validates a format name given on the command line or in config.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON, FormatYAML, FormatCSV, FormatTSV, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown input format %q", s)
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options tunes how documents are read.
type Options struct {
	// Format forces an input format. Empty means detect from the extension.
	Format Format

	// Delimiter is the CSV field separator. Accepts a single character or
	// one of "tab", "pipe", "semicolon". Default ",".
	Delimiter string

	// Sheet is the XLSX worksheet to read. Default is the first sheet.
	Sheet string
}

func (o Options) formatFor(path string) Format {
	if o.Format != "" {
		return o.Format
	}
	return DetectFormat(path)
}

// =============================================================================
// PUBLIC LOADERS
// =============================================================================

// LoadCatalogue reads the price catalogue at path. Every entry must carry
// both a "title" and a "price" field; the price itself may be non-numeric.
func LoadCatalogue(path string, opts Options) ([]types.CatalogueEntry, error) {
	format := opts.formatFor(path)

	records, err := readRecords(path, format, opts)
	if err != nil {
		return nil, wrapLoadError(err, path, DocumentCatalogue, format)
	}

	entries := make([]types.CatalogueEntry, 0, len(records))
	for i, rec := range records {
		entry, err := catalogueEntry(rec)
		if err != nil {
			return nil, &LoadError{
				Path:     path,
				Document: DocumentCatalogue,
				Format:   format,
				Kind:     KindMalformed,
				Err:      fmt.Errorf("record %d: %w", i+1, err),
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// LoadSales reads the sales data at path. Both fields of a sale record are
// optional.
func LoadSales(path string, opts Options) ([]types.SaleRecord, error) {
	format := opts.formatFor(path)

	records, err := readRecords(path, format, opts)
	if err != nil {
		return nil, wrapLoadError(err, path, DocumentSales, format)
	}

	sales := make([]types.SaleRecord, 0, len(records))
	for i, rec := range records {
		product, hasProduct := rec[types.FieldProduct]
		quantity, hasQuantity := rec[types.FieldQuantity]
		sales = append(sales, types.SaleRecord{
			Index:    i,
			Product:  textFrom(product, hasProduct),
			Quantity: numberFrom(quantity, hasQuantity),
		})
	}

	return sales, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// record is one source object keyed by field name. Absent fields have no key.
type record map[string]any

// kindError tags a parse failure with its Kind before it is wrapped.
type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

func malformed(format string, args ...any) error {
	return &kindError{kind: KindMalformed, err: fmt.Errorf(format, args...)}
}

func wrapLoadError(err error, path string, doc Document, format Format) *LoadError {
	le := &LoadError{Path: path, Document: doc, Format: format, Kind: KindMalformed, Err: err}
	var ke *kindError
	if errors.As(err, &ke) {
		le.Kind = ke.kind
		le.Err = ke.err
	}
	if le.Err == le.Kind.sentinel() {
		le.Err = nil
	}
	return le
}

// readRecords reads and parses the file, returning at least one record.
func readRecords(path string, format Format, opts Options) ([]record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &kindError{kind: KindNotFound, err: err}
		}
		return nil, &kindError{kind: KindUnreadable, err: err}
	}

	var records []record
	switch format {
	case FormatYAML:
		records, err = parseYAML(data)
	case FormatCSV:
		records, err = parseCSV(data, opts.Delimiter)
	case FormatTSV:
		delimiter := opts.Delimiter
		if delimiter == "" {
			delimiter = "tab"
		}
		records, err = parseCSV(data, delimiter)
	case FormatXLSX:
		records, err = parseXLSX(data, opts.Sheet)
	default:
		records, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, &kindError{kind: KindEmpty, err: ErrEmpty}
	}

	return records, nil
}

func catalogueEntry(rec record) (types.CatalogueEntry, error) {
	rawTitle, ok := rec[types.FieldTitle]
	if !ok || rawTitle == nil {
		return types.CatalogueEntry{}, fmt.Errorf("missing %q field", types.FieldTitle)
	}
	title, ok := scalarText(rawTitle)
	if !ok {
		return types.CatalogueEntry{}, fmt.Errorf("%q must be a scalar value", types.FieldTitle)
	}

	rawPrice, ok := rec[types.FieldPrice]
	if !ok {
		return types.CatalogueEntry{}, fmt.Errorf("missing %q field", types.FieldPrice)
	}

	return types.CatalogueEntry{Title: title, Price: numberFrom(rawPrice, true)}, nil
}
