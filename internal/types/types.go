// =============================================================================
// Sales Calculator - Shared Types
// =============================================================================
//
// This package contains the record types shared by the loader, the sales
// accumulator and the report writers. Keeping them here avoids import
// cycles between those packages.
//
// SOURCE DOCUMENTS:
//   - Price catalogue : records with the fields "title" and "price"
//   - Sales data      : records with the fields "Product" and "Quantity"
//
// The field names and their casing are part of the external contract and
// are matched exactly by the loader.
//
// =============================================================================

package types

// =============================================================================
// FIELD NAMES
// =============================================================================

const (
	// FieldTitle is the catalogue field holding the product title.
	FieldTitle = "title"

	// FieldPrice is the catalogue field holding the unit price.
	FieldPrice = "price"

	// FieldProduct is the sales field naming the product sold.
	FieldProduct = "Product"

	// FieldQuantity is the sales field holding the quantity sold.
	FieldQuantity = "Quantity"
)

// =============================================================================
// CATALOGUE TYPES
// =============================================================================

// CatalogueEntry is one line of the price catalogue.
type CatalogueEntry struct {
	// Title is the product title. It is the join key against SaleRecord.Product.
	Title string

	// Price is the unit price. It may be non-numeric in malformed documents;
	// that is only detected when a sale references the entry.
	Price Number
}

// =============================================================================
// SALES TYPES
// =============================================================================

// SaleRecord is one transaction line of the sales document.
type SaleRecord struct {
	// Index is the zero-based position of the record in the input document.
	Index int

	// Product names the product sold. Absent when the key is missing, null,
	// empty or otherwise falsy.
	Product Text

	// Quantity is the number of units sold.
	Quantity Number
}
