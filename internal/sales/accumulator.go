// =============================================================================
// Sales Calculator - Accumulator
// =============================================================================
//
// This package joins sale records against the price catalogue and sums the
// line costs of every record that can be priced.
//
// PROCESSING RULES (applied to each sale record, in input order):
//   1. Missing product name      -> warning, record skipped
//   2. Product not in catalogue  -> warning, record skipped
//   3. Non-numeric price/quantity -> error, record skipped
//   4. Otherwise                 -> price * quantity added to the total
//
// ERROR HANDLING:
//   - Record-level problems are collected as anomalies, never returned
//   - One bad record never stops the remaining records from being summed
//   - The accumulator performs no I/O and has no side effects
//
// =============================================================================

package sales

import (
	"github.com/ginjaninja78/compute-sales/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// RunResult is the outcome of one accumulation. Warnings[i] is always
// Anomalies[i].Message.
type RunResult struct {
	// TotalCost is the floating-point sum of price * quantity over all valid
	// records. No rounding is applied here.
	TotalCost float64

	// Warnings holds the report line of every anomaly, in encounter order.
	Warnings []string

	// Anomalies holds the structured form of Warnings.
	Anomalies []Anomaly

	// RecordsPriced is the number of records that contributed to TotalCost.
	RecordsPriced int
}

// HasWarnings reports whether any record was skipped.
func (r RunResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// =============================================================================
// ACCUMULATION
// =============================================================================

// Accumulate joins sales against the catalogue and returns the total cost
// with the ordered list of warnings. Duplicate catalogue titles resolve
// last-write-wins.
func Accumulate(catalogue []types.CatalogueEntry, sales []types.SaleRecord) RunResult {
	return AccumulateIndex(NewPriceIndex(catalogue), sales)
}

// AccumulateIndex is Accumulate over a prebuilt price index.
func AccumulateIndex(index *PriceIndex, sales []types.SaleRecord) RunResult {
	result := RunResult{
		Warnings:  []string{},
		Anomalies: []Anomaly{},
	}

	for _, sale := range sales {
		if anomaly, ok := priceRecord(index, sale, &result.TotalCost); !ok {
			result.Anomalies = append(result.Anomalies, anomaly)
			result.Warnings = append(result.Warnings, anomaly.Message)
			continue
		}
		result.RecordsPriced++
	}

	return result
}

// priceRecord adds the line cost of one sale to total. It returns false with
// the anomaly when the record cannot be priced.
func priceRecord(index *PriceIndex, sale types.SaleRecord, total *float64) (Anomaly, bool) {
	product, ok := sale.Product.Value()
	if !ok {
		// Quantity is not examined for nameless records.
		return missingProduct(sale.Index), false
	}

	price, listed := index.Lookup(product)
	if !listed {
		return unlistedProduct(sale.Index, product), false
	}

	// Both operands are checked before multiplying. The message names the
	// price even when the quantity is at fault.
	unitPrice, priceOK := price.Float()
	quantity, quantityOK := sale.Quantity.Float()
	if !priceOK || !quantityOK {
		return invalidPrice(sale.Index, product), false
	}

	*total += unitPrice * quantity
	return Anomaly{}, true
}
