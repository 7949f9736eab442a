package sales

import (
	"fmt"
	"strings"
)

// =============================================================================
// ANOMALY TYPES
// =============================================================================

// Severity classifies an anomaly for reporting.
type Severity string

const (
	// SeverityWarning marks a record that could not be joined to the catalogue.
	SeverityWarning Severity = "warning"

	// SeverityError marks a record that joined but could not be priced.
	SeverityError Severity = "error"
)

// Kind identifies which rule a sale record violated.
type Kind string

const (
	KindMissingProduct  Kind = "missing_product"
	KindUnlistedProduct Kind = "unlisted_product"
	KindInvalidPrice    Kind = "invalid_price"
)

// Anomaly describes one sale record that did not contribute to the total.
// Anomalies are collected, never returned as errors.
type Anomaly struct {
	// Index is the position of the sale record in the input document.
	Index int

	Kind     Kind
	Severity Severity

	// Product is the product name of the record, empty for KindMissingProduct.
	Product string

	// Message is the human-readable line written to the result artifact.
	Message string
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================
// Message wording is kept stable; downstream tooling greps the result
// artifact for these lines.

func missingProduct(index int) Anomaly {
	return Anomaly{
		Index:    index,
		Kind:     KindMissingProduct,
		Severity: SeverityWarning,
		Message:  "Warning: Sale record with a missing product name.",
	}
}

func unlistedProduct(index int, product string) Anomaly {
	return Anomaly{
		Index:    index,
		Kind:     KindUnlistedProduct,
		Severity: SeverityWarning,
		Product:  product,
		Message:  fmt.Sprintf("Warning: '%s' is not listed in the price catalogue.", product),
	}
}

func invalidPrice(index int, product string) Anomaly {
	return Anomaly{
		Index:    index,
		Kind:     KindInvalidPrice,
		Severity: SeverityError,
		Product:  product,
		Message:  fmt.Sprintf("Error: Invalid price format for '%s'.", product),
	}
}

// FormatAnomalies renders anomalies one per line, in order.
func FormatAnomalies(anomalies []Anomaly) string {
	var b strings.Builder
	for _, a := range anomalies {
		b.WriteString(a.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

// CountBySeverity returns the number of warnings and errors.
func CountBySeverity(anomalies []Anomaly) (warnings, errors int) {
	for _, a := range anomalies {
		if a.Severity == SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	return warnings, errors
}
