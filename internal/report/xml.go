package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// =============================================================================
// XML DOCUMENT STRUCTURE
// =============================================================================

type xmlResult struct {
	XMLName     xml.Name     `xml:"salesResult"`
	RunID       string       `xml:"runId,attr"`
	GeneratedAt string       `xml:"generatedAt,attr,omitempty"`
	Catalogue   string       `xml:"inputs>catalogue,omitempty"`
	Sales       string       `xml:"inputs>sales,omitempty"`
	TotalSales  string       `xml:"totalSales"`
	Execution   xmlExecution `xml:"executionTime"`
	Priced      int          `xml:"recordsPriced"`
	Warnings    *xmlWarnings `xml:"warnings,omitempty"`
}

type xmlExecution struct {
	Unit  string `xml:"unit,attr"`
	Value string `xml:",chardata"`
}

type xmlWarnings struct {
	Count int          `xml:"count,attr"`
	Items []xmlWarning `xml:"warning"`
}

type xmlWarning struct {
	Record   int    `xml:"record,attr"`
	Severity string `xml:"severity,attr"`
	Kind     string `xml:"kind,attr"`
	Product  string `xml:"product,attr,omitempty"`
	Message  string `xml:",chardata"`
}

// =============================================================================
// XML GENERATION
// =============================================================================

// WriteXML writes the result as an indented XML document with declaration.
// Record numbers in the document are 1-based.
func WriteXML(w io.Writer, s Summary) error {
	doc := xmlResult{
		RunID:      s.RunID,
		Catalogue:  s.CataloguePath,
		Sales:      s.SalesPath,
		TotalSales: s.TotalText(),
		Execution:  xmlExecution{Unit: "seconds", Value: s.ElapsedText()},
		Priced:     s.Result.RecordsPriced,
	}
	if !s.GeneratedAt.IsZero() {
		doc.GeneratedAt = s.GeneratedAt.UTC().Format(time.RFC3339)
	}

	if len(s.Result.Anomalies) > 0 {
		doc.Warnings = &xmlWarnings{Count: len(s.Result.Anomalies)}
		for _, a := range s.Result.Anomalies {
			doc.Warnings.Items = append(doc.Warnings.Items, xmlWarning{
				Record:   a.Index + 1,
				Severity: string(a.Severity),
				Kind:     string(a.Kind),
				Product:  a.Product,
				Message:  a.Message,
			})
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode XML report: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write XML report: %w", err)
	}

	return nil
}
