package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ginjaninja78/compute-sales/internal/sales"
)

// WriteText writes the text artifact to w.
func WriteText(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Total Sales: $%s\n", s.TotalText())
	fmt.Fprintf(bw, "Execution Time: %s seconds\n", s.ElapsedText())

	if s.Result.HasWarnings() {
		bw.WriteString("\nWarnings and Errors:\n")
		bw.WriteString(sales.FormatAnomalies(s.Result.Anomalies))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}
