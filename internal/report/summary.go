// =============================================================================
// Sales Calculator - Report Writers
// =============================================================================
//
// This package turns the outcome of a run into result artifacts:
//   - text : the primary artifact, also mirrored to the console
//   - xlsx : a workbook with a Summary sheet and a Warnings sheet
//   - xml  : a <salesResult> document for downstream systems
//
// TEXT LAYOUT (fixed, consumed by other tools):
//   Total Sales: $<total, 2 decimals>
//   Execution Time: <seconds, 4 decimals> seconds
//
//   Warnings and Errors:
//   <one message per line>
//
// The warnings block is only written when there is at least one warning.
//
// =============================================================================

package report

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/compute-sales/internal/sales"
)

// Summary is everything a report writer needs about one run.
type Summary struct {
	// RunID identifies the run in logs and in the xlsx/xml artifacts.
	RunID string

	// CataloguePath and SalesPath are the input documents as given.
	CataloguePath string
	SalesPath     string

	// Result is the accumulator output.
	Result sales.RunResult

	// Elapsed covers loading and accumulation only.
	Elapsed time.Duration

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time
}

// TotalText is the total formatted for display.
func (s Summary) TotalText() string {
	return fmt.Sprintf("%.2f", s.Result.TotalCost)
}

// ElapsedText is the execution time in seconds formatted for display.
func (s Summary) ElapsedText() string {
	return fmt.Sprintf("%.4f", s.Elapsed.Seconds())
}
