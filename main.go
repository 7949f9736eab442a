// =============================================================================
// Sales Calculator - Main Entry Point
// =============================================================================
//
// USAGE:
//   computesales <price_catalogue> <sales_data>   - Compute the sales total
//   computesales validate <catalogue> <sales>     - Check the inputs load
//   computesales version                          - Display the version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : loader, accumulator, reports, runner
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"os"

	"github.com/ginjaninja78/compute-sales/cmd"
)

// main maps the run status to the process exit code. Nothing below main
// calls os.Exit.
func main() {
	os.Exit(cmd.Execute())
}
