// =============================================================================
// Sales Calculator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads both input documents
// and reports what was found without computing or writing anything.
//
// COMMAND USAGE:
//   computesales validate <price_catalogue> <sales_data>
//
// OUTPUT:
//   Price catalogue: catalogue.json (12 entries)
//   Sales data:      sales.json (240 records)
//   Duplicate titles: Apple
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/compute-sales/internal/compute"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <price_catalogue> <sales_data>",
		Short: "Check that both input documents load",
		Long: `Load the price catalogue and the sales data and report record counts and
duplicate catalogue titles. No result artifacts are written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, compute.Request{CataloguePath: args[0], SalesPath: args[1]})
		},
	}
}

func runValidate(cmd *cobra.Command, opts *rootOptions, req compute.Request) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	runner := compute.New(cfg,
		compute.WithLogger(newLogger(cmd, cfg)),
		compute.WithConsole(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)

	check := runner.Check(cmd.Context(), req)
	if !check.Loaded {
		return &statusError{status: check.Status, err: check.Err, reported: check.Status == compute.StatusLoadFailure}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Price catalogue: %s (%d entries)\n", req.CataloguePath, check.CatalogueEntries)
	fmt.Fprintf(out, "Sales data:      %s (%d records)\n", req.SalesPath, check.SaleRecords)
	if len(check.DuplicateTitles) > 0 {
		fmt.Fprintf(out, "Duplicate titles: %s\n", strings.Join(check.DuplicateTitles, ", "))
	}

	if check.Status != compute.StatusOK {
		return &statusError{status: check.Status, err: check.Err}
	}
	return nil
}
