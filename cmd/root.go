// =============================================================================
// Sales Calculator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// computes the sales total; the other commands are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (computesales <price_catalogue> <sales_data>)
//   ├── validateCmd (computesales validate <price_catalogue> <sales_data>)
//   └── versionCmd  (computesales version)
//
// EXIT CODES:
//   0 : result written (warnings do not change this)
//   1 : an input document could not be loaded
//   2 : usage or configuration error
//   3 : a result artifact could not be written
//   130 : interrupted before the run started
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/compute-sales/internal/compute"
	"github.com/ginjaninja78/compute-sales/internal/config"
	"github.com/ginjaninja78/compute-sales/internal/logging"
)

// =============================================================================
// FLAG VALUES
// =============================================================================

// rootOptions holds every flag value for one invocation.
type rootOptions struct {
	// Persistent flags.
	cfgFile     string
	verbose     bool
	logFormat   string
	duplicates  string
	inputFormat string
	delimiter   string
	sheet       string

	// Root-only flags.
	output    string
	outputDir string
	formats   []string
	quiet     bool
}

// statusError carries a non-OK run status out of a RunE function.
type statusError struct {
	status compute.Status
	err    error

	// reported is true when the diagnostics were already printed.
	reported bool
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "computesales <price_catalogue> <sales_data>",
		Short: "Compute total sales cost from a price catalogue and sales records",
		Long: `computesales joins a list of sale records against a price catalogue and
writes the total sales cost, the execution time and every problem found in
the sales data.

Input documents may be JSON (default), YAML, CSV/TSV or XLSX, chosen by
file extension. Catalogue records use the fields "title" and "price"; sale
records use "Product" and "Quantity".

Records with a missing product, an unlisted product or a non-numeric
price/quantity are skipped and reported; they never stop the run.

Example Usage:
  computesales catalogue.json sales.json
  computesales catalogue.xlsx sales.csv --format xlsx --output-dir ./results
  computesales validate catalogue.json sales.json`,

		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, opts, compute.Request{CataloguePath: args[0], SalesPath: args[1]})
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", config.DefaultPath, "Path to the configuration file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&opts.duplicates, "duplicates", "", "Duplicate catalogue titles: override, keep_first or reject")
	pf.StringVar(&opts.inputFormat, "input-format", "", "Force the input format: json, yaml, csv, tsv or xlsx")
	pf.StringVar(&opts.delimiter, "delimiter", "", "Field separator for CSV input")
	pf.StringVar(&opts.sheet, "sheet", "", "Worksheet to read from XLSX input")

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	f := rootCmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "Results file name; supports {uuid}, {timestamp}, {date}, {time}")
	f.StringVar(&opts.outputDir, "output-dir", "", "Directory for result artifacts")
	f.StringSliceVar(&opts.formats, "format", nil, "Extra artifact formats: xlsx, xml (repeatable)")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not mirror the result to stdout")

	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI with the process arguments and returns the exit code.
// It is called by main.main(), which is the only place the process exits.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return compute.StatusOK.ExitCode()
	}

	var se *statusError
	if errors.As(err, &se) {
		if !se.reported {
			fmt.Fprintf(stderr, "Error: %v\n", se.err)
		}
		return se.status.ExitCode()
	}

	// Argument, flag and configuration errors.
	fmt.Fprintf(stderr, "Error: %v\n", err)
	fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", rootCmd.Name())
	return compute.StatusUsage.ExitCode()
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// resolveConfig loads the configuration file and applies flag overrides.
// An explicitly named config file must exist; the default one may not.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(opts.cfgFile)
	} else {
		cfg, err = config.LoadOptional(opts.cfgFile)
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("duplicates") {
		cfg.DuplicateTitles = opts.duplicates
	}
	if flags.Changed("input-format") {
		cfg.Input.Format = opts.inputFormat
	}
	if flags.Changed("delimiter") {
		cfg.Input.CSVDelimiter = opts.delimiter
	}
	if flags.Changed("sheet") {
		cfg.Input.XLSXSheet = opts.sheet
	}
	if flags.Changed("output") {
		cfg.ResultsFile = opts.output
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("format") {
		cfg.ReportFormats = append([]string{config.FormatText}, opts.formats...)
	}
	if flags.Changed("quiet") {
		cfg.Quiet = opts.quiet
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger configures the process-wide slog default and returns it.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
}
