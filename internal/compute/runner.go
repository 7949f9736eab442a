// =============================================================================
// Sales Calculator - Runner
// =============================================================================
//
// The runner is the boundary between the command line and the core. It
// orchestrates one run and reports the outcome as an explicit Status.
//
// PROCESSING PIPELINE:
//   1. Load the price catalogue and the sales data     (timed)
//   2. Build the price index and accumulate the sales  (timed)
//   3. Write the text artifact, then mirror it to the console
//   4. Write the optional xlsx / xml artifacts
//
// ERROR HANDLING:
//   - Load failures are reported per document; if either fails, the
//     accumulator is not run and the status is StatusLoadFailure
//   - Record-level anomalies never change the status
//   - Artifact write failures give StatusWriteFailure
//
// =============================================================================

package compute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ginjaninja78/compute-sales/internal/config"
	"github.com/ginjaninja78/compute-sales/internal/loader"
	"github.com/ginjaninja78/compute-sales/internal/logging"
	"github.com/ginjaninja78/compute-sales/internal/report"
	"github.com/ginjaninja78/compute-sales/internal/sales"
	"github.com/ginjaninja78/compute-sales/internal/types"
	"github.com/ginjaninja78/compute-sales/pkg/utils"
)

// =============================================================================
// REQUEST AND OUTCOME
// =============================================================================

// Request names the two input documents.
type Request struct {
	CataloguePath string
	SalesPath     string
}

// Artifact is one written result file.
type Artifact struct {
	Format string
	Path   string
}

// Outcome is the result of Runner.Run.
type Outcome struct {
	Status Status

	// Summary is set whenever the accumulator ran.
	Summary *report.Summary

	// Artifacts lists the files written, in write order.
	Artifacts []Artifact

	// Err is nil for StatusOK. For load failures it joins one
	// *loader.LoadError per failed document.
	Err error
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes calculator runs with a fixed configuration.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	console  io.Writer
	diag     io.Writer
	now      func() time.Time
	newRunID func() string
}

// Option customises a Runner.
type Option func(*Runner)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithConsole sets where the result is mirrored (stdout) and where load
// diagnostics are printed (stderr).
func WithConsole(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.console = stdout
		r.diag = stderr
	}
}

// WithClock replaces time.Now, for deterministic timing in tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithRunID replaces the run ID generator.
func WithRunID(gen func() string) Option {
	return func(r *Runner) { r.newRunID = gen }
}

// New creates a Runner. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Runner{
		cfg:      cfg,
		logger:   logging.Discard(),
		console:  io.Discard,
		diag:     io.Discard,
		now:      time.Now,
		newRunID: utils.NewRunID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes one full calculation.
func (r *Runner) Run(ctx context.Context, req Request) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Status: StatusInterrupted, Err: fmt.Errorf("run cancelled: %w", err)}
	}

	runID := r.newRunID()
	logger := r.logger.With("run_id", runID)

	// =========================================================================
	// STEP 1: LOAD INPUTS
	// =========================================================================

	start := r.now()

	catalogue, salesData, err := r.load(logger, req)
	if err != nil {
		return Outcome{Status: StatusLoadFailure, Err: err}
	}

	// =========================================================================
	// STEP 2: ACCUMULATE
	// =========================================================================

	index, err := sales.BuildPriceIndex(catalogue, r.cfg.DuplicatePolicy())
	if err != nil {
		le := &loader.LoadError{
			Path:     req.CataloguePath,
			Document: loader.DocumentCatalogue,
			Format:   r.cfg.LoaderOptions().Format,
			Kind:     loader.KindMalformed,
			Err:      err,
		}
		fmt.Fprintf(r.diag, "Error: The file '%s' contains duplicate titles: %v\n", req.CataloguePath, err)
		logger.Error("catalogue rejected", "path", req.CataloguePath, "error", err)
		return Outcome{Status: StatusLoadFailure, Err: le}
	}
	if dups := index.Duplicates(); len(dups) > 0 {
		logger.Info("duplicate catalogue titles resolved",
			"policy", r.cfg.DuplicatePolicy(), "titles", dups)
	}

	result := sales.AccumulateIndex(index, salesData)
	elapsed := r.now().Sub(start)

	for _, a := range result.Anomalies {
		logger.Debug("sale record skipped",
			"record", a.Index+1, "kind", a.Kind, "severity", a.Severity, "product", a.Product)
	}

	warnings, errs := sales.CountBySeverity(result.Anomalies)
	logger.Info("sales accumulated",
		"total", result.TotalCost,
		"records", len(salesData),
		"priced", result.RecordsPriced,
		"warnings", warnings,
		"errors", errs,
		"elapsed", elapsed)

	summary := &report.Summary{
		RunID:         runID,
		CataloguePath: req.CataloguePath,
		SalesPath:     req.SalesPath,
		Result:        result,
		Elapsed:       elapsed,
		GeneratedAt:   r.now(),
	}

	// =========================================================================
	// STEP 3: WRITE ARTIFACTS
	// =========================================================================

	outcome := Outcome{Status: StatusOK, Summary: summary}

	artifacts, err := r.writeArtifacts(logger, *summary)
	outcome.Artifacts = artifacts
	if err != nil {
		outcome.Status = StatusWriteFailure
		outcome.Err = err
	}

	return outcome
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// load reads both documents. Both are attempted so that every failure is
// reported, and neither result is used unless both succeed.
func (r *Runner) load(logger *slog.Logger, req Request) ([]types.CatalogueEntry, []types.SaleRecord, error) {
	opts := r.cfg.LoaderOptions()

	catalogue, catErr := loader.LoadCatalogue(req.CataloguePath, opts)
	if catErr == nil {
		logger.Debug("catalogue loaded", "path", req.CataloguePath, "entries", len(catalogue))
	}

	salesData, salesErr := loader.LoadSales(req.SalesPath, opts)
	if salesErr == nil {
		logger.Debug("sales loaded", "path", req.SalesPath, "records", len(salesData))
	}

	for _, err := range []error{catErr, salesErr} {
		if err == nil {
			continue
		}
		r.reportLoadError(logger, err)
	}

	if err := errors.Join(catErr, salesErr); err != nil {
		return nil, nil, err
	}
	return catalogue, salesData, nil
}

func (r *Runner) reportLoadError(logger *slog.Logger, err error) {
	var le *loader.LoadError
	if errors.As(err, &le) {
		fmt.Fprintln(r.diag, le.Diagnostic())
		logger.Debug("load failed", "document", le.Document, "path", le.Path, "kind", le.Kind, "error", le.Err)
		return
	}
	fmt.Fprintf(r.diag, "Error: %v\n", err)
}

// writeArtifacts writes the text artifact, mirrors it to the console and
// then writes the optional formats.
func (r *Runner) writeArtifacts(logger *slog.Logger, s report.Summary) ([]Artifact, error) {
	fm := utils.NewFileManager(r.cfg.OutputDir)
	if err := fm.EnsureDirectories(); err != nil {
		return nil, err
	}

	name := utils.ExpandFileName(r.cfg.ResultsFile, s.RunID, s.GeneratedAt, map[string]string{
		"catalogue": utils.Stem(s.CataloguePath),
		"sales":     utils.Stem(s.SalesPath),
	})
	var artifacts []Artifact

	path, err := fm.WriteFile(name, func(w io.Writer) error {
		return report.WriteText(w, s)
	})
	if err != nil {
		return artifacts, fmt.Errorf("failed to write results: %w", err)
	}
	artifacts = append(artifacts, Artifact{Format: config.FormatText, Path: path})
	logger.Info("results written", "path", path)

	if !r.cfg.Quiet {
		if err := report.WriteText(r.console, s); err != nil {
			return artifacts, fmt.Errorf("failed to print results: %w", err)
		}
	}

	if r.cfg.WantsFormat(config.FormatXLSX) {
		path := fm.Path(utils.SiblingName(name, ".xlsx"))
		if err := report.WriteXLSX(path, s); err != nil {
			return artifacts, fmt.Errorf("failed to write %s: %w", path, err)
		}
		artifacts = append(artifacts, Artifact{Format: config.FormatXLSX, Path: path})
		logger.Info("results written", "path", path)
	}

	if r.cfg.WantsFormat(config.FormatXML) {
		path, err := fm.WriteFile(utils.SiblingName(name, ".xml"), func(w io.Writer) error {
			return report.WriteXML(w, s)
		})
		if err != nil {
			return artifacts, fmt.Errorf("failed to write XML results: %w", err)
		}
		artifacts = append(artifacts, Artifact{Format: config.FormatXML, Path: path})
		logger.Info("results written", "path", path)
	}

	return artifacts, nil
}
