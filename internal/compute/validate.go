package compute

import (
	"context"
	"errors"
	"fmt"

	"github.com/ginjaninja78/compute-sales/internal/loader"
	"github.com/ginjaninja78/compute-sales/internal/sales"
)

// Check is the outcome of Runner.Check.
type Check struct {
	Status Status

	// Loaded is true when both documents were read successfully.
	Loaded bool

	// CatalogueEntries and SaleRecords count the loaded records.
	CatalogueEntries int
	SaleRecords      int

	// DuplicateTitles lists catalogue titles that appear more than once.
	DuplicateTitles []string

	Err error
}

// Check loads both documents and applies the duplicate policy without
// accumulating or writing anything.
func (r *Runner) Check(ctx context.Context, req Request) Check {
	if err := ctx.Err(); err != nil {
		return Check{Status: StatusInterrupted, Err: fmt.Errorf("check cancelled: %w", err)}
	}

	logger := r.logger.With("run_id", r.newRunID())

	catalogue, salesData, err := r.load(logger, req)
	if err != nil {
		return Check{Status: StatusLoadFailure, Err: err}
	}

	check := Check{
		Status:           StatusOK,
		Loaded:           true,
		CatalogueEntries: len(catalogue),
		SaleRecords:      len(salesData),
	}

	index, err := sales.BuildPriceIndex(catalogue, r.cfg.DuplicatePolicy())
	if err != nil {
		var dupErr *sales.DuplicateTitleError
		if errors.As(err, &dupErr) {
			check.DuplicateTitles = dupErr.Titles
		}
		check.Status = StatusLoadFailure
		check.Err = &loader.LoadError{
			Path:     req.CataloguePath,
			Document: loader.DocumentCatalogue,
			Kind:     loader.KindMalformed,
			Err:      err,
		}
		return check
	}

	check.DuplicateTitles = index.Duplicates()
	return check
}
