package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/compute-sales/internal/compute"
)

// runCompute runs one calculation and converts a non-OK status into a
// statusError for execute.
func runCompute(cmd *cobra.Command, opts *rootOptions, req compute.Request) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	runner := compute.New(cfg,
		compute.WithLogger(newLogger(cmd, cfg)),
		compute.WithConsole(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)

	outcome := runner.Run(cmd.Context(), req)
	if outcome.Status == compute.StatusOK {
		return nil
	}

	return &statusError{
		status:   outcome.Status,
		err:      outcome.Err,
		reported: outcome.Status == compute.StatusLoadFailure,
	}
}
