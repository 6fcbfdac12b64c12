package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/promptdex/internal/preflight"
	"github.com/Aman-CERP/promptdex/internal/scanner"
)

// errDoctorFailed is returned when a required check fails, for a non-zero exit.
var errDoctorFailed = errors.New("one or more required checks failed")

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the catalog and environment",
		Long: `Scan the catalog root once and check the listen address, log directory
and file descriptor limit. Exits non-zero when a required check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			scanOpts := opts.cfg.ScannerOptions(wd)
			scanOpts.Logger = opts.logger

			checker := preflight.New(
				preflight.WithOutput(cmd.OutOrStdout()),
				preflight.WithVerbose(verbose),
			)
			results := checker.RunAll(cmd.Context(), preflight.Target{
				Catalog: scanner.New(scanOpts),
				Addr:    opts.cfg.Server.Addr,
				LogDir:  filepath.Dir(opts.logFile),
				Watch:   opts.cfg.Cache.Watch,
			})

			if jsonOutput {
				if err := writeJSON(cmd.OutOrStdout(), map[string]any{
					"status": checker.SummaryStatus(results),
					"checks": results,
				}); err != nil {
					return err
				}
			} else {
				checker.PrintResults(results)
			}

			if checker.HasCriticalFailures(results) {
				return errDoctorFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show check details")

	return cmd
}
