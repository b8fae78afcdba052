package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"salesreport/internal/chart"
	"salesreport/internal/config"
	"salesreport/internal/report"
	"salesreport/internal/runlog"
)

// NewRunCommand creates the run command, the main entry point of the
// pipeline.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "run",
		Short:        "Execute a full report run",
		Long: `Load the configured sales CSV, clean it, compute the analyses the
dataset supports, and write every artifact into the output directory.
A missing input file or an unwritable artifact fails the run.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(rootOpts)
			if err != nil {
				return err
			}
			if err := failOnIssues(cmd, cfg, rootOpts.Verbose); err != nil {
				return err
			}

			runner := &report.Runner{
				Cfg:    cfg,
				Log:    runlog.New(cfg.Log.Path, cmd.OutOrStdout()),
				Charts: chart.New(filepath.Join(cfg.Report.OutDir, "charts")),
			}
			return runner.Run(cmd.Context())
		},
	}
}

// resolveConfig loads the config file when one is given, the defaults
// otherwise.
func resolveConfig(opts *RootOptions) (config.Run, error) {
	if opts.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(opts.ConfigPath)
}

// failOnIssues prints every config issue and fails when any is an error.
// Warnings are printed only in verbose mode.
func failOnIssues(cmd *cobra.Command, cfg config.Run, verbose bool) error {
	issues := config.Validate(cfg)
	errs := 0
	for _, iss := range issues {
		if iss.Severity == config.SeverityError {
			errs++
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", iss)
		} else if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", iss)
		}
	}
	if errs > 0 {
		return fmt.Errorf("configuration has %d error(s)", errs)
	}
	return nil
}
