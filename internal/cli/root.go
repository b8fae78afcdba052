// Package cli wires the report pipeline into a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all subcommands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the root command for the salesreport CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "salesreport",
		Short: "Clean a sales dataset and generate its report artifacts",
		Long: `salesreport ingests a raw sales CSV, profiles and cleans it, computes
product rankings, ABC classification and time/territory breakdowns, and
writes the resulting tables, spreadsheets and charts plus an append-only
run log.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a JSON run config (built-in defaults when omitted)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}
