package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"salesreport/internal/config"
)

// NewValidateCommand creates the validate command. It checks a run config
// without executing anything.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "validate",
		Short:        "Validate the run configuration without executing it",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(rootOpts)
			if err != nil {
				return err
			}

			issues := config.Validate(cfg)
			errs := 0
			for _, iss := range issues {
				fmt.Fprintf(cmd.OutOrStdout(), "%v\n", iss)
				if iss.Severity == config.SeverityError {
					errs++
				}
			}
			if errs > 0 {
				return fmt.Errorf("configuration has %d error(s)", errs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration valid")
			return nil
		},
	}
}
