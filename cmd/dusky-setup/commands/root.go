// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dusky-system/dusky-setup/cmd/dusky-setup/handlers"
)

// Root returns the root command for the dusky-setup CLI.
//
// Invoked without arguments it runs the setup sequence; --dry-run and
// --reset select the other operations on the same configuration.
func Root() *cobra.Command {
	var (
		configPath string
		dryRun     bool
		resetState bool
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "dusky-setup",
		Short: "Run the Dusky setup sequence",
		Long: `Run the Dusky setup sequence.

The sequence is an ordered list of setup scripts defined in the
configuration file. Each script runs as the invoking user or through
sudo, and every completed step is recorded, so rerunning the command
resumes after the last completed step.

If no config file is specified, it looks for dusky-setup.yaml in the
current directory, then in the XDG config directory.

Examples:
  # Run the sequence, resuming recorded progress
  dusky-setup

  # Show what would run without executing anything
  dusky-setup --dry-run

  # Forget all recorded progress
  dusky-setup --reset

  # Run with a specific config file
  dusky-setup -c install/setup.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case resetState:
				return handlers.Reset(cmd.Context(), configPath)
			case dryRun:
				return handlers.Plan(cmd.Context(), configPath, jsonOut)
			default:
				return handlers.Run(cmd.Context(), configPath)
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dusky-setup.yaml)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Show each step's status without executing anything")
	cmd.Flags().BoolVar(&resetState, "reset", false, "Delete recorded progress and exit")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print dry-run output as JSON")

	cmd.AddCommand(Watch())
	cmd.AddCommand(Version())

	return cmd
}
