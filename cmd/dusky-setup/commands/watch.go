package commands

import (
	"github.com/spf13/cobra"

	"github.com/dusky-system/dusky-setup/cmd/dusky-setup/handlers"
)

// Watch returns the command for the live progress dashboard.
//
// The dashboard reads the completion log and script directories once a
// second and never writes anything, so it can run next to an active
// setup in another terminal.
func Watch() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch setup progress live",
		Long: `Watch setup progress live.

Renders a checklist of the sequence that updates as another dusky-setup
instance records completions. Without a terminal it prints the current
step status once and exits.

Examples:
  # Watch the default configuration's progress
  dusky-setup watch

  # Watch a specific config file
  dusky-setup watch -c install/setup.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Watch(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dusky-setup.yaml)")

	return cmd
}
