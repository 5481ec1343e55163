// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing
// and flag binding. Command execution is delegated to handler functions in the
// handlers package.
package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

// Root returns the root command for the kopsup CLI.
//
// Invoking the CLI without a subcommand is an error: the run exits with the
// fatal status after printing usage, rather than silently showing help.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kopsup",
		Short: "Provision Kubernetes on Google Cloud using kops",
		// main prints fatal errors itself with an "ERROR:" marker.
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return errors.New("command not supplied")
		},
	}

	cmd.AddCommand(Install())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
