package commands

import (
	"github.com/spf13/cobra"

	"github.com/kopsup/kopsup/cmd/kopsup/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command deletes the cluster, its remote state store, and the
// local working directory. Each deletion tolerates the resource being
// already absent.
func Destroy() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy a Kubernetes cluster and its state store",
		Long: `Destroy removes the cluster and everything kopsup created for it:

  - The kops-managed cluster and its cloud resources
  - The remote state-store bucket, including all objects
  - The local working directory (kops binary, kubeconfig)

Resources that are already absent are reported and skipped; only a
failed deletion aborts the run.

Example:
  kopsup destroy -c demo -p my-project

WARNING: This operation is irreversible. All cluster data will be lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), opts)
		},
	}

	bindClusterFlags(cmd, &opts)

	return cmd
}
