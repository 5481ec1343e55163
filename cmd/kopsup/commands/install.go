package commands

import (
	"github.com/spf13/cobra"

	"github.com/kopsup/kopsup/cmd/kopsup/handlers"
)

// Install returns the install command.
//
// Optional flags:
//
//	--cluster-name, -c: Base cluster name (default: kops)
//	--zone, -z: Target compute zone (default: ambient gcloud zone)
//	--project-id, -p: Target project (default: ambient gcloud project)
//	--skip-credentials, -s: Skip the application-credential login
//	--config: Path to a kopsup.yaml configuration file
func Install() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Create a Kubernetes cluster and configure local access",
		Long: `Install provisions a self-managed Kubernetes cluster on Google Cloud.

The pipeline runs in fixed order:
  1. Application-default credential login (skippable)
  2. State-store bucket creation (kept if it already exists)
  3. kops binary download (kept if already present)
  4. Cluster create and kubeconfig export
  5. Readiness validation
  6. Kubeconfig context rename and cluster-admin grant

Each precondition step is idempotent, so re-running install after a
failure resumes from wherever the previous run stopped.

Examples:
  # Create cluster "kops" using the ambient gcloud zone and project
  kopsup install

  # Create cluster "demo" in an explicit zone and project
  kopsup install -c demo -z us-central1-a -p my-project`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), opts)
		},
	}

	bindClusterFlags(cmd, &opts)
	cmd.Flags().BoolVarP(&opts.SkipCredentials, "skip-credentials", "s", false, "Skip the application-default credential login")

	return cmd
}

// bindClusterFlags registers the flags shared by install and destroy.
func bindClusterFlags(cmd *cobra.Command, opts *handlers.Options) {
	cmd.Flags().StringVarP(&opts.ClusterName, "cluster-name", "c", "", "Base cluster name (default: kops)")
	cmd.Flags().StringVarP(&opts.Zone, "zone", "z", "", "Target compute zone (default: ambient gcloud zone)")
	cmd.Flags().StringVarP(&opts.ProjectID, "project-id", "p", "", "Target project (default: ambient gcloud project)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (default: kopsup.yaml)")
}
