package handlers

import (
	"context"

	"github.com/kopsup/kopsup/internal/provisioning"
	"github.com/kopsup/kopsup/internal/provisioning/access"
	"github.com/kopsup/kopsup/internal/provisioning/binary"
	"github.com/kopsup/kopsup/internal/provisioning/cluster"
	"github.com/kopsup/kopsup/internal/provisioning/credentials"
	"github.com/kopsup/kopsup/internal/provisioning/store"
)

// Install handles the install command.
//
// The install pipeline:
//  1. Credential gate (skippable by configuration)
//  2. State-store bucket (idempotent create)
//  3. kops binary (fetched only if absent)
//  4. Cluster create (skipped when already registered) + kubeconfig export
//  5. Readiness validation within the configured budget
//  6. Context rename and cluster-admin grant
//
// Re-running install after a failure is safe: every precondition step is
// independently idempotent and the create step checks existence first.
func Install(ctx context.Context, opts Options) error {
	pCtx, err := newRunContext(ctx, opts)
	if err != nil {
		return err
	}

	pCtx.Observer.Printf("Installing cluster %s (store %s)", pCtx.Config.FullClusterName(), pCtx.Config.StateStore())

	phases := []provisioning.Phase{
		credentials.NewProvisioner(),
		store.NewProvisioner(),
		binary.NewProvisioner(),
		cluster.NewCreateProvisioner(),
		cluster.NewValidateProvisioner(),
		access.NewProvisioner(),
	}

	if err := provisioning.RunPhases(pCtx, phases); err != nil {
		return err
	}

	pCtx.Observer.Printf("Cluster %s is ready; active context is %q", pCtx.Config.FullClusterName(), pCtx.Config.ClusterName)
	return nil
}
