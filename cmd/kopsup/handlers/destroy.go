package handlers

import (
	"context"
	"fmt"

	"github.com/kopsup/kopsup/internal/provisioning/destroy"
)

// Destroy handles the destroy command.
//
// It deletes the cluster, the remote state store, and the local working
// directory, in that order. Each deletion tolerates the resource being
// already absent; the kops binary is silently re-provisioned if the workdir
// was partially cleaned. The cluster delete is destructive and irreversible.
func Destroy(ctx context.Context, opts Options) error {
	pCtx, err := newRunContext(ctx, opts)
	if err != nil {
		return err
	}

	pCtx.Observer.Printf("Destroying cluster %s (store %s)", pCtx.Config.FullClusterName(), pCtx.Config.StateStore())

	if err := destroy.NewProvisioner().Provision(pCtx); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	pCtx.Observer.Printf("Cluster %s destroyed", pCtx.Config.FullClusterName())
	return nil
}
