// Package access finalizes local and in-cluster access after a successful
// create: the kubeconfig context gets the short cluster name and the
// invoking identity gets cluster-admin.
package access

import (
	"fmt"

	"github.com/kopsup/kopsup/internal/k8s"
	"github.com/kopsup/kopsup/internal/provisioning"
	"github.com/kopsup/kopsup/internal/util/naming"
)

// Provisioner renames the exported context from the fully qualified cluster
// name to the base name and grants the invoking account a cluster-admin
// binding. The cluster already exists at this point; failure here is still
// fatal for the run but leaves the cluster resources in place.
type Provisioner struct{}

// NewProvisioner creates the access phase.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "access"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	contextName := naming.ContextName(cfg.ClusterName)

	if err := k8s.RenameContext(cfg.KubeconfigPath(), cfg.FullClusterName(), contextName); err != nil {
		return err
	}
	ctx.Observer.Printf("[%s] active context is now %q", p.Name(), contextName)

	account, err := ctx.GCloud.Account(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve invoking account: %w", err)
	}

	if err := ctx.Access.GrantClusterAdmin(ctx, cfg.KubeconfigPath(), account); err != nil {
		return err
	}
	ctx.Observer.Printf("[%s] granted cluster-admin to %s", p.Name(), account)

	return nil
}
