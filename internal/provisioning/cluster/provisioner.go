// Package cluster drives cluster creation and readiness validation.
package cluster

import (
	"fmt"

	"github.com/kopsup/kopsup/internal/k8s"
	"github.com/kopsup/kopsup/internal/platform/kops"
	"github.com/kopsup/kopsup/internal/provisioning"
)

// CreateProvisioner creates the cluster and exports its access context.
//
// The create step is guarded by an existence check: kops create on an
// already-registered cluster name is not known to be safe, so a cluster
// that is already in the store skips straight to validation.
type CreateProvisioner struct{}

// NewCreateProvisioner creates the cluster-create phase.
func NewCreateProvisioner() *CreateProvisioner {
	return &CreateProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *CreateProvisioner) Name() string {
	return "cluster-create"
}

// Provision implements the provisioning.Phase interface.
func (p *CreateProvisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	name := cfg.FullClusterName()
	stateStore := cfg.StateStore()

	exists, err := ctx.Kops.ClusterExists(ctx, name, stateStore)
	if err != nil {
		return fmt.Errorf("failed to check cluster existence: %w", err)
	}
	ctx.State.ClusterExisted = exists

	if exists {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "cluster", name)
	} else {
		spec := kops.ClusterSpec{
			Name:       name,
			Zone:       cfg.Zone,
			StateStore: stateStore,
			Project:    cfg.ProjectID,
			NodeCount:  cfg.NodeCount,
			NodeSize:   cfg.NodeSize,
		}
		if err := ctx.Kops.CreateCluster(ctx, spec); err != nil {
			return err
		}
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "cluster", name)
	}

	archived, err := k8s.ArchiveExisting(cfg.KubeconfigPath())
	if err != nil {
		return err
	}
	ctx.State.KubeconfigArchived = archived
	if archived {
		ctx.Observer.Printf("[%s] previous kubeconfig preserved at %s%s", p.Name(), cfg.KubeconfigPath(), k8s.ArchivedSuffix)
	}

	if err := ctx.Kops.ExportKubecfg(ctx, name, stateStore, cfg.KubeconfigPath()); err != nil {
		return err
	}

	return nil
}

// ValidateProvisioner waits for the cluster to report healthy within the
// configured budget. Failure leaves the cluster in whatever partial state it
// reached; the operator is expected to inspect or destroy it manually.
type ValidateProvisioner struct{}

// NewValidateProvisioner creates the readiness-validation phase.
func NewValidateProvisioner() *ValidateProvisioner {
	return &ValidateProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *ValidateProvisioner) Name() string {
	return "cluster-validate"
}

// Provision implements the provisioning.Phase interface.
func (p *ValidateProvisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	return ctx.Kops.ValidateCluster(ctx, cfg.FullClusterName(), cfg.StateStore(), cfg.KubeconfigPath(), ctx.Timeouts.Validate)
}
