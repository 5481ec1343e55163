// Package destroy handles cluster teardown and resource cleanup.
package destroy

import (
	"fmt"
	"os"

	"github.com/kopsup/kopsup/internal/provisioning"
	"github.com/kopsup/kopsup/internal/provisioning/binary"
)

// Outcome classifies the result of one tolerant deletion. A resource that
// was already gone is explicit success, never an implicitly ignored error.
type Outcome int

const (
	// OutcomeDeleted means the resource existed and was removed.
	OutcomeDeleted Outcome = iota
	// OutcomeAbsent means the resource was already gone.
	OutcomeAbsent
	// OutcomeFailed means deletion was attempted and failed.
	OutcomeFailed
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeAbsent:
		return "already-absent"
	default:
		return "failed"
	}
}

// Provisioner tears down the cluster, its state store, and the local working
// directory, in that order. Each deletion is tolerant of the resource being
// absent; only a genuine failure aborts the run.
type Provisioner struct{}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "destroy"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config

	// Destroy must work even when the install-time workdir was partially
	// cleaned, so the binary is re-provisioned rather than failing.
	if _, err := binary.Ensure(ctx); err != nil {
		return err
	}

	name := cfg.FullClusterName()
	outcome, err := p.deleteCluster(ctx)
	if outcome == OutcomeFailed {
		return fmt.Errorf("failed to delete cluster %s: %w", name, err)
	}
	logOutcome(ctx, outcome, "cluster", name)

	outcome, err = p.deleteStore(ctx)
	if outcome == OutcomeFailed {
		return fmt.Errorf("failed to delete state store %s: %w", cfg.StateStore(), err)
	}
	logOutcome(ctx, outcome, "state store", cfg.StateStoreBucket())

	outcome, err = p.deleteWorkDir(ctx)
	if outcome == OutcomeFailed {
		return fmt.Errorf("failed to remove working directory %s: %w", cfg.WorkDir, err)
	}
	logOutcome(ctx, outcome, "working directory", cfg.WorkDir)

	return nil
}

func (p *Provisioner) deleteCluster(ctx *provisioning.Context) (Outcome, error) {
	existed, err := ctx.Kops.DeleteCluster(ctx, ctx.Config.FullClusterName(), ctx.Config.StateStore())
	return classify(existed, err)
}

func (p *Provisioner) deleteStore(ctx *provisioning.Context) (Outcome, error) {
	existed, err := ctx.Store.DeleteBucketRecursive(ctx, ctx.Config.StateStoreBucket())
	return classify(existed, err)
}

func (p *Provisioner) deleteWorkDir(ctx *provisioning.Context) (Outcome, error) {
	dir := ctx.Config.WorkDir
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return OutcomeAbsent, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeDeleted, nil
}

func classify(existed bool, err error) (Outcome, error) {
	switch {
	case err != nil:
		return OutcomeFailed, err
	case existed:
		return OutcomeDeleted, nil
	default:
		return OutcomeAbsent, nil
	}
}

func logOutcome(ctx *provisioning.Context, outcome Outcome, resourceType, name string) {
	if outcome == OutcomeAbsent {
		provisioning.LogResourceAbsent(ctx.Observer, "destroy", resourceType, name)
		return
	}
	provisioning.LogResourceDeleted(ctx.Observer, "destroy", resourceType, name)
}
