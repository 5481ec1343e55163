// Package store ensures the remote state-store location exists.
package store

import (
	"fmt"

	"github.com/kopsup/kopsup/internal/provisioning"
)

// Provisioner creates the state-store bucket if absent. Creation is
// idempotent: an existing bucket is informational, not an error. No health
// read-back is performed; existence is assumed sufficient.
type Provisioner struct{}

// NewProvisioner creates a new storage provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "store"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	bucket := ctx.Config.StateStoreBucket()

	existed, err := ctx.Store.EnsureBucket(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to ensure state store %s: %w", ctx.Config.StateStore(), err)
	}

	if existed {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "state store", bucket)
	} else {
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "state store", bucket)
	}
	return nil
}
