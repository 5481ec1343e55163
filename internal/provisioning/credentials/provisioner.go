// Package credentials gates every cloud call behind a valid application
// credential.
package credentials

import (
	"fmt"

	"github.com/kopsup/kopsup/internal/provisioning"
)

// Provisioner runs the external credential login flow unless the caller has
// asserted credentials are provisioned out-of-band. The assertion is trusted
// without verification.
type Provisioner struct{}

// NewProvisioner creates a new credential gate.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "credentials"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.Config.SkipCredentials {
		ctx.Observer.Event(provisioning.Event{
			Type:    provisioning.EventStepSkipped,
			Phase:   p.Name(),
			Message: "credential login skipped by configuration",
		})
		return nil
	}

	if err := ctx.GCloud.Login(ctx); err != nil {
		return fmt.Errorf("credential gate failed: %w", err)
	}
	return nil
}
