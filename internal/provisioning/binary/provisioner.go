// Package binary ensures the cluster-tool binary is present locally.
package binary

import (
	"fmt"
	"os"

	"github.com/kopsup/kopsup/internal/provisioning"
)

// Provisioner places the kops binary at the configured path. A binary that
// is already present is used as-is: no version pinning or refresh, just a
// cheap idempotency check.
type Provisioner struct{}

// NewProvisioner creates a new binary provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "binary"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	path, err := Ensure(ctx)
	if err != nil {
		return err
	}
	ctx.State.KopsBin = path
	return nil
}

// Ensure returns the path of the kops binary, fetching it if absent. It is
// shared with the destroy path, which re-provisions silently when the
// install-time workdir was partially cleaned.
func Ensure(ctx *provisioning.Context) (string, error) {
	path := ctx.Config.KopsPath()

	if _, err := os.Stat(path); err == nil {
		provisioning.LogResourceExists(ctx.Observer, "binary", "kops binary", path)
		return path, nil
	}

	installed, err := ctx.Installer.Install(ctx, ctx.Config.BinDir(), ctx.State.Platform)
	if err != nil {
		return "", fmt.Errorf("failed to provision kops binary: %w", err)
	}

	provisioning.LogResourceCreated(ctx.Observer, "binary", "kops binary", installed)
	return installed, nil
}
