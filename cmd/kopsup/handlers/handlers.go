// Package handlers contains the command logic behind the CLI surface.
//
// Commands parse flags and delegate here. Handlers build the immutable run
// configuration, wire the external collaborators, and run the provisioning
// pipeline. Collaborator constructors are factory variables so tests can
// swap them out.
package handlers

import (
	"context"
	"io"
	"os"

	"github.com/kopsup/kopsup/internal/cmdutil"
	"github.com/kopsup/kopsup/internal/config"
	"github.com/kopsup/kopsup/internal/k8s"
	"github.com/kopsup/kopsup/internal/platform"
	"github.com/kopsup/kopsup/internal/platform/gcloud"
	"github.com/kopsup/kopsup/internal/platform/gcs"
	"github.com/kopsup/kopsup/internal/platform/kops"
	"github.com/kopsup/kopsup/internal/provisioning"
)

// Options carries flag values from the commands into the handlers.
type Options struct {
	ClusterName     string
	Zone            string
	ProjectID       string
	SkipCredentials bool
	ConfigPath      string
}

// credentialClient is what the handlers need from the credential tool: the
// pipeline's login/account contract plus ambient zone and project lookup
// during configuration loading. gcloud.Client implements both.
type credentialClient interface {
	provisioning.CredentialTool
	config.Ambient
}

// Factory function variables - can be replaced in tests.
var (
	detectPlatform = platform.DetectHost

	loadConfig = func(ctx context.Context, opts Options, ambient config.Ambient) (*config.Config, error) {
		return config.Load(ctx, config.Overrides{
			ClusterName:     opts.ClusterName,
			Zone:            opts.Zone,
			ProjectID:       opts.ProjectID,
			SkipCredentials: opts.SkipCredentials,
			ConfigPath:      opts.ConfigPath,
		}, ambient)
	}

	newGCloudClient = func(timeouts *config.Timeouts) credentialClient {
		return gcloud.NewClient(cmdutil.NewExecRunner(io.Discard, os.Stderr), timeouts)
	}

	newStoreClient = func(ctx context.Context) (gcs.Store, error) {
		return gcs.NewClient(ctx, gcs.OptionsFromEnv())
	}

	newKopsCLI = func(bin string, timeouts *config.Timeouts) provisioning.ClusterTool {
		return kops.NewCLI(bin, cmdutil.NewExecRunner(nil, nil), timeouts)
	}

	newInstaller = func(timeouts *config.Timeouts) provisioning.BinaryInstaller {
		return kops.NewInstaller(timeouts.Download)
	}

	newAccessGranter = func() provisioning.AccessGranter {
		return k8s.AdminGranter{}
	}

	newProvisioningContext = provisioning.NewContext
)

// newRunContext assembles the provisioning context shared by both commands.
func newRunContext(ctx context.Context, opts Options) (*provisioning.Context, error) {
	plat, err := detectPlatform()
	if err != nil {
		return nil, err
	}

	timeouts := config.LoadTimeouts()
	gcloudClient := newGCloudClient(timeouts)

	cfg, err := loadConfig(ctx, opts, gcloudClient)
	if err != nil {
		return nil, err
	}

	storeClient, err := newStoreClient(ctx)
	if err != nil {
		return nil, err
	}

	pCtx := newProvisioningContext(ctx, cfg, provisioning.Deps{
		Store:     storeClient,
		Kops:      newKopsCLI(cfg.KopsPath(), timeouts),
		GCloud:    gcloudClient,
		Installer: newInstaller(timeouts),
		Access:    newAccessGranter(),
	})
	pCtx.State.Platform = plat

	return pCtx, nil
}
