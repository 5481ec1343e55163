package provisioning

import (
	"context"

	"github.com/kopsup/kopsup/internal/config"
	"github.com/kopsup/kopsup/internal/platform"
	"github.com/kopsup/kopsup/internal/platform/gcs"
)

// State holds the shared results of provisioning phases. It is progressively
// populated as each phase completes and is read by subsequent phases. Nothing
// here is persisted; every run re-derives what it needs.
type State struct {
	// Platform of the host, set before the pipeline starts.
	Platform platform.Platform

	// KopsBin is the path of the cluster-tool binary (binary phase).
	KopsBin string

	// ClusterExisted records whether the cluster was already registered in
	// the store before this run (cluster-create phase).
	ClusterExisted bool

	// KubeconfigArchived records whether a pre-existing kubeconfig was
	// moved aside (cluster-create phase).
	KubeconfigArchived bool
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config    *config.Config
	State     *State
	Store     gcs.Store
	Kops      ClusterTool
	GCloud    CredentialTool
	Installer BinaryInstaller
	Access    AccessGranter
	Observer  Observer
	Timeouts  *config.Timeouts
}

// Deps bundles the external collaborators a pipeline run drives.
type Deps struct {
	Store     gcs.Store
	Kops      ClusterTool
	GCloud    CredentialTool
	Installer BinaryInstaller
	Access    AccessGranter
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, deps Deps) *Context {
	return &Context{
		Context:   ctx,
		Config:    cfg,
		State:     &State{},
		Store:     deps.Store,
		Kops:      deps.Kops,
		GCloud:    deps.GCloud,
		Installer: deps.Installer,
		Access:    deps.Access,
		Observer:  NewConsoleObserver(),
		Timeouts:  config.LoadTimeouts(),
	}
}
