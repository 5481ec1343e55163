// Package provisioning provides the phase pipeline that drives cluster
// install and destroy.
//
// The pipeline is organized into focused subpackages:
//   - credentials/: application credential gate
//   - store/: remote state-store bucket
//   - binary/: cluster-tool binary provisioning
//   - cluster/: cluster create and readiness validation
//   - access/: kubeconfig context and admin access
//   - destroy/: tolerant teardown
//
// This root package contains the shared interfaces, run state, and observer
// used across subpackages.
package provisioning

import (
	"context"
	"time"

	"github.com/kopsup/kopsup/internal/platform"
	"github.com/kopsup/kopsup/internal/platform/kops"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// CredentialTool is the contract of the external credential manager.
// Implemented by internal/platform/gcloud.Client.
type CredentialTool interface {
	// Login runs the credential login flow and blocks until it completes.
	Login(ctx context.Context) error

	// Account returns the identity the tool is currently authorized as.
	Account(ctx context.Context) (string, error)
}

// ClusterTool is the contract of the cluster-lifecycle CLI.
// Implemented by internal/platform/kops.CLI.
type ClusterTool interface {
	// ClusterExists reports whether the cluster is registered in the store.
	ClusterExists(ctx context.Context, name, stateStore string) (bool, error)

	// CreateCluster creates and applies the cluster. Blocks until done.
	CreateCluster(ctx context.Context, spec kops.ClusterSpec) error

	// ExportKubecfg writes the cluster's access context to kubeconfigPath.
	ExportKubecfg(ctx context.Context, name, stateStore, kubeconfigPath string) error

	// ValidateCluster waits for readiness within the given budget.
	ValidateCluster(ctx context.Context, name, stateStore, kubeconfigPath string, wait time.Duration) error

	// DeleteCluster deletes the cluster; absent clusters are not an error.
	DeleteCluster(ctx context.Context, name, stateStore string) (existed bool, err error)
}

// AccessGranter grants in-cluster access to an identity.
// Implemented by internal/k8s.AdminGranter.
type AccessGranter interface {
	// GrantClusterAdmin binds cluster-admin to user in the cluster the
	// kubeconfig points at.
	GrantClusterAdmin(ctx context.Context, kubeconfigPath, user string) error
}

// BinaryInstaller fetches the cluster-tool binary for a platform.
// Implemented by internal/platform/kops.Installer.
type BinaryInstaller interface {
	// Install downloads the latest binary into binDir and returns its path.
	Install(ctx context.Context, binDir string, p platform.Platform) (string, error)
}
