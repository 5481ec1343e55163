package kops

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kopsup/kopsup/internal/cmdutil"
	"github.com/kopsup/kopsup/internal/config"
)

// ClusterSpec carries the parameters of a cluster create invocation.
type ClusterSpec struct {
	Name       string // fully qualified cluster name
	Zone       string
	StateStore string
	Project    string
	NodeCount  int
	NodeSize   string
}

// CLI drives the kops binary. Every invocation is bounded by a timeout and
// cancellable through the caller's context.
type CLI struct {
	bin      string
	runner   cmdutil.Runner
	timeouts *config.Timeouts
}

// NewCLI creates a kops CLI wrapper for the binary at bin.
func NewCLI(bin string, runner cmdutil.Runner, timeouts *config.Timeouts) *CLI {
	return &CLI{bin: bin, runner: runner, timeouts: timeouts}
}

// ClusterExists reports whether the cluster is registered in the state store.
func (c *CLI) ClusterExists(ctx context.Context, name, stateStore string) (bool, error) {
	result, err := c.runner.Run(ctx, c.timeouts.AmbientLookup, c.bin,
		"get", "cluster", name,
		"--state", stateStore,
	)
	if err != nil {
		if isNotFound(result.Stderr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query cluster %s: %w", name, err)
	}
	return true, nil
}

// CreateCluster creates the cluster declaratively and applies it in one
// synchronous call. This may take multiple minutes; the call blocks until
// kops exits or the create timeout elapses.
func (c *CLI) CreateCluster(ctx context.Context, spec ClusterSpec) error {
	_, err := c.runner.Run(ctx, c.timeouts.ClusterCreate, c.bin,
		"create", "cluster", spec.Name,
		"--zones", spec.Zone,
		"--state", spec.StateStore,
		"--project", spec.Project,
		"--node-count", strconv.Itoa(spec.NodeCount),
		"--node-size", spec.NodeSize,
		"--api-loadbalancer-type", "public",
		"--yes",
	)
	if err != nil {
		return fmt.Errorf("cluster create failed: %w", err)
	}
	return nil
}

// ExportKubecfg writes the cluster's admin access context to kubeconfigPath.
// KUBECONFIG is scoped to that path for the duration of the call and
// restored on every exit path.
func (c *CLI) ExportKubecfg(ctx context.Context, name, stateStore, kubeconfigPath string) error {
	return cmdutil.WithEnv("KUBECONFIG", kubeconfigPath, func() error {
		_, err := c.runner.Run(ctx, c.timeouts.Export, c.bin,
			"export", "kubecfg", name,
			"--state", stateStore,
			"--admin",
		)
		if err != nil {
			return fmt.Errorf("kubeconfig export failed: %w", err)
		}
		return nil
	})
}

// ValidateCluster waits until the control plane and nodes report healthy.
// The wait budget is enforced by kops itself; the local timeout adds slack
// so a hung kops process is still killed.
func (c *CLI) ValidateCluster(ctx context.Context, name, stateStore, kubeconfigPath string, wait time.Duration) error {
	return cmdutil.WithEnv("KUBECONFIG", kubeconfigPath, func() error {
		_, err := c.runner.Run(ctx, wait+time.Minute, c.bin,
			"validate", "cluster", name,
			"--state", stateStore,
			"--wait", wait.String(),
		)
		if err != nil {
			return fmt.Errorf("cluster did not become ready within %v: %w", wait, err)
		}
		return nil
	})
}

// DeleteCluster deletes the cluster without prompting. It reports whether
// the cluster existed; deleting an absent cluster is not an error.
func (c *CLI) DeleteCluster(ctx context.Context, name, stateStore string) (bool, error) {
	result, err := c.runner.Run(ctx, c.timeouts.Delete, c.bin,
		"delete", "cluster", name,
		"--state", stateStore,
		"--yes",
	)
	if err != nil {
		if isNotFound(result.Stderr) {
			return false, nil
		}
		return true, fmt.Errorf("cluster delete failed: %w", err)
	}
	return true, nil
}

// isNotFound classifies kops stderr output for a missing cluster or store.
func isNotFound(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "not found") || strings.Contains(s, "does not exist")
}
