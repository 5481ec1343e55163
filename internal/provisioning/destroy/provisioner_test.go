package destroy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopsup/kopsup/internal/config"
	"github.com/kopsup/kopsup/internal/platform"
	"github.com/kopsup/kopsup/internal/platform/kops"
	"github.com/kopsup/kopsup/internal/provisioning"
)

type fakeClusterTool struct {
	deleteCalls int
	existed     bool
	deleteErr   error
}

func (f *fakeClusterTool) ClusterExists(_ context.Context, _, _ string) (bool, error) {
	return f.existed, nil
}

func (f *fakeClusterTool) CreateCluster(_ context.Context, _ kops.ClusterSpec) error { return nil }

func (f *fakeClusterTool) ExportKubecfg(_ context.Context, _, _, _ string) error { return nil }

func (f *fakeClusterTool) ValidateCluster(_ context.Context, _, _, _ string, _ time.Duration) error {
	return nil
}

func (f *fakeClusterTool) DeleteCluster(_ context.Context, _, _ string) (bool, error) {
	f.deleteCalls++
	return f.existed, f.deleteErr
}

type fakeStore struct {
	existed   bool
	deleteErr error
	calls     int
}

func (f *fakeStore) EnsureBucket(_ context.Context, _ string) (bool, error) { return false, nil }

func (f *fakeStore) DeleteBucketRecursive(_ context.Context, _ string) (bool, error) {
	f.calls++
	return f.existed, f.deleteErr
}

type fakeInstaller struct {
	calls int
}

func (f *fakeInstaller) Install(_ context.Context, binDir string, _ platform.Platform) (string, error) {
	f.calls++
	path := filepath.Join(binDir, "kops")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte("binary"), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

func newTestContext(t *testing.T, tool *fakeClusterTool, store *fakeStore, installer *fakeInstaller) *provisioning.Context {
	t.Helper()
	cfg := &config.Config{ClusterName: "demo", ProjectID: "my-proj", Zone: "z", WorkDir: filepath.Join(t.TempDir(), "work")}
	ctx := provisioning.NewContext(context.Background(), cfg, provisioning.Deps{
		Kops:      tool,
		Store:     store,
		Installer: installer,
	})
	ctx.State.Platform = platform.Linux
	return ctx
}

func TestProvision_MissingBinaryIsRefetchedOnce(t *testing.T) {
	t.Parallel()

	tool := &fakeClusterTool{existed: true}
	store := &fakeStore{existed: true}
	installer := &fakeInstaller{}
	ctx := newTestContext(t, tool, store, installer)

	require.NoError(t, NewProvisioner().Provision(ctx))

	assert.Equal(t, 1, installer.calls, "binary must be fetched exactly once")
	assert.Equal(t, 1, tool.deleteCalls)
	assert.Equal(t, 1, store.calls)
}

func TestProvision_AbsentResourcesAreSuccess(t *testing.T) {
	t.Parallel()

	tool := &fakeClusterTool{existed: false}
	store := &fakeStore{existed: false}
	ctx := newTestContext(t, tool, store, &fakeInstaller{})

	require.NoError(t, NewProvisioner().Provision(ctx))
}

func TestProvision_RemovesWorkDir(t *testing.T) {
	t.Parallel()

	tool := &fakeClusterTool{existed: true}
	store := &fakeStore{existed: true}
	ctx := newTestContext(t, tool, store, &fakeInstaller{})

	require.NoError(t, NewProvisioner().Provision(ctx))

	_, err := os.Stat(ctx.Config.WorkDir)
	assert.True(t, os.IsNotExist(err), "working directory must be removed")
}

func TestProvision_ClusterDeleteFailureIsFatal(t *testing.T) {
	t.Parallel()

	tool := &fakeClusterTool{existed: true, deleteErr: errors.New("api error")}
	store := &fakeStore{existed: true}
	ctx := newTestContext(t, tool, store, &fakeInstaller{})

	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "demo.k8s.local")
	assert.Zero(t, store.calls, "store deletion must not run after a fatal cluster delete")
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "deleted", OutcomeDeleted.String())
	assert.Equal(t, "already-absent", OutcomeAbsent.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
}
