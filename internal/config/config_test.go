package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAmbient struct {
	zone    string
	project string
	err     error
	calls   int
}

func (f *fakeAmbient) Zone(_ context.Context) (string, error) {
	f.calls++
	return f.zone, f.err
}

func (f *fakeAmbient) Project(_ context.Context) (string, error) {
	f.calls++
	return f.project, f.err
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KOPSUP_WORK_DIR", t.TempDir())

	cfg, err := Load(context.Background(), Overrides{}, &fakeAmbient{zone: "us-east1-b", project: "ambient-proj"})
	require.NoError(t, err)

	assert.Equal(t, "kops", cfg.ClusterName)
	assert.Equal(t, 4, cfg.NodeCount)
	assert.Equal(t, "n1-standard-2", cfg.NodeSize)
	assert.Equal(t, "us-east1-b", cfg.Zone)
	assert.Equal(t, "ambient-proj", cfg.ProjectID)
	assert.False(t, cfg.SkipCredentials)
}

func TestLoad_OverridesWinOverAmbient(t *testing.T) {
	t.Setenv("KOPSUP_WORK_DIR", t.TempDir())

	ambient := &fakeAmbient{zone: "us-east1-b", project: "ambient-proj"}
	ov := Overrides{ClusterName: "demo", Zone: "europe-west1-d", ProjectID: "my-proj", SkipCredentials: true}

	cfg, err := Load(context.Background(), ov, ambient)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ClusterName)
	assert.Equal(t, "europe-west1-d", cfg.Zone)
	assert.Equal(t, "my-proj", cfg.ProjectID)
	assert.True(t, cfg.SkipCredentials)
	assert.Zero(t, ambient.calls, "ambient must not be consulted when flags are set")
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("KOPSUP_WORK_DIR", t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "kopsup.yaml")
	data := "cluster_name: filecluster\nzone: us-central1-a\nproject_id: file-proj\nnode_count: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(context.Background(), Overrides{ConfigPath: path}, nil)
	require.NoError(t, err)

	assert.Equal(t, "filecluster", cfg.ClusterName)
	assert.Equal(t, "us-central1-a", cfg.Zone)
	assert.Equal(t, "file-proj", cfg.ProjectID)
	assert.Equal(t, 2, cfg.NodeCount)
}

func TestLoad_MissingProjectIsFatal(t *testing.T) {
	t.Setenv("KOPSUP_WORK_DIR", t.TempDir())

	_, err := Load(context.Background(), Overrides{Zone: "us-east1-b"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project")
}

func TestLoad_AmbientFailureIsFatal(t *testing.T) {
	t.Setenv("KOPSUP_WORK_DIR", t.TempDir())

	_, err := Load(context.Background(), Overrides{}, &fakeAmbient{err: errors.New("gcloud unavailable")})
	require.Error(t, err)
}

func TestLoad_SkipCredentialsFromEnv(t *testing.T) {
	t.Setenv("KOPSUP_WORK_DIR", t.TempDir())
	t.Setenv("KOPSUP_SKIP_CREDENTIALS", "true")

	cfg, err := Load(context.Background(), Overrides{Zone: "z", ProjectID: "p"}, nil)
	require.NoError(t, err)
	assert.True(t, cfg.SkipCredentials)
}

func TestConfig_DerivedValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{ClusterName: "demo", ProjectID: "my-proj", WorkDir: "/work"}

	assert.Equal(t, "demo.k8s.local", cfg.FullClusterName())
	assert.Equal(t, "gs://my-proj-demo", cfg.StateStore())
	assert.Equal(t, "my-proj-demo", cfg.StateStoreBucket())
	assert.Equal(t, filepath.Join("/work", "bin"), cfg.BinDir())
	assert.Equal(t, filepath.Join("/work", "bin", "kops"), cfg.KopsPath())
	assert.Equal(t, filepath.Join("/work", "kubeconfig"), cfg.KubeconfigPath())
}
