// Package config builds the immutable run configuration.
//
// A Config is constructed exactly once per invocation from, in order of
// precedence: command-line flags, environment variables, an optional
// kopsup.yaml file, and the ambient gcloud configuration. Components never
// read ambient state themselves; everything they need is on the Config
// passed to them.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kopsup/kopsup/internal/util/naming"
)

const (
	// DefaultClusterName is the base cluster name when none is given.
	DefaultClusterName = "kops"
	// DefaultNodeCount is the worker node count passed to cluster creation.
	DefaultNodeCount = 4
	// DefaultNodeSize is the worker instance class passed to cluster creation.
	DefaultNodeSize = "n1-standard-2"
)

// Config holds the resolved configuration for one run. It is immutable after
// Load returns.
type Config struct {
	ClusterName     string `yaml:"cluster_name"`
	Zone            string `yaml:"zone"`
	ProjectID       string `yaml:"project_id"`
	SkipCredentials bool   `yaml:"skip_credentials"`
	NodeCount       int    `yaml:"node_count"`
	NodeSize        string `yaml:"node_size"`
	WorkDir         string `yaml:"work_dir"`
}

// Overrides carries flag values into Load. Zero values mean "not set".
type Overrides struct {
	ClusterName     string
	Zone            string
	ProjectID       string
	SkipCredentials bool
	ConfigPath      string
}

// Ambient resolves defaults from the surrounding gcloud configuration.
// It is consulted only for values not supplied by flags, env, or file.
type Ambient interface {
	Zone(ctx context.Context) (string, error)
	Project(ctx context.Context) (string, error)
}

// Load builds the run configuration. Zone and project must resolve to
// non-empty values; a base name that is not DNS-label-safe is a documented
// precondition and is not validated here.
func Load(ctx context.Context, ov Overrides, ambient Ambient) (*Config, error) {
	cfg := &Config{
		ClusterName: DefaultClusterName,
		NodeCount:   DefaultNodeCount,
		NodeSize:    DefaultNodeSize,
	}

	if path := configFilePath(ov.ConfigPath); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.NodeCount = envInt("KOPSUP_NODE_COUNT", cfg.NodeCount)
	cfg.NodeSize = envString("KOPSUP_NODE_SIZE", cfg.NodeSize)
	cfg.WorkDir = envString("KOPSUP_WORK_DIR", cfg.WorkDir)

	if cfg.WorkDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.WorkDir = filepath.Join(home, ".kopsup")
	}

	if ov.ClusterName != "" {
		cfg.ClusterName = ov.ClusterName
	}
	if ov.Zone != "" {
		cfg.Zone = ov.Zone
	}
	if ov.ProjectID != "" {
		cfg.ProjectID = ov.ProjectID
	}
	if ov.SkipCredentials || os.Getenv("KOPSUP_SKIP_CREDENTIALS") == "true" {
		cfg.SkipCredentials = true
	}

	if err := resolveAmbient(ctx, cfg, ambient); err != nil {
		return nil, err
	}

	if cfg.ClusterName == "" {
		return nil, fmt.Errorf("cluster name must not be empty")
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("no project id given and none configured in gcloud")
	}
	if cfg.Zone == "" {
		return nil, fmt.Errorf("no zone given and none configured in gcloud")
	}

	return cfg, nil
}

// FullClusterName returns the fully qualified cluster name.
func (c *Config) FullClusterName() string {
	return naming.FullClusterName(c.ClusterName)
}

// StateStore returns the remote store location URI.
func (c *Config) StateStore() string {
	return naming.StateStoreURI(c.ProjectID, c.ClusterName)
}

// StateStoreBucket returns the bare bucket name of the remote store.
func (c *Config) StateStoreBucket() string {
	return naming.StateStoreBucket(c.ProjectID, c.ClusterName)
}

// BinDir returns the directory holding fetched tool binaries.
func (c *Config) BinDir() string {
	return filepath.Join(c.WorkDir, "bin")
}

// KopsPath returns the expected path of the kops binary.
func (c *Config) KopsPath() string {
	return filepath.Join(c.BinDir(), "kops")
}

// KubeconfigPath returns the kubeconfig path owned by this run.
func (c *Config) KubeconfigPath() string {
	return filepath.Join(c.WorkDir, "kubeconfig")
}

func resolveAmbient(ctx context.Context, cfg *Config, ambient Ambient) error {
	if ambient == nil {
		return nil
	}
	if cfg.Zone == "" {
		zone, err := ambient.Zone(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve ambient zone: %w", err)
		}
		cfg.Zone = zone
	}
	if cfg.ProjectID == "" {
		project, err := ambient.Project(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve ambient project: %w", err)
		}
		cfg.ProjectID = project
	}
	return nil
}

// configFilePath returns the config file to load, or "" when there is none.
// An explicitly given path must exist; the default kopsup.yaml is optional.
func configFilePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("kopsup.yaml"); err == nil {
		return "kopsup.yaml"
	}
	return ""
}

func loadFile(path string, cfg *Config) error {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

func envString(envVar, defaultVal string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultVal
}
