package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the bounded lifetimes for every external call. A hung
// collaborator process must never hang the orchestrator indefinitely.
// Values can be customized via environment variables.
type Timeouts struct {
	Credentials   time.Duration // Timeout for the interactive credential login flow
	AmbientLookup time.Duration // Timeout for gcloud config lookups
	Download      time.Duration // Timeout for release resolution and binary download
	ClusterCreate time.Duration // Timeout for the kops create invocation
	Export        time.Duration // Timeout for exporting the kubeconfig context
	Validate      time.Duration // Wait budget for cluster readiness validation
	Delete        time.Duration // Timeout for cluster and store deletion
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - KOPSUP_TIMEOUT_CREDENTIALS (default: 5m)
//   - KOPSUP_TIMEOUT_AMBIENT_LOOKUP (default: 30s)
//   - KOPSUP_TIMEOUT_DOWNLOAD (default: 5m)
//   - KOPSUP_TIMEOUT_CLUSTER_CREATE (default: 30m)
//   - KOPSUP_TIMEOUT_EXPORT (default: 2m)
//   - KOPSUP_TIMEOUT_VALIDATE (default: 10m)
//   - KOPSUP_TIMEOUT_DELETE (default: 30m)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Credentials:   parseDuration("KOPSUP_TIMEOUT_CREDENTIALS", 5*time.Minute),
		AmbientLookup: parseDuration("KOPSUP_TIMEOUT_AMBIENT_LOOKUP", 30*time.Second),
		Download:      parseDuration("KOPSUP_TIMEOUT_DOWNLOAD", 5*time.Minute),
		ClusterCreate: parseDuration("KOPSUP_TIMEOUT_CLUSTER_CREATE", 30*time.Minute),
		Export:        parseDuration("KOPSUP_TIMEOUT_EXPORT", 2*time.Minute),
		Validate:      parseDuration("KOPSUP_TIMEOUT_VALIDATE", 10*time.Minute),
		Delete:        parseDuration("KOPSUP_TIMEOUT_DELETE", 30*time.Minute),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// envInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func envInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
