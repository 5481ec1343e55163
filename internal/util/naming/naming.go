// Package naming derives the names under which a cluster's resources are
// addressed. Install and destroy must compute identical names for the same
// cluster identity, so every derivation lives here.
package naming

import "fmt"

// ClusterDomainSuffix is appended to the base name to form the fully
// qualified cluster name. Gossip-based kops clusters require the .k8s.local
// suffix.
const ClusterDomainSuffix = ".k8s.local"

// FullClusterName returns the fully qualified cluster name for a base name.
func FullClusterName(base string) string {
	return base + ClusterDomainSuffix
}

// ContextName returns the short kubeconfig context name for a base name.
func ContextName(base string) string {
	return base
}

// StateStoreBucket returns the bucket holding the cluster's declarative
// configuration. One bucket per cluster identity, derived from project and
// base name so that repeated runs address the same store.
func StateStoreBucket(project, base string) string {
	return fmt.Sprintf("%s-%s", project, base)
}

// StateStoreURI returns the store location in the form kops expects.
func StateStoreURI(project, base string) string {
	return "gs://" + StateStoreBucket(project, base)
}
