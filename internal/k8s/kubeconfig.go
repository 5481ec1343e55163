// Package k8s provides local kubeconfig surgery and in-cluster access grants.
package k8s

import (
	"fmt"
	"os"

	"k8s.io/client-go/tools/clientcmd"
)

// kubeconfigFileMode is the file mode for kubeconfig files.
const kubeconfigFileMode = 0o600

// ArchivedSuffix is appended to a pre-existing kubeconfig when it is moved
// aside. The previous file is renamed, never deleted, so access credentials
// for an earlier cluster are not silently lost.
const ArchivedSuffix = ".old"

// ArchiveExisting moves an existing file at path to path + ArchivedSuffix.
// It reports whether anything was archived; a missing file is a no-op.
func ArchiveExisting(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.Rename(path, path+ArchivedSuffix); err != nil {
		return false, fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return true, nil
}

// RenameContext re-keys the context entry oldName to newName and switches the
// active context to newName. The cluster and user entries the context points
// at are untouched. A missing oldName is fatal: it means cluster creation
// never produced the expected context.
func RenameContext(path, oldName, newName string) error {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read kubeconfig: %w", err)
	}

	kubeConfig, err := clientcmd.Load(data)
	if err != nil {
		return fmt.Errorf("failed to parse kubeconfig: %w", err)
	}

	entry, ok := kubeConfig.Contexts[oldName]
	if !ok {
		return fmt.Errorf("context %q not found in %s", oldName, path)
	}

	kubeConfig.Contexts[newName] = entry
	delete(kubeConfig.Contexts, oldName)
	kubeConfig.CurrentContext = newName

	result, err := clientcmd.Write(*kubeConfig)
	if err != nil {
		return fmt.Errorf("failed to serialize kubeconfig: %w", err)
	}

	if err := os.WriteFile(path, result, kubeconfigFileMode); err != nil {
		return fmt.Errorf("failed to write kubeconfig: %w", err)
	}

	return nil
}
