// Package kops provisions and drives the kops cluster-lifecycle CLI.
package kops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kopsup/kopsup/internal/platform"
)

const (
	// ReleasesEndpoint serves metadata for the latest published kops release.
	ReleasesEndpoint = "https://api.github.com/repos/kubernetes/kops/releases/latest"

	// DownloadBaseURL is where release artifacts are published.
	DownloadBaseURL = "https://github.com/kubernetes/kops/releases/download"

	binaryFileMode = 0o755
)

// ArtifactName returns the release artifact name for a platform.
func ArtifactName(p platform.Platform) string {
	return fmt.Sprintf("kops-%s-amd64", p.ArtifactOS())
}

// Installer fetches the kops binary for a platform and places it in a bin
// directory. The latest published version is resolved per install; a failed
// fetch aborts the run, there is no retry.
type Installer struct {
	releasesEndpoint string
	downloadBaseURL  string
	httpClient       *http.Client
}

// NewInstaller creates an installer against the public release endpoints.
func NewInstaller(timeout time.Duration) *Installer {
	return &Installer{
		releasesEndpoint: ReleasesEndpoint,
		downloadBaseURL:  DownloadBaseURL,
		httpClient:       &http.Client{Timeout: timeout},
	}
}

// NewInstallerWithEndpoints creates an installer with custom endpoints (for testing).
func NewInstallerWithEndpoints(releasesEndpoint, downloadBaseURL string, timeout time.Duration) *Installer {
	return &Installer{
		releasesEndpoint: releasesEndpoint,
		downloadBaseURL:  downloadBaseURL,
		httpClient:       &http.Client{Timeout: timeout},
	}
}

// LatestVersion resolves the latest published release tag.
func (i *Installer) LatestVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.releasesEndpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch release metadata: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release metadata endpoint returned status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode release metadata: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("release metadata has no tag name")
	}

	return release.TagName, nil
}

// Install downloads the latest kops binary for the platform into binDir and
// returns its path. The download lands in a temporary file first and is
// renamed into place only after it is complete and executable.
func (i *Installer) Install(ctx context.Context, binDir string, p platform.Platform) (string, error) {
	version, err := i.LatestVersion(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create bin directory: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", i.downloadBaseURL, version, ArtifactName(p))
	tmpPath := filepath.Join(binDir, ".kops.partial")
	if err := i.download(ctx, url, tmpPath); err != nil {
		return "", err
	}

	finalPath := filepath.Join(binDir, "kops")
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to move binary into place: %w", err)
	}

	return finalPath, nil
}

func (i *Installer) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s returned status %d", url, resp.StatusCode)
	}

	// #nosec G304
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, binaryFileMode)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}

	return nil
}
