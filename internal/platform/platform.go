// Package platform maps the host environment to a supported binary platform.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Platform identifies which cluster-tool artifact the host can run.
type Platform string

const (
	// Linux is a plain Linux host.
	Linux Platform = "linux"
	// Mac is a macOS host.
	Mac Platform = "mac"
	// CloudShell is a Linux host inside Google Cloud Shell.
	CloudShell Platform = "cloudshell"
)

// ArtifactOS returns the operating system component of release artifact
// names for this platform. Cloud Shell runs the Linux artifact.
func (p Platform) ArtifactOS() string {
	if p == Mac {
		return "darwin"
	}
	return "linux"
}

// Detect maps an operating system identifier and a cloud-shell signal to a
// supported platform. Pure, no I/O. An unknown identifier is fatal: without
// it there is no way to pick a binary artifact.
func Detect(goos string, cloudShell bool) (Platform, error) {
	switch {
	case strings.HasPrefix(goos, "darwin"):
		return Mac, nil
	case strings.HasPrefix(goos, "linux") && cloudShell:
		return CloudShell, nil
	case strings.HasPrefix(goos, "linux"):
		return Linux, nil
	default:
		return "", fmt.Errorf("unsupported platform %q", goos)
	}
}

// DetectHost detects the platform of the current process. The KOPSUP_PLATFORM
// environment variable overrides detection; Google Cloud Shell is recognized
// by its CLOUD_SHELL environment marker.
func DetectHost() (Platform, error) {
	if override := os.Getenv("KOPSUP_PLATFORM"); override != "" {
		switch Platform(override) {
		case Linux, Mac, CloudShell:
			return Platform(override), nil
		}
		return "", fmt.Errorf("unsupported platform override %q", override)
	}
	return Detect(runtime.GOOS, os.Getenv("CLOUD_SHELL") == "true")
}
