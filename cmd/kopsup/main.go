// Package main is the entry point for the kopsup CLI.
//
// kopsup provisions a self-managed Kubernetes cluster on Google Cloud using
// kops, coordinating the gcloud credential flow, a cloud-storage state
// bucket, the kops binary, and local kubeconfig access into one idempotent
// install pipeline plus a tolerant destroy path.
//
// Commands: install, destroy.
//
// For detailed usage information, run:
//
//	kopsup --help
package main

import (
	"fmt"
	"os"

	"github.com/kopsup/kopsup/cmd/kopsup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}
}
