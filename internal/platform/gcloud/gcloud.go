// Package gcloud drives the gcloud CLI for credentials and ambient defaults.
package gcloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/kopsup/kopsup/internal/cmdutil"
	"github.com/kopsup/kopsup/internal/config"
)

// Client wraps the gcloud CLI.
type Client struct {
	bin      string
	runner   cmdutil.Runner
	timeouts *config.Timeouts
}

// NewClient creates a gcloud client using the given runner.
func NewClient(runner cmdutil.Runner, timeouts *config.Timeouts) *Client {
	return &Client{bin: "gcloud", runner: runner, timeouts: timeouts}
}

// Login runs the interactive application-default credential flow and blocks
// until it completes or fails.
func (c *Client) Login(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, c.timeouts.Credentials, c.bin, "auth", "application-default", "login"); err != nil {
		return fmt.Errorf("credential login failed: %w", err)
	}
	return nil
}

// Account returns the account gcloud is currently authorized as.
func (c *Client) Account(ctx context.Context) (string, error) {
	return c.getValue(ctx, "account")
}

// Zone returns the ambient configured compute zone.
func (c *Client) Zone(ctx context.Context) (string, error) {
	return c.getValue(ctx, "compute/zone")
}

// Project returns the ambient configured project.
func (c *Client) Project(ctx context.Context) (string, error) {
	return c.getValue(ctx, "project")
}

// getValue reads a gcloud config property. gcloud prints "(unset)" for
// properties that have no value.
func (c *Client) getValue(ctx context.Context, property string) (string, error) {
	result, err := c.runner.Run(ctx, c.timeouts.AmbientLookup, c.bin, "config", "get-value", property)
	if err != nil {
		return "", fmt.Errorf("failed to read gcloud property %s: %w", property, err)
	}

	value := strings.TrimSpace(result.Stdout)
	if value == "" || value == "(unset)" {
		return "", fmt.Errorf("gcloud property %s is not set", property)
	}
	return value, nil
}
