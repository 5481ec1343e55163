// Package cmdutil runs external collaborator processes with bounded
// lifetimes. Every provisioning tool the orchestrator drives goes through a
// Runner so that a hung process cannot hang the whole run.
package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// Result captures the output collected during a process execution. Both
// fields contain the complete output, including anything produced before a
// failure.
type Result struct {
	Stdout string
	Stderr string
}

// Runner executes external processes while capturing their output.
// A zero timeout means the call is bounded only by ctx.
type Runner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error)
}

// ExecRunner runs processes with console output. Output is streamed to the
// configured writers in real time while also being captured for the Result,
// so collaborator tool output reaches the operator unfiltered.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner creates a process runner. Nil writers default to os.Stdout
// and os.Stderr.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &ExecRunner{stdout: stdout, stderr: stderr}
}

// Run executes a process and blocks until it exits, the timeout elapses, or
// ctx is cancelled. On timeout the process is killed and the error names the
// command and budget. Stdin is connected so interactive collaborator flows
// (credential login) work.
func (r *ExecRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var outBuf, errBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.MultiWriter(&outBuf, r.stdout)
	cmd.Stderr = io.MultiWriter(&errBuf, r.stderr)
	cmd.Stdin = os.Stdin

	runErr := cmd.Run()

	result := Result{Stdout: outBuf.String(), Stderr: errBuf.String()}

	if runErr != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return result, fmt.Errorf("%s timed out after %v: %w", name, timeout, ctx.Err())
		}
		return result, fmt.Errorf("%s failed: %w", name, runErr)
	}

	return result, nil
}

// WithEnv sets an environment variable for the duration of fn and restores
// the previous value on every return path, including failures.
func WithEnv(key, value string, fn func() error) error {
	prev, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	defer func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	}()
	return fn()
}
