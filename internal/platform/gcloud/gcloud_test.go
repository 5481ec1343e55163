package gcloud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopsup/kopsup/internal/cmdutil"
	"github.com/kopsup/kopsup/internal/config"
)

type fakeRunner struct {
	calls  [][]string
	stdout string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, _ time.Duration, name string, args ...string) (cmdutil.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return cmdutil.Result{Stdout: f.stdout}, f.err
}

func TestLogin(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	client := NewClient(runner, config.LoadTimeouts())

	require.NoError(t, client.Login(context.Background()))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"gcloud", "auth", "application-default", "login"}, runner.calls[0])
}

func TestLogin_FailureIsFatal(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: errors.New("browser flow aborted")}
	client := NewClient(runner, config.LoadTimeouts())

	require.Error(t, client.Login(context.Background()))
}

func TestGetValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stdout  string
		want    string
		wantErr bool
	}{
		{name: "value with newline", stdout: "my-project\n", want: "my-project"},
		{name: "unset marker", stdout: "(unset)\n", wantErr: true},
		{name: "empty", stdout: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := NewClient(&fakeRunner{stdout: tt.stdout}, config.LoadTimeouts())

			got, err := client.Project(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZone_Property(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stdout: "us-east1-b\n"}
	client := NewClient(runner, config.LoadTimeouts())

	zone, err := client.Zone(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "us-east1-b", zone)
	assert.Equal(t, []string{"gcloud", "config", "get-value", "compute/zone"}, runner.calls[0])
}
