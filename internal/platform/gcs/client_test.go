package gcs

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsBucketAlreadyOwnedByYou(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "typed owned-by-you", err: &types.BucketAlreadyOwnedByYou{}, want: true},
		{name: "typed already-exists", err: &types.BucketAlreadyExists{}, want: true},
		{
			name: "api error code",
			err:  &smithy.GenericAPIError{Code: "BucketAlreadyOwnedByYou", Message: "exists"},
			want: true,
		},
		{
			name: "unrelated api error",
			err:  &smithy.GenericAPIError{Code: "AccessDenied", Message: "no"},
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isBucketAlreadyOwnedByYou(tt.err))
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "typed no-such-bucket", err: &types.NoSuchBucket{}, want: true},
		{name: "typed not-found", err: &types.NotFound{}, want: true},
		{name: "api error code", err: &smithy.GenericAPIError{Code: "NoSuchBucket"}, want: true},
		{name: "api error 404", err: &smithy.GenericAPIError{Code: "404"}, want: true},
		{name: "unrelated api error", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isNotFoundError(tt.err))
		})
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("KOPSUP_STORE_ENDPOINT", "http://localhost:9000")
	t.Setenv("KOPSUP_STORE_REGION", "eu")
	t.Setenv("KOPSUP_STORE_ACCESS_KEY", "ak")
	t.Setenv("KOPSUP_STORE_SECRET_KEY", "sk")

	opts := OptionsFromEnv()

	assert.Equal(t, "http://localhost:9000", opts.Endpoint)
	assert.Equal(t, "eu", opts.Region)
	assert.Equal(t, "ak", opts.AccessKey)
	assert.Equal(t, "sk", opts.SecretKey)
}
