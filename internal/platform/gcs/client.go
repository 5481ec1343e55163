// Package gcs manages the cluster state-store bucket on Google Cloud Storage
// through its S3-compatible interoperability API.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// DefaultEndpoint is the GCS XML interoperability endpoint.
const DefaultEndpoint = "https://storage.googleapis.com"

// Store is the contract the provisioning phases need from the state store:
// an idempotent create and a tolerant recursive delete.
type Store interface {
	// EnsureBucket creates the bucket if absent. It reports whether the
	// bucket already existed; an existing bucket is success.
	EnsureBucket(ctx context.Context, bucket string) (existed bool, err error)

	// DeleteBucketRecursive deletes all objects in the bucket and then the
	// bucket itself. It reports whether the bucket existed; an absent
	// bucket is not an error.
	DeleteBucketRecursive(ctx context.Context, bucket string) (existed bool, err error)
}

// Client wraps the S3 client for the GCS interop API.
type Client struct {
	s3 *s3.Client
}

// Options configures a Client.
type Options struct {
	Endpoint  string // defaults to DefaultEndpoint
	Region    string // defaults to "auto"
	AccessKey string // HMAC key; empty falls back to the default credential chain
	SecretKey string
}

// OptionsFromEnv builds client options from the environment.
func OptionsFromEnv() Options {
	return Options{
		Endpoint:  os.Getenv("KOPSUP_STORE_ENDPOINT"),
		Region:    os.Getenv("KOPSUP_STORE_REGION"),
		AccessKey: os.Getenv("KOPSUP_STORE_ACCESS_KEY"),
		SecretKey: os.Getenv("KOPSUP_STORE_SECRET_KEY"),
	}
}

// NewClient creates a state-store client. With empty HMAC keys the default
// AWS credential chain is used, which also covers S3-compatible dev setups.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Region == "" {
		opts.Region = "auto"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
		)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load store credentials: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})

	return &Client{s3: client}, nil
}

// EnsureBucket implements Store.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) (bool, error) {
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return false, nil
}

// DeleteBucketRecursive implements Store.
func (c *Client) DeleteBucketRecursive(ctx context.Context, bucket string) (bool, error) {
	paginator := s3.NewListObjectsV2Paginator(c.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if isNotFoundError(err) {
				return false, nil
			}
			return true, fmt.Errorf("failed to list objects in bucket %s: %w", bucket, err)
		}

		for _, obj := range page.Contents {
			_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(bucket),
				Key:    obj.Key,
			})
			if err != nil {
				return true, fmt.Errorf("failed to delete object %s from bucket %s: %w", aws.ToString(obj.Key), bucket, err)
			}
		}
	}

	_, err := c.s3.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return true, fmt.Errorf("failed to delete bucket %s: %w", bucket, err)
	}
	return true, nil
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket exists
// and is owned by us.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var bae *types.BucketAlreadyExists
	if errors.As(err, &bae) {
		return true
	}

	// The GCS interop layer does not always return the exact SDK error
	// types, so fall back to API error codes.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
	}

	return false
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket" || code == "404"
	}

	return false
}
