// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	awsx "github.com/kbctl/kbctl/internal/aws"
)

// ErrNoBucket is returned when no bucket was configured.
var ErrNoBucket = errors.New("no S3 bucket configured")

type BackendS3Option = func(ctx context.Context, cmd *cli.Command, be *BackendS3) error

// NewBackendS3 returns a BackendS3 reading pre-rendered documents from a
// bucket. Unless WithClient supplies one, an S3 client is built from the
// shell's AWS configuration chain.
func NewBackendS3(ctx context.Context, cmd *cli.Command, options ...BackendS3Option) (*BackendS3, error) {
	options = append([]BackendS3Option{WithDefaults()}, options...)

	be := &BackendS3{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	if be.Bucket == "" {
		return nil, ErrNoBucket
	}

	if be.Client == nil {
		var cfgOpts []awsx.Option
		if be.Region != "" {
			cfgOpts = append(cfgOpts, awsx.WithRegion(be.Region))
		}
		if be.Profile != "" {
			cfgOpts = append(cfgOpts, awsx.WithProfile(be.Profile))
		}
		cfg, err := awsx.LoadAWSConfig(ctx, cfgOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		be.Client = awsx.NewS3(cfg, awsx.WithEndpoint(be.Endpoint))
	}

	return be, nil
}

func WithDefaults() BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.Prefix = ""
		log.Debugf("NewBackendS3 WithDefaults():")
		return nil
	}
}

// WithBucket sets the bucket holding the documents.
func WithBucket(bucket string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if bucket != "" {
			be.Bucket = bucket
		}
		return nil
	}
}

// WithPrefix sets the key prefix under which keyboards are stored.
func WithPrefix(prefix string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.Prefix = strings.Trim(prefix, "/")
		return nil
	}
}

func WithRegion(region string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if region != "" {
			be.Region = region
		}
		return nil
	}
}

func WithProfile(profile string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if profile != "" {
			be.Profile = profile
		}
		return nil
	}
}

// WithEndpoint targets an S3-compatible store instead of AWS.
func WithEndpoint(endpoint string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if endpoint != "" {
			be.Endpoint = endpoint
		}
		return nil
	}
}

// WithClient injects the S3 API, bypassing AWS config loading.
func WithClient(client API) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.Client = client
		return nil
	}
}

// FromCommand reads the bucket, prefix, region, profile and endpoint flags
// from cmd.
func FromCommand() BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if cmd == nil {
			return nil
		}
		for _, opt := range []BackendS3Option{
			WithBucket(cmd.String("bucket")),
			WithRegion(cmd.String("region")),
			WithProfile(cmd.String("profile")),
			WithEndpoint(cmd.String("endpoint")),
		} {
			if err := opt(ctx, cmd, be); err != nil {
				return err
			}
		}
		if prefix := cmd.String("prefix"); prefix != "" {
			return WithPrefix(prefix)(ctx, cmd, be)
		}
		return nil
	}
}
