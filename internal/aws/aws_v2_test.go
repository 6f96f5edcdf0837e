// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptions verifies that option functions populate the options struct
// and that later options override earlier ones.
func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		profile string
		region  string
	}{
		{name: "none"},
		{name: "profile", opts: []Option{WithProfile("firmware")}, profile: "firmware"},
		{name: "region", opts: []Option{WithRegion("eu-west-1")}, region: "eu-west-1"},
		{
			name:    "later wins",
			opts:    []Option{WithRegion("us-east-1"), WithProfile("a"), WithRegion("eu-west-1"), WithProfile("b")},
			profile: "b",
			region:  "eu-west-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o options
			for _, opt := range tt.opts {
				opt(&o)
			}
			assert.Equal(t, tt.profile, o.profile)
			assert.Equal(t, tt.region, o.region)
		})
	}
}

func TestWithRetryer(t *testing.T) {
	var o options
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&o)

	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

// TestLoadAWSConfig loads from the default chain. No network access is
// needed; credentials are resolved lazily.
func TestLoadAWSConfig(t *testing.T) {
	ctx := context.Background()

	cfg, err := LoadAWSConfig(ctx, WithRegion("us-west-2"))
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)

	cfg, err = LoadAWSConfig(ctx,
		WithRegion("eu-central-1"),
		WithRetryer(func() awsv2.Retryer { return retry.NewStandard() }),
	)
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)
}

func TestNewS3(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)

	client := NewS3(cfg)
	assert.IsType(t, &s3v2.Client{}, client)
}

func TestWithEndpoint(t *testing.T) {
	var o s3v2.Options
	WithEndpoint("")(&o)
	assert.Nil(t, o.BaseEndpoint)
	assert.False(t, o.UsePathStyle)

	WithEndpoint("http://localhost:9000")(&o)
	assert.Equal(t, "http://localhost:9000", awsv2.ToString(o.BaseEndpoint))
	assert.True(t, o.UsePathStyle)
}
