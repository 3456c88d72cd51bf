// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package awsclient constructs AWS SDK clients. Credentials are resolved by the
// SDK's default chain.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	log "github.com/sirupsen/logrus"
)

type options struct {
	region      string
	maxAttempts int
}

type Option func(o *options)

// WithRegion overrides the region resolved from the environment and shared config.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithMaxAttempts bounds SDK-level retries; 1 disables them.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = n
	}
}

func loadOptions(opts ...Option) []func(*config.LoadOptions) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.maxAttempts > 0 {
		loadOpts = append(loadOpts, config.WithRetryMaxAttempts(o.maxAttempts))
	}
	return loadOpts
}

// LoadConfig resolves the AWS configuration.
func LoadConfig(ctx context.Context, opts ...Option) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions(opts...)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	if cfg.Region == "" {
		return aws.Config{}, fmt.Errorf("no AWS region configured, pass --region or set AWS_REGION")
	}
	log.WithField("region", cfg.Region).Debug("Loaded AWS configuration")
	return cfg, nil
}

// NewLambdaClient returns a Lambda control and data plane client.
func NewLambdaClient(ctx context.Context, opts ...Option) (*lambda.Client, error) {
	cfg, err := LoadConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return lambda.NewFromConfig(cfg), nil
}
