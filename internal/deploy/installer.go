// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/progrunner/internal/fatalerror"
	"go.amzn.com/progrunner/internal/funcpkg"
)

const (
	DefaultRuntime         = "provided.al2023"
	DefaultArchitecture    = "x86_64"
	DefaultTimeoutSeconds  = 900
	DefaultMemorySizeMB    = 3008
	DefaultRetryAttempts   = 0
	DefaultMaxEventAgeSecs = 60
)

// FunctionConfig is the fixed configuration every installed function receives.
type FunctionConfig struct {
	Runtime         string
	Handler         string
	Architecture    string
	TimeoutSeconds  int32
	MemorySizeMB    int32
	RetryAttempts   int32
	MaxEventAgeSecs int32
}

func DefaultFunctionConfig() FunctionConfig {
	return FunctionConfig{
		Runtime:         DefaultRuntime,
		Handler:         funcpkg.BootstrapEntry,
		Architecture:    DefaultArchitecture,
		TimeoutSeconds:  DefaultTimeoutSeconds,
		MemorySizeMB:    DefaultMemorySizeMB,
		RetryAttempts:   DefaultRetryAttempts,
		MaxEventAgeSecs: DefaultMaxEventAgeSecs,
	}
}

// DeleteOutcome records what happened to a pre-existing function on replace.
type DeleteOutcome int

const (
	DeleteSkipped DeleteOutcome = iota // replace was not requested
	Deleted
	DeleteNotFound
	DeleteFailed
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteSkipped:
		return "Skipped"
	case Deleted:
		return "Deleted"
	case DeleteNotFound:
		return "NotFound"
	case DeleteFailed:
		return "Failed"
	}
	return fmt.Sprintf("Cannot stringify deploy.DeleteOutcome.%d", int(o))
}

// ConfigOutcome records which form of the invoke config call took effect.
type ConfigOutcome int

const (
	ConfigNotApplied ConfigOutcome = iota
	ConfigUpdated
	ConfigCreated
)

func (o ConfigOutcome) String() string {
	switch o {
	case ConfigNotApplied:
		return "NotApplied"
	case ConfigUpdated:
		return "Updated"
	case ConfigCreated:
		return "Created"
	}
	return fmt.Sprintf("Cannot stringify deploy.ConfigOutcome.%d", int(o))
}

type InstallResult struct {
	FunctionName string
	FunctionArn  string
	Deletion     DeleteOutcome
	// DeletionErr is set when Deletion is DeleteFailed.
	DeletionErr  error
	InvokeConfig ConfigOutcome
}

type Installer struct {
	client FunctionAPI
	config FunctionConfig
}

func NewInstaller(client FunctionAPI, config FunctionConfig) *Installer {
	return &Installer{client: client, config: config}
}

// Install uploads the archive at packagePath as functionName. With replace set
// an existing function of the same name is deleted first, best effort.
func (i *Installer) Install(ctx context.Context, packagePath, functionName, role string, replace bool) (*InstallResult, error) {
	code, err := os.ReadFile(packagePath)
	if err != nil {
		return nil, fatalerror.New(fatalerror.PackagingIOError, err)
	}

	result := &InstallResult{FunctionName: functionName}

	if replace {
		result.Deletion, result.DeletionErr = i.deleteFunction(ctx, functionName)
	}

	arn, err := i.createFunction(ctx, functionName, role, code)
	if err != nil {
		return result, err
	}
	result.FunctionArn = arn

	result.InvokeConfig, err = i.configureInvoke(ctx, arn)
	if err != nil {
		return result, err
	}

	return result, nil
}

func (i *Installer) deleteFunction(ctx context.Context, functionName string) (DeleteOutcome, error) {
	_, err := i.client.DeleteFunction(ctx, &lambda.DeleteFunctionInput{
		FunctionName: aws.String(functionName),
	})
	if err == nil {
		log.WithField("function", functionName).Debug("Deleted existing function")
		return Deleted, nil
	}

	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		log.WithField("function", functionName).Debug("No existing function to delete")
		return DeleteNotFound, nil
	}

	log.WithError(err).WithField("function", functionName).Warn("Failed to delete existing function, continuing")
	return DeleteFailed, fatalerror.New(fatalerror.RemoteDeletionError, err)
}

func (i *Installer) createFunction(ctx context.Context, functionName, role string, code []byte) (string, error) {
	input := &lambda.CreateFunctionInput{
		FunctionName: aws.String(functionName),
		Runtime:      types.Runtime(i.config.Runtime),
		Role:         aws.String(role),
		Handler:      aws.String(i.config.Handler),
		Code:         &types.FunctionCode{ZipFile: code},
		Timeout:      aws.Int32(i.config.TimeoutSeconds),
		MemorySize:   aws.Int32(i.config.MemorySizeMB),
		PackageType:  types.PackageTypeZip,
	}
	if i.config.Architecture != "" {
		input.Architectures = []types.Architecture{types.Architecture(i.config.Architecture)}
	}

	resp, err := i.client.CreateFunction(ctx, input)
	if err != nil {
		return "", fatalerror.Newf(fatalerror.RemoteCreationError, "failed to create function %s: %w", functionName, err)
	}

	arn := aws.ToString(resp.FunctionArn)
	if arn == "" {
		return "", fatalerror.Newf(fatalerror.RemoteCreationError, "create function %s returned no ARN", functionName)
	}
	return arn, nil
}

func (i *Installer) configureInvoke(ctx context.Context, functionArn string) (ConfigOutcome, error) {
	_, err := i.client.UpdateFunctionEventInvokeConfig(ctx, &lambda.UpdateFunctionEventInvokeConfigInput{
		FunctionName:             aws.String(functionArn),
		MaximumRetryAttempts:     aws.Int32(i.config.RetryAttempts),
		MaximumEventAgeInSeconds: aws.Int32(i.config.MaxEventAgeSecs),
	})
	if err == nil {
		return ConfigUpdated, nil
	}
	log.WithError(err).Debug("Update of invoke config rejected, creating it")

	_, err = i.client.PutFunctionEventInvokeConfig(ctx, &lambda.PutFunctionEventInvokeConfigInput{
		FunctionName:             aws.String(functionArn),
		MaximumRetryAttempts:     aws.Int32(i.config.RetryAttempts),
		MaximumEventAgeInSeconds: aws.Int32(i.config.MaxEventAgeSecs),
	})
	if err != nil {
		return ConfigNotApplied, fatalerror.Newf(fatalerror.RemoteConfigError, "failed to configure invoke retries for %s: %w", functionArn, err)
	}
	return ConfigCreated, nil
}
