// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go.amzn.com/progrunner/internal/deploy"
	"go.amzn.com/progrunner/internal/fatalerror"
)

const testRole = "arn:aws:iam::012345678912:role/lambda-exec"

// inTempDir runs the test from a fresh directory so <name>.zip lands there.
func inTempDir(t *testing.T) string {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(cwd) })
	return dir
}

func writeExecutable(t *testing.T, dir, name string) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), 0755))
	return p
}

func failingFactory(t *testing.T) clientFactory {
	return func(context.Context, string) (deploy.FunctionAPI, error) {
		t.Fatal("no client may be created")
		return nil, nil
	}
}

func TestRunMissingProgramMakesNoRemoteCall(t *testing.T) {
	dir := inTempDir(t)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"--role", testRole, "--region", "us-west-1", "--name", "tempf",
		"--program", filepath.Join(dir, "missing"),
	}, &stdout, failingFactory(t))

	assert.Equal(t, fatalerror.LocalInputError, fatalerror.TypeOf(err))
	assert.Contains(t, err.Error(), filepath.Join(dir, "missing"))
	assert.Empty(t, stdout.String())
}

func TestRunRequiredFlags(t *testing.T) {
	err := run(context.Background(), []string{"--name", "tempf"}, &bytes.Buffer{}, failingFactory(t))
	assert.Error(t, err)
	assert.False(t, isHelp(err))
}

func TestRunHelp(t *testing.T) {
	err := run(context.Background(), []string{"--help"}, &bytes.Buffer{}, failingFactory(t))
	assert.True(t, isHelp(err))
}

func TestParseOptionsValidation(t *testing.T) {
	type test struct {
		name  string
		args  []string
		valid bool
	}

	var tests = []test{
		{"valid", []string{"--role", testRole, "--name", "tempf", "--program", "p"}, true},
		{"bad name", []string{"--role", testRole, "--name", "temp f", "--program", "p"}, false},
		{"long name", []string{"--role", testRole, "--name", string(bytes.Repeat([]byte("a"), 65)), "--program", "p"}, false},
		{"bad role", []string{"--role", "lambda-exec", "--name", "tempf", "--program", "p"}, false},
		{"bad architecture", []string{"--role", testRole, "--name", "tempf", "--program", "p", "--architecture", "mips"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOptions(tt.args)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseOptionsDefaults(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-central-1")

	opts, err := parseOptions([]string{"--role", testRole, "--name", "tempf", "--program", "p"})
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", opts.Region)
	assert.Equal(t, "x86_64", opts.Architecture)
	assert.Equal(t, "bootstrap", filepath.Base(opts.Bootstrap))
	assert.False(t, opts.Delete)

	opts, err = parseOptions([]string{"--role", testRole, "--name", "tempf", "--program", "p", "--region", "us-west-1", "--delete"})
	require.NoError(t, err)
	assert.Equal(t, "us-west-1", opts.Region)
	assert.True(t, opts.Delete)
}

func TestRunInstallsAndPrintsConfirmations(t *testing.T) {
	dir := inTempDir(t)
	program := writeExecutable(t, dir, "lambdafunc")
	bootstrap := writeExecutable(t, dir, "shim")
	arn := "arn:aws:lambda:us-west-1:012345678912:function:tempf"

	client := deploy.NewMockFunctionAPI(t)
	client.On("DeleteFunction", mock.Anything, mock.Anything).Return(&lambda.DeleteFunctionOutput{}, nil).Once()
	client.On("CreateFunction", mock.Anything, mock.MatchedBy(func(in *lambda.CreateFunctionInput) bool {
		return assert.ObjectsAreEqual([]types.Architecture{types.ArchitectureArm64}, in.Architectures)
	})).Return(&lambda.CreateFunctionOutput{FunctionArn: aws.String(arn)}, nil).Once()
	client.On("UpdateFunctionEventInvokeConfig", mock.Anything, mock.Anything).Return(&lambda.UpdateFunctionEventInvokeConfigOutput{}, nil).Once()

	var region string
	factory := func(_ context.Context, r string) (deploy.FunctionAPI, error) {
		region = r
		return client, nil
	}

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"--role", testRole, "--region", "us-west-1", "--name", "tempf",
		"--program", program, "--bootstrap", bootstrap, "--delete", "--architecture", "arm64",
	}, &stdout, factory)
	require.NoError(t, err)

	assert.Equal(t, "us-west-1", region)
	assert.Equal(t, "Installing lambda function tempf... "+
		"Deleted function 'tempf'.\n"+
		"Created function 'tempf' ("+arn+").\n"+
		"Invoke configuration for "+arn+" updated.\n", stdout.String())

	_, statErr := os.Stat(filepath.Join(dir, "tempf.zip"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunCreationFailure(t *testing.T) {
	dir := inTempDir(t)
	program := writeExecutable(t, dir, "lambdafunc")
	bootstrap := writeExecutable(t, dir, "shim")

	client := deploy.NewMockFunctionAPI(t)
	client.On("CreateFunction", mock.Anything, mock.Anything).Return(nil, &types.InvalidParameterValueException{Message: aws.String("bad role")}).Once()

	factory := func(context.Context, string) (deploy.FunctionAPI, error) { return client, nil }

	err := run(context.Background(), []string{
		"--role", testRole, "--region", "us-west-1", "--name", "tempf",
		"--program", program, "--bootstrap", bootstrap,
	}, &bytes.Buffer{}, factory)
	assert.Equal(t, fatalerror.RemoteCreationError, fatalerror.TypeOf(err))

	_, statErr := os.Stat(filepath.Join(dir, "tempf.zip"))
	assert.True(t, os.IsNotExist(statErr))
}
