// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// create-function packages a program with the shim and installs it as a Lambda function.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/progrunner/internal/awsclient"
	"go.amzn.com/progrunner/internal/deploy"
	"go.amzn.com/progrunner/internal/logging"
)

type clientFactory func(ctx context.Context, region string) (deploy.FunctionAPI, error)

func newLambdaClient(ctx context.Context, region string) (deploy.FunctionAPI, error) {
	return awsclient.NewLambdaClient(ctx, awsclient.WithRegion(region))
}

func main() {
	loadDotEnv()

	if err := run(context.Background(), os.Args[1:], os.Stdout, newLambdaClient); err != nil {
		if isHelp(err) {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "create-function:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, newClient clientFactory) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	if err := logging.SetLogLevel(opts.LogLevel); err != nil {
		return err
	}
	log.Debugf("create-function %s", opts)

	if err := checkProgram(opts.Program); err != nil {
		return err
	}

	client, err := newClient(ctx, opts.Region)
	if err != nil {
		return err
	}

	config := deploy.DefaultFunctionConfig()
	config.Architecture = opts.Architecture
	installer := deploy.NewInstaller(client, config)

	fmt.Fprintf(stdout, "Installing lambda function %s... ", opts.Name)
	result, err := installer.PackageAndInstall(ctx, deploy.Request{
		FunctionName:  opts.Name,
		Role:          opts.Role,
		ProgramPath:   opts.Program,
		BootstrapPath: opts.Bootstrap,
		Replace:       opts.Delete,
	})
	if result != nil {
		printResult(stdout, result)
	}
	if err != nil {
		fmt.Fprintln(stdout)
		return err
	}
	return nil
}

func printResult(w io.Writer, result *deploy.InstallResult) {
	if result.Deletion == deploy.Deleted {
		fmt.Fprintf(w, "Deleted function '%s'.\n", result.FunctionName)
	}
	if result.FunctionArn != "" {
		fmt.Fprintf(w, "Created function '%s' (%s).\n", result.FunctionName, result.FunctionArn)
	}
	if result.InvokeConfig != deploy.ConfigNotApplied {
		fmt.Fprintf(w, "Invoke configuration for %s updated.\n", result.FunctionArn)
	}
}
