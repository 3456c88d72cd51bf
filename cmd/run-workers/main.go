// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// run-workers invokes an installed function many times concurrently and relays
// every worker's output.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"go.amzn.com/progrunner/internal/awsclient"
	"go.amzn.com/progrunner/internal/launcher"
	"go.amzn.com/progrunner/internal/logging"
)

type options struct {
	Region      string   `long:"region" env:"AWS_REGION" description:"region of the function"`
	Name        string   `long:"name" required:"true" description:"function name"`
	Workers     int      `long:"workers" default:"1" description:"number of concurrent invocations"`
	Concurrency int      `long:"concurrency" default:"0" description:"cap on in-flight invocations, 0 for no cap"`
	Args        []string `long:"arg" description:"argument passed to every worker, {worker} is replaced by the worker index (repeatable)"`
	LogLevel    string   `long:"log-level" env:"LOG_LEVEL" default:"info" description:"log level"`
}

type invokerFactory func(ctx context.Context, region string) (launcher.Invoker, error)

func newLambdaClient(ctx context.Context, region string) (launcher.Invoker, error) {
	// a retried Invoke would run the worker twice
	return awsclient.NewLambdaClient(ctx, awsclient.WithRegion(region), awsclient.WithMaxAttempts(1))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, newLambdaClient); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			return
		}
		fmt.Fprintln(os.Stderr, "run-workers:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, newInvoker invokerFactory) error {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "run-workers"
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if err := logging.SetLogLevel(opts.LogLevel); err != nil {
		return err
	}

	client, err := newInvoker(ctx, opts.Region)
	if err != nil {
		return err
	}

	l := launcher.NewLauncher(client)
	l.OnResult = func(r launcher.WorkerResult) {
		fmt.Fprint(stdout, r.Stdout)
		fmt.Fprint(stderr, r.Stderr)
	}

	_, err = l.Run(ctx, launcher.Plan{
		FunctionName: opts.Name,
		Workers:      opts.Workers,
		Args:         opts.Args,
		Concurrency:  opts.Concurrency,
	})
	return err
}
