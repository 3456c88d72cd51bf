// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// bootstrap is the entry point the provided runtime executes from the task
// root. It runs the bundled program once per invocation.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/progrunner/internal/logging"
	"go.amzn.com/progrunner/internal/shim"
	"go.amzn.com/progrunner/internal/shim/standalone"
)

type options struct {
	LogLevel     string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"log level"`
	LocalAddress string `long:"local-address" env:"SHIM_LOCAL_ADDRESS" description:"serve the invoke API on this address instead of running inside Lambda"`
	TaskRoot     string `long:"task-root" description:"directory holding the bundled program (default: directory of this executable)"`
}

func getCLIArgs(args []string) (options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	_, err := parser.ParseArgs(args)
	return opts, err
}

func newShimConfig(opts options) shim.Config {
	config := shim.DefaultConfig()
	if opts.TaskRoot != "" {
		config.TaskRoot = opts.TaskRoot
	}
	return config
}

func main() {
	opts, err := getCLIArgs(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}

	if err := logging.SetLogLevel(opts.LogLevel); err != nil {
		log.WithError(err).Fatal("Failed to set log level")
	}
	// Lambda's log stream timestamps every line.
	log.SetFormatter(&logging.InternalFormatter{DisableTimestamp: opts.LocalAddress == ""})

	handler := shim.NewHandler(newShimConfig(opts))

	if opts.LocalAddress == "" {
		lambda.Start(handler.Handle)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Warnf("Listening on %s", opts.LocalAddress)
	if err := standalone.ListenAndServe(ctx, opts.LocalAddress, lambda.NewHandler(handler.Handle)); err != nil {
		log.WithError(err).Fatal("Local invoke server failed")
	}
}
