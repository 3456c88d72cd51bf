// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/progrunner/internal/fatalerror"
	"go.amzn.com/progrunner/internal/funcpkg"
)

type options struct {
	Role         string `long:"role" required:"true" description:"execution role ARN for the function" validate:"startswith=arn:,contains=:role/"`
	Region       string `long:"region" env:"AWS_REGION" description:"target region"`
	Name         string `long:"name" required:"true" description:"function name, also the base name of the local archive" validate:"function_name"`
	Program      string `long:"program" required:"true" description:"path to the program to bundle"`
	Delete       bool   `long:"delete" description:"delete any existing function of the same name first"`
	Bootstrap    string `long:"bootstrap" description:"path to the shim binary (default: bootstrap next to this executable)"`
	Architecture string `long:"architecture" default:"x86_64" choice:"x86_64" choice:"arm64" description:"instruction set of the program and shim"`
	LogLevel     string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"log level"`
}

var functionNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("function_name", func(fl validator.FieldLevel) bool {
		return functionNamePattern.MatchString(fl.Field().String())
	})
	return v
}

// loadDotEnv populates unset variables such as AWS_REGION from ./.env when present.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("Failed to load .env")
	}
}

func parseOptions(args []string) (options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "create-function"

	if _, err := parser.ParseArgs(args); err != nil {
		return opts, err
	}

	if err := newValidator().Struct(opts); err != nil {
		return opts, fatalerror.Newf(fatalerror.LocalInputError, "invalid options: %w", err)
	}

	if opts.Bootstrap == "" {
		opts.Bootstrap = defaultBootstrapPath()
	}
	return opts, nil
}

func defaultBootstrapPath() string {
	exe, err := os.Executable()
	if err != nil {
		return funcpkg.BootstrapEntry
	}
	return filepath.Join(filepath.Dir(exe), funcpkg.BootstrapEntry)
}

func checkProgram(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fatalerror.Newf(fatalerror.LocalInputError, "cannot find %s", path)
	}
	return nil
}

func isHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}

func (o options) String() string {
	return fmt.Sprintf("name=%s region=%s program=%s delete=%t", o.Name, o.Region, o.Program, o.Delete)
}
