// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package shim runs the bundled program once per invocation and reports its
// exit code and captured output.
package shim

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/aws/aws-lambda-go/lambdacontext"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/progrunner/internal/fatalerror"
)

// ErrProgramNotFound is wrapped in a Shim.StartError when the program cannot be located.
var ErrProgramNotFound = errors.New("ProgramNotFound")

// Event is the invocation payload. A missing or null args runs the program
// with no arguments.
type Event struct {
	Args []string `json:"args,omitempty"`
}

// Result is returned to the caller for every invocation the program could be started for.
type Result struct {
	Retcode int    `json:"retcode"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

type Handler struct {
	config Config
}

func NewHandler(config Config) *Handler {
	return &Handler{config: config}
}

// Handle runs the program synchronously. A non-zero exit code is reported in
// Result, not as an error.
func (h *Handler) Handle(ctx context.Context, event Event) (Result, error) {
	logger := log.NewEntry(log.StandardLogger())
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.WithField("requestId", lc.AwsRequestID)
	}

	command := append([]string{h.config.ProgramName}, event.Args...)
	logger.Infof("$ %s", strings.Join(command, " "))

	path, err := lookPath(h.config.ProgramName, h.config.searchPath())
	if err != nil {
		logger.WithError(err).Error("Cannot locate program")
		return Result{}, fatalerror.New(fatalerror.ShimStartError, err)
	}

	cmd := exec.Command(path, event.Args...)
	cmd.Args[0] = h.config.ProgramName
	cmd.Env = h.config.childEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	retcode, err := exitCode(cmd.Run())
	if err != nil {
		logger.WithError(err).Error("Failed to start program")
		return Result{}, fatalerror.New(fatalerror.ShimStartError, err)
	}

	logger.Infof("retcode=%d", retcode)
	return Result{Retcode: retcode, Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// exitCode maps the outcome of cmd.Run to a return code. A process killed by
// a signal reports the negated signal number.
func exitCode(runErr error) (int, error) {
	if runErr == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		return 0, runErr
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return -int(status.Signal()), nil
	}
	return exitErr.ExitCode(), nil
}

// lookPath resolves name against pathList the way a shell would. exec.LookPath
// only consults the shim's own PATH.
func lookPath(name, pathList string) (string, error) {
	if strings.Contains(name, string(os.PathSeparator)) {
		if isExecutable(name) {
			return name, nil
		}
		return "", &exec.Error{Name: name, Err: ErrProgramNotFound}
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			dir = "."
		}
		candidate, err := filepath.Abs(filepath.Join(dir, name))
		if err == nil && isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", &exec.Error{Name: name, Err: ErrProgramNotFound}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Mode().Perm()&0111 != 0
}
