// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shim

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/progrunner/internal/funcpkg"
)

const (
	pathEnvKey          = "PATH"
	libraryPathEnvKey   = "LD_LIBRARY_PATH"
	taskRootEnvKey      = "LAMBDA_TASK_ROOT"
	defaultTaskRootPath = "/var/task"
)

// Config is everything the shim needs to locate and run the bundled program.
// The shim never mutates its own process environment; the child's environment
// is derived from Env on every invocation.
type Config struct {
	// ProgramName is looked up on the search path, TaskRoot first.
	ProgramName string
	// TaskRoot is the directory holding the bundled program.
	TaskRoot string
	// Env is the base environment handed to the child, as KEY=VALUE pairs.
	Env []string
}

// DefaultConfig locates the task root as the directory of the running executable.
func DefaultConfig() Config {
	return Config{
		ProgramName: funcpkg.ProgramEntry,
		TaskRoot:    executableDir(),
		Env:         os.Environ(),
	}
}

func executableDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}

	log.WithError(err).Warn("Cannot resolve executable path, falling back to task root")
	if root, ok := os.LookupEnv(taskRootEnvKey); ok && root != "" {
		return root
	}
	return defaultTaskRootPath
}

// childEnv returns Env with TaskRoot prepended to PATH and LD_LIBRARY_PATH.
func (c Config) childEnv() []string {
	result := make([]string, 0, len(c.Env)+2)
	seen := map[string]bool{}

	for _, kv := range c.Env {
		key, value, _ := strings.Cut(kv, "=")
		switch key {
		case pathEnvKey, libraryPathEnvKey:
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, key+"="+prependPath(c.TaskRoot, value))
		default:
			result = append(result, kv)
		}
	}

	for _, key := range []string{pathEnvKey, libraryPathEnvKey} {
		if !seen[key] {
			result = append(result, key+"="+prependPath(c.TaskRoot, ""))
		}
	}
	return result
}

// searchPath returns the PATH value the child sees.
func (c Config) searchPath() string {
	for _, kv := range c.childEnv() {
		if value, ok := strings.CutPrefix(kv, pathEnvKey+"="); ok {
			return value
		}
	}
	return c.TaskRoot
}

func prependPath(dir, list string) string {
	if dir == "" {
		return list
	}
	if list == "" {
		return dir
	}
	return dir + string(os.PathListSeparator) + list
}
