// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCLIArgsDefaults(t *testing.T) {
	t.Setenv("SHIM_LOCAL_ADDRESS", "")

	opts, err := getCLIArgs([]string{})
	require.NoError(t, err)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Empty(t, opts.LocalAddress)

	config := newShimConfig(opts)
	assert.Equal(t, "program", config.ProgramName)
	assert.True(t, filepath.IsAbs(config.TaskRoot))
}

func TestGetCLIArgsLocal(t *testing.T) {
	opts, err := getCLIArgs([]string{"--local-address", "127.0.0.1:8080", "--task-root", "/var/task", "--unknown"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", opts.LocalAddress)
	assert.Equal(t, "/var/task", newShimConfig(opts).TaskRoot)
}
