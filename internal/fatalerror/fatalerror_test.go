// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fatalerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	type test struct {
		input    error
		expected ErrorType
	}

	base := errors.New("boom")
	var tests = []test{
		{nil, Unknown},
		{base, Unknown},
		{New(RemoteCreationError, base), RemoteCreationError},
		{fmt.Errorf("install: %w", New(PackagingIOError, base)), PackagingIOError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeOf(tt.input))
		})
	}
}

func TestErrorIsMatchesType(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Newf(LocalInputError, "cannot find %s", "/nope"))

	assert.True(t, errors.Is(err, New(LocalInputError, nil)))
	assert.False(t, errors.Is(err, New(RemoteCreationError, nil)))
	assert.Equal(t, "wrapped: Local.InputError: cannot find /nope", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := New(RemoteConfigError, base)

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "Remote.ConfigError", New(RemoteConfigError, nil).Error())
}
