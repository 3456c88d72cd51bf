// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fatalerror

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures surfaced to the operator or the caller.
type ErrorType string

const (
	LocalInputError     ErrorType = "Local.InputError"     // program or shim binary missing, invalid options
	PackagingIOError    ErrorType = "Packaging.IOError"    // archive could not be written or read
	RemoteDeletionError ErrorType = "Remote.DeletionError" // recorded, never surfaced
	RemoteCreationError ErrorType = "Remote.CreationError"
	RemoteConfigError   ErrorType = "Remote.ConfigError" // both forms of the invoke config call failed
	WorkerFailed        ErrorType = "Worker.Failed"
	ShimStartError      ErrorType = "Shim.StartError"
	Unknown             ErrorType = "Unknown"
)

// Error carries an ErrorType alongside the underlying cause.
type Error struct {
	Type ErrorType
	Err  error
}

func New(errType ErrorType, err error) *Error {
	return &Error{Type: errType, Err: err}
}

func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same type, so callers can test
// errors.Is(err, fatalerror.New(fatalerror.LocalInputError, nil)).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type
}

// TypeOf returns the ErrorType of the first *Error in err's chain, or Unknown.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return Unknown
}
