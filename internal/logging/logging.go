// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package logging configures logrus for the binaries in this repository.
//
// Operator-facing confirmations (created function, updated invoke config) are
// printed on stdout by the CLIs themselves; everything else goes through logrus
// on stderr, which inside Lambda ends up in the function's log stream.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SetOutput configures logging output for standard loggers.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	logrus.SetOutput(w)
}

// SetLogLevel parses and installs the logrus level along with InternalFormatter.
func SetLogLevel(logLevel string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q, valid log levels are %v: %w", logLevel, logrus.AllLevels, err)
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&InternalFormatter{})
	return nil
}

// InternalFormatter renders "<RFC3339 time> [LEVEL] message key=value ...".
type InternalFormatter struct {
	// DisableTimestamp drops the leading timestamp, Lambda's log stream already has one.
	DisableTimestamp bool
}

func (f *InternalFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}
	if !f.DisableTimestamp {
		b.WriteString(entry.Time.UTC().Format(time.RFC3339Nano))
		b.WriteByte(' ')
	}
	fmt.Fprintf(b, "[%s] %s", strings.ToUpper(entry.Level.String()), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
