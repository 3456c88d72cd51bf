// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"io"
	"log"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPrint(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(io.Discard)
	log.Print("hello log")
	assert.Contains(t, buf.String(), "hello log")
}

func TestLogrusPrint(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(io.Discard)
	logrus.Print("hello logrus")
	assert.Contains(t, buf.String(), "hello logrus")
}

func TestSetLogLevel(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, SetLogLevel("chatty"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestInternalFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "retcode=2",
		Data:    logrus.Fields{"worker": 3, "function": "tempf"},
	}

	out, err := (&InternalFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2021-03-04T05:06:07Z [WARNING] retcode=2 function=tempf worker=3\n", string(out))

	out, err = (&InternalFormatter{DisableTimestamp: true}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[WARNING] retcode=2 function=tempf worker=3\n", string(out))
}

func BenchmarkLogrusDebugLogLevelDisabled(b *testing.B) {
	SetOutput(io.Discard)
	logrus.SetLevel(logrus.InfoLevel)
	for n := 0; n < b.N; n++ {
		logrus.Debugf("field:%v,field:%v,field:%v", 1, "two", true)
	}
}
