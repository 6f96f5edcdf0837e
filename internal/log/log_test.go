// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs installs a CustomHandler writing into a buffer and restores the
// previous level when the test ends.
func captureLogs(t *testing.T, level log.Level) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	log.SetHandler(&CustomHandler{Writer: &buf})
	log.SetLevel(log.DebugLevel)
	prev := SetLevel(level)
	t.Cleanup(func() {
		SetLevel(prev)
	})
	return &buf
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{env: "", want: log.InfoLevel},
		{env: "trace", want: log.DebugLevel},
		{env: "DEBUG", want: log.DebugLevel},
		{env: "warn", want: log.WarnLevel},
		{env: "error", want: log.ErrorLevel},
		{env: "fatal", want: log.FatalLevel},
		{env: "bogus", want: log.InfoLevel},
	}

	prev := Level()
	defer SetLevel(prev)

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("KBCTL_LOG", tt.env)
			InitLogger()
			assert.Equal(t, tt.want, Level())
		})
	}
}

func TestSetLevelReturnsPrevious(t *testing.T) {
	prev := SetLevel(log.WarnLevel)
	defer SetLevel(prev)

	assert.Equal(t, log.WarnLevel, SetLevel(log.ErrorLevel))
	assert.Equal(t, log.ErrorLevel, Level())
}

func TestCustomHandlerFiltersByLevel(t *testing.T) {
	buf := captureLogs(t, log.WarnLevel)

	log.Info("hidden")
	log.Warn("shown")
	log.WithError(errors.New("boom")).Error("failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, " W shown")
	assert.Contains(t, out, " E failed error=boom")
}

func TestQuietSuppressesAndRestores(t *testing.T) {
	buf := captureLogs(t, log.InfoLevel)

	Quiet(func() {
		log.Warn("noisy probe")
		assert.Equal(t, log.FatalLevel, Level())
	})
	log.Info("after")

	assert.NotContains(t, buf.String(), "noisy probe")
	assert.Contains(t, buf.String(), "after")
	assert.Equal(t, log.InfoLevel, Level())
}

func TestQuietNested(t *testing.T) {
	captureLogs(t, log.DebugLevel)

	Quiet(func() {
		Quiet(func() {
			assert.Equal(t, log.FatalLevel, Level())
		})
		// The outer scope is still active.
		assert.Equal(t, log.FatalLevel, Level())
	})
	assert.Equal(t, log.DebugLevel, Level())
}

func TestQuietRestoresOnPanic(t *testing.T) {
	captureLogs(t, log.InfoLevel)

	require.Panics(t, func() {
		Quiet(func() {
			panic("probe failed")
		})
	})
	assert.Equal(t, log.InfoLevel, Level())
}

func TestQuietConcurrent(t *testing.T) {
	captureLogs(t, log.WarnLevel)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Quiet(func() {
				log.Warn("probe")
				Quiet(func() {})
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, log.WarnLevel, Level())
}
