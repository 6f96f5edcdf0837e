// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbctl/kbctl/internal/config"
)

const setsConfig = `
find:
  rgb:
    - "-f exists(features.rgblight)"
    - "--print features.rgblight"
  eu:
    - "all:default"
    - "-f region=EU*"
`

func useConfig(t *testing.T, content string) {
	t.Helper()
	cfgFile := filepath.Join(t.TempDir(), "kbctl.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o644))
	t.Setenv("KBCTL_CFG_FILE", cfgFile)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

func TestProcessSetOnly(t *testing.T) {
	useConfig(t, setsConfig)

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no set",
			args:     []string{"kbctl", "find", "kbA:all"},
			expected: []string{"kbctl", "find", "kbA:all"},
		},
		{
			name:     "too short",
			args:     []string{"kbctl", "find"},
			expected: []string{"kbctl", "find"},
		},
		{
			name:     "set expands in place",
			args:     []string{"kbctl", "find", "kbA:all", "@rgb", "-o", "json"},
			expected: []string{"kbctl", "find", "kbA:all", "-f", "exists(features.rgblight)", "--print", "features.rgblight", "-o", "json"},
		},
		{
			name:     "set first",
			args:     []string{"kbctl", "find", "@eu"},
			expected: []string{"kbctl", "find", "all:default", "-f", "region=EU*"},
		},
		{
			name:     "only the first set expands",
			args:     []string{"kbctl", "find", "@eu", "@rgb"},
			expected: []string{"kbctl", "find", "all:default", "-f", "region=EU*", "@rgb"},
		},
		{
			name:     "unknown set is dropped",
			args:     []string{"kbctl", "find", "@nosuch", "kbA:all"},
			expected: []string{"kbctl", "find", "kbA:all"},
		},
		{
			name:     "bare at sign is not a set",
			args:     []string{"kbctl", "find", "@"},
			expected: []string{"kbctl", "find", "@"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processSetOnly(tt.args))
		})
	}
}

func TestProcessCommandArgsCompletion(t *testing.T) {
	useConfig(t, setsConfig)

	args := []string{"kbctl", "completion", "@rgb"}
	assert.Equal(t, args, processCommandArgs(args))
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"kbctl", "--help"}, handleNakedCommand([]string{"kbctl"}))
	assert.Equal(t, []string{"kbctl", "find"}, handleNakedCommand([]string{"kbctl", "find"}))
}

func TestHandleVersion(t *testing.T) {
	assert.False(t, handleVersion([]string{"kbctl", "find"}))
	assert.True(t, handleVersion([]string{"kbctl", "-v"}))
	assert.True(t, handleVersion([]string{"kbctl", "find", "--version"}))
}
