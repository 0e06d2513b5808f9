// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoOutputsIsNop(t *testing.T) {
	l, err := New(FileConfig("", "debug", false))
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", OutputPaths: []string{"stderr"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabchat.log")

	l, err := New(FileConfig(path, "info", false))
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("chat sent")
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `"message":"chat sent"`)
	assert.False(t, strings.Contains(out, "hidden"), "debug entry below level was written")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
}
