// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:5000/chat", cfg.Chat.URL)
	assert.Equal(t, "http://localhost:5000/api", cfg.Jobs.BaseURL)
	assert.Equal(t, 0, cfg.Chat.MaxRetries)
	assert.Equal(t, 60*time.Second, cfg.Chat.Timeout())
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[chat]
url = "https://chat.example.com/chat"
welcome_text = "Hi!"

[ui]
sidebar_width = 30
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://chat.example.com/chat", cfg.Chat.URL)
	assert.Equal(t, "Hi!", cfg.Chat.WelcomeText)
	assert.Equal(t, 30, cfg.UI.SidebarWidth)
	assert.Equal(t, Default().Jobs, cfg.Jobs)
	assert.Equal(t, Default().UI.NarrowWidth, cfg.UI.NarrowWidth)
}

func TestLoadFromPath_UnknownKey(t *testing.T) {
	path := writeConfig(t, `
[chat]
endpoint = "http://localhost:5000/chat"
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat.endpoint")
}

func TestLoadFromPath_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "[chat\nurl = ")

	_, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Chat.URL, cfg.Chat.URL)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TABCHAT_CHAT_URL", "https://override.example.com/chat")
	t.Setenv("TABCHAT_CHAT_MAX_RETRIES", "3")
	t.Setenv("TABCHAT_JOBS_REQUESTS_PER_SECOND", "0.5")
	t.Setenv("TABCHAT_LOGGING_LEVEL", "debug")
	t.Setenv("TABCHAT_UI_SIDEBAR_WIDTH", "40")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnvOverrides())

	assert.Equal(t, "https://override.example.com/chat", cfg.Chat.URL)
	assert.Equal(t, 3, cfg.Chat.MaxRetries)
	assert.Equal(t, 0.5, cfg.Jobs.RequestsPerSecond)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 40, cfg.UI.SidebarWidth)

	// Untouched fields keep their values.
	assert.Equal(t, Default().Jobs.BaseURL, cfg.Jobs.BaseURL)
}

func TestApplyEnvOverrides_BadValue(t *testing.T) {
	t.Setenv("TABCHAT_CHAT_TIMEOUT_SECS", "soon")

	err := Default().ApplyEnvOverrides()
	require.Error(t, err)
}

func TestLoadFromPath_EnvBeatsFile(t *testing.T) {
	path := writeConfig(t, `
[chat]
url = "https://file.example.com/chat"
`)
	t.Setenv("TABCHAT_CHAT_URL", "https://env.example.com/chat")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/chat", cfg.Chat.URL)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Chat.URL = "ftp://example.com/chat"
	cfg.Chat.TimeoutSecs = 0
	cfg.Jobs.Burst = 0
	cfg.Logging.Level = "verbose"
	cfg.UI.Theme = "neon"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))

	fields := make(map[string]bool)
	for _, e := range verrs {
		fields[e.Field] = true
	}
	for _, want := range []string{"chat.url", "chat.timeout_secs", "jobs.burst", "logging.level", "ui.theme"} {
		assert.True(t, fields[want], "missing validation error for %s", want)
	}
	assert.Len(t, verrs, 5)
}

func TestValidate_URLWithoutHost(t *testing.T) {
	cfg := Default()
	cfg.Jobs.BaseURL = "http://"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobs.base_url: missing host")
}

func TestSaveTo_LoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tabchat", "config.toml")

	cfg := Default()
	cfg.Chat.WelcomeText = "Ready when you are."
	cfg.UI.Theme = "light"
	require.NoError(t, SaveTo(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
