// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tabchat.
//
// Configuration is a TOML file with sensible defaults, environment variable
// overrides and validation.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - ChatConfig: Chat endpoint, share links, timeout and retries
//   - JobsConfig: Jobs API endpoint and client-side rate limit
//   - ValidateErrors: Every validation problem found in one error
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TABCHAT_*, e.g. TABCHAT_CHAT_URL)
//   - ~/.tabchat/config.toml, or the file given with --config
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := exchange.NewClient(exchange.Config{URL: cfg.Chat.URL, Timeout: cfg.Chat.Timeout()})
package config
