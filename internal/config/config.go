// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/morganforge/tabchat/internal/util"
)

// EnvPrefix prefixes every environment override, e.g. TABCHAT_CHAT_URL.
const EnvPrefix = "TABCHAT"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tabchat configuration.
type Config struct {
	Chat    ChatConfig    `toml:"chat"`
	Jobs    JobsConfig    `toml:"jobs"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

// ChatConfig configures the chat endpoint.
type ChatConfig struct {
	// URL receives POST {"message", "chatId"} requests.
	URL string `toml:"url" split_words:"true"`
	// ShareBaseURL prefixes generated share links.
	ShareBaseURL string `toml:"share_base_url" split_words:"true"`
	// TimeoutSecs bounds a single exchange.
	TimeoutSecs int `toml:"timeout_secs" split_words:"true"`
	// MaxRetries retries transport failures only. 0 sends once.
	MaxRetries int `toml:"max_retries" split_words:"true"`
	// WelcomeText seeds new chats. Empty uses the built-in greeting.
	WelcomeText string `toml:"welcome_text" split_words:"true"`
}

// JobsConfig configures the jobs/applications API client.
type JobsConfig struct {
	BaseURL           string  `toml:"base_url" split_words:"true"`
	TimeoutSecs       int     `toml:"timeout_secs" split_words:"true"`
	MaxRetries        int     `toml:"max_retries" split_words:"true"`
	RequestsPerSecond float64 `toml:"requests_per_second" split_words:"true"`
	Burst             int     `toml:"burst"`
}

// LoggingConfig configures zap output.
type LoggingConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
	// File receives TUI logs. Empty disables logging while the TUI runs.
	File string `toml:"file"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// SidebarWidth is the sidebar width in cells.
	SidebarWidth int `toml:"sidebar_width" split_words:"true"`
	// NarrowWidth is the terminal width below which the sidebar becomes
	// an overlay that closes when a chat is selected.
	NarrowWidth int `toml:"narrow_width" split_words:"true"`
	// Theme selects colors and the markdown style: "auto", "dark", "light"
	// or "notty". "auto" asks the terminal for its background.
	Theme string `toml:"theme"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chat: ChatConfig{
			URL:          "http://localhost:5000/chat",
			ShareBaseURL: "http://localhost:3000",
			TimeoutSecs:  60,
			MaxRetries:   0,
		},
		Jobs: JobsConfig{
			BaseURL:           "http://localhost:5000/api",
			TimeoutSecs:       30,
			MaxRetries:        2,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			SidebarWidth: 26,
			NarrowWidth:  80,
			Theme:        "auto",
		},
	}
}

// Timeout returns the chat request timeout.
func (c ChatConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Timeout returns the jobs request timeout.
func (c JobsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the tabchat configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tabchat"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.tabchat/config.toml when it exists, then applies
// TABCHAT_* environment overrides and validates the result. A missing file
// is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file. Keys missing from
// the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides overlays TABCHAT_* environment variables, for example
// TABCHAT_CHAT_URL, TABCHAT_JOBS_MAX_RETRIES or TABCHAT_LOGGING_LEVEL.
// Unset variables leave fields untouched.
func (c *Config) ApplyEnvOverrides() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default config path.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg as TOML to path atomically, owner read/write only.
func SaveTo(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# tabchat configuration file\n")
	buf.WriteString("# Environment variables (TABCHAT_*) override these values.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String renders the config as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns ValidateErrors listing
// every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	urls := []struct{ field, raw string }{
		{"chat.url", c.Chat.URL},
		{"chat.share_base_url", c.Chat.ShareBaseURL},
		{"jobs.base_url", c.Jobs.BaseURL},
	}
	for _, u := range urls {
		if err := validateHTTPURL(u.raw); err != nil {
			add(u.field, "%v", err)
		}
	}

	if c.Chat.TimeoutSecs < 1 || c.Chat.TimeoutSecs > 600 {
		add("chat.timeout_secs", "must be between 1 and 600, got %d", c.Chat.TimeoutSecs)
	}
	if c.Chat.MaxRetries < 0 || c.Chat.MaxRetries > 10 {
		add("chat.max_retries", "must be between 0 and 10, got %d", c.Chat.MaxRetries)
	}

	if c.Jobs.TimeoutSecs < 1 || c.Jobs.TimeoutSecs > 600 {
		add("jobs.timeout_secs", "must be between 1 and 600, got %d", c.Jobs.TimeoutSecs)
	}
	if c.Jobs.MaxRetries < 0 || c.Jobs.MaxRetries > 10 {
		add("jobs.max_retries", "must be between 0 and 10, got %d", c.Jobs.MaxRetries)
	}
	if c.Jobs.RequestsPerSecond <= 0 {
		add("jobs.requests_per_second", "must be positive, got %g", c.Jobs.RequestsPerSecond)
	}
	if c.Jobs.Burst < 1 {
		add("jobs.burst", "must be at least 1, got %d", c.Jobs.Burst)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		add("logging.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}

	if c.UI.SidebarWidth < 16 || c.UI.SidebarWidth > 60 {
		add("ui.sidebar_width", "must be between 16 and 60, got %d", c.UI.SidebarWidth)
	}
	if c.UI.NarrowWidth < 0 {
		add("ui.narrow_width", "must not be negative, got %d", c.UI.NarrowWidth)
	}
	switch c.UI.Theme {
	case "auto", "dark", "light", "notty":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: auto, dark, light, notty", c.UI.Theme)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got '%s'", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
