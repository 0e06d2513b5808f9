// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/morganforge/tabchat/internal/config"
	"github.com/morganforge/tabchat/internal/logging"
	"github.com/morganforge/tabchat/internal/ui/styles"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// =============================================================================
// SHARED STATE
// =============================================================================

// state carries the global flags and the lazily loaded config and logger
// shared by every command.
type state struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *logging.Logger
}

// config loads the configuration once. --config selects the file; without
// it ~/.tabchat/config.toml is used when present.
func (s *state) config() (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}
	var (
		cfg *config.Config
		err error
	)
	if s.configPath != "" {
		cfg, err = config.LoadFromPath(s.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	s.cfg = cfg
	return cfg, nil
}

// cliLogger returns the logger for line-oriented commands: everything to
// stderr with --verbose, otherwise the configured log file, otherwise
// warnings to stderr.
func (s *state) cliLogger(cfg *config.Config) *zap.Logger {
	if s.logger != nil {
		return s.logger.Logger
	}

	var lc logging.Config
	switch {
	case s.verbose:
		lc = logging.Config{Level: "debug", Development: true, OutputPaths: []string{"stderr"}}
	case cfg.Logging.File != "":
		lc = logging.FileConfig(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Development)
	default:
		lc = logging.DefaultConfig()
	}
	return s.build(lc)
}

// tuiLogger returns the logger for the TUI, which must never write to the
// terminal it draws on.
func (s *state) tuiLogger(cfg *config.Config) *zap.Logger {
	if s.logger != nil {
		return s.logger.Logger
	}
	level := cfg.Logging.Level
	if s.verbose {
		level = "debug"
	}
	return s.build(logging.FileConfig(cfg.Logging.File, level, cfg.Logging.Development))
}

func (s *state) build(lc logging.Config) *zap.Logger {
	logger, err := logging.New(lc)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		logger = logging.Nop()
	}
	s.logger = logger
	return logger.Logger
}

func (s *state) close() {
	if s.logger != nil {
		s.logger.Close()
	}
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the tabchat command tree.
func NewRootCmd() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:   "tabchat",
		Short: "Tabbed chat client for a Gemini-backed chat service",
		Long: `tabchat keeps several independent chats with an AI assistant open at once.

Running tabchat without a subcommand opens the terminal UI. Each chat has
its own history and can be renamed, deleted or shared.

Configuration is read from ~/.tabchat/config.toml when it exists and can
be overridden with TABCHAT_* environment variables, for example
TABCHAT_CHAT_URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, st)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			st.close()
		},
	}

	root.PersistentFlags().StringVar(&st.configPath, "config", "", "config file (default ~/.tabchat/config.toml)")
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(
		newTUICmd(st),
		newREPLCmd(st),
		newAskCmd(st),
		newJobsCmd(st),
		newConfigCmd(st),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(ctx context.Context, root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, styles.RenderError(err.Error()))
		return 1
	}
	return 0
}
