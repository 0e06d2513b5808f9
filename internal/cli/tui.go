// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/morganforge/tabchat/internal/app"
	"github.com/morganforge/tabchat/internal/config"
	"github.com/morganforge/tabchat/internal/exchange"
	"github.com/morganforge/tabchat/internal/ui/chat"
	"github.com/morganforge/tabchat/internal/ui/styles"
)

func newTUICmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, st)
		},
	}
}

// newController builds the chat controller from the configuration.
func newController(cfg *config.Config, logger *zap.Logger) *app.Controller {
	client := exchange.NewClient(exchange.Config{
		URL:        cfg.Chat.URL,
		Timeout:    cfg.Chat.Timeout(),
		MaxRetries: cfg.Chat.MaxRetries,
		Logger:     logger,
	})
	return app.New(app.Config{
		Exchanger:    client,
		WelcomeText:  cfg.Chat.WelcomeText,
		ShareBaseURL: cfg.Chat.ShareBaseURL,
		Logger:       logger,
	})
}

func runTUI(cmd *cobra.Command, st *state) error {
	cfg, err := st.config()
	if err != nil {
		return err
	}
	logger := st.tuiLogger(cfg)

	// Cancelled on exit so replies still in flight are abandoned.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := chat.New(chat.Config{
		Controller:   newController(cfg, logger),
		Theme:        styles.NewTheme(cfg.UI.Theme),
		SidebarWidth: cfg.UI.SidebarWidth,
		NarrowWidth:  cfg.UI.NarrowWidth,
		Context:      ctx,
		Logger:       logger,
	})

	logger.Info("starting tui", zap.String("chat_url", cfg.Chat.URL))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
