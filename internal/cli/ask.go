// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/morganforge/tabchat/internal/app"
	"github.com/morganforge/tabchat/internal/exchange"
	"github.com/morganforge/tabchat/internal/ui/styles"
)

func newAskCmd(st *state) *cobra.Command {
	var chatID int

	cmd := &cobra.Command{
		Use:   "ask MESSAGE...",
		Short: "Send one message and print the reply",
		Long: `Send one message to the chat service and print the reply.

The reply is rendered as markdown when stdout is a terminal and printed
raw otherwise, so it can be piped.`,
		Example: `  tabchat ask "What is a goroutine?"
  tabchat ask --chat 3 "Summarise our plan" > plan.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := st.config()
			if err != nil {
				return err
			}
			logger := st.cliLogger(cfg)

			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return app.ErrEmptyMessage
			}

			client := exchange.NewClient(exchange.Config{
				URL:        cfg.Chat.URL,
				Timeout:    cfg.Chat.Timeout(),
				MaxRetries: cfg.Chat.MaxRetries,
				Logger:     logger,
			})

			reply, err := client.Do(cmd.Context(), exchange.Request{Message: text, ChatID: chatID})
			if err != nil {
				logger.Debug("ask failed", zap.Error(err))
				return errors.New(exchange.Describe(err))
			}

			out := cmd.OutOrStdout()
			if isTerminal(out) {
				reply = renderMarkdown(reply, styles.NewTheme(cfg.UI.Theme).MarkdownStyle, terminalWidth(out))
			}
			fmt.Fprintln(out, reply)
			return nil
		},
	}

	cmd.Flags().IntVar(&chatID, "chat", 1, "chat id sent with the message")
	return cmd
}

// renderMarkdown renders text with glamour, falling back to the raw text.
func renderMarkdown(text, style string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
