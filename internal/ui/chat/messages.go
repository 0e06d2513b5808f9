// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/tabchat/internal/app"
	"github.com/morganforge/tabchat/internal/model"
)

// ReplyMsg carries the bot reply for a message sent from chat ChatID. The
// reply is already in that chat's history when this arrives.
type ReplyMsg struct {
	ChatID int
	Reply  model.Message
}

// CopiedMsg reports the outcome of copying a share link.
type CopiedMsg struct {
	Err error
}

// deliverCmd runs the exchange for out off the UI loop.
func deliverCmd(ctx context.Context, ctrl *app.Controller, out app.Outgoing) tea.Cmd {
	return func() tea.Msg {
		reply := ctrl.Deliver(ctx, out)
		return ReplyMsg{ChatID: out.ChatID, Reply: reply}
	}
}

// copyCmd writes text to the clipboard.
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: write(text)}
	}
}
