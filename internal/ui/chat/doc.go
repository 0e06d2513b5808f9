// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat implements the tabchat terminal screen as a Bubble Tea model.

The screen is a sidebar of chat tabs next to the active chat. It drives an
app.Controller: key presses create, switch, rename, delete and share chats,
and Enter sends the input line. Sending runs in a tea.Cmd so the UI keeps
working, and a chat that is waiting shows a spinner instead of its input
while other chats stay usable.

On terminals narrower than the configured threshold the sidebar becomes an
overlay. It closes when a chat is selected and when the window grows wide.

# Key Types

  - Model: the tea.Model
  - KeyMap: key bindings
  - ReplyMsg: delivered when an exchange finishes

# Usage

	ctrl := app.New(app.Config{WelcomeText: cfg.Chat.WelcomeText})
	m := chat.New(chat.Config{Controller: ctrl, Theme: styles.NewTheme("auto")})
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
*/
package chat
