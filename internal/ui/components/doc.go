// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the tabchat terminal UI.

# Key Types

  - Sidebar: header, New Chat action and the chat tab list
  - MessageList: chat history as bubbles, bot markdown rendered by glamour
  - Modal: rename, delete confirmation and share link dialogs

HighlightCodeBlocks colors fenced code with chroma for line-oriented output
such as the REPL, where full glamour rendering is not wanted.

# Usage

	theme := styles.NewTheme("dark")

	sidebar := components.NewSidebar(theme)
	sidebar.SetSessions(ctrl.Sessions(), ctrl.ActiveChatID())

	list := components.NewMessageList(theme)
	list.SetWidth(80)
	content := list.Render(ctrl.ActiveMessages())
*/
package components
