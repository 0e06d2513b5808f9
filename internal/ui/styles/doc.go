// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colors and lipgloss styles of the tabchat
terminal UI.

All colors are lipgloss AdaptiveColor values, so they follow the terminal
background. Theme groups the styles used by the sidebar, chat pane, input
line and modals, and picks the glamour markdown style for bot messages.

# Key Types

  - Theme: styled components plus the detected terminal capabilities
  - StatusIndicatorSet: ASCII markers paired with status colors

# Usage

	theme := styles.NewTheme("auto")
	tab := theme.TabActive.Render("Chat 1")
	fmt.Println(styles.RenderError("chat not found"))
*/
package styles
