// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/tabchat/internal/util"
)

// SendingText is shown in place of the input while the active chat waits
// for a reply.
const SendingText = "Sending..."

// View renders the screen.
func (m Model) View() string {
	var screen string
	switch {
	case m.layout.open && m.layout.narrow:
		// Overlay: the sidebar takes the screen until a chat is picked.
		screen = m.sidebar.View()
	case m.layout.open:
		screen = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.renderChatPane())
	default:
		screen = m.renderChatPane()
	}

	if m.modal.Open() && m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modal.View())
	}
	return screen
}

func (m Model) renderChatPane() string {
	width := m.chatPaneWidth()

	title := m.theme.ChatTitle.Width(width).Render(
		util.TruncateWidth(m.ctrl.ActiveSession().Label, width))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.viewport.View(),
		m.renderInput(width),
		m.renderStatusBar(width),
	)
}

func (m Model) renderInput(width int) string {
	var line string
	if m.ctrl.IsSendingActive() {
		line = m.spinner.View() + " " + m.theme.SendingText.Render(SendingText)
	} else {
		line = m.input.View()
	}
	return m.theme.InputContainer.Width(width).Render(line)
}

func (m Model) renderStatusBar(width int) string {
	text := m.status
	if text == "" {
		parts := make([]string, 0, len(m.keys.ShortHelp()))
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			parts = append(parts, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
		}
		text = strings.Join(parts, "  ")
	}
	return m.theme.StatusBar.Width(width).MaxWidth(width).Render(text)
}
