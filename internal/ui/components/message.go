// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/tabchat/internal/model"
	"github.com/morganforge/tabchat/internal/ui/styles"
	"github.com/morganforge/tabchat/internal/util"
)

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// EmptyPlaceholder is shown for a chat without messages.
const EmptyPlaceholder = "No messages yet"

// timeFormat renders message timestamps.
const timeFormat = "15:04"

// MessageList renders a chat history as bubbles: user messages on the
// right, bot messages on the left with markdown rendered by glamour.
type MessageList struct {
	Width int

	theme         *styles.Theme
	renderer      *glamour.TermRenderer
	rendererWidth int
}

// NewMessageList creates a message list with the given theme.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{theme: theme, Width: 80}
}

// SetWidth sets the width of the pane the list is rendered into.
func (l *MessageList) SetWidth(width int) {
	l.Width = width
}

// bubbleWidth is the widest a bubble may grow.
func (l *MessageList) bubbleWidth() int {
	w := l.Width * 3 / 4
	if w < 20 {
		w = l.Width
	}
	return w
}

// Render renders msgs for the current width.
func (l *MessageList) Render(msgs []model.Message) string {
	if len(msgs) == 0 {
		return lipgloss.PlaceHorizontal(l.Width, lipgloss.Center,
			l.theme.Placeholder.Render(EmptyPlaceholder))
	}

	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, l.renderMessage(msg))
	}
	return strings.Join(parts, "\n\n")
}

func (l *MessageList) renderMessage(msg model.Message) string {
	header := msg.Sender.DisplayName()
	if !msg.Timestamp.IsZero() {
		header += " · " + msg.Timestamp.Format(timeFormat)
	}
	header = l.theme.Timestamp.Render(header)

	if msg.IsUser() {
		bubble := l.fit(l.theme.UserBubble, msg.Text).Render(msg.Text)
		return lipgloss.PlaceHorizontal(l.Width, lipgloss.Right,
			lipgloss.JoinVertical(lipgloss.Right, header, bubble))
	}

	if msg.IsError {
		bubble := l.fit(l.theme.ErrorBubble, msg.Text).Render(msg.Text)
		return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
	}

	body := l.markdown(msg.Text)
	bubble := l.fit(l.theme.BotBubble, body).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// fit caps style at the bubble width when text would overflow it, so
// short messages keep a tight bubble.
func (l *MessageList) fit(style lipgloss.Style, text string) lipgloss.Style {
	limit := l.bubbleWidth()
	frame := style.GetHorizontalFrameSize()
	for _, line := range strings.Split(text, "\n") {
		if util.StringWidth(line)+frame > limit {
			return style.Width(limit)
		}
	}
	return style
}

// markdown renders text with glamour. Rendering failures fall back to the
// raw text.
func (l *MessageList) markdown(text string) string {
	wrap := l.bubbleWidth() - l.theme.BotBubble.GetHorizontalFrameSize()
	if wrap < 10 {
		wrap = 10
	}

	if l.renderer == nil || l.rendererWidth != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(l.theme.MarkdownStyle),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return text
		}
		l.renderer = r
		l.rendererWidth = wrap
	}

	out, err := l.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
