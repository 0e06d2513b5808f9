// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/morganforge/tabchat/internal/model"
	"github.com/morganforge/tabchat/internal/ui/styles"
	"github.com/morganforge/tabchat/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// Sidebar header text.
const (
	SidebarTitle    = "Gemini Chatbot"
	SidebarSubtitle = "Powered by AI"
	NewChatLabel    = "+ New Chat"
)

// sendingMarker prefixes tabs whose chat is waiting for a reply.
const sendingMarker = "* "

// Sidebar renders the chat header, the New Chat action and the tab list.
type Sidebar struct {
	Sessions []model.ChatSession
	ActiveID int
	// Sending reports whether a chat is waiting for a reply. May be nil.
	Sending func(id int) bool

	Width  int
	Height int

	theme *styles.Theme
}

// NewSidebar creates a sidebar with the given theme.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme, Width: 26}
}

// SetSessions replaces the tab list and the highlighted tab.
func (s *Sidebar) SetSessions(sessions []model.ChatSession, activeID int) {
	s.Sessions = sessions
	s.ActiveID = activeID
}

// SetSize sets the sidebar dimensions, border included.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// innerWidth is the width left for text inside border and padding.
func (s *Sidebar) innerWidth() int {
	w := s.Width - 3
	if w < 4 {
		w = 4
	}
	return w
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	inner := s.innerWidth()
	t := s.theme

	var b strings.Builder
	b.WriteString(t.SidebarTitle.Render(util.TruncateWidth(SidebarTitle, inner)))
	b.WriteString("\n")
	b.WriteString(t.SidebarSubtitle.Render(util.TruncateWidth(SidebarSubtitle, inner)))
	b.WriteString("\n\n")
	b.WriteString(t.NewChatButton.Render(util.TruncateWidth(NewChatLabel, inner)))
	b.WriteString("\n\n")

	for i, sess := range s.Sessions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.renderTab(sess, inner))
	}

	style := t.Sidebar.Width(s.Width - 1)
	if s.Height > 0 {
		style = style.Height(s.Height)
	}
	return style.Render(b.String())
}

func (s *Sidebar) renderTab(sess model.ChatSession, inner int) string {
	// Tab styles carry one cell of padding on each side.
	textWidth := inner - 2

	prefix := ""
	if s.Sending != nil && s.Sending(sess.ID) {
		prefix = sendingMarker
	}
	label := util.PadWidth(prefix+sess.Label, textWidth)

	if sess.ID == s.ActiveID {
		return s.theme.TabActive.Render(label)
	}
	return s.theme.Tab.Render(label)
}
