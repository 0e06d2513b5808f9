// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Markdown style names accepted by glamour.WithStandardStyle.
const (
	MarkdownDark  = "dark"
	MarkdownLight = "light"
	MarkdownNoTTY = "notty"
)

// Theme holds the styled components for the terminal UI.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// MarkdownStyle is the glamour standard style for bot messages.
	MarkdownStyle string

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar         lipgloss.Style
	SidebarTitle    lipgloss.Style
	SidebarSubtitle lipgloss.Style
	NewChatButton   lipgloss.Style
	Tab             lipgloss.Style
	TabActive       lipgloss.Style
	TabSending      lipgloss.Style

	// ==========================================================================
	// CHAT PANE STYLES
	// ==========================================================================

	ChatTitle   lipgloss.Style
	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	Timestamp   lipgloss.Style
	Placeholder lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Spinner        lipgloss.Style
	SendingText    lipgloss.Style
	StatusBar      lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	// ==========================================================================
	// MODAL STYLES
	// ==========================================================================

	ModalBox    lipgloss.Style
	ModalTitle  lipgloss.Style
	ModalBody   lipgloss.Style
	ModalDanger lipgloss.Style
	ModalHint   lipgloss.Style
}

// NewTheme creates a theme for the given name: "dark", "light", "notty" or
// "auto", which asks the terminal for its background.
func NewTheme(name string) *Theme {
	t := &Theme{ColorProfile: termenv.ColorProfile()}

	switch name {
	case MarkdownLight:
		t.IsDark = false
		t.MarkdownStyle = MarkdownLight
	case MarkdownNoTTY:
		t.IsDark = true
		t.MarkdownStyle = MarkdownNoTTY
	case "auto":
		t.IsDark = termenv.HasDarkBackground()
		t.MarkdownStyle = MarkdownLight
		if t.IsDark {
			t.MarkdownStyle = MarkdownDark
		}
	default:
		t.IsDark = true
		t.MarkdownStyle = MarkdownDark
	}
	if t.ColorProfile == termenv.Ascii {
		t.MarkdownStyle = MarkdownNoTTY
	}

	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.SidebarSubtitle = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.NewChatButton = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.TabActive = lipgloss.NewStyle().
		Foreground(Indigo).
		Background(IndigoDeep).
		Bold(true).
		Padding(0, 1)

	t.TabSending = lipgloss.NewStyle().
		Foreground(Amber)

	// Chat pane
	t.ChatTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		Padding(0, 1)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorBubbleFg).
		Background(ErrorBubbleBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Rose).
		Padding(0, 1)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input and status
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)

	t.SendingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Modals
	t.ModalBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 2)

	t.ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		MarginBottom(1)

	t.ModalBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ModalDanger = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ModalHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		MarginTop(1)
}
