// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestNewTheme_MarkdownStyle(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"dark", MarkdownDark},
		{"light", MarkdownLight},
		{"notty", MarkdownNoTTY},
		{"", MarkdownDark},
	}

	for _, tc := range tests {
		theme := NewTheme(tc.name)
		// Without a color terminal every theme falls back to notty.
		want := tc.want
		if theme.ColorProfile == termenv.Ascii {
			want = MarkdownNoTTY
		}
		if theme.MarkdownStyle != want {
			t.Errorf("NewTheme(%q).MarkdownStyle = %q, want %q", tc.name, theme.MarkdownStyle, want)
		}
	}
}

func TestNewTheme_LightIsNotDark(t *testing.T) {
	if NewTheme("light").IsDark {
		t.Error("light theme should not report a dark background")
	}
	if !NewTheme("dark").IsDark {
		t.Error("dark theme should report a dark background")
	}
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme("dark")

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Sidebar", theme.Sidebar},
		{"TabActive", theme.TabActive},
		{"UserBubble", theme.UserBubble},
		{"BotBubble", theme.BotBubble},
		{"ErrorBubble", theme.ErrorBubble},
		{"ModalBox", theme.ModalBox},
		{"StatusBar", theme.StatusBar},
	}

	for _, s := range styles {
		if !strings.Contains(s.style.Render("test"), "test") {
			t.Errorf("%s style dropped its content", s.name)
		}
	}
}

func TestRenderHelpersIncludeIndicators(t *testing.T) {
	tests := []struct {
		got, indicator string
	}{
		{RenderSuccess("saved"), StatusIndicators.Success},
		{RenderError("failed"), StatusIndicators.Error},
		{RenderInfo("note"), StatusIndicators.Info},
	}

	for _, tc := range tests {
		if !strings.Contains(tc.got, tc.indicator) {
			t.Errorf("%q missing indicator %q", tc.got, tc.indicator)
		}
	}
	if !strings.Contains(RenderLink("http://x"), "http://x") {
		t.Error("RenderLink dropped its text")
	}
}
