// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// SENDER TESTS
// =============================================================================

func TestSender_Valid(t *testing.T) {
	tests := []struct {
		sender Sender
		want   bool
	}{
		{SenderUser, true},
		{SenderBot, true},
		{Sender("system"), false},
		{Sender(""), false},
	}

	for _, tc := range tests {
		t.Run(string(tc.sender), func(t *testing.T) {
			if got := tc.sender.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSender_DisplayName(t *testing.T) {
	if SenderUser.DisplayName() != "You" {
		t.Errorf("user display name = %q", SenderUser.DisplayName())
	}
	if SenderBot.DisplayName() != "Gemini" {
		t.Errorf("bot display name = %q", SenderBot.DisplayName())
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewWelcomeMessage(t *testing.T) {
	msg := NewWelcomeMessage("")
	if msg.Text != DefaultWelcomeText {
		t.Errorf("Text = %q, want default welcome", msg.Text)
	}
	if !msg.IsBot() {
		t.Error("welcome message should come from the bot")
	}

	custom := NewWelcomeMessage("Hi there")
	if custom.Text != "Hi there" {
		t.Errorf("Text = %q, want %q", custom.Text, "Hi there")
	}
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("Error: boom")
	if !msg.IsBot() || !msg.IsError {
		t.Errorf("error message = %+v, want bot message with IsError", msg)
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage(strings.Repeat("é", 40))
	got := msg.Preview(10)
	if len([]rune(got)) != 10 {
		t.Errorf("Preview(10) has %d runes, want 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview(10) = %q, want ellipsis", got)
	}
}

func TestMessage_PreviewFirstLine(t *testing.T) {
	msg := NewBotMessage("\n  Here is the plan:\n1. build\n2. ship")
	if got := msg.Preview(40); got != "Here is the plan:" {
		t.Errorf("Preview = %q, want first non-blank line", got)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AddMessagePreservesOrder(t *testing.T) {
	conv := NewConversation(1)
	texts := []string{"a", "b", "c", "d"}
	for _, text := range texts {
		conv.AddMessage(NewUserMessage(text))
	}

	got := conv.Messages()
	if len(got) != len(texts) {
		t.Fatalf("MessageCount = %d, want %d", len(got), len(texts))
	}
	for i, text := range texts {
		if got[i].Text != text {
			t.Errorf("message %d = %q, want %q", i, got[i].Text, text)
		}
	}
}

func TestConversation_MessagesIsSnapshot(t *testing.T) {
	conv := NewConversation(1)
	conv.AddMessage(NewUserMessage("original"))

	snap := conv.Messages()
	snap[0].Text = "changed"

	if got := conv.Messages()[0].Text; got != "original" {
		t.Errorf("conversation was mutated through snapshot: %q", got)
	}
}

func TestConversation_Preview(t *testing.T) {
	conv := NewConversation(1)
	if conv.Preview(20) != "Empty conversation" {
		t.Errorf("empty preview = %q", conv.Preview(20))
	}

	conv.AddMessage(NewWelcomeMessage(""))
	conv.AddMessage(NewUserMessage("first question"))
	conv.AddMessage(NewBotMessage("answer"))

	if got := conv.Preview(50); got != "first question" {
		t.Errorf("Preview = %q, want latest user message", got)
	}
}

func TestConversation_MessageCount(t *testing.T) {
	conv := NewConversation(3)
	if conv.MessageCount() != 0 {
		t.Errorf("new MessageCount = %d, want 0", conv.MessageCount())
	}
	conv.AddMessage(NewUserMessage("x"))
	conv.AddMessage(NewBotMessage("y"))
	if conv.MessageCount() != 2 {
		t.Errorf("MessageCount = %d, want 2", conv.MessageCount())
	}
}

func TestDefaultLabel(t *testing.T) {
	if got := DefaultLabel(7); got != "Chat 7" {
		t.Errorf("DefaultLabel(7) = %q", got)
	}
}
