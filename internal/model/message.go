// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/morganforge/tabchat/internal/util"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who wrote a message. It is a closed set: every switch
// over Sender should handle SenderUser and SenderBot.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	switch s {
	case SenderUser, SenderBot:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Gemini"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// DefaultWelcomeText is the bot greeting seeded into an empty chat.
const DefaultWelcomeText = "Hello! I'm Gemini, your AI assistant. How can I help you today?"

// Message is a single chat message. Messages are values and are never
// mutated after they are appended to a conversation.
type Message struct {
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// IsError marks a bot message synthesized from a failed exchange.
	IsError bool `json:"is_error,omitempty"`
}

// NewUserMessage creates a message written by the user.
func NewUserMessage(text string) Message {
	return Message{Text: text, Sender: SenderUser, Timestamp: time.Now()}
}

// NewBotMessage creates an assistant reply.
func NewBotMessage(text string) Message {
	return Message{Text: text, Sender: SenderBot, Timestamp: time.Now()}
}

// NewErrorMessage creates a bot message that reports a failed exchange.
// The conversation itself is the error channel, so failures are rendered
// as ordinary bot messages with IsError set.
func NewErrorMessage(text string) Message {
	msg := NewBotMessage(text)
	msg.IsError = true
	return msg
}

// NewWelcomeMessage creates the greeting seeded into an empty chat.
// An empty text falls back to DefaultWelcomeText.
func NewWelcomeMessage(text string) Message {
	if text == "" {
		text = DefaultWelcomeText
	}
	return NewBotMessage(text)
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsUser returns true if the message was written by the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsBot returns true if the message came from the assistant.
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}

// Preview returns the first non-blank line of the text, truncated to
// maxLen runes.
func (m Message) Preview(maxLen int) string {
	return util.TruncateRunes(util.FirstLine(m.Text), maxLen)
}
