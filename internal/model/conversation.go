// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered, append-only message history of one chat.
// Insertion order is display order.
type Conversation struct {
	ChatID    int       `json:"chat_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	messages []Message
}

// NewConversation creates an empty conversation for a chat.
func NewConversation(chatID int) *Conversation {
	now := time.Now()
	return &Conversation{
		ChatID:    chatID,
		CreatedAt: now,
		UpdatedAt: now,
		messages:  make([]Message, 0, 8),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message to the end of the conversation.
func (c *Conversation) AddMessage(msg Message) {
	c.messages = append(c.messages, msg)
	c.UpdatedAt = time.Now()
}

// Messages returns a copy of the history. Callers may keep or modify the
// returned slice without affecting the conversation.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.messages)
}

// Preview returns a short preview of the latest user message, or of the
// first message when the user has not written anything yet.
func (c *Conversation) Preview(maxLen int) string {
	if len(c.messages) == 0 {
		return "Empty conversation"
	}
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].IsUser() {
			return c.messages[i].Preview(maxLen)
		}
	}
	return c.messages[0].Preview(maxLen)
}
