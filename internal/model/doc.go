// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
//
// This package defines the core domain types shared by the conversation
// store, the session registry and the presentation layers.
//
// # Key Types
//
//   - Message: Single message with text, sender and timestamp
//   - Sender: Closed sender enumeration (user, bot)
//   - ChatSession: A chat tab (id and display label)
//   - Conversation: Ordered, append-only history of one chat
//
// # Usage
//
// Build a conversation:
//
//	conv := model.NewConversation(1)
//	conv.AddMessage(model.NewWelcomeMessage(""))
//	conv.AddMessage(model.NewUserMessage("Hello!"))
//
// Label a new tab:
//
//	s := model.ChatSession{ID: 2, Label: model.DefaultLabel(2)} // "Chat 2"
package model
