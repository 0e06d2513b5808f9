// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation stores per-chat message history and tracks which chat
// is active.
//
// Histories are append-only: insertion order is display order and earlier
// messages are never modified. A chat's history is created the first time
// it is selected, seeded with one welcome message from the bot.
//
// # Key Types
//
//   - Store: Map of chat id to history plus the active chat id
//   - Config: Welcome text and logger
//
// # Usage
//
//	store := conversation.NewStore(conversation.Config{})
//	store.Select(1)                                  // seeds the welcome message
//	store.Append(1, model.NewUserMessage("Hello!"))
//	msgs := store.Messages(1)                        // [welcome, Hello!]
package conversation
