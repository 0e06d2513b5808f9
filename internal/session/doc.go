// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the ordered list of chat tabs.
//
// The registry assigns ids from a counter it owns, keeps sessions in
// creation order and drives the conversation store: new sessions become
// active, deleted sessions lose their history, and deleting the active
// session falls back to the first one left.
//
// # Key Types
//
//   - Registry: Ordered chat sessions with a monotonic id counter
//   - Selector: The store operations the registry needs
//
// # Usage
//
//	store := conversation.NewStore(conversation.Config{})
//	reg := session.NewRegistry(store, logger)   // "Chat 1", active
//	s := reg.Create()                           // {2, "Chat 2"}, active
//	_ = reg.Rename(s.ID, "Work")
//	err := reg.Delete(1)
//
// # Errors
//
// Rename returns ErrEmptyLabel for blank labels. Delete refuses to remove
// the last session with ErrLastSession. Unknown ids wrap ErrNotFound.
package session
