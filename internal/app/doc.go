// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app ties the conversation store, the session registry and the
// exchange client together behind the operations a chat front end needs.
//
// # Key Types
//
//   - Controller: Chat tabs, active-chat routing and the send lifecycle
//   - Exchanger: Anything that turns a request into a bot reply
//   - Outgoing: A sent user message awaiting its reply
//
// # Sending
//
// Each chat sends independently: a chat waiting for a reply rejects
// another send with ErrSendInFlight while other chats stay usable. The
// target chat is captured when the send begins, so a reply always lands
// in the chat it belongs to, or is dropped if that chat was deleted.
//
// Event-loop front ends split a send in two so the UI can redraw between
// the user message and the reply:
//
//	out, err := ctrl.BeginSend(text)   // user message appended, chat sending
//	if err != nil {
//	    return err
//	}
//	go func() {
//	    reply := ctrl.Deliver(ctx, out) // reply appended, chat idle again
//	    notify(reply)
//	}()
//
// Blocking callers use SendMessage, which does both.
package app
