// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exchange sends a chat message to the remote assistant and turns
// the outcome into a bot message.
//
// The wire protocol is one JSON request/response pair:
//
//	POST {url}  {"message": "hi", "chatId": 1}
//	2xx         {"response": "hello"}
//	non-2xx     {"error": "quota exceeded"}   (field optional)
//
// Send never fails. A reply becomes a bot message; a non-2xx reply becomes
// "Error: <error or status text>"; a transport failure becomes
// "Error connecting to chatbot: <description>". Do exposes the typed
// *TransportError and *RemoteError for callers that need them.
package exchange
