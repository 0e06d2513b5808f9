// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strconv"

// ChatSession is a chat tab: an id and a display label. The message history
// of a session lives in the conversation store and is looked up by ID.
type ChatSession struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// DefaultLabel returns the label assigned to a freshly created session.
func DefaultLabel(id int) string {
	return "Chat " + strconv.Itoa(id)
}
