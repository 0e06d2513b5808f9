// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"sync"

	"go.uber.org/zap"

	"github.com/morganforge/tabchat/internal/model"
)

// =============================================================================
// STORE
// =============================================================================

// Store holds the message history of every chat and the id of the active
// chat. It is pure in-memory state and safe for concurrent use; replies
// arriving on background goroutines append through the same lock.
type Store struct {
	mu sync.Mutex

	conversations map[int]*model.Conversation
	activeID      int
	welcomeText   string

	onSelect func(id int)
	logger   *zap.Logger
}

// Config holds configuration for the store.
type Config struct {
	// WelcomeText seeds every chat the first time it becomes active.
	// Empty means model.DefaultWelcomeText.
	WelcomeText string

	// Logger receives debug events. Nil disables logging.
	Logger *zap.Logger
}

// NewStore creates an empty store with no active chat. The session
// registry selects the first chat when it is constructed.
func NewStore(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		conversations: make(map[int]*model.Conversation),
		welcomeText:   cfg.WelcomeText,
		logger:        logger.Named("conversation"),
	}
}

// SetSelectCallback sets the function called after the active chat
// changes. It runs outside the store lock and may call back into the store.
func (s *Store) SetSelectCallback(fn func(id int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSelect = fn
}

// =============================================================================
// ACTIVE CHAT
// =============================================================================

// Select makes id the active chat. A chat with no history is seeded with a
// single welcome message. Selecting the already active chat does nothing
// and returns false.
func (s *Store) Select(id int) bool {
	s.mu.Lock()
	if s.activeID == id {
		s.mu.Unlock()
		return false
	}

	s.activeID = id
	if _, ok := s.conversations[id]; !ok {
		conv := model.NewConversation(id)
		conv.AddMessage(model.NewWelcomeMessage(s.welcomeText))
		s.conversations[id] = conv
		s.logger.Debug("seeded conversation", zap.Int("chat_id", id))
	}
	onSelect := s.onSelect
	s.mu.Unlock()

	if onSelect != nil {
		onSelect(id)
	}
	return true
}

// ActiveID returns the id of the active chat, or 0 before the first Select.
func (s *Store) ActiveID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// =============================================================================
// HISTORY
// =============================================================================

// Append adds msg to the end of chat id. It returns false and changes
// nothing when id has no history, which happens when a reply arrives for a
// chat that was deleted while the request was in flight, or when msg has
// no known sender.
func (s *Store) Append(id int, msg model.Message) bool {
	if !msg.Sender.Valid() {
		s.logger.Warn("dropped message with unknown sender",
			zap.Int("chat_id", id),
			zap.Stringer("sender", msg.Sender))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		s.logger.Debug("dropped message for unknown chat",
			zap.Int("chat_id", id),
			zap.Stringer("sender", msg.Sender))
		return false
	}
	conv.AddMessage(msg)
	return true
}

// Messages returns a snapshot of the history of chat id in display order.
// Unknown ids yield an empty slice.
func (s *Store) Messages(id int) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return []model.Message{}
	}
	return conv.Messages()
}

// ActiveMessages returns a snapshot of the active chat's history.
func (s *Store) ActiveMessages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[s.activeID]
	if !ok {
		return []model.Message{}
	}
	return conv.Messages()
}

// Count returns the number of messages in chat id, 0 for unknown ids.
func (s *Store) Count(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return 0
	}
	return conv.MessageCount()
}

// Preview returns a one-line summary of chat id: the latest user message,
// or the greeting before the user has written anything.
func (s *Store) Preview(id, maxLen int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return ""
	}
	return conv.Preview(maxLen)
}

// Has reports whether chat id has a history entry.
func (s *Store) Has(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.conversations[id]
	return ok
}

// Remove drops the history of chat id. The active id is left for the
// caller to reassign.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, id)
}

// Len returns the number of chats with a history entry.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}
