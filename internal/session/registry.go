// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/morganforge/tabchat/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned for ids that are not in the registry.
	ErrNotFound = errors.New("chat session not found")

	// ErrEmptyLabel is returned when a rename label is blank after trimming.
	ErrEmptyLabel = errors.New("session label cannot be empty")

	// ErrLastSession is returned when deleting the only remaining session.
	ErrLastSession = errors.New("cannot delete the last chat session")
)

// Selector is the part of the conversation store the registry drives.
// conversation.Store satisfies it.
type Selector interface {
	Select(id int) bool
	Remove(id int)
	ActiveID() int
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is the ordered list of chat tabs. It owns the id counter, so ids
// are never reused, even after a delete. The list is never empty.
type Registry struct {
	mu sync.Mutex

	sessions []model.ChatSession
	nextID   int

	store  Selector
	logger *zap.Logger
}

// NewRegistry creates a registry holding session 1 ("Chat 1") and makes it
// the active chat in store.
func NewRegistry(store Selector, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		sessions: []model.ChatSession{{ID: 1, Label: model.DefaultLabel(1)}},
		nextID:   2,
		store:    store,
		logger:   logger.Named("session"),
	}
	store.Select(1)
	return r
}

// Create appends a new session labelled "Chat {id}" and activates it.
func (r *Registry) Create() model.ChatSession {
	r.mu.Lock()
	s := model.ChatSession{ID: r.nextID, Label: model.DefaultLabel(r.nextID)}
	r.nextID++
	r.sessions = append(r.sessions, s)
	r.mu.Unlock()

	r.store.Select(s.ID)
	r.logger.Debug("created session", zap.Int("chat_id", s.ID))
	return s
}

// Rename replaces the label of session id with the trimmed label.
func (r *Registry) Rename(id int, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrEmptyLabel
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("rename %d: %w", id, ErrNotFound)
	}
	r.sessions[i].Label = label
	return nil
}

// Delete removes session id and its history. When the deleted session was
// active, the first remaining session in list order becomes active.
func (r *Registry) Delete(id int) error {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	if len(r.sessions) == 1 {
		r.mu.Unlock()
		return ErrLastSession
	}
	r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
	fallback := r.sessions[0].ID
	r.mu.Unlock()

	r.store.Remove(id)
	if r.store.ActiveID() == id {
		r.store.Select(fallback)
	}
	r.logger.Debug("deleted session", zap.Int("chat_id", id))
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Sessions returns the sessions in creation order.
func (r *Registry) Sessions() []model.ChatSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.ChatSession, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// Get returns session id and whether it exists.
func (r *Registry) Get(id int) (model.ChatSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexLocked(id); i >= 0 {
		return r.sessions[i], true
	}
	return model.ChatSession{}, false
}

// Len returns the number of sessions. It is always at least one.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Neighbor returns the id of the session offset positions away from id in
// list order, wrapping at both ends. The TUI uses it for ctrl+up/down.
func (r *Registry) Neighbor(id, offset int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(id)
	if i < 0 {
		return r.sessions[0].ID
	}
	n := len(r.sessions)
	return r.sessions[((i+offset)%n+n)%n].ID
}

func (r *Registry) indexLocked(id int) int {
	for i, s := range r.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}
