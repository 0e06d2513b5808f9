// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morganforge/tabchat/internal/conversation"
	"github.com/morganforge/tabchat/internal/exchange"
	"github.com/morganforge/tabchat/internal/model"
	"github.com/morganforge/tabchat/internal/session"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyMessage is returned when the submitted text is blank.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrSendInFlight is returned when the target chat is still waiting
	// for a reply. Other chats can send meanwhile.
	ErrSendInFlight = errors.New("a message is already being sent in this chat")
)

// Exchanger delivers a message to the assistant and returns the bot reply.
// It never fails; failures come back as error-flavoured bot messages.
// *exchange.Client satisfies it.
type Exchanger interface {
	Send(ctx context.Context, req exchange.Request) model.Message
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Config holds configuration for the controller.
type Config struct {
	// Exchanger sends messages. Defaults to an exchange.Client for
	// exchange.DefaultURL.
	Exchanger Exchanger

	// WelcomeText seeds each new chat. Empty uses model.DefaultWelcomeText.
	WelcomeText string

	// ShareBaseURL prefixes share links.
	ShareBaseURL string

	Logger *zap.Logger
}

// Controller is the surface the TUI and REPL drive. It owns the
// conversation store and the session registry and runs the send/receive
// lifecycle of each chat.
type Controller struct {
	mu      sync.Mutex
	sending map[int]bool

	store     *conversation.Store
	registry  *session.Registry
	exchanger Exchanger
	shareBase string
	logger    *zap.Logger
}

// New creates a controller in the initial state: chat 1 ("Chat 1") is
// active and holds the welcome message.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	exchanger := cfg.Exchanger
	if exchanger == nil {
		exchanger = exchange.NewClient(exchange.Config{Logger: logger})
	}

	store := conversation.NewStore(conversation.Config{
		WelcomeText: cfg.WelcomeText,
		Logger:      logger,
	})

	return &Controller{
		sending:   make(map[int]bool),
		store:     store,
		registry:  session.NewRegistry(store, logger),
		exchanger: exchanger,
		shareBase: strings.TrimRight(cfg.ShareBaseURL, "/"),
		logger:    logger.Named("app"),
	}
}

// SetSelectCallback sets the function called after the active chat
// changes, whether by SelectChat, CreateSession or DeleteSession.
func (c *Controller) SetSelectCallback(fn func(id int)) {
	c.store.SetSelectCallback(fn)
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// SelectChat makes chat id active. Unknown ids wrap session.ErrNotFound
// and leave the active chat unchanged.
func (c *Controller) SelectChat(id int) error {
	if _, ok := c.registry.Get(id); !ok {
		return fmt.Errorf("select %d: %w", id, session.ErrNotFound)
	}
	c.store.Select(id)
	return nil
}

// CycleChat activates the chat offset positions from the active one,
// wrapping around the list, and returns its id.
func (c *Controller) CycleChat(offset int) int {
	id := c.registry.Neighbor(c.store.ActiveID(), offset)
	c.store.Select(id)
	return id
}

// CreateSession adds a new chat and makes it active.
func (c *Controller) CreateSession() model.ChatSession {
	return c.registry.Create()
}

// RenameSession relabels chat id. See session.Registry.Rename.
func (c *Controller) RenameSession(id int, label string) error {
	return c.registry.Rename(id, label)
}

// DeleteSession removes chat id and its history. A reply still in flight
// for that chat is dropped when it arrives.
func (c *Controller) DeleteSession(id int) error {
	return c.registry.Delete(id)
}

// =============================================================================
// SENDING
// =============================================================================

// Outgoing is a user message that has been appended to its chat and is
// waiting for a reply.
type Outgoing struct {
	ChatID  int
	Message model.Message
}

// BeginSend validates text, appends it as a user message to the active
// chat and marks that chat as sending. The chat id is captured here, so
// the reply lands in this chat even if the user switches away.
func (c *Controller) BeginSend(text string) (Outgoing, error) {
	if strings.TrimSpace(text) == "" {
		return Outgoing{}, ErrEmptyMessage
	}

	chatID := c.store.ActiveID()

	c.mu.Lock()
	if c.sending[chatID] {
		c.mu.Unlock()
		return Outgoing{}, ErrSendInFlight
	}
	c.sending[chatID] = true
	c.mu.Unlock()

	msg := model.NewUserMessage(text)
	c.store.Append(chatID, msg)
	return Outgoing{ChatID: chatID, Message: msg}, nil
}

// Deliver sends out to the assistant, appends the reply to the chat the
// message was sent from and clears that chat's sending flag. The reply is
// returned even when the chat was deleted and it was dropped.
func (c *Controller) Deliver(ctx context.Context, out Outgoing) model.Message {
	defer func() {
		c.mu.Lock()
		delete(c.sending, out.ChatID)
		c.mu.Unlock()
	}()

	reply := c.exchanger.Send(ctx, exchange.Request{
		Message: out.Message.Text,
		ChatID:  out.ChatID,
	})

	if !c.store.Append(out.ChatID, reply) {
		c.logger.Debug("reply dropped, chat was deleted", zap.Int("chat_id", out.ChatID))
	}
	return reply
}

// SendMessage runs a whole exchange for the active chat and blocks until
// the reply is appended.
func (c *Controller) SendMessage(ctx context.Context, text string) (model.Message, error) {
	out, err := c.BeginSend(text)
	if err != nil {
		return model.Message{}, err
	}
	return c.Deliver(ctx, out), nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ActiveChatID returns the id of the active chat.
func (c *Controller) ActiveChatID() int {
	return c.store.ActiveID()
}

// ActiveSession returns the active chat session.
func (c *Controller) ActiveSession() model.ChatSession {
	s, _ := c.registry.Get(c.store.ActiveID())
	return s
}

// Session returns chat session id and whether it exists.
func (c *Controller) Session(id int) (model.ChatSession, bool) {
	return c.registry.Get(id)
}

// Sessions returns the chat sessions in creation order.
func (c *Controller) Sessions() []model.ChatSession {
	return c.registry.Sessions()
}

// Messages returns a snapshot of chat id's history.
func (c *Controller) Messages(id int) []model.Message {
	return c.store.Messages(id)
}

// ActiveMessages returns a snapshot of the active chat's history.
func (c *Controller) ActiveMessages() []model.Message {
	return c.store.ActiveMessages()
}

// MessageCount returns the length of chat id's history.
func (c *Controller) MessageCount(id int) int {
	return c.store.Count(id)
}

// Preview returns a one-line summary of chat id for listings.
func (c *Controller) Preview(id, maxLen int) string {
	return c.store.Preview(id, maxLen)
}

// IsSending reports whether chat id is waiting for a reply.
func (c *Controller) IsSending(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending[id]
}

// IsSendingActive reports whether the active chat is waiting for a reply.
func (c *Controller) IsSendingActive() bool {
	return c.IsSending(c.store.ActiveID())
}

// ShareLink returns a link of the form {base}/shared-chat/{id}/{token}
// with a fresh random token.
func (c *Controller) ShareLink(id int) (string, error) {
	if _, ok := c.registry.Get(id); !ok {
		return "", fmt.Errorf("share %d: %w", id, session.ErrNotFound)
	}
	return fmt.Sprintf("%s/shared-chat/%d/%s", c.shareBase, id, uuid.NewString()), nil
}
