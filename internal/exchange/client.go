// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/morganforge/tabchat/internal/model"
)

// Configuration defaults for the chat endpoint.
const (
	// DefaultURL is the chat endpoint of a locally running backend.
	DefaultURL = "http://localhost:5000/chat"

	// DefaultTimeout bounds a single exchange, retries included.
	DefaultTimeout = 60 * time.Second

	retryWaitTime    = 250 * time.Millisecond
	retryMaxWaitTime = 2 * time.Second
)

// ErrMissingResponse is wrapped in a TransportError when a successful
// reply carries no "response" field.
var ErrMissingResponse = errors.New(`reply has no "response" field`)

// =============================================================================
// WIRE TYPES
// =============================================================================

// Request is the body POSTed to the chat endpoint.
type Request struct {
	Message string `json:"message"`
	ChatID  int    `json:"chatId"`
}

type replyBody struct {
	Response *string `json:"response"`
}

type errorBody struct {
	Error string `json:"error"`
}

// =============================================================================
// ERRORS
// =============================================================================

// TransportError reports that no usable reply was received: the request
// failed to connect, timed out, was cancelled, or the body could not be
// decoded.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError reports a non-2xx reply. Message is the reply's "error"
// field, or the HTTP status text when the field is absent.
type RemoteError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return e.Message
}

// Describe renders a failed exchange as the text of the bot message shown
// in the conversation.
func Describe(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return "Error: " + remote.Message
	}
	return "Error connecting to chatbot: " + err.Error()
}

// =============================================================================
// CLIENT
// =============================================================================

// Config holds configuration for the exchange client.
type Config struct {
	// URL is the chat endpoint. Defaults to DefaultURL.
	URL string

	// Timeout bounds each exchange. Defaults to DefaultTimeout.
	Timeout time.Duration

	// MaxRetries retries transport failures with exponential backoff.
	// Remote errors are never retried. 0 sends exactly once.
	MaxRetries int

	// Logger receives failures and request timings. Nil disables logging.
	Logger *zap.Logger
}

// Client sends chat messages to the remote assistant. It is stateless and
// safe for concurrent use.
type Client struct {
	http   *resty.Client
	url    string
	logger *zap.Logger
}

// NewClient creates a client for the configured endpoint.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("exchange")

	r := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())

	if cfg.MaxRetries > 0 {
		r.SetRetryCount(cfg.MaxRetries).
			SetRetryWaitTime(retryWaitTime).
			SetRetryMaxWaitTime(retryMaxWaitTime).
			AddRetryCondition(func(_ *resty.Response, err error) bool {
				return err != nil
			})
	}

	return &Client{http: r, url: cfg.URL, logger: logger}
}

// URL returns the chat endpoint.
func (c *Client) URL() string {
	return c.url
}

// Do performs one exchange and returns the reply text. Failures are
// *TransportError or *RemoteError.
func (c *Client) Do(ctx context.Context, req Request) (string, error) {
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.url)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	c.logger.Debug("chat exchange",
		zap.Int("chat_id", req.ChatID),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(start)))

	if !resp.IsSuccess() {
		return "", remoteError(resp)
	}

	var reply replyBody
	if err := json.Unmarshal(resp.Body(), &reply); err != nil {
		return "", &TransportError{Err: fmt.Errorf("decode reply: %w", err)}
	}
	if reply.Response == nil {
		return "", &TransportError{Err: ErrMissingResponse}
	}
	return *reply.Response, nil
}

// Send performs one exchange and always returns a bot message: the reply
// on success, or an error message describing the failure. It never
// returns an error; the conversation is the error channel.
func (c *Client) Send(ctx context.Context, req Request) model.Message {
	text, err := c.Do(ctx, req)
	if err != nil {
		c.logger.Warn("chat exchange failed",
			zap.Int("chat_id", req.ChatID),
			zap.Error(err))
		return model.NewErrorMessage(Describe(err))
	}
	return model.NewBotMessage(text)
}

// remoteError builds a RemoteError from a non-2xx reply. A body that is not
// JSON, or has no "error" field, falls back to the HTTP status text.
func remoteError(resp *resty.Response) *RemoteError {
	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return &RemoteError{Status: resp.StatusCode(), Message: body.Error}
	}
	msg := http.StatusText(resp.StatusCode())
	if msg == "" {
		msg = resp.Status()
	}
	return &RemoteError{Status: resp.StatusCode(), Message: msg}
}
