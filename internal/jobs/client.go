// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Defaults for the jobs API client.
const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 30 * time.Second

	retryWaitMin = 500 * time.Millisecond
	retryWaitMax = 5 * time.Second
)

// Failure messages shown when the server gives no better one.
const (
	msgUnexpected       = "An unexpected error occurred"
	msgSubmissionFailed = "Submission failed"
	msgNoResponse       = "No response received from server"
)

// APIError is returned for every failed jobs API call. Message is the
// server's "error" or "message" field when it sent one.
type APIError struct {
	Status  int // 0 when no response was received
	Message string
	Err     error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Config holds configuration for the jobs client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int

	// RequestsPerSecond and Burst bound the client-side request rate.
	// Zero RequestsPerSecond disables limiting.
	RequestsPerSecond float64
	Burst             int

	Logger *zap.Logger
}

// Client talks to the jobs/applications API. It holds no state beyond
// its transport and rate limiter and is safe for concurrent use.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a jobs client. Transient failures (connection errors,
// 429 and 5xx) are retried by a retryablehttp transport.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("jobs")

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = retryWaitMin
	retryClient.RetryWaitMax = retryWaitMax
	retryClient.Logger = leveledLogger{logger.Sugar()}
	// Hand the last response back to resty instead of a generic
	// "giving up" error so the server's message survives.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	r := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		http:    r,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// ListJobs fetches all job postings.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var body struct {
		Jobs []Job `json:"jobs"`
	}
	if err := c.get(ctx, "/jobs", &body); err != nil {
		return nil, err
	}
	if body.Jobs == nil {
		return []Job{}, nil
	}
	return body.Jobs, nil
}

// GetJob fetches one posting. A reply without a job yields nil, nil.
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	var body struct {
		Job *Job `json:"job"`
	}
	if err := c.get(ctx, "/jobs/"+url.PathEscape(id), &body); err != nil {
		return nil, err
	}
	return body.Job, nil
}

// ListApplications fetches submitted applications. A reply without the
// field yields an empty slice.
func (c *Client) ListApplications(ctx context.Context) ([]map[string]any, error) {
	var body struct {
		Applications []map[string]any `json:"applications"`
	}
	if err := c.get(ctx, "/applications", &body); err != nil {
		return nil, err
	}
	if body.Applications == nil {
		return []map[string]any{}, nil
	}
	return body.Applications, nil
}

// SubmitApplication posts app as multipart/form-data and returns the
// server's reply object.
func (c *Client) SubmitApplication(ctx context.Context, app Application) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &APIError{Message: msgNoResponse, Err: err}
	}

	req := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(app.Fields)
	for _, f := range app.Files {
		req.SetFileReader(f.Field, f.Name, f.Contents)
	}

	resp, err := req.Post("/apply")
	if err != nil {
		c.logger.Warn("application submit failed", zap.Error(err))
		return nil, &APIError{Message: msgNoResponse, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp, msgSubmissionFailed)
	}

	out := map[string]any{}
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			return nil, &APIError{Status: resp.StatusCode(), Message: "invalid reply from server", Err: err}
		}
	}
	c.logger.Debug("application submitted", zap.Int("status", resp.StatusCode()))
	return out, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &APIError{Message: msgUnexpected, Err: err}
	}

	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		c.logger.Warn("jobs request failed", zap.String("path", path), zap.Error(err))
		return &APIError{Message: msgUnexpected, Err: err}
	}
	if !resp.IsSuccess() {
		return apiError(resp, msgUnexpected)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &APIError{Status: resp.StatusCode(), Message: "invalid reply from server", Err: err}
	}
	return nil
}

// apiError picks the server's "error" field, then "message", then fallback.
func apiError(resp *resty.Response, fallback string) *APIError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(resp.Body(), &body)

	msg := fallback
	switch {
	case body.Error != "":
		msg = body.Error
	case body.Message != "":
		msg = body.Message
	}
	return &APIError{
		Status:  resp.StatusCode(),
		Message: msg,
		Err:     fmt.Errorf("HTTP %d", resp.StatusCode()),
	}
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
