// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the campus assistant service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the assistant service client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeConnection, Message: "assistant service unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsUnreachable checks if an error indicates the service could not be reached.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeConnection
	}
	return errors.Is(err, ErrUnreachable)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the assistant client.
type ClientConfig struct {
	// BaseURL is the assistant API base URL (default: http://127.0.0.1:8000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// Timeout per request (default: 30s)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the campus assistant API.
//
// The Client is safe for concurrent use.
//
// Example:
//
//	client := api.NewClient()
//	resp, err := client.Chat(ctx, api.ChatRequest{
//	    UserID:  userID,
//	    Message: "Quels sont les horaires de la BU ?",
//	    Channel: api.ChannelWeb,
//	})
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	// limiter paces /chat requests under the service's 10/minute quota so
	// a fast typist gets queued locally instead of seeing HTTP 429.
	limiter *rate.Limiter
}

// NewClient creates a new assistant client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new assistant client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Every(6*time.Second), 10),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends a question and returns the assistant's answer.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeTimeout, Message: "canceled while rate limited", Cause: err}
	}

	var result ChatResponse
	if err := c.post(ctx, "/chat", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SubmitFeedback rates a previous answer. Any 2xx response counts as
// accepted; the body is not inspected beyond decoding errors for non-2xx.
func (c *Client) SubmitFeedback(ctx context.Context, req FeedbackRequest) error {
	return c.post(ctx, "/feedback", req, nil)
}

// =============================================================================
// TRANSPORT
// =============================================================================

// serviceError is the FastAPI-style error body `{"detail": ...}`.
type serviceError struct {
	Detail json.RawMessage `json:"detail"`
}

// post issues one JSON POST and decodes a 2xx body into out (when non-nil).
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "assistant service unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// statusError converts a non-2xx response into a ClientError carrying the
// response detail so the failure bubble can show what the service said.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	detail := strings.TrimSpace(string(raw))
	var svcErr serviceError
	if err := json.Unmarshal(raw, &svcErr); err == nil && len(svcErr.Detail) > 0 {
		detail = strings.Trim(strings.TrimSpace(string(svcErr.Detail)), `"`)
	}

	msg := "request failed: " + resp.Status
	if detail != "" {
		msg += " (" + detail + ")"
	}
	return &ClientError{Type: ErrTypeStatus, Message: msg}
}
