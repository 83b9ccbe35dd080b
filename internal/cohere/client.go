// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cohere

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the Cohere API.
const (
	// DefaultBaseURL is the base URL of the Cohere API.
	DefaultBaseURL = "https://api.cohere.ai"

	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "command-r"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of attempts for transient errors.
	DefaultMaxRetries = 2

	// DefaultRequestsPerMinute is the client-side request budget.
	DefaultRequestsPerMinute = 20

	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 5 * time.Second

	// MaxResponseSize caps the response body.
	MaxResponseSize = 1 * 1024 * 1024
)

var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
	},
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotConfigured = errors.New("cohere API key not configured")
	ErrUnauthorized  = errors.New("cohere rejected the API key")
	ErrRateLimited   = errors.New("rate limited")
	ErrEmptyReply    = errors.New("cohere returned an empty reply")
)

// APIError is a non-success response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cohere error (HTTP %d): %s", e.Status, e.Message)
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	Message  string `json:"message"`
	Model    string `json:"model,omitempty"`
	Preamble string `json:"preamble,omitempty"`
}

// ChatResponse is the subset of the /v1/chat response zap reads.
type ChatResponse struct {
	Text         string `json:"text"`
	GenerationID string `json:"generation_id"`
	FinishReason string `json:"finish_reason"`
}

type apiErrorResponse struct {
	Message string `json:"message"`
}

// Preamble frames the assistant for the service.
const Preamble = "You are Zap, the friendly AI assistant for Final Site. " +
	"Help users with scripts, tech questions and the Final Site Discord community. Keep answers short."

// =============================================================================
// CLIENT
// =============================================================================

// Client calls the Cohere chat endpoint. It is safe for concurrent use.
type Client struct {
	baseURL    string
	model      string
	timeout    time.Duration
	maxRetries int
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewClient creates a client with default settings.
func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/DefaultRequestsPerMinute), 3),
		httpClient: sharedHTTPClient,
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	if url != "" {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
	return c
}

// WithModel sets the chat model.
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// WithRateLimit sets the request budget per minute.
func (c *Client) WithRateLimit(perMinute int) *Client {
	if perMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 3)
	}
	return c
}

// WithHTTPClient replaces the HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// CompleteChat sends prompt and returns the reply text.
func (c *Client) CompleteChat(ctx context.Context, prompt, credential string) (string, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", ErrNotConfigured
	}
	if !c.limiter.Allow() {
		return "", ErrRateLimited
	}

	reqBody := ChatRequest{Message: prompt, Model: c.model, Preamble: Preamble}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(calculateBackoff(attempt)):
			}
		}

		resp, err := c.doRequest(ctx, credential, reqBody)
		if err == nil {
			text := strings.TrimSpace(resp.Text)
			if text == "" {
				return "", ErrEmptyReply
			}
			return text, nil
		}
		if !isRetryable(err) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single chat request.
func (c *Client) doRequest(ctx context.Context, credential string, reqBody ChatRequest) (*ChatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.httpClient.Do(req)
	req.Header.Del("Authorization")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp.StatusCode, data)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(data, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &chatResp, nil
}

// handleErrorResponse converts HTTP error responses to Go errors.
func handleErrorResponse(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	default:
		return &APIError{Status: status, Message: msg}
	}
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return false
}

func calculateBackoff(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<uint(attempt))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
