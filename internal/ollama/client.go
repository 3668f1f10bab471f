// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Ollama client.
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
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeCancelled
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning    = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrModelNotFound = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultBaseURL uses an explicit IPv4 address to avoid IPv6 resolution
// issues on Windows.
const DefaultBaseURL = "http://127.0.0.1:11434"

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: DefaultBaseURL)
	BaseURL string

	// Timeout bounds metadata requests such as health checks and model
	// listing. Pulls, warm-up, and chat are bounded only by their context.
	Timeout time.Duration

	// StartTimeout is how long to wait for an auto-started server (default: 15s)
	StartTimeout time.Duration

	// KeepAlive tells the server how long to keep the model loaded
	// after a request, e.g. "5m" or "-1" for forever. Empty uses the
	// server default.
	KeepAlive string

	// Logger receives diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      DefaultBaseURL,
		Timeout:      30 * time.Second,
		StartTimeout: 15 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Ollama API.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	// SECURITY: TLS not required - Ollama runs locally over HTTP.
	streamClient *http.Client
	logger       *zap.Logger
}

// NewClient creates a new Ollama client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Ollama client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.StartTimeout == 0 {
		config.StartTimeout = 15 * time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:       config,
		httpClient:   &http.Client{Timeout: config.Timeout},
		streamClient: &http.Client{},
		logger:       logger,
	}
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// do sends a request and returns the response if it succeeded. The caller
// closes the body.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body any) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, rdr)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer drainAndClose(resp.Body)

	var ollamaErr OllamaError
	decodeErr := json.NewDecoder(resp.Body).Decode(&ollamaErr)
	if resp.StatusCode == http.StatusNotFound {
		if decodeErr == nil && ollamaErr.Error != "" {
			return nil, &ClientError{Type: ErrTypeModelNotFound, Message: ollamaErr.Error}
		}
		return nil, ErrModelNotFound
	}
	if decodeErr == nil && ollamaErr.Error != "" {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: ollamaErr.Error}
	}
	return nil, &ClientError{
		Type:    ErrTypeInvalidResponse,
		Message: fmt.Sprintf("%s %s failed: %s", method, path, resp.Status),
	}
}

func transportError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return &ClientError{Type: ErrTypeCancelled, Message: "request cancelled", Cause: err}
	default:
		return &ClientError{Type: ErrTypeNotRunning, Message: ErrNotRunning.Message, Cause: err}
	}
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that Ollama is reachable and running.
func (c *Client) CheckRunning(ctx context.Context) error {
	resp, err := c.do(ctx, c.httpClient, http.MethodGet, "/", nil)
	if err != nil {
		if IsModelNotFound(err) {
			return &ClientError{Type: ErrTypeConnection, Message: "unexpected status from Ollama"}
		}
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// EnsureRunning starts `ollama serve` unless the server already answers.
func (c *Client) EnsureRunning(ctx context.Context) error {
	if err := c.CheckRunning(ctx); err == nil {
		return nil
	}
	path, err := c.startOllamaProcess()
	if err != nil {
		return err
	}
	return c.waitForServer(ctx, path)
}

// waitForServer polls the server after it was started.
func (c *Client) waitForServer(ctx context.Context, path string) error {
	deadline := time.Now().Add(c.config.StartTimeout)
	start := time.Now()
	var lastErr error

	c.logger.Info("starting Ollama service", zap.String("path", path))

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return &ClientError{
				Type:    ErrTypeCancelled,
				Message: "Ollama startup cancelled",
				Cause:   ctx.Err(),
			}
		default:
		}

		checkCtx, cancel := context.WithTimeout(ctx, time.Second)
		lastErr = c.CheckRunning(checkCtx)
		cancel()

		if lastErr == nil {
			c.logger.Info("Ollama service started", zap.Duration("elapsed", time.Since(start)))
			return nil
		}

		time.Sleep(500 * time.Millisecond)
	}

	return &ClientError{
		Type:    ErrTypeConnection,
		Message: fmt.Sprintf("Ollama started but not responding after %s (path: %s)", c.config.StartTimeout, path),
		Cause:   lastErr,
	}
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModels retrieves all available models from Ollama.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	resp, err := c.do(ctx, c.httpClient, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result ListModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Models, nil
}

// HasModel reports whether the model is installed locally.
func (c *Client) HasModel(ctx context.Context, name string) (bool, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return false, err
	}
	for _, m := range models {
		if m.MatchesModel(name) {
			return true, nil
		}
	}
	return false, nil
}

// Pull downloads a model, reporting each progress line to fn. It returns
// once the server reports success.
func (c *Client) Pull(ctx context.Context, name string, fn func(PullProgress)) error {
	resp, err := c.do(ctx, c.streamClient, http.MethodPost, "/api/pull", PullRequest{Model: name, Stream: true})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			var p PullProgress
			if jsonErr := json.Unmarshal(line, &p); jsonErr == nil {
				if p.Error != "" {
					return &ClientError{Type: ErrTypeInvalidResponse, Message: p.Error}
				}
				if fn != nil {
					fn(p)
				}
				if p.Status == "success" {
					return nil
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return &ClientError{Type: ErrTypeInvalidResponse, Message: "pull ended before completing"}
			}
			return transportError(err)
		}
	}
}

// Warm loads the model into memory without generating anything.
func (c *Client) Warm(ctx context.Context, name string) error {
	resp, err := c.do(ctx, c.streamClient, http.MethodPost, "/api/generate", GenerateRequest{
		Model:     name,
		Stream:    false,
		KeepAlive: c.config.KeepAlive,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	c.logger.Debug("model warmed",
		zap.String("model", name),
		zap.Duration("load", time.Duration(result.LoadDuration)))
	return nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// Chat sends a chat request and returns the complete response (non-streaming).
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (*ChatResponse, error) {
	resp, err := c.do(ctx, c.streamClient, http.MethodPost, "/api/chat", ChatRequest{
		Model:     model,
		Messages:  messages,
		Stream:    false,
		KeepAlive: c.config.KeepAlive,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, transportOrDecodeError(err)
	}
	if result.Error != "" {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: result.Error}
	}

	return &result, nil
}

// ChatStream starts a streaming chat request. Chunks are read from the
// returned StreamReader, which the caller must close.
func (c *Client) ChatStream(ctx context.Context, model string, messages []Message) (*StreamReader, error) {
	resp, err := c.do(ctx, c.streamClient, http.MethodPost, "/api/chat", ChatRequest{
		Model:     model,
		Messages:  messages,
		Stream:    true,
		KeepAlive: c.config.KeepAlive,
	})
	if err != nil {
		return nil, err
	}
	return NewStreamReader(resp.Body), nil
}

// =============================================================================
// UTILITY METHODS
// =============================================================================

// IsModelNotFound checks if an error is a model not found error.
func IsModelNotFound(err error) bool {
	return isType(err, ErrTypeModelNotFound)
}

// IsNotRunning checks if an error indicates Ollama is not running.
func IsNotRunning(err error) bool {
	return isType(err, ErrTypeNotRunning)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return isType(err, ErrTypeTimeout)
}

// IsCancelled checks if a request was cancelled through its context.
func IsCancelled(err error) bool {
	return isType(err, ErrTypeCancelled)
}

func isType(err error, t ErrorType) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == t
	}
	return false
}

func transportOrDecodeError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return transportError(err)
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	_, _ = io.Copy(io.Discard, r)
	r.Close()
}
