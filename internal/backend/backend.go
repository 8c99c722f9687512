// Package backend implements the client for the AvoCare chatbot REST
// service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrMalformedResponse reports a reachable service that returned something
// the client could not parse.
var ErrMalformedResponse = errors.New("malformed response from chat service")

// APIError is an application-level failure: the service was reachable and
// answered success=false.
type APIError struct {
	Status int
	Reason string
}

func (e *APIError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("chat service error (status %d)", e.Status)
	}
	return fmt.Sprintf("chat service error (status %d): %s", e.Status, e.Reason)
}

// ChatRequest is the wire payload for one exchange.
type ChatRequest struct {
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"` // ISO-8601
	Language     string `json:"language"`
	SystemPrompt string `json:"systemPrompt"`
}

// ChatResponse is a successful exchange result.
type ChatResponse struct {
	Text string
}

// HealthStatus reports the chatbot service health endpoint.
type HealthStatus struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Configured bool   `json:"gemini_configured"`
	Message    string `json:"message"`
}

// Suggestion is a pre-authored quick question offered by the service.
type Suggestion struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Question string `json:"question"`
	Icon     string `json:"icon"`
}

// Config holds client settings.
type Config struct {
	BaseURL string
	// HTTPClient overrides the transport; defaults to http.DefaultClient.
	// Request deadlines come from the caller's context.
	HTTPClient *http.Client
}

// Client talks to the AvoCare chatbot routes.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the service at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
	}, nil
}

// chatEnvelope mirrors the service's response shape for both outcomes.
type chatEnvelope struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Chat sends one message and returns the assistant's reply. Failures are
// distinguished: an *APIError means the service answered success=false,
// ErrMalformedResponse means it answered garbage, anything else is a
// transport failure.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("backend: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chatbot/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("backend: send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: read response: %w", err)
	}

	var env chatEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: status %d", ErrMalformedResponse, resp.StatusCode)
	}

	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Reason: env.Error}
	}

	return &ChatResponse{Text: env.Response}, nil
}

// Health checks the chatbot service health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.get(ctx, "/api/chatbot/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Suggestions fetches the service's quick question list.
func (c *Client) Suggestions(ctx context.Context) ([]Suggestion, error) {
	var env struct {
		Suggestions []Suggestion `json:"suggestions"`
		Success     bool         `json:"success"`
		Error       string       `json:"error"`
	}
	if err := c.get(ctx, "/api/chatbot/suggestions", &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Status: http.StatusOK, Reason: env.Error}
	}
	return env.Suggestions, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read response: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: status %d", ErrMalformedResponse, resp.StatusCode)
	}
	return nil
}
