package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChatSuccess(t *testing.T) {
	var gotReq ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/chatbot/chat" {
			t.Errorf("path = %s, want /api/chatbot/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"response": "Water deeply once a week.",
		})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := c.Chat(context.Background(), &ChatRequest{
		Message:      "Watering schedule?",
		Timestamp:    "2025-06-01T10:00:00Z",
		Language:     "english",
		SystemPrompt: "You are an avocado assistant.",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if resp.Text != "Water deeply once a week." {
		t.Errorf("Text = %q", resp.Text)
	}
	if gotReq.Message != "Watering schedule?" {
		t.Errorf("request message = %q", gotReq.Message)
	}
	if gotReq.Language != "english" {
		t.Errorf("request language = %q", gotReq.Language)
	}
	if gotReq.Timestamp == "" || gotReq.SystemPrompt == "" {
		t.Error("timestamp and systemPrompt must be sent")
	}
}

func TestChatApplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "API quota exceeded. Please try again later.",
		})
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})

	_, err := c.Chat(context.Background(), &ChatRequest{Message: "hi"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want 429", apiErr.Status)
	}
	if apiErr.Reason != "API quota exceeded. Please try again later." {
		t.Errorf("Reason = %q", apiErr.Reason)
	}
}

func TestChatSuccessFalseWithoutReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})

	_, err := c.Chat(context.Background(), &ChatRequest{Message: "hi"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Reason != "" {
		t.Errorf("Reason = %q, want empty", apiErr.Reason)
	}
}

func TestChatMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream timeout</html>"))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})

	_, err := c.Chat(context.Background(), &ChatRequest{Message: "hi"})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestChatTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, _ := New(Config{BaseURL: srv.URL})

	_, err := c.Chat(context.Background(), &ChatRequest{Message: "hi"})
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure must not be an *APIError: %v", err)
	}
}

func TestChatHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c, _ := New(Config{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Chat(ctx, &ChatRequest{Message: "hi"})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing base URL")
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chatbot/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":            "healthy",
			"service":           "AvoCare Chatbot",
			"gemini_configured": true,
			"message":           "Chatbot service is operational",
		})
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})

	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != "healthy" || !health.Configured {
		t.Errorf("unexpected health: %+v", health)
	}
}

func TestSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chatbot/suggestions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"suggestions": []map[string]any{
				{"id": 1, "category": "Disease", "question": "How do I identify root rot?", "icon": "leaf"},
				{"id": 2, "category": "Pests", "question": "Common avocado pests?", "icon": "bug"},
			},
		})
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})

	suggestions, err := c.Suggestions(context.Background())
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].Question != "How do I identify root rot?" {
		t.Errorf("Question = %q", suggestions[0].Question)
	}
}
