//go:build !integration

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"ai-chat-dashboard/internal/config"
	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func newAnthropic(t *testing.T, handler http.HandlerFunc) (*AnthropicAdapter, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	a := NewAnthropicAdapter(config.AnthropicConfig{
		APIKey:  "test-key",
		BaseURL: ts.URL,
		Version: "claude-sonnet-4-20250514",
	}, newTestLogger())
	return a, ts
}

func TestAnthropicConfigured(t *testing.T) {
	a := NewAnthropicAdapter(config.AnthropicConfig{}, newTestLogger())
	if a.Configured() {
		t.Fatal("adapter without key should not report configured")
	}
}

func TestAnthropicCompleteRequestShape(t *testing.T) {
	var got anthropicRequest
	a, _ := newAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Errorf("anthropic-version = %q", r.Header.Get("anthropic-version"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "hi"}},
			"usage":   map[string]int{"input_tokens": 100, "output_tokens": 50},
		})
	})

	comp, err := a.Complete(context.Background(), "claude-sonnet-4-5", []model.Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hey"},
		{Role: "user", Content: "again"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got.Model != "claude-sonnet-4-20250514" {
		t.Errorf("model = %q", got.Model)
	}
	if got.MaxTokens != 8096 {
		t.Errorf("max_tokens = %d", got.MaxTokens)
	}
	if got.System != "be terse" {
		t.Errorf("system = %q", got.System)
	}
	if len(got.Messages) != 3 {
		t.Fatalf("conversation kept %d messages, want 3 (system stripped)", len(got.Messages))
	}
	for _, m := range got.Messages {
		if m.Role == "system" {
			t.Errorf("system role leaked into message list")
		}
	}

	if comp.AssistantText != "hi" {
		t.Errorf("assistant text = %q", comp.AssistantText)
	}
	if comp.Usage.InputTokens != 100 || comp.Usage.OutputTokens != 50 {
		t.Errorf("usage = %+v", comp.Usage)
	}
	if comp.Raw != nil {
		t.Errorf("direct path must not carry a raw passthrough body")
	}
}

func TestAnthropicDefaultSystemPrompt(t *testing.T) {
	var got anthropicRequest
	a, _ := newAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "ok"}},
		})
	})

	if _, err := a.Complete(context.Background(), "claude-sonnet-4-5", []model.Message{
		{Role: "user", Content: "hello"},
	}); err != nil {
		t.Fatal(err)
	}
	if got.System != defaultSystemPrompt {
		t.Errorf("system = %q, want built-in default", got.System)
	}
}

func TestAnthropicMissingUsageDefaultsToZero(t *testing.T) {
	a, _ := newAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "ok"}},
		})
	})
	comp, err := a.Complete(context.Background(), "claude-sonnet-4-5", []model.Message{{Role: "user", Content: "x"}})
	if err != nil {
		t.Fatal(err)
	}
	if comp.Usage.InputTokens != 0 || comp.Usage.OutputTokens != 0 {
		t.Fatalf("usage = %+v, want zeros", comp.Usage)
	}
}

func TestAnthropicUpstreamErrorNotForwarded(t *testing.T) {
	a, _ := newAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"secret internal detail"}}`, http.StatusBadGateway)
	})
	_, err := a.Complete(context.Background(), "claude-sonnet-4-5", []model.Message{{Role: "user", Content: "x"}})
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusBadGateway {
		t.Errorf("status = %d", upstream.Status)
	}
}

func TestAnthropicNetworkErrorIsUpstream(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // force a dial error
	a := NewAnthropicAdapter(config.AnthropicConfig{APIKey: "k", BaseURL: ts.URL, Version: "v"}, newTestLogger())
	_, err := a.Complete(context.Background(), "claude-sonnet-4-5", []model.Message{{Role: "user", Content: "x"}})
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
