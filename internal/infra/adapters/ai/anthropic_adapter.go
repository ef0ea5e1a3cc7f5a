package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-dashboard/internal/config"
	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.ModelProvider = (*AnthropicAdapter)(nil)

const anthropicAPIVersion = "2023-06-01"

// maxOutputTokens is the fixed output ceiling for every direct-provider call.
const maxOutputTokens = 8096

// AnthropicAdapter implements adapter.ModelProvider against the Anthropic
// Messages API. The caller's model id maps to one pinned upstream version
// string; the system prompt travels as a top-level field, not a message.
type AnthropicAdapter struct {
	apiKey  string
	base    string // e.g., https://api.anthropic.com
	version string // pinned model version, e.g., claude-sonnet-4-20250514
	client  *http.Client
	log     *zerolog.Logger
}

func NewAnthropicAdapter(cfg config.AnthropicConfig, logger *zerolog.Logger) *AnthropicAdapter {
	return &AnthropicAdapter{
		apiKey:  cfg.APIKey,
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		version: cfg.Version,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     logger,
	}
}

func (a *AnthropicAdapter) Kind() adapter.ProviderKind { return adapter.ProviderDirect }

func (a *AnthropicAdapter) Configured() bool { return a.apiKey != "" }

type anthropicRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system"`
	Messages  []model.Message `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (a *AnthropicAdapter) Complete(ctx context.Context, _ string, messages []model.Message) (*adapter.Completion, error) {
	system := defaultSystemPrompt
	systemFound := false
	conversation := make([]model.Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == "system" {
			// first system message wins; later ones are dropped
			if !systemFound {
				system = m.Content
				systemFound = true
			}
			continue
		}
		conversation = append(conversation, m)
	}

	body, _ := json.Marshal(anthropicRequest{
		Model:     a.version,
		MaxTokens: maxOutputTokens,
		System:    system,
		Messages:  conversation,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.base+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.UpstreamError{Provider: "anthropic", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: "anthropic", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// upstream detail is logged, never forwarded to the client
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		a.log.Error().Int("status", resp.StatusCode).Str("body", string(errBody)).Msg("anthropic API error")
		return nil, &domain.UpstreamError{Provider: "anthropic", Status: resp.StatusCode}
	}

	var payload anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &domain.UpstreamError{Provider: "anthropic", Err: err}
	}
	text := ""
	if len(payload.Content) > 0 {
		text = payload.Content[0].Text
	}
	return &adapter.Completion{
		AssistantText: text,
		Usage: adapter.Usage{
			InputTokens:  payload.Usage.InputTokens,
			OutputTokens: payload.Usage.OutputTokens,
		},
	}, nil
}
