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
var _ adapter.ModelProvider = (*GatewayAdapter)(nil)

// GatewayAdapter implements adapter.ModelProvider against the multi-model
// gateway's OpenAI-compatible chat completions endpoint. The gateway's
// response body already matches the client-facing choices shape, so it is
// kept verbatim in Completion.Raw for passthrough.
type GatewayAdapter struct {
	apiKey string
	base   string // e.g., https://ai.gateway.lovable.dev/v1
	client *http.Client
	log    *zerolog.Logger
}

func NewGatewayAdapter(cfg config.GatewayConfig, logger *zerolog.Logger) *GatewayAdapter {
	return &GatewayAdapter{
		apiKey: cfg.APIKey,
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
		log:    logger,
	}
}

func (g *GatewayAdapter) Kind() adapter.ProviderKind { return adapter.ProviderGateway }

func (g *GatewayAdapter) Configured() bool { return g.apiKey != "" }

type gatewayRequest struct {
	Model    string          `json:"model"`
	Messages []model.Message `json:"messages"`
	Stream   bool            `json:"stream"`
}

type gatewayResponse struct {
	Choices []struct {
		Message model.Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (g *GatewayAdapter) Complete(ctx context.Context, modelID string, messages []model.Message) (*adapter.Completion, error) {
	// The gateway protocol expects the system role inline in the list.
	withSystem := make([]model.Message, 0, len(messages)+1)
	withSystem = append(withSystem, model.Message{Role: "system", Content: defaultSystemPrompt})
	withSystem = append(withSystem, messages...)

	body, _ := json.Marshal(gatewayRequest{
		Model:    modelID,
		Messages: withSystem,
		Stream:   false,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.base+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.UpstreamError{Provider: "gateway", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: "gateway", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, domain.ErrPaymentRequired
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.log.Error().Int("status", resp.StatusCode).Str("body", string(errBody)).Msg("AI gateway error")
		return nil, &domain.UpstreamError{Provider: "gateway", Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: "gateway", Err: err}
	}
	var payload gatewayResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &domain.UpstreamError{Provider: "gateway", Err: err}
	}
	text := ""
	if len(payload.Choices) > 0 {
		text = payload.Choices[0].Message.Content
	}
	return &adapter.Completion{
		AssistantText: text,
		Usage: adapter.Usage{
			InputTokens:  payload.Usage.PromptTokens,
			OutputTokens: payload.Usage.CompletionTokens,
		},
		Raw: raw,
	}, nil
}
