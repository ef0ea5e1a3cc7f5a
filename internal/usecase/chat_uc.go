package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/adapter"
	"ai-chat-dashboard/internal/domain/ports/repository"
	"ai-chat-dashboard/internal/pricing"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// ChatResult is one completed relay round-trip: the full client-facing
// JSON body plus the cost block for callers that need it separately.
type ChatResult struct {
	Body     json.RawMessage
	Cost     model.CostBreakdown
	Model    string
	Provider adapter.ProviderKind
}

// ChatUseCase relays one chat request: route by model, call the provider
// once, price the reported usage, persist the usage record, and hand back
// the normalized response. No retries at this layer.
type ChatUseCase interface {
	Send(ctx context.Context, req model.ChatRequest) (*ChatResult, error)
}

type chatUC struct {
	providers adapter.ProviderRegistry
	prices    *pricing.Table
	usage     repository.UsageRepository
	cache     repository.UsageSummaryCache
	log       *zerolog.Logger
}

func NewChatUseCase(
	providers adapter.ProviderRegistry,
	prices *pricing.Table,
	usage repository.UsageRepository,
	cache repository.UsageSummaryCache,
	logger *zerolog.Logger,
) *chatUC {
	return &chatUC{
		providers: providers,
		prices:    prices,
		usage:     usage,
		cache:     cache,
		log:       logger,
	}
}

func (c *chatUC) Send(ctx context.Context, req model.ChatRequest) (*ChatResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	modelID := req.Model
	if modelID == "" {
		modelID = pricing.DirectModel
	}

	prov := c.providers.Resolve(modelID)
	if prov == nil || !prov.Configured() {
		// Logged loudly; the caller renders a generic message so the
		// credential name never reaches the client.
		c.log.Error().Str("model", modelID).Msg("provider credential not configured")
		return nil, domain.ErrProviderNotConfigured
	}

	start := time.Now()
	comp, err := prov.Complete(ctx, modelID, req.Messages)
	if err != nil {
		return nil, err
	}

	entry, err := c.prices.Lookup(modelID)
	if err != nil {
		return nil, err
	}
	cost := pricing.Cost(comp.Usage.InputTokens, comp.Usage.OutputTokens, entry)

	// The ledger write is awaited: a completed request whose usage row
	// cannot be written is a failed request, not a silent loss.
	rec := model.NewUsageRecord(req.UserID, modelID, cost)
	if err := c.usage.Save(ctx, repository.NoTX, rec); err != nil {
		return nil, fmt.Errorf("save usage record: %w", err)
	}
	if c.cache != nil {
		if err := c.cache.Invalidate(ctx, req.UserID); err != nil {
			c.log.Warn().Err(err).Str("user_id", req.UserID).Msg("usage cache invalidate failed")
		}
	}

	c.log.Info().
		Str("user_id", req.UserID).
		Str("model", modelID).
		Int("input_tokens", cost.InputTokens).
		Int("output_tokens", cost.OutputTokens).
		Float64("cost_usd", cost.CostUSD).
		Dur("upstream", time.Since(start)).
		Msg("chat request completed")

	body, err := buildBody(comp, cost)
	if err != nil {
		return nil, err
	}
	return &ChatResult{Body: body, Cost: cost, Model: modelID, Provider: prov.Kind()}, nil
}

func validate(req model.ChatRequest) error {
	if len(req.Messages) == 0 {
		return fmt.Errorf("%w: messages required", domain.ErrInvalidArgument)
	}
	for _, m := range req.Messages {
		if !model.ValidRole(m.Role) {
			return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidArgument, m.Role)
		}
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: userId required", domain.ErrInvalidArgument)
	}
	return nil
}

// buildBody produces the client-facing response shape. The gateway path
// passes its body through with the cost block injected; the direct path is
// reshaped into the same choices shape.
func buildBody(comp *adapter.Completion, cost model.CostBreakdown) (json.RawMessage, error) {
	out := map[string]any{}
	if comp.Raw != nil {
		if err := json.Unmarshal(comp.Raw, &out); err != nil {
			return nil, &domain.UpstreamError{Provider: "gateway", Err: err}
		}
	} else {
		out["choices"] = []map[string]any{{
			"message": model.Message{Role: "assistant", Content: comp.AssistantText},
		}}
	}
	out["cost"] = cost
	return json.Marshal(out)
}
