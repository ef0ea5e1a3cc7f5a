package adapter

import (
	"context"
	"encoding/json"

	"ai-chat-dashboard/internal/domain/model"
)

// Usage for a single chat call, as reported by the provider. Absent fields
// are zero; totals are recomputed downstream, never read from here.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Completion is the normalized output both providers must produce.
// Raw carries the provider's full response body when the provider already
// speaks the client-facing choices shape (the gateway does, the direct
// provider does not); nil means the caller builds the shape itself.
type Completion struct {
	AssistantText string
	Usage         Usage
	Raw           json.RawMessage
}

// ProviderKind is the closed set of routable upstream kinds.
type ProviderKind string

const (
	ProviderDirect  ProviderKind = "direct"
	ProviderGateway ProviderKind = "gateway"
)

// ModelProvider is the port for a single upstream LLM host. Implementations
// make exactly one outbound call per Complete invocation: no retries, no
// streaming.
type ModelProvider interface {
	Kind() ProviderKind

	// Configured reports whether the credential for this provider is
	// present. Complete must not be called when it returns false.
	Configured() bool

	// Complete relays one chat request and normalizes the response.
	// Failures are classified: domain.ErrRateLimited,
	// domain.ErrPaymentRequired, or *domain.UpstreamError.
	Complete(ctx context.Context, model string, messages []model.Message) (*Completion, error)
}
