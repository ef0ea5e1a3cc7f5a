package ai

import (
	"ai-chat-dashboard/internal/domain/ports/adapter"
	"ai-chat-dashboard/internal/pricing"
)

// kindByModel is the closed routing table. Adding a provider means one new
// ProviderKind, one adapter, and an edit here.
var kindByModel = map[string]adapter.ProviderKind{
	pricing.DirectModel: adapter.ProviderDirect,
}

// KindFor resolves the provider kind for a model id. Unknown ids route to
// the gateway, which serves every model the direct provider does not.
func KindFor(modelID string) adapter.ProviderKind {
	if k, ok := kindByModel[modelID]; ok {
		return k
	}
	return adapter.ProviderGateway
}

// Registry maps provider kinds to their configured adapters. Read-only
// after construction.
type Registry struct {
	byKind map[adapter.ProviderKind]adapter.ModelProvider
}

func NewRegistry(providers ...adapter.ModelProvider) *Registry {
	byKind := make(map[adapter.ProviderKind]adapter.ModelProvider, len(providers))
	for _, p := range providers {
		byKind[p.Kind()] = p
	}
	return &Registry{byKind: byKind}
}

// Resolve returns the adapter responsible for modelID, or nil when no
// adapter is registered for its kind.
func (r *Registry) Resolve(modelID string) adapter.ModelProvider {
	return r.byKind[KindFor(modelID)]
}
