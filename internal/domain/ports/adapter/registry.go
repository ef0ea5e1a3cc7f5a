package adapter

// ProviderRegistry resolves a model id to the provider responsible for it.
type ProviderRegistry interface {
	Resolve(modelID string) ModelProvider
}
