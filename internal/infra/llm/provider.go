// Adapters (Ollama, OpenAI) implement Provider so callers never depend on a
// specific LLM vendor.
package llm

import "context"

// Provider is the model-agnostic interface for text generation.
type Provider interface {
	// Generate sends one prompt and returns the upstream text verbatim.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta

	// HealthCheck returns nil if the provider is reachable.
	HealthCheck(ctx context.Context) error
}
