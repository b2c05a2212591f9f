package llm

import (
	"context"

	"github.com/biograph-ai/biograph/internal/types"
)

// Provider is the unified abstraction over hosted LLM services
// (Anthropic Claude, OpenAI GPT, local Ollama models).
type Provider interface {
	// Name returns the provider name (e.g. "anthropic", "openai", "ollama").
	Name() string

	// Complete sends a completion request and blocks until the full
	// response is available.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health checks connectivity to the provider.
	Health(ctx context.Context) types.HealthStatus
}
