package llm

import "context"

// Provider is a chat-completion backend used for narrative enhancement.
type Provider interface {
	// Complete sends one completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name identifies the provider ("openai", "anthropic", "ollama").
	Name() string
}
