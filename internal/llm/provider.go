package llm

import "context"

// Provider defines the interface for interacting with an LLM backend.
// IMPORTANT: Implementations are safe for concurrent use from multiple
// goroutines, as long as their configuration (API key, endpoint) is NOT
// modified after creation. This is the standard practice for http.Client
// based libraries.
type Provider interface {
	// GenerateSQL sends the assembled prompt and returns the raw model text,
	// whitespace-trimmed but otherwise untouched.
	GenerateSQL(ctx context.Context, prompt string) (string, error)
	// Name returns the provider name (e.g. "openai", "anthropic").
	Name() string
}
