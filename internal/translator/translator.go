package translator

import (
	"context"
	"log/slog"
	"time"

	"nlsql-service/internal/client"
	"nlsql-service/internal/config"
	"nlsql-service/internal/llm"
	"nlsql-service/internal/metrics"
	"nlsql-service/internal/types"
)

// ProviderFactory builds the provider selected for a request. Indirection
// lets tests substitute a stub without touching the network.
type ProviderFactory func(ctx context.Context, cfg *config.Config, preference string) (llm.Provider, error)

// Result is the outcome of one translation.
type Result struct {
	SQL      string
	Provider string
	Duration time.Duration
}

// Translator turns a natural-language query plus a schema summary into a SQL
// string. It is stateless across requests; each call selects a provider,
// issues one blocking request, and returns.
type Translator struct {
	cfg     *config.Config
	factory ProviderFactory
}

// New creates a Translator using the real provider factory.
func New(cfg *config.Config) *Translator {
	return NewWithFactory(cfg, client.NewProvider)
}

// NewWithFactory creates a Translator with a custom provider factory.
func NewWithFactory(cfg *config.Config, factory ProviderFactory) *Translator {
	return &Translator{cfg: cfg, factory: factory}
}

// GenerateSQL runs the full translation: select provider, build prompt, call,
// strip markdown fences. The returned string is not validated as SQL. There
// is no fallback: failure of the selected provider propagates directly.
func (t *Translator) GenerateSQL(ctx context.Context, req types.QueryRequest, schema types.SchemaInfo) (*Result, error) {
	start := time.Now()

	provider, err := t.factory(ctx, t.cfg, req.LLMProvider)
	if err != nil {
		metrics.TranslationsTotal.WithLabelValues(client.Select(t.cfg, req.LLMProvider), "error").Inc()
		return nil, err
	}

	prompt := BuildPrompt(req.Query, schema)
	slog.Debug("prompt assembled", "provider", provider.Name(), "bytes", len(prompt), "tables", len(schema.Tables))

	raw, err := provider.GenerateSQL(ctx, prompt)
	if err != nil {
		metrics.TranslationsTotal.WithLabelValues(provider.Name(), "error").Inc()
		return nil, types.NewProviderError(provider.Name(), err)
	}

	sql := StripFences(raw)
	elapsed := time.Since(start)

	metrics.TranslationsTotal.WithLabelValues(provider.Name(), "success").Inc()
	metrics.TranslationDuration.WithLabelValues(provider.Name()).Observe(elapsed.Seconds())
	slog.Info("sql generated", "provider", provider.Name(), "duration_ms", elapsed.Milliseconds())

	return &Result{SQL: sql, Provider: provider.Name(), Duration: elapsed}, nil
}
