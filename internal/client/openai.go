package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nlsql-service/internal/config"
	"nlsql-service/internal/types"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements llm.Provider using the official OpenAI client.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// NewOpenAIProvider creates a provider backed by the OpenAI chat completions
// endpoint. It fails with a CredentialError when OPENAI_API_KEY is absent.
func NewOpenAIProvider(cfg *config.Config) (*OpenAIProvider, error) {
	if !cfg.HasOpenAI() {
		return nil, types.NewCredentialError(types.ProviderOpenAI, "OPENAI_API_KEY")
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenAI.APIKey),
		option.WithBaseURL(cfg.OpenAI.Endpoint),
	)

	return &OpenAIProvider{
		client:      &client,
		model:       cfg.OpenAI.Model,
		temperature: cfg.LLM.Temperature,
		maxTokens:   cfg.LLM.MaxTokens,
		timeout:     cfg.LLM.Timeout,
	}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return types.ProviderOpenAI
}

// GenerateSQL sends a single chat completion request and returns the first
// choice's text, whitespace-trimmed. No retries: a failure propagates.
func (p *OpenAIProvider) GenerateSQL(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.SystemPromptSQL),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(p.temperature),
		MaxTokens:   openai.Int(int64(p.maxTokens)),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no openai response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
