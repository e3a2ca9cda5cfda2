package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/bedrock"

	"nlsql-service/internal/config"
	"nlsql-service/internal/types"
)

// BedrockProvider implements llm.Provider using Anthropic Claude models
// served through AWS Bedrock.
type BedrockProvider struct {
	llm         *bedrock.LLM
	modelID     string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// NewBedrockProvider creates a provider backed by the Bedrock runtime. It
// fails with a CredentialError when the AWS credential pair is absent.
func NewBedrockProvider(ctx context.Context, cfg *config.Config) (*BedrockProvider, error) {
	if !cfg.HasBedrock() {
		return nil, types.NewCredentialError(types.ProviderAnthropic,
			"AWS_ACCESS_KEY_ID/AWS_ACCESS_KEY and AWS_SECRET_ACCESS_KEY")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Bedrock.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Bedrock.AccessKeyID, cfg.Bedrock.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	runtime := bedrockruntime.NewFromConfig(awsCfg)

	model, err := bedrock.New(
		bedrock.WithModel(cfg.Bedrock.ModelID),
		bedrock.WithClient(runtime),
	)
	if err != nil {
		return nil, fmt.Errorf("create bedrock llm: %w", err)
	}

	return &BedrockProvider{
		llm:         model,
		modelID:     cfg.Bedrock.ModelID,
		temperature: cfg.LLM.Temperature,
		maxTokens:   cfg.LLM.MaxTokens,
		timeout:     cfg.LLM.Timeout,
	}, nil
}

// Name returns the provider identifier.
func (p *BedrockProvider) Name() string {
	return types.ProviderAnthropic
}

// GenerateSQL sends a single message request through Bedrock and returns the
// first content block's text, whitespace-trimmed.
func (p *BedrockProvider) GenerateSQL(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt,
		llms.WithTemperature(p.temperature),
		llms.WithMaxTokens(p.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("bedrock request: %w", err)
	}

	return strings.TrimSpace(response), nil
}
