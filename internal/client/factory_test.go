package client

import (
	"context"
	"errors"
	"testing"

	"nlsql-service/internal/config"
	"nlsql-service/internal/types"
)

func testConfig(openaiKey, accessKey, secretKey string) *config.Config {
	cfg := &config.Config{}
	cfg.OpenAI.APIKey = openaiKey
	cfg.OpenAI.Model = config.DefaultOpenAIModel
	cfg.OpenAI.Endpoint = config.DefaultOpenAIEndpoint
	cfg.Bedrock.AccessKeyID = accessKey
	cfg.Bedrock.SecretAccessKey = secretKey
	cfg.Bedrock.Region = config.DefaultAWSRegion
	cfg.Bedrock.ModelID = config.DefaultBedrockModel
	cfg.LLM.Temperature = config.DefaultTemperature
	cfg.LLM.MaxTokens = config.DefaultMaxTokens
	return cfg
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		openaiKey  string
		accessKey  string
		secretKey  string
		preference string
		want       string
	}{
		{
			name:       "openai key wins over anthropic preference",
			openaiKey:  "sk-test",
			accessKey:  "ak",
			secretKey:  "sk",
			preference: types.ProviderAnthropic,
			want:       types.ProviderOpenAI,
		},
		{
			name:       "openai key alone wins",
			openaiKey:  "sk-test",
			preference: types.ProviderAnthropic,
			want:       types.ProviderOpenAI,
		},
		{
			name:       "bedrock pair wins over openai preference",
			accessKey:  "ak",
			secretKey:  "sk",
			preference: types.ProviderOpenAI,
			want:       types.ProviderAnthropic,
		},
		{
			name:       "incomplete bedrock pair falls through to preference",
			accessKey:  "ak",
			preference: types.ProviderOpenAI,
			want:       types.ProviderOpenAI,
		},
		{
			name:       "no credentials, openai preference",
			preference: types.ProviderOpenAI,
			want:       types.ProviderOpenAI,
		},
		{
			name:       "no credentials, anthropic preference",
			preference: types.ProviderAnthropic,
			want:       types.ProviderAnthropic,
		},
		{
			name:       "no credentials, unknown preference defaults to anthropic",
			preference: "gemini",
			want:       types.ProviderAnthropic,
		},
		{
			name:       "no credentials, empty preference defaults to anthropic",
			preference: "",
			want:       types.ProviderAnthropic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.openaiKey, tt.accessKey, tt.secretKey)
			got := Select(cfg, tt.preference)
			if got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewProvider_MissingOpenAICredential(t *testing.T) {
	cfg := testConfig("", "", "")

	_, err := NewProvider(context.Background(), cfg, types.ProviderOpenAI)
	if err == nil {
		t.Fatal("expected error for missing openai credential")
	}

	var credErr *types.CredentialError
	if !errors.As(err, &credErr) {
		t.Fatalf("expected CredentialError, got %v", err)
	}

	var provErr *types.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError wrapper, got %v", err)
	}
	if provErr.Provider != types.ProviderOpenAI {
		t.Errorf("expected provider openai, got %s", provErr.Provider)
	}
}

func TestNewProvider_MissingBedrockCredentials(t *testing.T) {
	cfg := testConfig("", "", "")

	_, err := NewProvider(context.Background(), cfg, types.ProviderAnthropic)
	if err == nil {
		t.Fatal("expected error for missing bedrock credentials")
	}

	var credErr *types.CredentialError
	if !errors.As(err, &credErr) {
		t.Fatalf("expected CredentialError, got %v", err)
	}
	if credErr.Provider != types.ProviderAnthropic {
		t.Errorf("expected provider anthropic, got %s", credErr.Provider)
	}
}

func TestNewProvider_OpenAIConstruction(t *testing.T) {
	cfg := testConfig("sk-test", "", "")

	p, err := NewProvider(context.Background(), cfg, types.ProviderAnthropic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != types.ProviderOpenAI {
		t.Errorf("expected openai provider, got %s", p.Name())
	}
}
